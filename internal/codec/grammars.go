package codec

import (
	"fmt"

	"github.com/faanross/rainbow/internal/rng"
)

// Example1Grammar is a small, 4-bit-per-sentence grammar: enough to
// demonstrate the codec without pulling in a news-article template.
// Grounded on original_source/src/stego/cfg.rs's smaller test grammar.
func Example1Grammar() *Grammar {
	order := []string{"start", "subject", "verb", "object", "adverb"}
	productions := map[string][]string{
		"start": {"The {subject} {verb} the {object} {adverb}."},
		"subject": {"cat", "dog"},
		"verb": {"chased", "watched"},
		"object": {"ball", "mouse"},
		"adverb": {"quietly", "loudly"},
	}
	g, err := NewGrammar(order, productions)
	if err != nil {
		// construction-time invariants are fixed at compile time for
		// this built-in grammar; a failure here is a programmer error.
		panic(err)
	}
	return g
}

// Example2Grammar is a 32-bit-per-sentence news-article template: 8
// variables, 16 productions each (4 bits * 8 = 32), matching the
// registry's default text/plain codec capacity so a single
// length-prefixed header fits in exactly one sentence's worth of bits.
func Example2Grammar() *Grammar {
	order := []string{
		"start", "location", "verb", "subject", "outcome",
		"reaction", "official", "timeframe", "qualifier",
	}
	productions := map[string][]string{
		"start": {
			"{location} officials {verb} that {subject} {outcome}, " +
				"according to a statement released {timeframe}. " +
				"{official} called the development {qualifier}, and " +
				"residents {reaction}.",
		},
		"location": {
			"City Hall", "The regional council", "State officials",
			"Federal regulators", "The port authority", "County commissioners",
			"The transit board", "University administrators",
			"The planning commission", "Local officials", "The water district",
			"The school board", "Metro police", "The harbor master",
			"The fire marshal", "The zoning board",
		},
		"verb": {
			"confirmed", "announced", "disclosed", "reported",
			"acknowledged", "revealed", "stated", "clarified",
			"explained", "outlined", "detailed", "summarized",
			"reiterated", "affirmed", "noted", "indicated",
		},
		"subject": {
			"the bridge project", "the new transit line", "the water treatment plant",
			"the downtown rezoning", "the harbor expansion", "the school renovation",
			"the power grid upgrade", "the park restoration", "the airport terminal",
			"the hospital wing", "the courthouse annex", "the library branch",
			"the stadium retrofit", "the levee repair", "the tunnel bore",
			"the ferry terminal",
		},
		"outcome": {
			"will proceed as planned", "has been delayed", "exceeded its budget",
			"passed final inspection", "cleared environmental review",
			"secured additional funding", "entered its final phase",
			"faces a new setback", "is ahead of schedule", "met its milestone",
			"requires further study", "was approved unanimously",
			"drew mixed reviews", "remains under negotiation",
			"was put out to bid", "completed its pilot phase",
		},
		"reaction": {
			"welcomed the news", "expressed concern", "remained skeptical",
			"called for more hearings", "praised the transparency",
			"demanded an audit", "organized a town hall", "filed a formal objection",
			"circulated a petition", "requested a timeline", "voiced cautious optimism",
			"asked for independent review", "applauded the decision",
			"questioned the cost estimate", "sought clarification",
			"offered no comment",
		},
		"official": {
			"The mayor", "A spokesperson", "The project lead", "A senior engineer",
			"The deputy director", "A city planner", "The budget officer",
			"A transit authority representative", "The chief inspector",
			"A council aide", "The program manager", "A contracted consultant",
			"The site supervisor", "A regional administrator",
			"The communications director", "A department liaison",
		},
		"timeframe": {
			"this morning", "on Friday", "last week", "earlier today",
			"on Monday", "over the weekend", "late Thursday", "this afternoon",
			"on Tuesday", "yesterday evening", "this quarter", "last month",
			"on Wednesday", "at a press briefing", "in a memo", "via email",
		},
		"qualifier": {
			"a milestone", "routine", "unprecedented", "overdue",
			"a turning point", "modest progress", "a setback", "encouraging",
			"premature", "long overdue", "a formality", "substantial",
			"preliminary", "a welcome change", "concerning", "noteworthy",
		},
	}
	g, err := NewGrammar(order, productions)
	if err != nil {
		panic(err)
	}
	return g
}

// RandomGrammar synthesizes a fresh grammar with exactly 32 bits of
// per-sentence capacity from shuffled word pools, for the registry's
// randomized construction mode.
func RandomGrammar(src rng.Source) (*Grammar, error) {
	r := rng.Or(src)

	// 8 variables * 4 bits (16 options each) = 32 bits total capacity.
	pools := []struct {
		name string
		size int
	}{
		{"alpha", 16}, {"beta", 16}, {"gamma", 16}, {"delta", 16},
		{"epsilon", 16}, {"zeta", 16}, {"eta", 16}, {"theta", 16},
	}
	base := []string{
		"red", "blue", "green", "gold", "silver", "violet", "amber", "jade",
		"coral", "slate", "ochre", "ivory", "onyx", "pearl", "copper", "cobalt",
	}

	order := []string{"start"}
	productions := map[string][]string{}
	var startParts []string
	for _, p := range pools {
		order = append(order, p.name)
		words := make([]string, p.size)
		copy(words, base)
		r.Shuffle(len(words), func(i, j int) { words[i], words[j] = words[j], words[i] })
		productions[p.name] = words[:p.size]
		startParts = append(startParts, fmt.Sprintf("{%s}", p.name))
	}

	sentence := ""
	for i, part := range startParts {
		if i > 0 {
			sentence += "-"
		}
		sentence += part
	}
	productions["start"] = []string{sentence + "."}

	return NewGrammar(order, productions)
}
