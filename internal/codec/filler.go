package codec

import (
	"fmt"

	"github.com/faanross/rainbow/internal/rng"
)

// filler.go holds the randomized, plausible-looking filler content the
// base64-in-template codecs paste a payload into. None of this is
// security-relevant — it exists only to make generated artifacts look
// like ordinary web content to a casual observer.

var pageTitles = []string{
	"Welcome to Our Platform",
	"Dashboard Overview",
	"Latest Updates",
	"Account Settings",
	"Product Catalog",
	"Customer Portal",
	"System Status",
	"Release Notes",
}

var loremWords = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing",
	"elit", "sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore",
	"et", "dolore", "magna", "aliqua", "enim", "minim", "veniam", "quis",
	"nostrud", "exercitation", "ullamco", "laboris", "nisi", "aliquip",
}

func randomTitle(src rng.Source) string {
	return pageTitles[rng.Or(src).IntN(len(pageTitles))]
}

func randomSentence(src rng.Source, words int) string {
	r := rng.Or(src)
	s := ""
	for i := 0; i < words; i++ {
		if i > 0 {
			s += " "
		}
		s += loremWords[r.IntN(len(loremWords))]
	}
	return s
}

func randomSelector(src rng.Source) string {
	prefixes := []string{"nav", "card", "btn", "panel", "hero", "grid", "badge"}
	r := rng.Or(src)
	return fmt.Sprintf(".%s-%d", prefixes[r.IntN(len(prefixes))], r.IntN(1000))
}
