package codec

import (
	"encoding/binary"
	"strings"

	"github.com/faanross/rainbow/internal/httputil"
	"github.com/faanross/rainbow/internal/rainbowerr"
)

// startTag is the conventional top-level production reference: every
// grammar must define a "start" production reachable through it.
const startTag = "{start}"

// Grammar is a value type: an ordered map from variable name to its
// list of production templates, plus a fixed iteration order. Round-
// trip correctness depends on that order staying stable.
type Grammar struct {
	order []string
	productions map[string][]string
}

// NewGrammar validates that every {name} reference resolves and that a
// deterministic, all-zero-choice expansion of "start" terminates,
// then returns the grammar.
func NewGrammar(order []string, productions map[string][]string) (*Grammar, error) {
	if _, ok := productions["start"]; !ok {
		return nil, rainbowerr.InvalidData("grammar: missing \"start\" production")
	}
	for _, prods := range productions {
		for _, p := range prods {
			for idx := strings.IndexByte(p, '{'); idx != -1; {
				end := httputil.FindMatchingBrace(p, idx)
				if end == -1 {
					return nil, rainbowerr.InvalidData("grammar: unbalanced placeholder")
				}
				if _, ok := productions[p[idx+1:end]]; !ok {
					return nil, rainbowerr.InvalidData("grammar: unresolved variable " + p[idx+1:end])
				}
				next := strings.IndexByte(p[end+1:], '{')
				if next == -1 {
					break
				}
				idx = end + 1 + next
			}
		}
	}
	g := &Grammar{order: append([]string(nil), order...), productions: productions}
	if _, err := g.expand(startTag, nil, 100000); err != nil {
		return nil, err
	}
	return g, nil
}

// expand repeatedly replaces the first {name} placeholder with its
// chosen production (or production 0 when choices is nil or missing an
// entry), stopping once no braces remain. limit bounds the number of
// substitutions to catch cyclic grammars at construction time.
func (g *Grammar) expand(text string, choices map[string]int, limit int) (string, error) {
	result := text
	for i := 0; i < limit; i++ {
		idx := strings.IndexByte(result, '{')
		if idx == -1 {
			return result, nil
		}
		end := httputil.FindMatchingBrace(result, idx)
		if end == -1 {
			return "", rainbowerr.InvalidData("grammar: unbalanced placeholder")
		}
		varName := result[idx+1 : end]
		productions, ok := g.productions[varName]
		if !ok {
			return "", rainbowerr.InvalidData("grammar: unresolved variable " + varName)
		}
		index := 0
		if choices != nil {
			if v, ok2 := choices[varName]; ok2 && v >= 0 && v < len(productions) {
				index = v
			}
		}
		result = result[:idx] + productions[index] + result[end+1:]
	}
	return "", rainbowerr.InvalidData("grammar: expansion did not terminate (cyclic grammar?)")
}

// Expand is the public form of expand used by the encoder once
// construction-time validation has already passed. It allows up to
// 1<<20 substitutions and returns "" if the expansion fails.
func (g *Grammar) Expand(choices map[string]int) string {
	result, _ := g.expand(startTag, choices, 1<<20)
	return result
}

// bitsFor returns floor(log2(n)) for n>1, the per-variable choice width.
func bitsFor(n int) int {
	w := 0
	for (1 << uint(w+1)) <= n {
		w++
	}
	return w
}

// Capacity is the fixed per-sentence bit budget: the sum over all
// variables (in order) of floor(log2(|productions|)) where that count
// exceeds 1.
func (g *Grammar) Capacity() int {
	total := 0
	for _, v := range g.order {
		n := len(g.productions[v])
		if n > 1 {
			total += bitsFor(n)
		}
	}
	return total
}

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

// matchRecursive is the prefix-pruned recursive decoder. pattern
// starts as startTag and is progressively expanded; choices is
// mutated (and backtracked) in place. Returns the byte length of the
// final, fully-terminal pattern that matched as a prefix of target.
func (g *Grammar) matchRecursive(target, pattern string, choices map[string]int) (int, bool) {
	idx := strings.IndexByte(pattern, '{')
	if idx == -1 {
		if strings.HasPrefix(target, pattern) {
			return len(pattern), true
		}
		return 0, false
	}
	end := httputil.FindMatchingBrace(pattern, idx)
	if end == -1 {
		return 0, false
	}
	varName := pattern[idx+1 : end]
	productions, ok := g.productions[varName]
	if !ok {
		return 0, false
	}

	for index, prod := range productions {
		newPattern := pattern[:idx] + prod + pattern[end+1:]

		nextBrace := strings.IndexByte(newPattern, '{')
		prefix := newPattern
		if nextBrace != -1 {
			prefix = newPattern[:nextBrace]
		}
		if prefix != "" && !strings.HasPrefix(target, prefix) {
			continue
		}

		choices[varName] = index
		if length, ok := g.matchRecursive(target, newPattern, choices); ok {
			return length, true
		}
		delete(choices, varName)
	}
	return 0, false
}

// CFGCodec encodes bytes as a stream of grammar-generated sentences
// and decodes them back via the prefix-matching recursive decoder.
// Registry key is always "cfg"; the underlying Grammar varies
// (example1, example2, or a Random instance).
type CFGCodec struct {
	grammar *Grammar
}

func NewCFGCodec(g *Grammar) *CFGCodec { return &CFGCodec{grammar: g} }

func (c *CFGCodec) Name() string { return "cfg" }
func (c *CFGCodec) MIME() string { return "text/plain" }

func (c *CFGCodec) headerSize() int {
	capacity := c.grammar.Capacity()
	if capacity/8 > 4 {
		return capacity / 8
	}
	return 4
}

func (c *CFGCodec) Encode(plaintext []byte) ([]byte, error) {
	capacity := c.grammar.Capacity()
	if capacity <= 0 {
		return nil, rainbowerr.EncodeFailed("cfg codec: grammar has zero bit capacity per sentence")
	}

	header := make([]byte, c.headerSize())
	binary.BigEndian.PutUint32(header[:4], uint32(len(plaintext)))

	full := append(header, plaintext...)
	bits := bitsFromBytes(full)

	cursor := 0
	var sentences []string
	for {
		choices := make(map[string]int)
		exhausted := false
		for _, v := range c.grammar.order {
			n := len(c.grammar.productions[v])
			if n <= 1 {
				continue
			}
			w := bitsFor(n)
			if w == 0 {
				continue
			}
			if exhausted {
				choices[v] = 0
				continue
			}
			value := 0
			consumed := 0
			for i := 0; i < w; i++ {
				bit := false
				if cursor < len(bits) {
					bit = bits[cursor]
					cursor++
					consumed++
				}
				value <<= 1
				if bit {
					value |= 1
				}
			}
			if consumed < w {
				exhausted = true
			}
			choices[v] = value % n
		}
		sentences = append(sentences, c.grammar.Expand(choices))
		if cursor >= len(bits) {
			break
		}
	}

	return []byte(strings.Join(sentences, " ")), nil
}

func (c *CFGCodec) Decode(artifact []byte) ([]byte, error) {
	capacity := c.grammar.Capacity()
	if !isPowerOfTwo(capacity) {
		return nil, rainbowerr.InvalidData("cfg codec: grammar capacity is not a power of two")
	}

	remaining := string(artifact)
	var recovered []bool

	for strings.TrimSpace(remaining) != "" {
		remaining = strings.TrimLeft(remaining, " \t\r\n")
		choices := make(map[string]int)
		length, ok := c.grammar.matchRecursive(remaining, startTag, choices)
		if !ok {
			return nil, rainbowerr.InvalidData("cfg codec: sentence did not match grammar")
		}

		for _, v := range c.grammar.order {
			n := len(c.grammar.productions[v])
			if n <= 1 {
				continue
			}
			w := bitsFor(n)
			if w == 0 {
				continue
			}
			idx := choices[v]
			for bitPos := w - 1; bitPos >= 0; bitPos-- {
				recovered = append(recovered, (idx>>uint(bitPos))&1 == 1)
			}
		}

		if length > len(remaining) {
			return nil, rainbowerr.InvalidData("cfg codec: matched length exceeds remaining text")
		}
		remaining = remaining[length:]
	}

	data := bytesFromBits(recovered)
	headerSize := c.headerSize()
	if len(data) < headerSize {
		return nil, rainbowerr.InvalidData("cfg codec: decoded stream shorter than header")
	}
	payloadLen := binary.BigEndian.Uint32(data[:4])
	if len(data) < headerSize+int(payloadLen) {
		return nil, rainbowerr.InvalidData("cfg codec: decoded stream shorter than declared length")
	}
	return data[headerSize : headerSize+int(payloadLen)], nil
}
