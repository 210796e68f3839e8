// Package splitter implements recursive character splitting of document text
// into overlapping, bounded chunks for embedding.
package splitter

import "strings"

// DefaultSeparators is the prioritized separator list tuned for scientific
// and technical documents: markdown headings, paragraphs, bullets, sentence
// boundaries, lines, words, and a character-level fallback.
var DefaultSeparators = []string{
	"\n\n## ",
	"\n\n",
	"\n• ",
	". ",
	"\n",
	" ",
	"",
}

// Config controls how text is split. The zero value is not usable; call
// DefaultConfig and override fields as needed.
type Config struct {
	// ChunkSize is the maximum chunk length in bytes.
	ChunkSize int
	// Overlap is the number of bytes of trailing context carried into the
	// next chunk.
	Overlap int
	// Separators is the ordered list of split points, tried first to last.
	// An empty string means character-level splitting.
	Separators []string
	// KeepSeparator retains the matched separator at the start of the piece
	// that follows it, so structural markers stay visible downstream.
	KeepSeparator bool
}

// DefaultConfig returns the splitting configuration used for ingested
// documents: 1000-byte chunks with 200 bytes of overlap.
func DefaultConfig() Config {
	return Config{
		ChunkSize:     1000,
		Overlap:       200,
		Separators:    DefaultSeparators,
		KeepSeparator: true,
	}
}

// Split recursively splits text along the first applicable separator so that
// no chunk exceeds ChunkSize, merging adjacent pieces with Overlap bytes of
// carried context. Chunks that are empty after trimming are dropped. The
// result is deterministic: identical input and configuration always yield an
// identical chunk sequence.
func (c Config) Split(text string) []string {
	var out []string
	for _, chunk := range c.split(text, c.Separators) {
		if strings.TrimSpace(chunk) != "" {
			out = append(out, chunk)
		}
	}
	return out
}

func (c Config) split(text string, separators []string) []string {
	separator := ""
	var remaining []string
	for i, s := range separators {
		if s == "" {
			separator = s
			break
		}
		if strings.Contains(text, s) {
			separator = s
			remaining = separators[i+1:]
			break
		}
	}

	splits := c.splitOnSeparator(text, separator)

	// Separator retained in output means pieces are merged by plain
	// concatenation; otherwise the separator is re-inserted between them.
	mergeSep := separator
	if c.KeepSeparator {
		mergeSep = ""
	}

	var chunks []string
	var good []string
	for _, s := range splits {
		if len(s) < c.ChunkSize {
			good = append(good, s)
			continue
		}
		if len(good) > 0 {
			chunks = append(chunks, c.merge(good, mergeSep)...)
			good = nil
		}
		if len(remaining) == 0 {
			chunks = append(chunks, s)
		} else {
			chunks = append(chunks, c.split(s, remaining)...)
		}
	}
	if len(good) > 0 {
		chunks = append(chunks, c.merge(good, mergeSep)...)
	}
	return chunks
}

// splitOnSeparator splits text on separator. With KeepSeparator the separator
// is attached to the front of the piece that follows it. An empty separator
// splits into individual characters, which merge reassembles into
// ChunkSize-bounded chunks.
func (c Config) splitOnSeparator(text, separator string) []string {
	var pieces []string
	switch {
	case separator == "":
		for _, r := range text {
			pieces = append(pieces, string(r))
		}
	case c.KeepSeparator:
		parts := strings.Split(text, separator)
		for i, p := range parts {
			if i > 0 {
				p = separator + p
			}
			pieces = append(pieces, p)
		}
	default:
		pieces = strings.Split(text, separator)
	}

	nonEmpty := pieces[:0]
	for _, p := range pieces {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return nonEmpty
}

// merge greedily packs consecutive splits into chunks of at most ChunkSize
// bytes. When a chunk is emitted, leading splits are dropped until the
// retained tail fits within Overlap, so the next chunk starts with the end
// of the previous one.
func (c Config) merge(splits []string, separator string) []string {
	sepLen := len(separator)

	var chunks []string
	var current []string
	total := 0

	for _, s := range splits {
		l := len(s)
		extra := 0
		if len(current) > 0 {
			extra = sepLen
		}
		if total+l+extra > c.ChunkSize && len(current) > 0 {
			if doc := strings.TrimSpace(strings.Join(current, separator)); doc != "" {
				chunks = append(chunks, doc)
			}
			// Slide the window forward until the carried tail is within
			// the overlap budget and the new split fits.
			for len(current) > 0 && (total > c.Overlap || total+l+extra > c.ChunkSize) {
				total -= len(current[0])
				if len(current) > 1 {
					total -= sepLen
				}
				current = current[1:]
			}
		}
		current = append(current, s)
		total += l
		if len(current) > 1 {
			total += sepLen
		}
	}

	if doc := strings.TrimSpace(strings.Join(current, separator)); doc != "" {
		chunks = append(chunks, doc)
	}
	return chunks
}
