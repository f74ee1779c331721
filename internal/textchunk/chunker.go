// Package textchunk splits plain transcript text into pieces small enough
// for a single text-generation call.
package textchunk

import (
	"strings"
	"unicode"
)

// Config defines splitting parameters.
type Config struct {
	// Threshold: only split if content exceeds this length
	Threshold int
	// TargetSize: ideal chunk size
	TargetSize int
	// MaxSize: maximum chunk size (larger paragraphs split at sentences)
	MaxSize int
}

// DefaultConfig returns defaults sized for lecture transcripts.
func DefaultConfig() Config {
	return Config{
		Threshold:  12000,
		TargetSize: 8000,
		MaxSize:    10000,
	}
}

// ShouldSplit returns true if content should be split before summarization.
func ShouldSplit(content string, config Config) bool {
	return len(content) > config.Threshold
}

// Split breaks content into chunks at paragraph boundaries, falling back to
// sentence boundaries for oversized paragraphs. Content below the threshold
// comes back as a single chunk.
func Split(content string, config Config) []string {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	if !ShouldSplit(content, config) {
		return []string{content}
	}

	paragraphs := strings.Split(content, "\n\n")

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}

	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if current.Len()+len(para) > config.MaxSize && current.Len() > 0 {
			flush()
		}

		// A single paragraph beyond the limit is split at sentences.
		if len(para) > config.MaxSize {
			flush()
			chunks = append(chunks, splitBySentences(para, config)...)
			continue
		}

		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}

	flush()
	return chunks
}

// splitBySentences packs sentences into chunks up to the target size.
func splitBySentences(text string, config Config) []string {
	sentences := splitSentences(text)

	var chunks []string
	var current strings.Builder

	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		if current.Len()+len(sentence) > config.TargetSize && current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}

		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)
	}

	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}

	return chunks
}

// splitSentences splits text at sentence-ending punctuation.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			// Only break before a space or at the end of the text.
			if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
				// Skip likely abbreviations like "Dr."
				if i > 1 && unicode.IsUpper(runes[i-1]) {
					continue
				}
				sentences = append(sentences, current.String())
				current.Reset()
			}
		}
	}

	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}

	return sentences
}
