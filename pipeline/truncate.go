package pipeline

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// maxRecordPrompt bounds the prompt column on generation records.
const maxRecordPrompt = 500

// tokenizer is built once from the embedded English training data. Audit
// trimming only needs boundary detection, not linguistic fidelity, so one
// model serves every prompt language.
var tokenizer = sync.OnceValue(func() *sentences.DefaultSentenceTokenizer {
	t, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil
	}
	return t
})

// TruncatePrompt cuts a prompt down to at most limit runes, preferring a
// sentence boundary. When even the first sentence is too long the cut is a
// plain rune slice.
func TruncatePrompt(prompt string, limit int) string {
	prompt = strings.TrimSpace(prompt)
	if limit <= 0 || utf8.RuneCountInString(prompt) <= limit {
		return prompt
	}

	if t := tokenizer(); t != nil {
		var (
			b     strings.Builder
			count int
		)
		for _, s := range t.Tokenize(prompt) {
			text := strings.TrimSpace(s.Text)
			if text == "" {
				continue
			}
			n := utf8.RuneCountInString(text)
			if count > 0 {
				n++ // joining space
			}
			if count+n > limit {
				break
			}
			if count > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(text)
			count += n
		}
		if count > 0 {
			return b.String()
		}
	}
	return string([]rune(prompt)[:limit])
}
