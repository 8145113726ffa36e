package pipeline

import (
	"unicode"

	"golang.org/x/text/language"
)

// DetectLanguage guesses the prompt language from its script mix. Kana
// settles Japanese against Chinese, otherwise the first script present in
// priority order wins and an unscripted prompt reads as English. The tag
// rides along to the models and onto the generation record, nothing here
// needs to be smarter than that.
func DetectLanguage(prompt string) language.Tag {
	var kana, han, hangul, arabic, hebrew, cyrillic int
	for _, r := range prompt {
		switch {
		case unicode.In(r, unicode.Hiragana, unicode.Katakana):
			kana++
		case unicode.Is(unicode.Han, r):
			han++
		case unicode.Is(unicode.Hangul, r):
			hangul++
		case unicode.Is(unicode.Arabic, r):
			arabic++
		case unicode.Is(unicode.Hebrew, r):
			hebrew++
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		}
	}
	switch {
	case kana > 0:
		return language.Japanese
	case han > 0:
		return language.Chinese
	case hangul > 0:
		return language.Korean
	case arabic > 0:
		return language.Arabic
	case hebrew > 0:
		return language.Hebrew
	case cyrillic > 0:
		return language.Russian
	}
	return language.English
}
