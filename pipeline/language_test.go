package pipeline

import "testing"

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{name: "english", prompt: "Show our deployment process as a flow", want: "en"},
		{name: "empty_defaults_to_english", prompt: "", want: "en"},
		{name: "russian", prompt: "Покажи процесс развёртывания", want: "ru"},
		{name: "mixed_latin_cyrillic", prompt: "Show процесс as a диаграмма", want: "ru"},
		{name: "japanese_kana", prompt: "デプロイの流れを図にして", want: "ja"},
		{name: "chinese_han_only", prompt: "展示部署流程图", want: "zh"},
		// Japanese prose mixes kanji with kana, a single kana settles it.
		{name: "kana_beats_han", prompt: "展開の流れ", want: "ja"},
		{name: "korean", prompt: "배포 과정을 보여줘", want: "ko"},
		{name: "arabic", prompt: "اعرض عملية النشر", want: "ar"},
		{name: "hebrew", prompt: "הצג את תהליך הפריסה", want: "he"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectLanguage(tc.prompt).String(); got != tc.want {
				t.Errorf("DetectLanguage(%q) = %q, want %q", tc.prompt, got, tc.want)
			}
		})
	}
}
