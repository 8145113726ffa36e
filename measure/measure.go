// Package measure pre-computes text dimensions so every shape is sized
// before anything is written to an output file. Renderers disable auto-fit
// and trust these numbers.
//
// Widths come from per-family metric tables (average advance per character
// class in em fractions), not from rasterization. The tables are calibrated
// against the corporate deck fonts; families the registry does not know
// degrade to the universal fallback entry.
package measure

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"

	"infogen/canvas"
)

// MeasuredText is the outcome of fitting a string into a width constraint.
type MeasuredText struct {
	Text   string   `json:"text"`
	Lines  []string `json:"lines"`
	SizePt int      `json:"size_pt"`
	Height float64  `json:"height"`
	Fits   bool     `json:"fits"`
}

// lineSpacing is the multiplier applied to every line after the first.
const lineSpacing = 1.3

// breathingRoom is added to measured heights so text never sits flush
// against the shape border.
const breathingRoom = 0.1

type charClass int

const (
	classLower charClass = iota
	classUpper
	classDigit
	classSpace
	classPunct
	classWide
)

type scriptSet uint8

const (
	scriptLatin scriptSet = 1 << iota
	scriptCJK
	scriptArabic
	scriptHebrew

	scriptAll = scriptLatin | scriptCJK | scriptArabic | scriptHebrew
)

// metrics holds average glyph advances per character class as fractions of
// an em, the ink height of a line, the width penalty for bold and the
// scripts the family has glyphs for.
type metrics struct {
	upper, lower, digit, space, punct, wide float64

	height  float64
	bold    float64
	scripts scriptSet
}

func (m metrics) advance(c charClass) float64 {
	switch c {
	case classUpper:
		return m.upper
	case classDigit:
		return m.digit
	case classSpace:
		return m.space
	case classPunct:
		return m.punct
	case classWide:
		return m.wide
	default:
		return m.lower
	}
}

var fontTable = map[string]metrics{
	"Calibri":          {upper: 0.589, lower: 0.452, digit: 0.507, space: 0.226, punct: 0.268, wide: 1, height: 0.75, bold: 1.06, scripts: scriptLatin},
	"Arial":            {upper: 0.677, lower: 0.528, digit: 0.556, space: 0.278, punct: 0.333, wide: 1, height: 0.73, bold: 1.07, scripts: scriptLatin},
	"Segoe UI":         {upper: 0.634, lower: 0.503, digit: 0.546, space: 0.274, punct: 0.301, wide: 1, height: 0.74, bold: 1.06, scripts: scriptLatin},
	"Noto Sans CJK SC": {upper: 0.66, lower: 0.53, digit: 0.55, space: 0.26, punct: 0.3, wide: 1, height: 0.78, bold: 1.05, scripts: scriptLatin | scriptCJK},
	"Noto Sans Arabic": {upper: 0.64, lower: 0.5, digit: 0.55, space: 0.26, punct: 0.3, wide: 1, height: 0.77, bold: 1.05, scripts: scriptLatin | scriptArabic},
	"Noto Sans Hebrew": {upper: 0.64, lower: 0.5, digit: 0.55, space: 0.26, punct: 0.3, wide: 1, height: 0.75, bold: 1.05, scripts: scriptLatin | scriptHebrew},
	"DejaVu Sans":      {upper: 0.684, lower: 0.555, digit: 0.636, space: 0.318, punct: 0.337, wide: 1, height: 0.76, bold: 1.08, scripts: scriptAll},
}

// unknownFamily is used for families absent from the table. Latin coverage
// only, so non-Latin runes fall through the chain.
var unknownFamily = metrics{upper: 0.62, lower: 0.49, digit: 0.53, space: 0.25, punct: 0.29, wide: 1, height: 0.75, bold: 1.06, scripts: scriptLatin}

// DefaultFallbackChain is consulted when a family lacks glyphs for a code
// point: Latin default, then CJK, Arabic, Hebrew, then the universal family.
func DefaultFallbackChain() []string {
	return []string{
		canvas.DefaultFontFamily,
		"Noto Sans CJK SC",
		"Noto Sans Arabic",
		"Noto Sans Hebrew",
		canvas.FallbackFontFamily,
	}
}

// Measurer resolves families against a fallback chain. It is immutable after
// construction and safe for concurrent use.
type Measurer struct {
	chain []string
}

// New builds a measurer. An empty chain selects the default one; a brand
// font is simply prepended by the caller.
func New(chain ...string) *Measurer {
	if len(chain) == 0 {
		chain = DefaultFallbackChain()
	}
	return &Measurer{chain: chain}
}

func metricsFor(family string) metrics {
	if m, ok := fontTable[family]; ok {
		return m
	}
	return unknownFamily
}

func scriptOf(r rune) scriptSet {
	switch {
	case unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Hangul, r):
		return scriptCJK
	case unicode.Is(unicode.Arabic, r):
		return scriptArabic
	case unicode.Is(unicode.Hebrew, r):
		return scriptHebrew
	default:
		return scriptLatin
	}
}

func classOf(r rune) charClass {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return classWide
	}
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case unicode.IsDigit(r):
		return classDigit
	case unicode.IsUpper(r):
		return classUpper
	case unicode.IsLetter(r):
		return classLower
	default:
		return classPunct
	}
}

// resolve picks the family handling the rune: the requested one when it has
// coverage, otherwise the first chain entry that does. The last chain entry
// is terminal regardless of coverage.
func (m *Measurer) resolve(family string, r rune) metrics {
	s := scriptOf(r)
	if fm := metricsFor(family); fm.scripts&s != 0 {
		return fm
	}
	for i, name := range m.chain {
		fm := metricsFor(name)
		if fm.scripts&s != 0 || i == len(m.chain)-1 {
			return fm
		}
	}
	return metricsFor(canvas.FallbackFontFamily)
}

// Measure returns the dimensions of a single line of text in inches.
func (m *Measurer) Measure(text, family string, sizePt int, bold bool) (w, h float64) {
	if text == "" {
		return 0, 0
	}
	var em, height float64
	var wide, total int
	for _, r := range text {
		fm := m.resolve(family, r)
		adv := fm.advance(classOf(r))
		if bold {
			adv *= fm.bold
		}
		em += adv
		if fm.height > height {
			height = fm.height
		}
		if scriptOf(r) == scriptCJK {
			wide++
		}
		total++
	}
	scale := float64(sizePt) / 72
	w = em * scale
	if total > 0 && wide > 0 {
		w *= 1 + 0.8*float64(wide)/float64(total)
	}
	return w, height * scale
}

// MeasureLines returns the widest line and the stacked height of wrapped
// text: first line full height, every following line at lineSpacing.
func (m *Measurer) MeasureLines(lines []string, family string, sizePt int, bold bool) (maxW, totalH float64) {
	for i, line := range lines {
		w, h := m.Measure(line, family, sizePt, bold)
		if w > maxW {
			maxW = w
		}
		if i == 0 {
			totalH = h
		} else {
			totalH += h * lineSpacing
		}
	}
	return maxW, totalH
}

// Fit finds the largest size in [minPt, maxPt] at which text fits maxWidth,
// wrapping onto up to three lines. It never fails: when nothing fits at
// minPt it truncates to a single 30 character line and reports Fits=false.
func (m *Measurer) Fit(text string, maxWidth float64, family string, minPt, maxPt int, bold bool) MeasuredText {
	return m.FitLines(text, maxWidth, family, minPt, maxPt, bold, 3)
}

// FitLines is Fit with an explicit line cap; titles allow two lines only.
func (m *Measurer) FitLines(text string, maxWidth float64, family string, minPt, maxPt int, bold bool, maxLines int) MeasuredText {
	available := maxWidth - 2*canvas.TextPaddingH

	if strings.TrimSpace(text) == "" {
		return MeasuredText{Text: text, Lines: []string{""}, SizePt: maxPt, Height: breathingRoom, Fits: true}
	}
	text = strings.TrimSpace(text)

	for size := maxPt; size >= minPt; size-- {
		w, h := m.Measure(text, family, size, bold)
		if w <= available {
			return MeasuredText{Text: text, Lines: []string{text}, SizePt: size, Height: h + breathingRoom, Fits: true}
		}
		if maxLines >= 2 {
			if mt, ok := m.wrap(text, available, family, size, bold, maxLines); ok {
				return mt
			}
		}
	}

	truncated := text
	if r := []rune(text); len(r) > 30 {
		truncated = string(r[:30]) + "..."
	}
	_, h := m.Measure(truncated, family, minPt, bold)
	return MeasuredText{Text: text, Lines: []string{truncated}, SizePt: minPt, Height: h + breathingRoom, Fits: false}
}

func (m *Measurer) wrap(text string, available float64, family string, size int, bold bool, maxLines int) (MeasuredText, bool) {
	words := strings.Fields(text)
	if len(words) < 2 {
		return MeasuredText{}, false
	}

	if mt, ok := m.split2(text, words, available, family, size, bold); ok {
		return mt, true
	}
	if maxLines >= 3 && len(words) >= 3 && size <= 14 {
		if mt, ok := m.split3(text, words, available, family, size, bold); ok {
			return mt, true
		}
	}
	return MeasuredText{}, false
}

func (m *Measurer) split2(text string, words []string, available float64, family string, size int, bold bool) (MeasuredText, bool) {
	for i := 1; i < len(words); i++ {
		line1 := strings.Join(words[:i], " ")
		line2 := strings.Join(words[i:], " ")
		w1, _ := m.Measure(line1, family, size, bold)
		w2, _ := m.Measure(line2, family, size, bold)
		if w1 <= available && w2 <= available {
			lines := []string{line1, line2}
			_, h := m.MeasureLines(lines, family, size, bold)
			return MeasuredText{Text: text, Lines: lines, SizePt: size, Height: h + breathingRoom, Fits: true}, true
		}
	}
	return MeasuredText{}, false
}

// split3 looks for an equal-thirds break, probing one word around each
// third boundary.
func (m *Measurer) split3(text string, words []string, available float64, family string, size int, bold bool) (MeasuredText, bool) {
	n := len(words)
	third := n / 3
	for i := max(1, third-1); i < min(n-1, third+2); i++ {
		for j := max(i+1, 2*third-1); j < min(n, 2*third+2); j++ {
			line1 := strings.Join(words[:i], " ")
			line2 := strings.Join(words[i:j], " ")
			line3 := strings.Join(words[j:], " ")
			w1, _ := m.Measure(line1, family, size, bold)
			w2, _ := m.Measure(line2, family, size, bold)
			w3, _ := m.Measure(line3, family, size, bold)
			if w1 <= available && w2 <= available && w3 <= available {
				lines := []string{line1, line2, line3}
				_, h := m.MeasureLines(lines, family, size, bold)
				return MeasuredText{Text: text, Lines: lines, SizePt: size, Height: h + breathingRoom, Fits: true}, true
			}
		}
	}
	return MeasuredText{}, false
}

// EstimateBlockHeight sizes a block for its label: fitted text height plus
// vertical padding, clamped to the block height bounds.
func (m *Measurer) EstimateBlockHeight(text string, blockWidth float64, family string, bold bool) float64 {
	mt := m.Fit(text, blockWidth, family, canvas.BlockMinFontSizePt, canvas.BlockMaxFontSizePt, bold)
	return canvas.Clamp(mt.Height+2*canvas.TextPaddingV, canvas.MinBlockHeight, canvas.MaxBlockHeight)
}
