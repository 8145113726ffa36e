package css

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"infogen/common"
)

// Parser scans CSS stylesheets for brand signals.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse tokenizes CSS text and collects every color and font family the
// sheet declares, in the order they first appear. Rulesets nested in @media
// and @font-face blocks surface their declarations like any other, so no
// block handling is needed; @import targets are not fetched.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Signals {
	sig := &Signals{}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Scanning CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	data = p.decode(data)

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	for {
		gt, _, name := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(parser.Err()))
			}
			return sig

		case css.DeclarationGrammar:
			p.scanDeclaration(sig, strings.ToLower(string(name)), parser.Values())

		case css.CustomPropertyGrammar:
			// Corporate sheets keep their palette in custom properties.
			// The parser hands the value over as one opaque token, so it
			// goes through the lexer once more.
			p.scanCustomProperty(sig, parser.Values())
		}
	}
}

// decode converts the sheet to UTF-8. CSS names its own encoding through a
// BOM or an @charset rule at the very start; anything unrecognized is
// passed through unchanged.
func (p *Parser) decode(data []byte) []byte {
	var label string
	switch {
	case bytes.HasPrefix(data, []byte{0xef, 0xbb, 0xbf}):
		return data[3:]
	case bytes.HasPrefix(data, []byte{0xfe, 0xff}):
		label, data = "utf-16be", data[2:]
	case bytes.HasPrefix(data, []byte{0xff, 0xfe}):
		label, data = "utf-16le", data[2:]
	case bytes.HasPrefix(data, []byte(`@charset "`)):
		rest := data[len(`@charset "`):]
		if end := bytes.IndexByte(rest, '"'); end >= 0 {
			label = string(rest[:end])
		}
	}
	if label == "" || strings.EqualFold(label, "utf-8") {
		return data
	}
	r, err := charset.NewReaderLabel(label, bytes.NewReader(data))
	if err != nil {
		p.log.Debug("Unknown stylesheet charset, assuming UTF-8", zap.String("charset", label))
		return data
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		p.log.Debug("Unable to decode stylesheet, assuming UTF-8", zap.String("charset", label), zap.Error(err))
		return data
	}
	return decoded
}

// scanDeclaration pulls brand signals out of a single property declaration.
// Only the longhand font-family is read for families; the font shorthand
// mixes sizes and styles into the same token stream and is not worth the
// ambiguity.
func (p *Parser) scanDeclaration(sig *Signals, prop string, values []css.Token) {
	if prop == "font-family" {
		sig.addFamilies(parseFamilies(values))
		return
	}
	scanColorTokens(sig, values)
}

// scanCustomProperty re-tokenizes a custom property value and scans it for
// colors.
func (p *Parser) scanCustomProperty(sig *Signals, values []css.Token) {
	var raw bytes.Buffer
	for _, v := range values {
		raw.Write(v.Data)
	}
	lex := css.NewLexer(parse.NewInput(bytes.NewReader(raw.Bytes())))
	var tokens []css.Token
	for {
		tt, data := lex.Next()
		if tt == css.ErrorToken {
			break
		}
		tokens = append(tokens, css.Token{TokenType: tt, Data: data})
	}
	scanColorTokens(sig, tokens)
}

// scanColorTokens walks value tokens collecting hex colors and rgb()
// functions. Named colors are deliberately not resolved, a sheet that says
// "white" is not expressing brand identity.
func scanColorTokens(sig *Signals, tokens []css.Token) {
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch t.TokenType {
		case css.HashToken:
			if hex, err := common.NormalizeHexColor(string(t.Data)); err == nil {
				sig.addColor(hex)
			}
		case css.FunctionToken:
			name := strings.ToLower(strings.TrimSuffix(string(t.Data), "("))
			if name != "rgb" && name != "rgba" {
				continue
			}
			args, next := functionArgs(tokens, i+1)
			i = next
			if hex, ok := rgbHex(args); ok {
				sig.addColor(hex)
			}
		}
	}
}

// functionArgs collects tokens up to the parenthesis matching an already
// consumed opener, starting at index i. It returns the argument tokens and
// the index of the closing parenthesis (or of the last token when the value
// is truncated).
func functionArgs(tokens []css.Token, i int) ([]css.Token, int) {
	depth := 1
	var args []css.Token
	for ; i < len(tokens); i++ {
		switch tokens[i].TokenType {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth == 0 {
				return args, i
			}
		}
		args = append(args, tokens[i])
	}
	return args, len(tokens) - 1
}

// rgbHex folds the numeric arguments of an rgb() or rgba() call into hex.
// Both the comma and the space separated forms appear in the wild;
// percentages map onto 0-255. The alpha channel, when present, is ignored.
func rgbHex(args []css.Token) (string, bool) {
	var ch []int
	for _, a := range args {
		switch a.TokenType {
		case css.NumberToken:
			v, err := strconv.ParseFloat(string(a.Data), 64)
			if err != nil {
				return "", false
			}
			ch = append(ch, clampChannel(v))
		case css.PercentageToken:
			v, err := strconv.ParseFloat(strings.TrimSuffix(string(a.Data), "%"), 64)
			if err != nil {
				return "", false
			}
			ch = append(ch, clampChannel(v*255/100))
		}
		if len(ch) == 3 {
			return fmt.Sprintf("%02x%02x%02x", ch[0], ch[1], ch[2]), true
		}
	}
	return "", false
}

func clampChannel(v float64) int {
	return int(math.Min(255, math.Max(0, math.Round(v))))
}

// parseFamilies splits a font-family value on commas. Unquoted multi word
// names arrive as separate ident tokens and are joined back with single
// spaces; generic fallbacks are dropped.
func parseFamilies(values []css.Token) []string {
	var families []string
	var words []string
	flush := func() {
		name := strings.Join(words, " ")
		words = words[:0]
		if name != "" && !genericFamilies[strings.ToLower(name)] {
			families = append(families, name)
		}
	}
	for _, v := range values {
		switch v.TokenType {
		case css.IdentToken:
			words = append(words, string(v.Data))
		case css.StringToken:
			words = append(words, unquote(string(v.Data)))
		case css.CommaToken:
			flush()
		}
	}
	flush()
	return families
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
