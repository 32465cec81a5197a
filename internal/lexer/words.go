package lexer

import (
	"strconv"
	"strings"
)

// word is one whitespace-delimited unit of a source line, already
// classified as quoted text, a number, a comma, or a plain word. Start
// and End are rune offsets into the original line text spanning exactly
// this word (quotes included for a quoted word) — kept so poetic-literal
// capture can slice the line's raw text directly instead of rejoining
// already-classified words.
type word struct {
	Text     string
	Quoted   bool
	IsComma  bool
	IsNumber bool
	Number   float64
	Start    int
	End      int
}

// isPlainWord reports whether w can participate in keyword/variable
// matching (not a quoted string, comma, or number).
func (w word) isPlainWord() bool {
	return !w.Quoted && !w.IsComma && !w.IsNumber && w.Text != ""
}

// scanWords splits a source line into words, keeping quoted strings
// intact, commas as their own units, and numbers pre-parsed. Trailing
// sentence punctuation (. ! ? : ;) is dropped; apostrophes and hyphens
// inside a word (ain't, ice-cold) are kept.
func scanWords(lineNo int, text string) ([]word, error) {
	var words []word
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		r := runes[i]

		switch {
		case r == ' ' || r == '\t':
			i++
		case r == ',':
			words = append(words, word{IsComma: true, Start: i, End: i + 1})
			i++
		case r == '"':
			j := i + 1
			for j < len(runes) && runes[j] != '"' {
				j++
			}
			if j >= len(runes) {
				return nil, &LexError{Line: lineNo, Snippet: string(runes[i:])}
			}
			words = append(words, word{Text: string(runes[i+1 : j]), Quoted: true, Start: i, End: j + 1})
			i = j + 1
		case r == '.' && isIsolatedDot(runes, i):
			words = append(words, word{Text: ".", Start: i, End: i + 1})
			i++
		case r == '.' || r == '!' || r == '?' || r == ':' || r == ';':
			i++
		case isDigit(r) || (r == '-' && i+1 < len(runes) && isDigit(runes[i+1])):
			j := i + 1
			for j < len(runes) && (isDigit(runes[j]) || runes[j] == '.') {
				j++
			}
			text := string(runes[i:j])
			n, err := parseNumber(text)
			if err != nil {
				return nil, &LexError{Line: lineNo, Snippet: text}
			}
			words = append(words, word{Text: text, IsNumber: true, Number: n, Start: i, End: j})
			i = j
		case isWordRune(r):
			j := i + 1
			for j < len(runes) && isWordRune(runes[j]) {
				j++
			}
			words = append(words, word{Text: string(runes[i:j]), Start: i, End: j})
			i = j
		default:
			return nil, &LexError{Line: lineNo, Snippet: string(r)}
		}
	}

	return words, nil
}

// isIsolatedDot reports whether the '.' at runes[i] stands alone as its
// own whitespace-delimited token — the poetic-number fractional-part
// marker — rather than trailing sentence punctuation glued to a word.
func isIsolatedDot(runes []rune, i int) bool {
	before := i == 0 || runes[i-1] == ' ' || runes[i-1] == '\t'
	after := i+1 >= len(runes) || runes[i+1] == ' ' || runes[i+1] == '\t'
	return before && after
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '\'' || r == '-'
}

func isPlainNumberLiteral(s string) bool {
	if s == "" {
		return false
	}
	_, err := parseNumber(s)
	return err == nil
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// Pronouns spec.md section 3.
var pronouns = map[string]bool{
	"it": true, "he": true, "she": true, "him": true, "her": true,
	"they": true, "them": true, "ze": true, "hir": true, "zie": true,
	"zir": true, "xe": true, "xem": true, "ve": true, "ver": true,
}

func isPronoun(s string) bool { return pronouns[strings.ToLower(s)] }

// Articles that introduce a common variable, dropped from the canonical
// name (spec.md section 3).
var articles = map[string]bool{
	"a": true, "an": true, "the": true, "my": true, "your": true,
}

func isArticle(s string) bool { return articles[strings.ToLower(s)] }

var trueWords = map[string]bool{"true": true, "right": true, "yes": true, "ok": true}
var falseWords = map[string]bool{"false": true, "wrong": true, "no": true, "lies": true}
var nullWords = map[string]bool{"null": true, "nothing": true, "nowhere": true, "nobody": true, "gone": true}
var mysteriousWords = map[string]bool{"mysterious": true}

// sayWords are the output-statement aliases (Say/Shout/Scream/Whisper).
var sayWords = map[string]bool{"say": true, "shout": true, "scream": true, "whisper": true}

// saysWords trigger poetic-string assignment (X says ...).
var saysWords = map[string]bool{"says": true, "said": true}

var singleKeywords = map[string]TokenType{
	"is": IS, "was": IS, "were": IS,
	"ain't": AINT, "isn't": AINT,
	"put": PUT, "into": INTO, "let": LET, "be": BE,
	"if": IF, "else": ELSE, "while": WHILE, "until": UNTIL,
	"build": BUILD, "up": UP, "knock": KNOCK, "down": DOWN,
	"continue": CONTINUE, "break": BREAK,
	"takes": TAKES, "taking": TAKING, "return": RETURN,
	"listen": LISTEN,
	"and":    AND, "or": OR, "nor": NOR, "not": NOT,
	"plus": ADD, "with": ADD,
	"minus": SUBTRACT, "without": SUBTRACT,
	"times": TIMES, "over": DIVIDE,
	"true": TRUE, "right": TRUE, "yes": TRUE, "ok": TRUE,
	"false": FALSE, "wrong": FALSE, "no": FALSE, "lies": FALSE,
	"null": NULLTOK, "nothing": NULLTOK, "nowhere": NULLTOK, "nobody": NULLTOK, "gone": NULLTOK,
	"mysterious": MYSTERIOUS,
}

func init() {
	for w := range sayWords {
		singleKeywords[w] = SAY
	}
	for w := range saysWords {
		singleKeywords[w] = SAYS
	}
}

// multiWordKeyword is one alias phrase, longest first so matchKeywordPhrase
// can try greedily.
type multiWordKeyword struct {
	words []string
	token TokenType
}

var multiWordKeywords = []multiWordKeyword{
	{[]string{"take", "it", "to", "the", "top"}, CONTINUE},
	{[]string{"break", "it", "down"}, BREAK},
	{[]string{"give", "back"}, RETURN},
	{[]string{"listen", "to"}, LISTEN},
	{[]string{"as", "great", "as"}, GTE},
	{[]string{"as", "high", "as"}, GTE},
	{[]string{"as", "big", "as"}, GTE},
	{[]string{"as", "strong", "as"}, GTE},
	{[]string{"as", "little", "as"}, LTE},
	{[]string{"as", "low", "as"}, LTE},
	{[]string{"as", "small", "as"}, LTE},
	{[]string{"as", "weak", "as"}, LTE},
	{[]string{"greater", "than"}, GT},
	{[]string{"bigger", "than"}, GT},
	{[]string{"stronger", "than"}, GT},
	{[]string{"higher", "than"}, GT},
	{[]string{"less", "than"}, LT},
	{[]string{"smaller", "than"}, LT},
	{[]string{"weaker", "than"}, LT},
	{[]string{"lower", "than"}, LT},
	{[]string{"divided", "by"}, DIVIDE},
	{[]string{"multiplied", "by"}, TIMES},
}

// matchKeywordPhrase tries to match, greedily longest-phrase-first, a
// keyword starting at words[i]. Returns the matched token type and the
// number of words consumed.
func matchKeywordPhrase(words []word, i int) (TokenType, int, bool) {
	for _, mk := range multiWordKeywords {
		if matchesPhrase(words, i, mk.words) {
			return mk.token, len(mk.words), true
		}
	}

	if !words[i].isPlainWord() {
		return 0, 0, false
	}
	if tt, ok := singleKeywords[strings.ToLower(words[i].Text)]; ok {
		return tt, 1, true
	}

	return 0, 0, false
}

func matchesPhrase(words []word, i int, phrase []string) bool {
	if i+len(phrase) > len(words) {
		return false
	}
	for k, p := range phrase {
		w := words[i+k]
		if !w.isPlainWord() || !strings.EqualFold(w.Text, p) {
			return false
		}
	}
	return true
}
