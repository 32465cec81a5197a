package lexer

import (
	"strconv"
	"strings"
)

// PoeticNumberValue decodes a poetic number literal (spec.md section 4.1):
// each whitespace-separated word contributes one digit, equal to its
// letter count modulo 10 (non-letter characters such as hyphens and
// apostrophes are dropped, so a hyphenated token still counts as one
// word); a lone "." word introduces the fractional part.
//
// Example: "ice-cold and fiery" -> words "ice-cold"(7 letters), "and"(3),
// "fiery"(5) -> digits 7, 3, 5 -> 735.
func PoeticNumberValue(text string) (float64, error) {
	words := strings.Fields(text)

	var intDigits, fracDigits []byte
	target := &intDigits
	seenDot := false

	for _, w := range words {
		if w == "." {
			if !seenDot {
				target = &fracDigits
				seenDot = true
			}
			continue
		}
		digit := letterCount(w) % 10
		*target = append(*target, byte('0'+digit))
	}

	if len(intDigits) == 0 {
		intDigits = []byte("0")
	}

	repr := string(intDigits)
	if len(fracDigits) > 0 {
		repr += "." + string(fracDigits)
	}

	return strconv.ParseFloat(repr, 64)
}

func letterCount(word string) int {
	n := 0
	for _, r := range word {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			n++
		}
	}
	return n
}
