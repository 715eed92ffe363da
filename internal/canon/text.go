package canon

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var rePunct = regexp.MustCompile(`[^\p{L}\p{N}\s@]`)

// Fold lowercases s, strips diacritics and collapses whitespace, so that
// "Notre Équipe" and "notre  equipe" compare equal.
func Fold(s string) string {
	// transformers carry state, build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return CollapseSpaces(strings.ToLower(out))
}

// FoldWords is Fold with punctuation replaced by spaces.
func FoldWords(s string) string {
	return CollapseSpaces(rePunct.ReplaceAllString(Fold(s), " "))
}

// ContainsAny reports whether the folded text contains one of the folded needles.
func ContainsAny(text string, needles ...string) bool {
	f := Fold(text)
	for _, n := range needles {
		if n == "" {
			continue
		}
		if strings.Contains(f, Fold(n)) {
			return true
		}
	}
	return false
}

// CountDistinct returns how many of the needles appear in the folded text.
func CountDistinct(text string, needles []string) int {
	f := Fold(text)
	n := 0
	for _, k := range needles {
		if k != "" && strings.Contains(f, Fold(k)) {
			n++
		}
	}
	return n
}

func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Digits keeps only the ASCII digits of s.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// GroupThousands formats n with a space every three digits: 1250000 -> "1 250 000".
func GroupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, " ")
	if neg {
		return "-" + out
	}
	return out
}
