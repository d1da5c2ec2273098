// Package header turns raw, messy column labels into unique identifier-safe
// names.
package header

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Blank is the name given to labels with nothing usable left in them.
// Every Blank name is disambiguated, even when it occurs once.
const Blank = "X"

const suffixSep = "___"

type token struct {
	re    *regexp.Regexp
	value string
}

func newToken(symbol, value string) token {
	return token{re: regexp.MustCompile(`\s*` + regexp.QuoteMeta(symbol) + `\s*`), value: value}
}

var (
	semanticTokens = []token{
		newToken("#", "_NUMBER_"),
		newToken("%", "_PERCENT_"),
		newToken("&", "_AND_"),
		newToken("$", "_USD_"),
		newToken("£", "_GBP_"),
		newToken("€", "_EUR_"),
	}
	reInvalid     = regexp.MustCompile(`[^A-Z0-9_]+`)
	reUnderscores = regexp.MustCompile(`_{3,}`)
	reBlank       = regexp.MustCompile(`^X?[0-9_]*$`)
)

// Repair normalizes names into upper-case [A-Z0-9_] identifiers and makes
// them unique.
//
// Every occurrence of a duplicated name gets a "___<position>" suffix,
// including the first one, where position is the 1-based index in names.
// Names that end up empty, numeric, or shaped like "X12_" become Blank and
// are suffixed the same way.
func Repair(names []string) []string {
	out := make([]string, len(names))
	counts := make(map[string]int, len(names))
	caser := cases.Upper(language.Und)
	for i, name := range names {
		n := normalize(caser, name)
		out[i] = n
		counts[n]++
	}
	for i, n := range out {
		if n == Blank || counts[n] > 1 {
			out[i] = n + suffixSep + strconv.Itoa(i+1)
		}
	}
	return out
}

func normalize(caser cases.Caser, name string) string {
	s := strings.TrimSpace(caser.String(name))
	for _, t := range semanticTokens {
		s = t.re.ReplaceAllString(s, t.value)
	}
	s = reInvalid.ReplaceAllString(s, ".")
	s = strings.Trim(s, ".")
	s = strings.ReplaceAll(s, ".", "_")
	s = reUnderscores.ReplaceAllString(s, "__")
	if reBlank.MatchString(s) {
		return Blank
	}
	return s
}

// Pair links a raw label to its repaired name.
type Pair struct {
	Original string
	Repaired string
}

// Pairs repairs names and returns them next to their originals, in order.
func Pairs(names []string) []Pair {
	repaired := Repair(names)
	out := make([]Pair, 0, len(names))
	for i, name := range names {
		out = append(out, Pair{Original: name, Repaired: repaired[i]})
	}
	return out
}
