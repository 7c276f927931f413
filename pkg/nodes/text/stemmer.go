// Package text provides the text processing demo nodes.
package text

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leapnodes/pkg/columnfilter"
	"github.com/leapstack-labs/leapnodes/pkg/core"
	"github.com/leapstack-labs/leapnodes/pkg/node"
)

// StemmerID is the registry ID of the Porter Stemmer node.
const StemmerID = "text-proc-table"

// OutputColumn is the name of the column appended by the stemmer.
const OutputColumn = "Stemmed"

var stringFilter = columnfilter.ForKind(columnfilter.KindString)

// StemmerParams are the parameters of the Porter Stemmer node.
type StemmerParams struct {
	// TargetColumn is the text column. Empty selects the last string column.
	TargetColumn string `mapstructure:"target_column"`
}

// Stemmer appends the capitalized Porter stem of each value.
type Stemmer struct {
	params StemmerParams
}

// NewStemmer creates a node with unset parameters.
func NewStemmer() core.Node {
	return &Stemmer{}
}

// Parameters implements core.Node.
func (n *Stemmer) Parameters() any {
	return &n.params
}

// Configure implements core.Node.
func (n *Stemmer) Configure(cc *core.ConfigurationContext, in *core.Schema) (*core.Schema, error) {
	target, err := columnfilter.ResolveColumn(in, "target_column", n.params.TargetColumn, stringFilter)
	if err != nil {
		return nil, err
	}
	cc.Logger.Debug("stemming column", slog.String("column", target))
	n.params.TargetColumn = target

	out, err := in.Append(core.NewColumn(core.TypeString, OutputColumn))
	if err != nil {
		return nil, &core.ConfigurationError{Reason: err.Error()}
	}
	return out, nil
}

// Execute implements core.Node.
func (n *Stemmer) Execute(ec *core.ExecutionContext, in *core.Table) (*core.Table, error) {
	target, err := columnfilter.ResolveColumn(in.Schema(), "target_column", n.params.TargetColumn, stringFilter)
	if err != nil {
		return nil, err
	}
	return node.MapColumn(ec, in, target, core.NewColumn(core.TypeString, OutputColumn),
		func(_ int, _ core.Row, cell any) (any, error) {
			s, ok := cell.(string)
			if !ok {
				return nil, nil
			}
			return Stem(s), nil
		})
}

var (
	lower = cases.Lower(language.Und)
	upper = cases.Upper(language.Und)
)

// irregularForms are stemmed by lookup instead of by rule.
var irregularForms = map[string]string{
	"skies":    "sky",
	"sky":      "sky",
	"dying":    "die",
	"lying":    "lie",
	"tying":    "tie",
	"news":     "news",
	"innings":  "inning",
	"inning":   "inning",
	"outings":  "outing",
	"outing":   "outing",
	"cannings": "canning",
	"canning":  "canning",
	"howe":     "howe",
	"proceed":  "proceed",
	"exceed":   "exceed",
	"succeed":  "succeed",
}

// Stem returns the Porter stem of word with the first letter upper-cased
// and the rest lower-cased, e.g. "running" becomes "Run".
func Stem(word string) string {
	if word == "" {
		return ""
	}
	stem := porterStem(lower.String(word))
	r, size := utf8.DecodeRuneInString(stem)
	if r == utf8.RuneError {
		return stem
	}
	return upper.String(string(r)) + stem[size:]
}

// porterStem applies the Porter algorithm with the common extensions:
// irregular forms, "ies"/"ied" on four-letter words, and a final y only
// becoming i after a consonant that is not the first letter.
func porterStem(word string) string {
	if s, ok := irregularForms[word]; ok {
		return s
	}
	w := []rune(word)
	if len(w) <= 2 {
		return word
	}
	if len(w) == 4 && (strings.HasSuffix(word, "ies") || strings.HasSuffix(word, "ied")) {
		return string(w[:2]) + "ie"
	}
	return fixFinalY(w, []rune(porterstemmer.StemString(word)))
}

// fixFinalY corrects the y/i decision of the classic rule, which turns a
// final y into i whenever the stem holds a vowel ("say" to "sai") and keeps
// it when it does not ("cry").
func fixFinalY(word, stem []rune) string {
	n := len(stem)
	if n < 2 || n > len(word) || word[n-1] != 'y' || string(stem[:n-1]) != string(word[:n-1]) {
		return string(stem)
	}
	toI := n > 2 && isConsonant(word, n-2)
	switch {
	case stem[n-1] == 'i' && !toI:
		stem[n-1] = 'y'
	case stem[n-1] == 'y' && toI && !containsVowel(word[:n-1]):
		stem[n-1] = 'i'
	}
	return string(stem)
}

func isConsonant(w []rune, i int) bool {
	switch w[i] {
	case 'a', 'e', 'i', 'o', 'u':
		return false
	case 'y':
		return i == 0 || !isConsonant(w, i-1)
	}
	return true
}

func containsVowel(w []rune) bool {
	for i := range w {
		if !isConsonant(w, i) {
			return true
		}
	}
	return false
}
