package reconcile

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

const keySeparator = "\x1f"

// Fold normalises a natural-key fragment: NFKC, collapsed whitespace, case folded.
func Fold(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	// A Caser holds state, so each call gets its own.
	return cases.Fold().String(s)
}

// Key builds a composite lookup key from its parts.
// It returns "" when any part is blank, meaning the key does not apply.
func Key(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}
	folded := make([]string, len(parts))
	for i, p := range parts {
		f := Fold(p)
		if f == "" {
			return ""
		}
		folded[i] = f
	}
	return strings.Join(folded, keySeparator)
}

// NaturalKey defines one uniqueness rule for an entity.
// Descriptors list them in fallback order.
type NaturalKey struct {
	// Name identifies the key; existing rows are indexed under "existing/<Name>".
	Name string
	// Label is shown to operators in rejection messages.
	Label string
	// Parts extracts the key fragments from a resolved record.
	Parts func(rec Record) []string
}

// KeyValue is a natural key evaluated against one record.
type KeyValue struct {
	Key     NaturalKey
	Folded  string
	Display string
}

func (k NaturalKey) evaluate(rec Record) KeyValue {
	parts := k.Parts(rec)
	return KeyValue{
		Key:     k,
		Folded:  Key(parts...),
		Display: strings.Join(parts, " / "),
	}
}

// ExistingIndex returns the cache index name holding persisted rows for key name.
func ExistingIndex(name string) string {
	return "existing/" + name
}
