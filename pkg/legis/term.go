package legis

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TermClassification distinguishes the two incompatible subject-taxonomy
// schemes used before and after the scheme cutover congress.
type TermClassification int

// Term classifications.
const (
	TermOld TermClassification = iota + 1
	TermNew
)

// TermSchemeCutoverCongress is the first congress whose bills are
// classified under the new subject-taxonomy scheme.
const TermSchemeCutoverCongress = 111

// ClassificationForCongress returns the taxonomy scheme that applies to
// bills of the given congress.
func ClassificationForCongress(congress int) TermClassification {
	if congress >= TermSchemeCutoverCongress {
		return TermNew
	}
	return TermOld
}

// String implements fmt.Stringer.
func (c TermClassification) String() string {
	switch c {
	case TermOld:
		return "old"
	case TermNew:
		return "new"
	default:
		return fmt.Sprintf("classification(%d)", int(c))
	}
}

// Term is one subject-taxonomy entry. A term may be a subterm of exactly
// one top-level term; top-level terms have no parent. Terms carry no
// mutable attributes beyond identity, so they are created and deleted
// but never updated.
type Term struct {
	ID             int64              `yaml:"id"`
	Name           string             `yaml:"name"`
	Classification TermClassification `yaml:"classification"`
	ParentID       int64              `yaml:"parent_id,omitempty"` // zero for top-level terms
}

// TermKey uniquely identifies a term by classification and normalized name.
type TermKey struct {
	Classification TermClassification
	Name           string
}

// Key returns the term's uniqueness key.
func (t *Term) Key() TermKey {
	return TermKey{Classification: t.Classification, Name: NormalizeTermName(t.Name)}
}

// String implements fmt.Stringer.
func (t *Term) String() string {
	return fmt.Sprintf("%s term %q", t.Classification, t.Name)
}

var termWhitespace = regexp.MustCompile(`\s{2,}`)

var termCaser = cases.Lower(language.Und)

// NormalizeTermName converts a term name to its common format: runs of
// whitespace collapse to a single space and the result is lowercased.
func NormalizeTermName(name string) string {
	name = termWhitespace.ReplaceAllString(strings.TrimSpace(name), " ")
	return termCaser.String(name)
}
