// Package legis defines the legislative-record domain model: bills,
// subject-taxonomy terms, people, committees, and the join records that
// relate them, together with the segregated store interfaces the
// reconciliation engine persists through.
package legis

import (
	"fmt"

	"github.com/agentstation/utc"
)

// BillKey is the natural composite key identifying a bill across
// re-ingestions of the same document.
type BillKey struct {
	Congress int
	Type     BillType
	Number   int
}

// String implements fmt.Stringer.
func (k BillKey) String() string {
	return fmt.Sprintf("%s%d-%d", k.Type.Code(), k.Number, k.Congress)
}

// BillTitle is one entry of a bill's ordered title sequence: the title
// type ("official", "short", "popular"), the stage it was given at
// (the as attribute), and the text itself.
type BillTitle struct {
	Type string
	As   string
	Text string
}

// MajorAction is one entry of a bill's ordered major-action sequence,
// extracted from action elements carrying a state attribute. The whole
// sequence is replaced on every reconciliation.
type MajorAction struct {
	Date   utc.Time
	Status BillStatus
	Text   string
}

// Bill is the legislative-document record. Its identity is the natural
// key; the numeric ID is stable across re-ingestion of the same document.
// A bill owns its titles, major actions, and related-bill rows; it
// references but does not own people, committees, and terms.
type Bill struct {
	ID int64
	BillKey

	// Title is the primary display title, derived from Titles.
	Title  string
	Titles []BillTitle

	IntroducedDate    utc.Time
	CurrentStatus     BillStatus
	CurrentStatusDate utc.Time

	// SponsorID is zero when the document names no resolvable sponsor.
	SponsorID   int64
	SponsorRole *Role

	MajorActions []MajorAction

	// CommitteeCodes and TermIDs are weak references, fully replaced on
	// every reconciliation.
	CommitteeCodes []string
	TermIDs        []int64

	// Schedule postdates, updated opportunistically from external
	// legislative-calendar sources. Nil when never observed.
	DocsHouseGovPostdate        *utc.Time
	SenateFloorSchedulePostdate *utc.Time
}

// String implements fmt.Stringer.
func (b *Bill) String() string {
	return fmt.Sprintf("%s %d (%d)", b.Type.Label(), b.Number, b.Congress)
}

// Cosponsor is the join record between a bill and a person. It is unique
// per (bill, person); withdrawal is represented as a field, never as a
// deletion.
type Cosponsor struct {
	ID       int64
	BillID   int64
	PersonID int64

	Joined    utc.Time
	Withdrawn *utc.Time
	Role      *Role
}

// RelatedBill is a directed relation from one bill to another. The whole
// set for a bill is deleted and rebuilt on every reconciliation.
type RelatedBill struct {
	BillID        int64
	RelatedBillID int64
	Relation      string
}

// ChangeRecord is the persisted last-seen signature for one source file
// path, written only after the file was fully and successfully
// reconciled.
type ChangeRecord struct {
	Path      string
	Signature string
}
