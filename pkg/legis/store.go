package legis

import "context"

// BillStore persists bills and the relationship rows they own.
type BillStore interface {
	// FindBillByKey looks up a bill by its natural key. Returns a
	// *errors.ReferenceNotFoundError (errors.ErrNotFound) when absent.
	FindBillByKey(ctx context.Context, key BillKey) (*Bill, error)

	// PutBill inserts or updates a bill (upsert semantics). A zero ID is
	// assigned on insert; a non-zero ID updates the existing record,
	// including its owned title, action, committee, and term collections.
	PutBill(ctx context.Context, bill *Bill) error

	// RelatedBills lists the directed related-bill rows owned by a bill.
	RelatedBills(ctx context.Context, billID int64) ([]RelatedBill, error)

	// ReplaceRelatedBills deletes all related-bill rows owned by the bill
	// and recreates them from the given set.
	ReplaceRelatedBills(ctx context.Context, billID int64, related []RelatedBill) error
}

// TermStore persists subject-taxonomy terms.
type TermStore interface {
	// Terms lists all terms of all classifications.
	Terms(ctx context.Context) ([]Term, error)

	// PutTerm inserts a term, assigning its ID. Returns an error matching
	// errors.ErrAlreadyExists when the (classification, normalized name)
	// uniqueness invariant is violated.
	PutTerm(ctx context.Context, term *Term) error

	// SetTermParent re-establishes the parent edge of an existing term.
	SetTermParent(ctx context.Context, termID, parentID int64) error

	// DeleteTerm removes a term no longer present in any taxonomy source.
	DeleteTerm(ctx context.Context, termID int64) error
}

// PersonStore reads and seeds the people reference table.
type PersonStore interface {
	People(ctx context.Context) ([]Person, error)
	PutPerson(ctx context.Context, person *Person) error
}

// CommitteeStore reads and seeds the committee reference table.
type CommitteeStore interface {
	Committees(ctx context.Context) ([]Committee, error)
	FindCommitteeByCode(ctx context.Context, code string) (*Committee, error)
	PutCommittee(ctx context.Context, committee *Committee) error
}

// CosponsorStore persists bill/person cosponsorship join records.
type CosponsorStore interface {
	// FindCosponsor looks up the join record for a (bill, person) pair.
	// Returns an error matching errors.ErrNotFound when absent.
	FindCosponsor(ctx context.Context, billID, personID int64) (*Cosponsor, error)

	// Cosponsors lists the join records for a bill.
	Cosponsors(ctx context.Context, billID int64) ([]Cosponsor, error)

	// PutCosponsor inserts or updates a join record.
	PutCosponsor(ctx context.Context, cosponsor *Cosponsor) error
}

// FileStore persists per-path change records for the change-detection gate.
type FileStore interface {
	// FileSignature returns the stored signature for a path. Returns an
	// error matching errors.ErrNotFound when the path was never saved.
	FileSignature(ctx context.Context, path string) (string, error)

	// SaveFileSignature records the signature for a path, called only
	// after the corresponding document was fully reconciled.
	SaveFileSignature(ctx context.Context, path, signature string) error
}

// Store is the complete persistence interface combining all aggregate
// stores. It is composed of smaller, focused interfaces so components
// only depend on the operations they use.
type Store interface {
	BillStore
	TermStore
	PersonStore
	CommitteeStore
	CosponsorStore
	FileStore

	// Close releases any underlying resources.
	Close() error
}
