// Package memory provides an in-memory Store implementation for tests
// and dry runs. All operations copy records on the way in and out so
// callers never share mutable state with the store.
package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/capitolworks/legisync/pkg/errors"
	"github.com/capitolworks/legisync/pkg/legis"
)

// Store is a map-backed implementation of legis.Store.
type Store struct {
	mu sync.RWMutex

	people     map[int64]legis.Person
	committees map[string]legis.Committee

	terms    map[int64]legis.Term
	termKeys map[legis.TermKey]int64

	bills    map[int64]legis.Bill
	billKeys map[legis.BillKey]int64

	cosponsors    map[int64]legis.Cosponsor
	cosponsorKeys map[cosponsorKey]int64

	related map[int64][]legis.RelatedBill
	files   map[string]string

	nextTermID      int64
	nextBillID      int64
	nextCosponsorID int64
}

type cosponsorKey struct {
	billID   int64
	personID int64
}

// Compile-time interface check.
var _ legis.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		people:        make(map[int64]legis.Person),
		committees:    make(map[string]legis.Committee),
		terms:         make(map[int64]legis.Term),
		termKeys:      make(map[legis.TermKey]int64),
		bills:         make(map[int64]legis.Bill),
		billKeys:      make(map[legis.BillKey]int64),
		cosponsors:    make(map[int64]legis.Cosponsor),
		cosponsorKeys: make(map[cosponsorKey]int64),
		related:       make(map[int64][]legis.RelatedBill),
		files:         make(map[string]string),
	}
}

// FindBillByKey looks up a bill by its natural key.
func (s *Store) FindBillByKey(_ context.Context, key legis.BillKey) (*legis.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.billKeys[key]
	if !ok {
		return nil, errors.NewReferenceNotFoundError("bill", key.String())
	}
	bill := cloneBill(s.bills[id])
	return &bill, nil
}

// PutBill inserts or updates a bill.
func (s *Store) PutBill(_ context.Context, bill *legis.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existingID, ok := s.billKeys[bill.BillKey]; ok && existingID != bill.ID {
		return errors.WrapResource("create", "bill", bill.BillKey.String(), errors.ErrAlreadyExists)
	}

	if bill.ID == 0 {
		s.nextBillID++
		bill.ID = s.nextBillID
	} else if stored, ok := s.bills[bill.ID]; ok && stored.BillKey != bill.BillKey {
		// Natural key is immutable once assigned.
		delete(s.billKeys, stored.BillKey)
	}

	s.bills[bill.ID] = cloneBill(*bill)
	s.billKeys[bill.BillKey] = bill.ID
	return nil
}

// RelatedBills lists the related-bill rows owned by a bill.
func (s *Store) RelatedBills(_ context.Context, billID int64) ([]legis.RelatedBill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.related[billID]
	out := make([]legis.RelatedBill, len(rows))
	copy(out, rows)
	return out, nil
}

// ReplaceRelatedBills deletes and rebuilds the related-bill rows for a bill.
func (s *Store) ReplaceRelatedBills(_ context.Context, billID int64, related []legis.RelatedBill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(related) == 0 {
		delete(s.related, billID)
		return nil
	}
	rows := make([]legis.RelatedBill, len(related))
	copy(rows, related)
	s.related[billID] = rows
	return nil
}

// Terms lists all taxonomy terms.
func (s *Store) Terms(_ context.Context) ([]legis.Term, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	terms := make([]legis.Term, 0, len(s.terms))
	for _, term := range s.terms {
		terms = append(terms, term)
	}
	return terms, nil
}

// PutTerm inserts a term, enforcing (classification, normalized name)
// uniqueness.
func (s *Store) PutTerm(_ context.Context, term *legis.Term) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := term.Key()
	if _, ok := s.termKeys[key]; ok {
		return &errors.DuplicateTermError{
			Classification: term.Classification.String(),
			Name:           term.Name,
		}
	}

	if term.ID == 0 {
		s.nextTermID++
		term.ID = s.nextTermID
	}
	s.terms[term.ID] = *term
	s.termKeys[key] = term.ID
	return nil
}

// SetTermParent re-establishes the parent edge of an existing term.
func (s *Store) SetTermParent(_ context.Context, termID, parentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	term, ok := s.terms[termID]
	if !ok {
		return errors.NewReferenceNotFoundError("term", strconv.FormatInt(termID, 10))
	}
	if _, ok := s.terms[parentID]; !ok {
		return errors.NewReferenceNotFoundError("term", strconv.FormatInt(parentID, 10))
	}
	term.ParentID = parentID
	s.terms[termID] = term
	return nil
}

// DeleteTerm removes a term.
func (s *Store) DeleteTerm(_ context.Context, termID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	term, ok := s.terms[termID]
	if !ok {
		return errors.NewReferenceNotFoundError("term", strconv.FormatInt(termID, 10))
	}
	delete(s.termKeys, term.Key())
	delete(s.terms, termID)
	return nil
}

// People lists all people.
func (s *Store) People(_ context.Context) ([]legis.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	people := make([]legis.Person, 0, len(s.people))
	for _, person := range s.people {
		people = append(people, clonePerson(person))
	}
	return people, nil
}

// PutPerson inserts or replaces a person.
func (s *Store) PutPerson(_ context.Context, person *legis.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.people[person.ID] = clonePerson(*person)
	return nil
}

// Committees lists all committees.
func (s *Store) Committees(_ context.Context) ([]legis.Committee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	committees := make([]legis.Committee, 0, len(s.committees))
	for _, committee := range s.committees {
		committees = append(committees, committee)
	}
	return committees, nil
}

// FindCommitteeByCode looks up a committee by code.
func (s *Store) FindCommitteeByCode(_ context.Context, code string) (*legis.Committee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	committee, ok := s.committees[code]
	if !ok {
		return nil, errors.NewReferenceNotFoundError("committee", code)
	}
	return &committee, nil
}

// PutCommittee inserts or replaces a committee.
func (s *Store) PutCommittee(_ context.Context, committee *legis.Committee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.committees[committee.Code] = *committee
	return nil
}

// FindCosponsor looks up the join record for a (bill, person) pair.
func (s *Store) FindCosponsor(_ context.Context, billID, personID int64) (*legis.Cosponsor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.cosponsorKeys[cosponsorKey{billID: billID, personID: personID}]
	if !ok {
		return nil, errors.NewReferenceNotFoundError("cosponsor", strconv.FormatInt(personID, 10))
	}
	cosponsor := cloneCosponsor(s.cosponsors[id])
	return &cosponsor, nil
}

// Cosponsors lists the join records for a bill.
func (s *Store) Cosponsors(_ context.Context, billID int64) ([]legis.Cosponsor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cosponsors []legis.Cosponsor
	for _, cosponsor := range s.cosponsors {
		if cosponsor.BillID == billID {
			cosponsors = append(cosponsors, cloneCosponsor(cosponsor))
		}
	}
	return cosponsors, nil
}

// PutCosponsor inserts or updates a join record.
func (s *Store) PutCosponsor(_ context.Context, cosponsor *legis.Cosponsor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := cosponsorKey{billID: cosponsor.BillID, personID: cosponsor.PersonID}
	if existingID, ok := s.cosponsorKeys[key]; ok && existingID != cosponsor.ID {
		return errors.WrapResource("create", "cosponsor", strconv.FormatInt(cosponsor.PersonID, 10), errors.ErrAlreadyExists)
	}

	if cosponsor.ID == 0 {
		s.nextCosponsorID++
		cosponsor.ID = s.nextCosponsorID
	}
	s.cosponsors[cosponsor.ID] = cloneCosponsor(*cosponsor)
	s.cosponsorKeys[key] = cosponsor.ID
	return nil
}

// FileSignature returns the stored signature for a path.
func (s *Store) FileSignature(_ context.Context, path string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	signature, ok := s.files[path]
	if !ok {
		return "", errors.NewReferenceNotFoundError("file record", path)
	}
	return signature, nil
}

// SaveFileSignature records the signature for a path.
func (s *Store) SaveFileSignature(_ context.Context, path, signature string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[path] = signature
	return nil
}

// Close is a no-op for memory stores.
func (s *Store) Close() error {
	return nil
}

func cloneBill(bill legis.Bill) legis.Bill {
	out := bill
	out.Titles = append([]legis.BillTitle(nil), bill.Titles...)
	out.MajorActions = append([]legis.MajorAction(nil), bill.MajorActions...)
	out.CommitteeCodes = append([]string(nil), bill.CommitteeCodes...)
	out.TermIDs = append([]int64(nil), bill.TermIDs...)
	if bill.SponsorRole != nil {
		role := *bill.SponsorRole
		out.SponsorRole = &role
	}
	if bill.DocsHouseGovPostdate != nil {
		date := *bill.DocsHouseGovPostdate
		out.DocsHouseGovPostdate = &date
	}
	if bill.SenateFloorSchedulePostdate != nil {
		date := *bill.SenateFloorSchedulePostdate
		out.SenateFloorSchedulePostdate = &date
	}
	return out
}

func clonePerson(person legis.Person) legis.Person {
	out := person
	out.Roles = append([]legis.Role(nil), person.Roles...)
	return out
}

func cloneCosponsor(cosponsor legis.Cosponsor) legis.Cosponsor {
	out := cosponsor
	if cosponsor.Withdrawn != nil {
		withdrawn := *cosponsor.Withdrawn
		out.Withdrawn = &withdrawn
	}
	if cosponsor.Role != nil {
		role := *cosponsor.Role
		out.Role = &role
	}
	return out
}
