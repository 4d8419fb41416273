package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitolworks/legisync/pkg/errors"
	"github.com/capitolworks/legisync/pkg/legis"
)

func date(year, month, day int) utc.Time {
	return utc.New(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC))
}

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "legisync.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legisync.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.PutCommittee(context.Background(), &legis.Committee{Code: "HSAP", Name: "House Appropriations"}))
	require.NoError(t, store.Close())

	// Reopening applies the schema again without clobbering data.
	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close() //nolint:errcheck // test cleanup

	committee, err := store.FindCommitteeByCode(context.Background(), "HSAP")
	require.NoError(t, err)
	assert.Equal(t, "House Appropriations", committee.Name)
}

func TestBillRoundTrip(t *testing.T) {
	store := openTemp(t)
	ctx := context.Background()

	postdate := date(2009, 2, 10)
	bill := &legis.Bill{
		BillKey: legis.BillKey{Congress: 111, Type: legis.BillTypeHR, Number: 1},
		Title:   "Recovery Act",
		Titles: []legis.BillTitle{
			{Type: "official", As: "introduced", Text: "Making appropriations."},
			{Type: "short", As: "introduced", Text: "Recovery Act"},
		},
		IntroducedDate:    date(2009, 1, 6),
		CurrentStatus:     legis.StatusReferred,
		CurrentStatusDate: date(2009, 1, 16),
		SponsorID:         400001,
		SponsorRole: &legis.Role{
			Type: "representative", State: "WI", District: 3,
			StartDate: date(2009, 1, 3), EndDate: date(2011, 1, 2),
		},
		MajorActions: []legis.MajorAction{
			{Date: date(2009, 1, 6), Status: legis.StatusIntroduced, Text: "Introduced in House"},
		},
		CommitteeCodes:       []string{"HSAP"},
		TermIDs:              []int64{},
		DocsHouseGovPostdate: &postdate,
	}
	require.NoError(t, store.PutBill(ctx, bill))
	require.NotZero(t, bill.ID)

	found, err := store.FindBillByKey(ctx, bill.BillKey)
	require.NoError(t, err)

	assert.Equal(t, bill.ID, found.ID)
	assert.Equal(t, "Recovery Act", found.Title)
	assert.Len(t, found.Titles, 2)
	assert.True(t, found.IntroducedDate.Equal(bill.IntroducedDate))
	assert.Equal(t, legis.StatusReferred, found.CurrentStatus)
	assert.Equal(t, int64(400001), found.SponsorID)
	require.NotNil(t, found.SponsorRole)
	assert.Equal(t, "WI", found.SponsorRole.State)
	require.Len(t, found.MajorActions, 1)
	assert.Equal(t, legis.StatusIntroduced, found.MajorActions[0].Status)
	assert.Equal(t, []string{"HSAP"}, found.CommitteeCodes)
	require.NotNil(t, found.DocsHouseGovPostdate)
	assert.True(t, found.DocsHouseGovPostdate.Equal(postdate))
	assert.Nil(t, found.SenateFloorSchedulePostdate)
}

func TestPutBillUpdateReplacesRefs(t *testing.T) {
	store := openTemp(t)
	ctx := context.Background()

	bill := &legis.Bill{
		BillKey:        legis.BillKey{Congress: 111, Type: legis.BillTypeHR, Number: 1},
		CommitteeCodes: []string{"HSAP", "HSAG"},
		TermIDs:        []int64{1, 2, 3},
	}
	require.NoError(t, store.PutBill(ctx, bill))
	id := bill.ID

	bill.CommitteeCodes = []string{"HSAG"}
	bill.TermIDs = []int64{2}
	require.NoError(t, store.PutBill(ctx, bill))
	assert.Equal(t, id, bill.ID)

	found, err := store.FindBillByKey(ctx, bill.BillKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"HSAG"}, found.CommitteeCodes)
	assert.Equal(t, []int64{2}, found.TermIDs)
}

func TestPutBillDuplicateKey(t *testing.T) {
	store := openTemp(t)
	ctx := context.Background()

	key := legis.BillKey{Congress: 111, Type: legis.BillTypeS, Number: 42}
	require.NoError(t, store.PutBill(ctx, &legis.Bill{BillKey: key}))

	err := store.PutBill(ctx, &legis.Bill{BillKey: key})
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))
}

func TestFindBillByKeyMissing(t *testing.T) {
	store := openTemp(t)

	_, err := store.FindBillByKey(context.Background(), legis.BillKey{Congress: 93, Type: legis.BillTypeHR, Number: 9})
	assert.True(t, errors.IsNotFound(err))
}

func TestRelatedBillsReplace(t *testing.T) {
	store := openTemp(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceRelatedBills(ctx, 1, []legis.RelatedBill{
		{BillID: 1, RelatedBillID: 2, Relation: "related"},
		{BillID: 1, RelatedBillID: 3, Relation: "supersedes"},
	}))

	related, err := store.RelatedBills(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, related, 2)

	require.NoError(t, store.ReplaceRelatedBills(ctx, 1, nil))
	related, err = store.RelatedBills(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, related)
}

func TestTermUniqueness(t *testing.T) {
	store := openTemp(t)
	ctx := context.Background()

	term := &legis.Term{Name: "Agriculture", Classification: legis.TermNew}
	require.NoError(t, store.PutTerm(ctx, term))
	require.NotZero(t, term.ID)

	err := store.PutTerm(ctx, &legis.Term{Name: " agriculture ", Classification: legis.TermNew})
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))

	// Distinct classification is a distinct term.
	require.NoError(t, store.PutTerm(ctx, &legis.Term{Name: "Agriculture", Classification: legis.TermOld}))
}

func TestTermParentAndDelete(t *testing.T) {
	store := openTemp(t)
	ctx := context.Background()

	top := &legis.Term{Name: "Agriculture", Classification: legis.TermNew}
	sub := &legis.Term{Name: "Crop insurance", Classification: legis.TermNew}
	require.NoError(t, store.PutTerm(ctx, top))
	require.NoError(t, store.PutTerm(ctx, sub))
	require.NoError(t, store.SetTermParent(ctx, sub.ID, top.ID))

	terms, err := store.Terms(ctx)
	require.NoError(t, err)
	byID := make(map[int64]legis.Term, len(terms))
	for _, term := range terms {
		byID[term.ID] = term
	}
	assert.Equal(t, top.ID, byID[sub.ID].ParentID)
	assert.Zero(t, byID[top.ID].ParentID)

	require.NoError(t, store.DeleteTerm(ctx, sub.ID))
	terms, err = store.Terms(ctx)
	require.NoError(t, err)
	assert.Len(t, terms, 1)

	// The uniqueness slot is free again.
	require.NoError(t, store.PutTerm(ctx, &legis.Term{Name: "Crop insurance", Classification: legis.TermNew}))
}

func TestPeopleRoundTrip(t *testing.T) {
	store := openTemp(t)
	ctx := context.Background()

	person := &legis.Person{
		ID:   400001,
		Name: "Jo Example",
		Roles: []legis.Role{
			{Type: "representative", State: "WI", District: 3, StartDate: date(2009, 1, 3), EndDate: date(2011, 1, 2)},
		},
	}
	require.NoError(t, store.PutPerson(ctx, person))

	// Replace on re-seed.
	person.Name = "Jo Q. Example"
	require.NoError(t, store.PutPerson(ctx, person))

	people, err := store.People(ctx)
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "Jo Q. Example", people[0].Name)
	require.Len(t, people[0].Roles, 1)
	assert.Equal(t, 3, people[0].Roles[0].District)
}

func TestCosponsorRoundTrip(t *testing.T) {
	store := openTemp(t)
	ctx := context.Background()

	cosponsor := &legis.Cosponsor{
		BillID:   1,
		PersonID: 400002,
		Joined:   date(2009, 1, 6),
		Role:     &legis.Role{Type: "senator", State: "VT", StartDate: date(2007, 1, 4)},
	}
	require.NoError(t, store.PutCosponsor(ctx, cosponsor))
	require.NotZero(t, cosponsor.ID)

	found, err := store.FindCosponsor(ctx, 1, 400002)
	require.NoError(t, err)
	assert.Equal(t, cosponsor.ID, found.ID)
	assert.True(t, found.Joined.Equal(cosponsor.Joined))
	assert.Nil(t, found.Withdrawn)
	require.NotNil(t, found.Role)
	assert.Equal(t, "VT", found.Role.State)

	withdrawn := date(2009, 3, 1)
	found.Withdrawn = &withdrawn
	require.NoError(t, store.PutCosponsor(ctx, found))

	all, err := store.Cosponsors(ctx, 1)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].Withdrawn)
	assert.True(t, all[0].Withdrawn.Equal(withdrawn))

	_, err = store.FindCosponsor(ctx, 1, 999999)
	assert.True(t, errors.IsNotFound(err))
}

func TestFileSignatures(t *testing.T) {
	store := openTemp(t)
	ctx := context.Background()

	_, err := store.FileSignature(ctx, "data/111/bills/hr1.xml")
	assert.True(t, errors.IsNotFound(err))

	require.NoError(t, store.SaveFileSignature(ctx, "data/111/bills/hr1.xml", "abc:42"))
	require.NoError(t, store.SaveFileSignature(ctx, "data/111/bills/hr1.xml", "def:43"))

	signature, err := store.FileSignature(ctx, "data/111/bills/hr1.xml")
	require.NoError(t, err)
	assert.Equal(t, "def:43", signature)
}
