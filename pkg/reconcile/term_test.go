package reconcile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitolworks/legisync/internal/store/memory"
	"github.com/capitolworks/legisync/pkg/errors"
	"github.com/capitolworks/legisync/pkg/legis"
)

func writeTaxonomy(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func termIndex(t *testing.T, store *memory.Store) map[legis.TermKey]legis.Term {
	t.Helper()
	terms, err := store.Terms(context.Background())
	require.NoError(t, err)
	index := make(map[legis.TermKey]legis.Term, len(terms))
	for _, term := range terms {
		index[term.Key()] = term
	}
	return index
}

func TestReconcileTaxonomyCreates(t *testing.T) {
	store := memory.New()
	dir := t.TempDir()

	path := writeTaxonomy(t, dir, "liv.xml", `<liv>
  <top-term value="Agriculture">
    <term value="Crop insurance"/>
    <term value="Farm subsidies"/>
  </top-term>
  <top-term value="Taxation"/>
</liv>`)

	result, err := New(store).ReconcileTaxonomy(context.Background(), []TaxonomySource{
		{Path: path, Classification: legis.TermOld},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, result.Created)
	assert.Zero(t, result.Reused)
	assert.Zero(t, result.Pruned)

	index := termIndex(t, store)
	top := index[legis.TermKey{Classification: legis.TermOld, Name: "agriculture"}]
	sub := index[legis.TermKey{Classification: legis.TermOld, Name: "crop insurance"}]
	require.NotZero(t, top.ID)
	assert.Equal(t, top.ID, sub.ParentID)
	assert.Zero(t, top.ParentID)
}

func TestReconcileTaxonomyReusesAndPrunes(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	dir := t.TempDir()

	first := writeTaxonomy(t, dir, "liv.xml", `<liv>
  <top-term value="Agriculture">
    <term value="Crop insurance"/>
  </top-term>
  <top-term value="Taxation"/>
</liv>`)

	reconciler := New(store)
	_, err := reconciler.ReconcileTaxonomy(ctx, []TaxonomySource{{Path: first, Classification: legis.TermOld}})
	require.NoError(t, err)

	agriculture := termIndex(t, store)[legis.TermKey{Classification: legis.TermOld, Name: "agriculture"}]

	// Taxation disappears upstream; Agriculture keeps its identity.
	second := writeTaxonomy(t, dir, "liv2.xml", `<liv>
  <top-term value="AGRICULTURE">
    <term value="Crop insurance"/>
  </top-term>
</liv>`)

	result, err := New(store).ReconcileTaxonomy(ctx, []TaxonomySource{{Path: second, Classification: legis.TermOld}})
	require.NoError(t, err)
	assert.Zero(t, result.Created)
	assert.Equal(t, 2, result.Reused)
	assert.Equal(t, 1, result.Pruned)

	index := termIndex(t, store)
	assert.Len(t, index, 2)
	assert.Equal(t, agriculture.ID, index[legis.TermKey{Classification: legis.TermOld, Name: "agriculture"}].ID)
	assert.NotContains(t, index, legis.TermKey{Classification: legis.TermOld, Name: "taxation"})
}

func TestReconcileTaxonomyPruneScopedToClassification(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	dir := t.TempDir()

	// An old-scheme term already persisted.
	require.NoError(t, store.PutTerm(ctx, &legis.Term{Name: "Agriculture", Classification: legis.TermOld}))

	path := writeTaxonomy(t, dir, "crsnet.xml", `<liv>
  <top-term value="Health care"/>
</liv>`)

	result, err := New(store).ReconcileTaxonomy(ctx, []TaxonomySource{{Path: path, Classification: legis.TermNew}})
	require.NoError(t, err)

	// The pass covered only the new scheme, so the old term survives.
	assert.Zero(t, result.Pruned)
	index := termIndex(t, store)
	assert.Contains(t, index, legis.TermKey{Classification: legis.TermOld, Name: "agriculture"})
	assert.Contains(t, index, legis.TermKey{Classification: legis.TermNew, Name: "health care"})
}

func TestReconcileTaxonomySharedAcrossFiles(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	dir := t.TempDir()

	liv111 := writeTaxonomy(t, dir, "liv111.xml", `<liv>
  <top-term value="Agriculture">
    <term value="Crop insurance"/>
  </top-term>
</liv>`)
	crsnet := writeTaxonomy(t, dir, "crsnet.xml", `<liv>
  <top-term value="Agriculture">
    <term value="Crop insurance"/>
    <term value="Livestock"/>
  </top-term>
</liv>`)

	result, err := New(store).ReconcileTaxonomy(ctx, []TaxonomySource{
		{Path: liv111, Classification: legis.TermNew},
		{Path: crsnet, Classification: legis.TermNew},
	})
	require.NoError(t, err)

	// Agriculture and Crop insurance collapse to one term each.
	assert.Equal(t, 3, result.Created)
	assert.Equal(t, 2, result.Reused)

	index := termIndex(t, store)
	assert.Len(t, index, 3)
}

// duplicateTermStore simulates a uniqueness violation surfacing from
// the store rather than the in-pass index.
type duplicateTermStore struct {
	*memory.Store
	rejectName string
}

func (s *duplicateTermStore) PutTerm(ctx context.Context, term *legis.Term) error {
	if term.Name == s.rejectName {
		return &errors.DuplicateTermError{Classification: term.Classification.String(), Name: term.Name}
	}
	return s.Store.PutTerm(ctx, term)
}

func TestReconcileTaxonomyDuplicateSubterm(t *testing.T) {
	store := &duplicateTermStore{Store: memory.New(), rejectName: "Crop insurance"}
	dir := t.TempDir()

	path := writeTaxonomy(t, dir, "liv.xml", `<liv>
  <top-term value="Agriculture">
    <term value="Crop insurance"/>
    <term value="Livestock"/>
  </top-term>
</liv>`)

	result, err := New(store).ReconcileTaxonomy(context.Background(), []TaxonomySource{
		{Path: path, Classification: legis.TermOld},
	})
	require.NoError(t, err)

	// The duplicate is logged and skipped; the rest of the file lands.
	assert.Equal(t, 1, result.Duplicates)
	assert.Equal(t, 2, result.Created)
}

func TestReconcileTaxonomyMalformed(t *testing.T) {
	store := memory.New()
	dir := t.TempDir()

	path := writeTaxonomy(t, dir, "liv.xml", `<liv><top-term value="Agriculture"></liv>`)

	_, err := New(store).ReconcileTaxonomy(context.Background(), []TaxonomySource{
		{Path: path, Classification: legis.TermOld},
	})
	assert.Error(t, err)
}

func TestReconcileTaxonomyMissingValue(t *testing.T) {
	store := memory.New()
	dir := t.TempDir()

	path := writeTaxonomy(t, dir, "liv.xml", `<liv><top-term/></liv>`)

	_, err := New(store).ReconcileTaxonomy(context.Background(), []TaxonomySource{
		{Path: path, Classification: legis.TermOld},
	})
	assert.Error(t, err)
}
