package refcache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitolworks/legisync/internal/store/memory"
	"github.com/capitolworks/legisync/pkg/errors"
	"github.com/capitolworks/legisync/pkg/legis"
)

func TestPeopleGet(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, store.PutPerson(ctx, &legis.Person{ID: 400001, Name: "Jo Example"}))
	require.NoError(t, store.PutPerson(ctx, &legis.Person{ID: 400002, Name: "Sam Sample"}))

	cache := NewPeople(store)

	person, err := cache.Get(ctx, 400001)
	require.NoError(t, err)
	assert.Equal(t, "Jo Example", person.Name)

	_, err = cache.Get(ctx, 400999)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	var refErr *errors.ReferenceNotFoundError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "person", refErr.Kind)
}

func TestPeopleCacheIsSnapshot(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, store.PutPerson(ctx, &legis.Person{ID: 1, Name: "first"}))

	cache := NewPeople(store)
	_, err := cache.Get(ctx, 1)
	require.NoError(t, err)

	// Writes after the first lookup are not visible; the cache is
	// populated once per run.
	require.NoError(t, store.PutPerson(ctx, &legis.Person{ID: 2, Name: "late"}))
	_, err = cache.Get(ctx, 2)
	assert.True(t, errors.IsNotFound(err))

	// Invalidation starts a fresh snapshot.
	cache.Invalidate()
	person, err := cache.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "late", person.Name)
}

func TestTermsInvalidate(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, store.PutTerm(ctx, &legis.Term{Name: "Agriculture", Classification: legis.TermNew}))

	cache := NewTerms(store)
	_, err := cache.Get(ctx, legis.TermNew, "Agriculture")
	require.NoError(t, err)

	require.NoError(t, store.PutTerm(ctx, &legis.Term{Name: "Appropriations", Classification: legis.TermNew}))
	_, err = cache.Get(ctx, legis.TermNew, "Appropriations")
	assert.True(t, errors.IsNotFound(err))

	cache.Invalidate()
	term, err := cache.Get(ctx, legis.TermNew, "Appropriations")
	require.NoError(t, err)
	assert.Equal(t, "Appropriations", term.Name)
}

func TestTermsGet(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, store.PutTerm(ctx, &legis.Term{Name: "Health care", Classification: legis.TermNew}))
	require.NoError(t, store.PutTerm(ctx, &legis.Term{Name: "Health care", Classification: legis.TermOld}))

	cache := NewTerms(store)

	term, err := cache.Get(ctx, legis.TermNew, "Health care")
	require.NoError(t, err)
	assert.Equal(t, legis.TermNew, term.Classification)

	// Lookup normalizes the name.
	term, err = cache.Get(ctx, legis.TermNew, "  HEALTH   CARE ")
	require.NoError(t, err)
	assert.Equal(t, "Health care", term.Name)

	// Classification distinguishes otherwise identical names.
	term, err = cache.Get(ctx, legis.TermOld, "health care")
	require.NoError(t, err)
	assert.Equal(t, legis.TermOld, term.Classification)

	_, err = cache.Get(ctx, legis.TermNew, "taxation")
	assert.True(t, errors.IsNotFound(err))
}
