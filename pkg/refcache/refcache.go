// Package refcache provides per-run in-memory caches for reference
// entities. Reference tables are small relative to document volume, so
// each cache is populated in full on first use and treated as read-only
// until invalidated at the next run boundary; repeated individual
// lookups against the store would otherwise dominate runtime over a
// large corpus.
package refcache

import (
	"context"
	"strconv"

	gocache "github.com/patrickmn/go-cache"

	"github.com/capitolworks/legisync/pkg/errors"
	"github.com/capitolworks/legisync/pkg/legis"
)

// People caches Person reference entities by identifier.
type People struct {
	store  legis.PersonStore
	cache  *gocache.Cache
	loaded bool
}

// NewPeople creates an unpopulated people cache over the given store.
func NewPeople(store legis.PersonStore) *People {
	return &People{
		store: store,
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get returns the person with the given identifier, populating the cache
// from the store on first use. A miss returns a
// *errors.ReferenceNotFoundError.
func (p *People) Get(ctx context.Context, id int64) (*legis.Person, error) {
	if err := p.populate(ctx); err != nil {
		return nil, err
	}

	key := strconv.FormatInt(id, 10)
	if value, found := p.cache.Get(key); found {
		return value.(*legis.Person), nil
	}
	return nil, errors.NewReferenceNotFoundError("person", key)
}

// Invalidate drops the snapshot so the next Get repopulates from the
// store. Called at run boundaries, after reference data may have
// changed.
func (p *People) Invalidate() {
	p.cache.Flush()
	p.loaded = false
}

func (p *People) populate(ctx context.Context) error {
	if p.loaded {
		return nil
	}

	people, err := p.store.People(ctx)
	if err != nil {
		return errors.WrapResource("load", "people", "", err)
	}
	for i := range people {
		person := people[i]
		p.cache.Set(strconv.FormatInt(person.ID, 10), &person, gocache.NoExpiration)
	}
	p.loaded = true
	return nil
}

// Terms caches taxonomy terms by (classification, normalized name).
type Terms struct {
	store  legis.TermStore
	cache  *gocache.Cache
	loaded bool
}

// NewTerms creates an unpopulated term cache over the given store.
func NewTerms(store legis.TermStore) *Terms {
	return &Terms{
		store: store,
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get returns the term matching the classification and name, populating
// the cache from the store on first use. The name is normalized before
// lookup. A miss returns a *errors.ReferenceNotFoundError.
func (t *Terms) Get(ctx context.Context, classification legis.TermClassification, name string) (*legis.Term, error) {
	if err := t.populate(ctx); err != nil {
		return nil, err
	}

	key := termCacheKey(classification, legis.NormalizeTermName(name))
	if value, found := t.cache.Get(key); found {
		return value.(*legis.Term), nil
	}
	return nil, errors.NewReferenceNotFoundError("term", key)
}

// Invalidate drops the snapshot so the next Get repopulates from the
// store.
func (t *Terms) Invalidate() {
	t.cache.Flush()
	t.loaded = false
}

func (t *Terms) populate(ctx context.Context) error {
	if t.loaded {
		return nil
	}

	terms, err := t.store.Terms(ctx)
	if err != nil {
		return errors.WrapResource("load", "terms", "", err)
	}
	for i := range terms {
		term := terms[i]
		key := termCacheKey(term.Classification, legis.NormalizeTermName(term.Name))
		t.cache.Set(key, &term, gocache.NoExpiration)
	}
	t.loaded = true
	return nil
}

func termCacheKey(classification legis.TermClassification, normalized string) string {
	return classification.String() + "|" + normalized
}
