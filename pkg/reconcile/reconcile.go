// Package reconcile implements the record reconciliation engine: the
// per-document bill pipeline and the taxonomy term pass. Each document
// is the unit of consistency; reconciling the same inputs twice in
// succession produces no observable diff.
package reconcile

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/capitolworks/legisync/pkg/legis"
	"github.com/capitolworks/legisync/pkg/refcache"
	"github.com/capitolworks/legisync/pkg/tracker"
)

// Reconciler drives taxonomy and bill reconciliation against a store.
// It owns the reference caches and the change tracker; caches are
// populated once and treated as read-only within a run, so taxonomy
// reconciliation must complete before bill reconciliation begins.
type Reconciler struct {
	store   legis.Store
	people  *refcache.People
	terms   *refcache.Terms
	tracker *tracker.Tracker

	index  Indexer
	events EventGenerator

	dataDir string
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithIndexer sets the search-index collaborator.
func WithIndexer(index Indexer) Option {
	return func(r *Reconciler) {
		if index != nil {
			r.index = index
		}
	}
}

// WithEventGenerator sets the event-generation collaborator.
func WithEventGenerator(events EventGenerator) Option {
	return func(r *Reconciler) {
		if events != nil {
			r.events = events
		}
	}
}

// WithDataDir sets the corpus root used to derive secondary full-text
// paths from bill document paths.
func WithDataDir(dir string) Option {
	return func(r *Reconciler) {
		r.dataDir = dir
	}
}

// New creates a reconciler over the given store.
func New(store legis.Store, opts ...Option) *Reconciler {
	r := &Reconciler{
		store:   store,
		people:  refcache.NewPeople(store),
		terms:   refcache.NewTerms(store),
		tracker: tracker.New(store),
		index:   NopIndexer{},
		events:  NopEventGenerator{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Tracker exposes the reconciler's change tracker, shared with callers
// that gate their own secondary files.
func (r *Reconciler) Tracker() *tracker.Tracker {
	return r.tracker
}

// InvalidateCaches drops the reference-cache snapshots. Must be called
// at the start of each run so that people seeded and terms created by
// the run itself are visible to bill reconciliation; the caches
// repopulate lazily on first use, after the taxonomy pass completes.
func (r *Reconciler) InvalidateCaches() {
	r.people.Invalidate()
	r.terms.Invalidate()
}

// RunOptions are the per-run parameters shared by all documents.
type RunOptions struct {
	// Force bypasses the change-detection gate.
	Force bool

	// DisableIndexing suppresses search-index updates.
	DisableIndexing bool

	// DisableEvents suppresses event generation.
	DisableEvents bool
}

// billPath matches bill document paths of the form
// .../<congress>/bills/<type><number>.xml.
var billPath = regexp.MustCompile(`(\d+)/bills/([a-z]+)(\d+)\.xml$`)

// BillKeyFromPath derives a bill's natural key from its document path.
func BillKeyFromPath(path string) (legis.BillKey, bool) {
	m := billPath.FindStringSubmatch(filepath.ToSlash(path))
	if m == nil {
		return legis.BillKey{}, false
	}
	congress, err := strconv.Atoi(m[1])
	if err != nil {
		return legis.BillKey{}, false
	}
	typ, ok := legis.BillTypeByCode(m[2])
	if !ok {
		return legis.BillKey{}, false
	}
	number, err := strconv.Atoi(m[3])
	if err != nil {
		return legis.BillKey{}, false
	}
	return legis.BillKey{Congress: congress, Type: typ, Number: number}, true
}

// textPath returns the secondary full-text path for a bill key.
func (r *Reconciler) textPath(key legis.BillKey) string {
	code := key.Type.Code()
	return filepath.Join(r.dataDir, "bills.text",
		strconv.Itoa(key.Congress), code, code+strconv.Itoa(key.Number)+".txt")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
