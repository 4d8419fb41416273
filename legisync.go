// Package legisync ingests legislative record documents into a
// relational store, reconciling bills, their reference relationships,
// and the subject-term taxonomy so that repeated runs over the same
// corpus converge without observable diffs.
package legisync

import (
	"context"
	"os"

	"github.com/capitolworks/legisync/internal/store/memory"
	"github.com/capitolworks/legisync/internal/store/sqlite"
	"github.com/capitolworks/legisync/pkg/legis"
	"github.com/capitolworks/legisync/pkg/reconcile"
)

// Legisync drives corpus ingestion against a store.
type Legisync interface {
	// Ingest runs a full ingestion pass over the corpus: reference
	// data, the term taxonomy, then every bill document.
	Ingest(ctx context.Context, opts ...IngestOption) (*Result, error)

	// ApplySchedulePostdates applies already-scraped floor-schedule
	// sightings to the bills they name.
	ApplySchedulePostdates(ctx context.Context, entries []reconcile.SchedulePostdate) error

	// Store exposes the underlying store for direct queries.
	Store() legis.Store

	// Close releases the store.
	Close() error
}

// client is the internal implementation of the Legisync interface.
type client struct {
	config     *config
	store      legis.Store
	ownsStore  bool
	reconciler *reconcile.Reconciler
}

// New creates a Legisync instance with the given options.
func New(opts ...Option) (Legisync, error) {
	c := &client{config: defaultConfig()}

	if err := c.options(opts...); err != nil {
		return nil, err
	}

	switch {
	case c.config.store != nil:
		c.store = c.config.store
	case c.config.sqlitePath != "":
		store, err := sqlite.Open(c.config.sqlitePath)
		if err != nil {
			return nil, err
		}
		c.store = store
		c.ownsStore = true
	default:
		c.store = memory.New()
		c.ownsStore = true
	}

	c.reconciler = reconcile.New(c.store,
		reconcile.WithDataDir(c.config.dataDir),
		reconcile.WithIndexer(c.config.indexer),
		reconcile.WithEventGenerator(c.config.events),
	)

	return c, nil
}

// Store exposes the underlying store for direct queries.
func (c *client) Store() legis.Store { return c.store }

// Close releases the store if this instance opened it.
func (c *client) Close() error {
	if !c.ownsStore {
		return nil
	}
	return c.store.Close()
}

// ApplySchedulePostdates applies floor-schedule sightings to bills.
func (c *client) ApplySchedulePostdates(ctx context.Context, entries []reconcile.SchedulePostdate) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return c.reconciler.ApplySchedulePostdates(ctx, entries, reconcile.RunOptions{})
}

// loadReferenceData seeds people and committees from the configured
// reference files. Missing files are not an error; the store may
// already be seeded.
func (c *client) loadReferenceData(ctx context.Context) error {
	if path := c.config.peopleFile; path != "" && fileExists(path) {
		people, err := legis.LoadPeople(path)
		if err != nil {
			return err
		}
		if err := legis.SeedPeople(ctx, c.store, people); err != nil {
			return err
		}
	}
	if path := c.config.committeesFile; path != "" && fileExists(path) {
		committees, err := legis.LoadCommittees(path)
		if err != nil {
			return err
		}
		if err := legis.SeedCommittees(ctx, c.store, committees); err != nil {
			return err
		}
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
