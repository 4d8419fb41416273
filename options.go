package legisync

import (
	"github.com/capitolworks/legisync/pkg/errors"
	"github.com/capitolworks/legisync/pkg/legis"
	"github.com/capitolworks/legisync/pkg/reconcile"
)

// config holds construction-time settings for a Legisync instance.
type config struct {
	store          legis.Store
	sqlitePath     string
	dataDir        string
	peopleFile     string
	committeesFile string
	indexer        reconcile.Indexer
	events         reconcile.EventGenerator
}

func defaultConfig() *config {
	return &config{dataDir: "data"}
}

// Option is a function that configures a Legisync instance.
type Option func(*config) error

// options applies the given options to the client's config.
func (c *client) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c.config); err != nil {
			return err
		}
	}
	return nil
}

// WithStore configures an externally managed store. The caller retains
// ownership; Close does not release it.
func WithStore(store legis.Store) Option {
	return func(c *config) error {
		if store == nil {
			return errors.NewValidationError("store", "", "store must not be nil")
		}
		c.store = store
		return nil
	}
}

// WithSQLite configures a SQLite store at the given path, opened on
// construction and released by Close.
func WithSQLite(path string) Option {
	return func(c *config) error {
		if path == "" {
			return errors.NewValidationError("path", "", "sqlite path must not be empty")
		}
		c.sqlitePath = path
		return nil
	}
}

// WithDataDir configures the corpus root holding bill documents,
// taxonomy files, and secondary full-text files.
func WithDataDir(dir string) Option {
	return func(c *config) error {
		c.dataDir = dir
		return nil
	}
}

// WithPeopleFile configures the people reference file seeded before
// each ingestion run.
func WithPeopleFile(path string) Option {
	return func(c *config) error {
		c.peopleFile = path
		return nil
	}
}

// WithCommitteesFile configures the committee reference file seeded
// before each ingestion run.
func WithCommitteesFile(path string) Option {
	return func(c *config) error {
		c.committeesFile = path
		return nil
	}
}

// WithIndexer configures the search-index collaborator.
func WithIndexer(index reconcile.Indexer) Option {
	return func(c *config) error {
		c.indexer = index
		return nil
	}
}

// WithEventGenerator configures the event-generation collaborator.
func WithEventGenerator(events reconcile.EventGenerator) Option {
	return func(c *config) error {
		c.events = events
		return nil
	}
}

// IngestOptions are the per-run parameters for an ingestion pass.
type IngestOptions struct {
	// Congress restricts the run to one congress's directory; zero
	// means the whole corpus.
	Congress int

	// PathFilter restricts the run to documents whose slash-separated
	// path matches the given regular expression.
	PathFilter string

	// Force bypasses the change-detection gate.
	Force bool

	// DisableIndexing suppresses search-index updates.
	DisableIndexing bool

	// DisableEvents suppresses event generation.
	DisableEvents bool
}

// IngestOption configures one ingestion run.
type IngestOption func(*IngestOptions)

// NewIngestOptions creates IngestOptions with defaults.
func NewIngestOptions(opts ...IngestOption) *IngestOptions {
	options := &IngestOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithCongress restricts the run to one congress.
func WithCongress(congress int) IngestOption {
	return func(o *IngestOptions) {
		o.Congress = congress
	}
}

// WithPathFilter restricts the run to documents whose path matches the
// given regular expression.
func WithPathFilter(filter string) IngestOption {
	return func(o *IngestOptions) {
		o.PathFilter = filter
	}
}

// WithForce bypasses the change-detection gate.
func WithForce() IngestOption {
	return func(o *IngestOptions) {
		o.Force = true
	}
}

// WithoutIndexing suppresses search-index updates for the run.
func WithoutIndexing() IngestOption {
	return func(o *IngestOptions) {
		o.DisableIndexing = true
	}
}

// WithoutEvents suppresses event generation for the run.
func WithoutEvents() IngestOption {
	return func(o *IngestOptions) {
		o.DisableEvents = true
	}
}

// RunOptions translates the ingest options to reconciler run options.
func (o *IngestOptions) RunOptions() reconcile.RunOptions {
	return reconcile.RunOptions{
		Force:           o.Force,
		DisableIndexing: o.DisableIndexing,
		DisableEvents:   o.DisableEvents,
	}
}
