package legisync

import (
	"context"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/capitolworks/legisync/pkg/errors"
	"github.com/capitolworks/legisync/pkg/legis"
	"github.com/capitolworks/legisync/pkg/logging"
	"github.com/capitolworks/legisync/pkg/reconcile"
)

// taxonomySources returns the taxonomy definition files present under
// the corpus root, old scheme first. Absent files are skipped; the
// upstream feed publishes them independently.
func (c *client) taxonomySources() []reconcile.TaxonomySource {
	candidates := []reconcile.TaxonomySource{
		{Path: filepath.Join(c.config.dataDir, "liv.xml"), Classification: legis.TermOld},
		{Path: filepath.Join(c.config.dataDir, "liv111.xml"), Classification: legis.TermNew},
		{Path: filepath.Join(c.config.dataDir, "crsnet.xml"), Classification: legis.TermNew},
	}
	var sources []reconcile.TaxonomySource
	for _, candidate := range candidates {
		if fileExists(candidate.Path) {
			sources = append(sources, candidate)
		}
	}
	return sources
}

// billFiles returns the bill document paths for the run, globbed from
// the corpus and narrowed by the congress scope and path filter.
func (c *client) billFiles(options *IngestOptions) ([]string, error) {
	pattern := filepath.Join(c.config.dataDir, "*", "bills", "*.xml")
	if options.Congress > 0 {
		pattern = filepath.Join(c.config.dataDir, strconv.Itoa(options.Congress), "bills", "*.xml")
	}
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.WrapIO("glob", pattern, err)
	}

	if options.PathFilter != "" {
		re, err := regexp.Compile(options.PathFilter)
		if err != nil {
			return nil, errors.NewValidationError("filter", options.PathFilter, "invalid path filter expression")
		}
		matched := files[:0]
		for _, file := range files {
			if re.MatchString(filepath.ToSlash(file)) {
				matched = append(matched, file)
			}
		}
		files = matched
	}

	sort.Strings(files)
	return files, nil
}

// Ingest runs a full ingestion pass: seed reference data, reconcile the
// term taxonomy, then reconcile every bill document in scope.
//
// A document that cannot be parsed as well-formed markup fails the run.
// A document missing required attributes or elements, or naming an
// unknown sponsor, is logged, counted as failed, and retried next run;
// processing continues with the next document. Cancellation is honored between documents, never
// mid-document.
func (c *client) Ingest(ctx context.Context, opts ...IngestOption) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	options := NewIngestOptions(opts...)
	runOpts := options.RunOptions()
	result := &Result{Forced: options.Force}

	// Reference snapshots from a previous run must not leak into this
	// one; the caches repopulate after the taxonomy pass below.
	c.reconciler.InvalidateCaches()

	if err := c.loadReferenceData(ctx); err != nil {
		return nil, err
	}

	if sources := c.taxonomySources(); len(sources) > 0 {
		taxonomy, err := c.reconciler.ReconcileTaxonomy(ctx, sources)
		if err != nil {
			return nil, err
		}
		result.Taxonomy = taxonomy
	}

	files, err := c.billFiles(options)
	if err != nil {
		return nil, err
	}
	result.FilesSeen = len(files)

	logging.Info().Int("files", len(files)).Msg("Processing bills")

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, errors.ErrCanceled
		}

		fileResult, err := c.reconciler.ReconcileBillFile(ctx, file, runOpts)
		if err != nil {
			if errors.IsValidationError(err) || errors.IsNotFound(err) {
				logging.Error().Err(err).Str("path", file).Msg("Bill document dropped")
				result.FilesFailed++
				continue
			}
			return result, err
		}

		switch fileResult.Outcome {
		case reconcile.BillSkipped:
			result.FilesSkipped++
		default:
			result.FilesReconciled++
			if fileResult.Created {
				result.BillsCreated++
			} else {
				result.BillsUpdated++
			}
		}
	}

	logging.Info().Str("summary", result.Summary()).Msg("Ingestion complete")
	return result, nil
}
