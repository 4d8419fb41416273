package reconcile

import (
	"context"

	"github.com/capitolworks/legisync/pkg/errors"
	"github.com/capitolworks/legisync/pkg/legis"
	"github.com/capitolworks/legisync/pkg/logging"
	"github.com/capitolworks/legisync/pkg/xmlmap"
)

// termSchema maps a taxonomy element's value attribute onto a term name.
var termSchema = xmlmap.NewSchema[legis.Term]("term",
	xmlmap.String[legis.Term]("value", true, func(t *legis.Term, v string) { t.Name = v }),
)

// TaxonomySource is one taxonomy definition file and the classification
// scheme its terms belong to.
type TaxonomySource struct {
	Path           string
	Classification legis.TermClassification
}

// TaxonomyResult summarizes a taxonomy reconciliation pass.
type TaxonomyResult struct {
	Created    int
	Reused     int
	Pruned     int
	Duplicates int
}

// ReconcileTaxonomy rebuilds the two-level term hierarchy from the given
// source files. Existing terms are reused without update (terms carry no
// attributes beyond identity); new ones are created with their parent
// edge; terms of a covered classification not observed during the pass
// are deleted. Duplicate subterm creations are logged and skipped.
//
// Sources should list all old-scheme files before new-scheme files so
// the pass mirrors the upstream publication order, though correctness
// only requires that the whole pass completes before bill
// reconciliation begins.
func (r *Reconciler) ReconcileTaxonomy(ctx context.Context, sources []TaxonomySource) (*TaxonomyResult, error) {
	result := &TaxonomyResult{}

	// Snapshot all existing terms into an index by uniqueness key.
	existing, err := r.store.Terms(ctx)
	if err != nil {
		return nil, errors.WrapResource("load", "terms", "", err)
	}
	index := make(map[legis.TermKey]*legis.Term, len(existing))
	for i := range existing {
		index[existing[i].Key()] = &existing[i]
	}

	seen := make(map[int64]bool)
	covered := make(map[legis.TermClassification]bool)

	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return nil, errors.ErrCanceled
		}
		covered[source.Classification] = true

		logging.Info().
			Str("path", source.Path).
			Stringer("classification", source.Classification).
			Msg("Processing taxonomy terms")

		root, err := xmlmap.ParseFile(source.Path)
		if err != nil {
			return nil, err
		}

		for _, topNode := range root.All("top-term") {
			top, err := r.reconcileTopTerm(ctx, topNode, source.Classification, index, seen, result)
			if err != nil {
				return nil, err
			}

			for _, subNode := range topNode.All("term") {
				if err := r.reconcileSubTerm(ctx, subNode, top, index, seen, result); err != nil {
					return nil, err
				}
			}
		}
	}

	// Prune terms of covered classifications not observed in this pass.
	for _, term := range index {
		if !covered[term.Classification] || seen[term.ID] {
			continue
		}
		logging.Debug().Stringer("term", term).Msg("Deleting term")
		if err := r.store.DeleteTerm(ctx, term.ID); err != nil {
			return nil, errors.WrapResource("delete", "term", term.Name, err)
		}
		result.Pruned++
	}

	return result, nil
}

func (r *Reconciler) reconcileTopTerm(
	ctx context.Context,
	node *xmlmap.Node,
	classification legis.TermClassification,
	index map[legis.TermKey]*legis.Term,
	seen map[int64]bool,
	result *TaxonomyResult,
) (*legis.Term, error) {
	term := &legis.Term{Classification: classification}
	if err := termSchema.Apply(node, term); err != nil {
		return nil, err
	}

	if existing, ok := index[term.Key()]; ok {
		// No need to update an existing term because there are no other
		// attributes.
		seen[existing.ID] = true
		result.Reused++
		return existing, nil
	}

	if err := r.store.PutTerm(ctx, term); err != nil {
		return nil, errors.WrapResource("create", "term", term.Name, err)
	}
	logging.Debug().Stringer("term", term).Msg("Created term")
	index[term.Key()] = term
	seen[term.ID] = true
	result.Created++
	return term, nil
}

func (r *Reconciler) reconcileSubTerm(
	ctx context.Context,
	node *xmlmap.Node,
	top *legis.Term,
	index map[legis.TermKey]*legis.Term,
	seen map[int64]bool,
	result *TaxonomyResult,
) error {
	term := &legis.Term{Classification: top.Classification}
	if err := termSchema.Apply(node, term); err != nil {
		return err
	}

	if existing, ok := index[term.Key()]; ok {
		seen[existing.ID] = true
		result.Reused++
		if existing.ParentID != top.ID {
			if err := r.store.SetTermParent(ctx, existing.ID, top.ID); err != nil {
				return errors.WrapResource("update", "term", term.Name, err)
			}
			existing.ParentID = top.ID
		}
		return nil
	}

	term.ParentID = top.ID
	if err := r.store.PutTerm(ctx, term); err != nil {
		if errors.IsAlreadyExists(err) {
			logging.Error().Stringer("term", term).Msg("Duplicated term")
			result.Duplicates++
			return nil
		}
		return errors.WrapResource("create", "term", term.Name, err)
	}
	logging.Debug().Stringer("term", term).Msg("Created term")
	index[term.Key()] = term
	seen[term.ID] = true
	result.Created++
	return nil
}
