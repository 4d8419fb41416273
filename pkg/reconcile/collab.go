package reconcile

import (
	"context"

	"github.com/capitolworks/legisync/pkg/legis"
)

// Indexer is the search-index collaborator, called once per
// successfully reconciled bill and when secondary full-text freshness
// triggers an update-only path. Its internal behavior is out of scope.
type Indexer interface {
	UpdateObject(ctx context.Context, bill *legis.Bill) error
}

// EventGenerator is the outbound-event collaborator, called in the same
// places as the Indexer. Its internal behavior is out of scope.
type EventGenerator interface {
	CreateEvents(ctx context.Context, bill *legis.Bill) error
}

// NopIndexer discards index updates.
type NopIndexer struct{}

// UpdateObject implements Indexer.
func (NopIndexer) UpdateObject(context.Context, *legis.Bill) error { return nil }

// NopEventGenerator discards event generation.
type NopEventGenerator struct{}

// CreateEvents implements EventGenerator.
func (NopEventGenerator) CreateEvents(context.Context, *legis.Bill) error { return nil }
