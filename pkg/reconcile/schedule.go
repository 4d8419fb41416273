package reconcile

import (
	"context"
	"time"

	"github.com/agentstation/utc"

	"github.com/capitolworks/legisync/pkg/errors"
	"github.com/capitolworks/legisync/pkg/legis"
	"github.com/capitolworks/legisync/pkg/logging"
)

// ScheduleSource identifies which floor-schedule feed an entry came from.
type ScheduleSource int

const (
	// ScheduleHouseDocs is the docs.house.gov weekly schedule.
	ScheduleHouseDocs ScheduleSource = iota + 1
	// ScheduleSenateFloor is the Senate floor schedule.
	ScheduleSenateFloor
)

// String returns the source's feed name.
func (s ScheduleSource) String() string {
	switch s {
	case ScheduleHouseDocs:
		return "docs.house.gov"
	case ScheduleSenateFloor:
		return "senate-floor"
	default:
		return "unknown"
	}
}

// SchedulePostdate is one already-scraped floor-schedule entry naming
// the bill it postdates.
type SchedulePostdate struct {
	Key    legis.BillKey
	Source ScheduleSource
	Date   utc.Time
}

// senateFloorRefreshAge is how stale a senate floor postdate must be
// before a new sighting replaces it. Repeated sightings within the
// window are the same scheduling event.
const senateFloorRefreshAge = 7 * 24 * time.Hour

// ApplySchedulePostdates applies floor-schedule sightings to the bills
// they name. House entries always update the postdate; senate entries
// update only when no postdate is recorded or the recorded one is more
// than a week old. Entries naming bills not in the store are logged and
// dropped. Each touched bill is re-indexed and re-evented, subject to
// the run options.
func (r *Reconciler) ApplySchedulePostdates(ctx context.Context, entries []SchedulePostdate, opts RunOptions) error {
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return errors.ErrCanceled
		}

		bill, err := r.store.FindBillByKey(ctx, entry.Key)
		if err != nil {
			if errors.IsNotFound(err) {
				logging.Ctx(ctx).Error().
					Stringer("bill", entry.Key).
					Stringer("source", entry.Source).
					Msg("Could not find scheduled bill")
				continue
			}
			return err
		}

		date := entry.Date
		switch entry.Source {
		case ScheduleHouseDocs:
			bill.DocsHouseGovPostdate = &date
		case ScheduleSenateFloor:
			if !senatePostdateStale(bill.SenateFloorSchedulePostdate, date) {
				continue
			}
			bill.SenateFloorSchedulePostdate = &date
		default:
			logging.Ctx(ctx).Error().
				Stringer("bill", entry.Key).
				Msg("Unknown schedule source")
			continue
		}

		if err := r.store.PutBill(ctx, bill); err != nil {
			return err
		}

		if !opts.DisableIndexing {
			if err := r.index.UpdateObject(ctx, bill); err != nil {
				logging.Ctx(ctx).Warn().Err(err).Stringer("bill", bill).Msg("Index update failed")
			}
		}
		if !opts.DisableEvents {
			if err := r.events.CreateEvents(ctx, bill); err != nil {
				logging.Ctx(ctx).Warn().Err(err).Stringer("bill", bill).Msg("Event generation failed")
			}
		}
	}
	return nil
}

// senatePostdateStale reports whether a new senate floor sighting at
// date should replace the recorded postdate.
func senatePostdateStale(recorded *utc.Time, date utc.Time) bool {
	if recorded == nil {
		return true
	}
	return date.Sub(*recorded) > senateFloorRefreshAge
}
