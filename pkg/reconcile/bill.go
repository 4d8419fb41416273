package reconcile

import (
	"context"
	"strconv"

	"github.com/agentstation/utc"

	"github.com/capitolworks/legisync/pkg/errors"
	"github.com/capitolworks/legisync/pkg/legis"
	"github.com/capitolworks/legisync/pkg/logging"
	"github.com/capitolworks/legisync/pkg/xmlmap"
)

// billSchema maps a bill root element's attributes onto a bill record.
// The coercions are bound here once, not dispatched per record.
var billSchema = xmlmap.NewSchema[legis.Bill]("bill",
	xmlmap.Func[legis.Bill]("type", true, func(b *legis.Bill, v string) error {
		typ, ok := legis.BillTypeByCode(v)
		if !ok {
			return errors.NewValidationError("type", v, "unknown bill type code")
		}
		b.Type = typ
		return nil
	}),
	xmlmap.Int[legis.Bill]("session", true, func(b *legis.Bill, v int) { b.Congress = v }),
	xmlmap.Int[legis.Bill]("number", true, func(b *legis.Bill, v int) { b.Number = v }),
)

// BillOutcome reports how a bill document was handled.
type BillOutcome int

const (
	// BillReconciled means the full per-document pipeline ran.
	BillReconciled BillOutcome = iota + 1
	// BillSkipped means the change gate reported the document unchanged
	// and only the secondary full-text freshness check ran.
	BillSkipped
)

// BillFileResult is the outcome of reconciling one bill document.
type BillFileResult struct {
	Outcome BillOutcome
	Bill    *legis.Bill

	// Created reports whether the pipeline inserted a new bill rather
	// than updating an existing one. Only meaningful for BillReconciled.
	Created bool
}

// ReconcileBillFile runs the per-document pipeline for one bill file.
//
// When the change gate reports the document unchanged and the run is
// not forced, only the secondary full-text file is checked for
// freshness; if it changed, the indexing and event collaborators run
// without re-parsing the document. Otherwise the document is mapped,
// resolved, upserted, and its relationship collections reconciled to
// exactly match the document; the change record is saved only after
// full success.
//
// Errors matching errors.ErrInvalidInput are fatal to this document
// only: prior state is untouched and the change record is not updated,
// so the document is retried next run.
func (r *Reconciler) ReconcileBillFile(ctx context.Context, path string, opts RunOptions) (*BillFileResult, error) {
	if !opts.Force {
		changed, err := r.tracker.IsChanged(ctx, path)
		if err != nil {
			return nil, err
		}
		if !changed {
			if result, ok, err := r.refreshUnchanged(ctx, path, opts); err != nil {
				return nil, err
			} else if ok {
				return result, nil
			}
			// No persisted bill for this path yet; parse as normal.
		}
	}

	ctx = logging.WithSource(ctx, path)

	root, err := xmlmap.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if root.Name != "bill" {
		return nil, errors.NewValidationError("root", root.Name, "not a bill document")
	}

	bill, created, err := r.reconcileBill(ctx, root)
	if err != nil {
		return nil, err
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

	if err := r.tracker.Save(ctx, path); err != nil {
		return nil, err
	}

	return &BillFileResult{Outcome: BillReconciled, Bill: bill, Created: created}, nil
}

// refreshUnchanged handles the skip path for an unchanged document: it
// re-checks the secondary full-text file and, when that changed,
// triggers the indexing and event collaborators without re-running the
// pipeline. The bool result reports whether a persisted bill was found
// for the path; when false the caller falls through to a full parse.
func (r *Reconciler) refreshUnchanged(ctx context.Context, path string, opts RunOptions) (*BillFileResult, bool, error) {
	key, ok := BillKeyFromPath(path)
	if !ok {
		return nil, false, nil
	}

	bill, err := r.store.FindBillByKey(ctx, key)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	textPath := r.textPath(key)
	collaborate := !opts.DisableIndexing && !opts.DisableEvents
	if collaborate && fileExists(textPath) {
		textChanged, err := r.tracker.IsChanged(ctx, textPath)
		if err != nil {
			return nil, false, err
		}
		if textChanged {
			// Index the full text and generate events for it.
			if err := r.index.UpdateObject(ctx, bill); err != nil {
				logging.Ctx(ctx).Warn().Err(err).Stringer("bill", bill).Msg("Index update failed")
			}
			if err := r.events.CreateEvents(ctx, bill); err != nil {
				logging.Ctx(ctx).Warn().Err(err).Stringer("bill", bill).Msg("Event generation failed")
			}
			if err := r.tracker.Save(ctx, textPath); err != nil {
				return nil, false, err
			}
		}
	}

	return &BillFileResult{Outcome: BillSkipped, Bill: bill}, true, nil
}

// reconcileBill maps and persists one bill document rooted at node.
// The bool result reports whether a new bill was inserted.
func (r *Reconciler) reconcileBill(ctx context.Context, root *xmlmap.Node) (*legis.Bill, bool, error) {
	bill := &legis.Bill{}
	if err := billSchema.Apply(root, bill); err != nil {
		return nil, false, err
	}

	r.processTitles(bill, root)
	if err := r.processIntroduced(bill, root); err != nil {
		return nil, false, err
	}
	if err := r.processCurrentStatus(bill, root); err != nil {
		return nil, false, err
	}
	if err := r.processSponsor(ctx, bill, root); err != nil {
		return nil, false, err
	}
	if err := r.processMajorActions(bill, root); err != nil {
		return nil, false, err
	}

	// Identity resolution: adopt the existing record's identity so the
	// write is an update, not a reinsertion. Schedule postdates are
	// maintained outside this pipeline and survive reconciliation.
	created := false
	existing, err := r.store.FindBillByKey(ctx, bill.BillKey)
	switch {
	case err == nil:
		bill.ID = existing.ID
		bill.DocsHouseGovPostdate = existing.DocsHouseGovPostdate
		bill.SenateFloorSchedulePostdate = existing.SenateFloorSchedulePostdate
	case errors.IsNotFound(err):
		// First observation of this natural key.
		created = true
	default:
		return nil, false, err
	}

	// Save before reconciling relationship collections; they need the ID.
	if err := r.store.PutBill(ctx, bill); err != nil {
		return nil, false, err
	}

	if err := r.processCommittees(ctx, bill, root); err != nil {
		return nil, false, err
	}
	if err := r.processTerms(ctx, bill, root); err != nil {
		return nil, false, err
	}
	if err := r.processCosponsors(ctx, bill, root); err != nil {
		return nil, false, err
	}
	if err := r.processRelatedBills(ctx, bill, root); err != nil {
		return nil, false, err
	}

	// Final save persists the lazily written relationship fields.
	if err := r.store.PutBill(ctx, bill); err != nil {
		return nil, false, err
	}
	return bill, created, nil
}

func (r *Reconciler) processTitles(bill *legis.Bill, root *xmlmap.Node) {
	for _, node := range root.All("titles/title") {
		bill.Titles = append(bill.Titles, legis.BillTitle{
			Type: node.Attr("type"),
			As:   node.Attr("as"),
			Text: node.Text,
		})
	}
	bill.Title = PrimaryTitle(bill.Titles)
}

func (r *Reconciler) processIntroduced(bill *legis.Bill, root *xmlmap.Node) error {
	node := root.First("introduced")
	if node == nil {
		return &errors.MissingElementError{Parent: "bill", Element: "introduced"}
	}
	value := node.Attr("datetime")
	if value == "" {
		return errors.NewMissingAttributeError("introduced", "datetime")
	}
	date, err := xmlmap.ParseDateTime(value)
	if err != nil {
		return err
	}
	bill.IntroducedDate = date
	return nil
}

func (r *Reconciler) processCurrentStatus(bill *legis.Bill, root *xmlmap.Node) error {
	node := root.First("state")
	if node == nil {
		return &errors.MissingElementError{Parent: "bill", Element: "state"}
	}
	value := node.Attr("datetime")
	if value == "" {
		return errors.NewMissingAttributeError("state", "datetime")
	}
	date, err := xmlmap.ParseDateTime(value)
	if err != nil {
		return err
	}
	status, ok := legis.StatusByCode(node.Text)
	if !ok {
		return errors.NewValidationError("state", node.Text, "unknown bill status code")
	}
	bill.CurrentStatusDate = date
	bill.CurrentStatus = status
	return nil
}

// processSponsor resolves the sponsor reference. A missing sponsor node
// or missing id attribute leaves the sponsor null; an id that names an
// unknown person is fatal to the document, since the people reference
// table is authoritative.
func (r *Reconciler) processSponsor(ctx context.Context, bill *legis.Bill, root *xmlmap.Node) error {
	node := root.First("sponsor")
	if node == nil {
		return nil
	}
	value := node.Attr("id")
	if value == "" {
		return nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return errors.NewValidationError("sponsor", value, "malformed sponsor id")
	}

	person, err := r.people.Get(ctx, id)
	if err != nil {
		return err
	}
	bill.SponsorID = person.ID
	bill.SponsorRole = person.RoleAt(bill.IntroducedDate)
	return nil
}

// processCommittees reconciles the committee reference set as a full
// replace. Blank codes are skipped silently; unknown codes are logged
// and dropped.
func (r *Reconciler) processCommittees(ctx context.Context, bill *legis.Bill, root *xmlmap.Node) error {
	var codes []string
	for _, node := range root.All("committees/committee") {
		code := node.Attr("code")
		if code == "" {
			continue
		}
		if _, err := r.store.FindCommitteeByCode(ctx, code); err != nil {
			if errors.IsNotFound(err) {
				logging.Ctx(ctx).Error().Str("code", code).Msg("Could not find committee")
				continue
			}
			return err
		}
		codes = append(codes, code)
	}
	bill.CommitteeCodes = codes
	return nil
}

// processTerms reconciles the subject-term reference set as a full
// replace, resolving names under the classification scheme selected by
// the bill's congress. Unresolved names are logged and dropped.
func (r *Reconciler) processTerms(ctx context.Context, bill *legis.Bill, root *xmlmap.Node) error {
	classification := legis.ClassificationForCongress(bill.Congress)

	var termIDs []int64
	for _, node := range root.All("subjects/term") {
		name := node.Attr("name")
		term, err := r.terms.Get(ctx, classification, name)
		if err != nil {
			if errors.IsNotFound(err) {
				logging.Ctx(ctx).Error().Str("name", name).Msg("Could not find term")
				continue
			}
			return err
		}
		termIDs = append(termIDs, term.ID)
	}
	bill.TermIDs = termIDs
	return nil
}

// processCosponsors reconciles cosponsor join records. Unresolvable
// person identifiers are skipped silently; cosponsor data is
// best-effort. Existing records are updated in place only when joined
// or withdrawn changed.
func (r *Reconciler) processCosponsors(ctx context.Context, bill *legis.Bill, root *xmlmap.Node) error {
	for _, node := range root.All("cosponsors/cosponsor") {
		value := node.Attr("id")
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			continue
		}
		person, err := r.people.Get(ctx, id)
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return err
		}

		joinedValue := node.Attr("joined")
		if joinedValue == "" {
			return errors.NewMissingAttributeError("cosponsor", "joined")
		}
		joined, err := xmlmap.ParseDateTime(joinedValue)
		if err != nil {
			return err
		}

		var withdrawn *utc.Time
		if value := node.Attr("withdrawn"); value != "" {
			date, err := xmlmap.ParseDateTime(value)
			if err != nil {
				return err
			}
			withdrawn = &date
		}

		cosponsor, err := r.store.FindCosponsor(ctx, bill.ID, person.ID)
		if err != nil {
			if !errors.IsNotFound(err) {
				return err
			}
			cosponsor = &legis.Cosponsor{
				BillID:    bill.ID,
				PersonID:  person.ID,
				Joined:    joined,
				Withdrawn: withdrawn,
				Role:      person.RoleAt(joined),
			}
			if err := r.store.PutCosponsor(ctx, cosponsor); err != nil {
				return err
			}
			continue
		}

		if !cosponsor.Joined.Equal(joined) || !equalTimePtr(cosponsor.Withdrawn, withdrawn) {
			cosponsor.Joined = joined
			cosponsor.Withdrawn = withdrawn
			if err := r.store.PutCosponsor(ctx, cosponsor); err != nil {
				return err
			}
		}
	}
	return nil
}

func equalTimePtr(a, b *utc.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// processRelatedBills rebuilds the related-bill set from the document.
// Unresolvable references are skipped without logging; the target may
// simply not yet exist in the corpus.
func (r *Reconciler) processRelatedBills(ctx context.Context, bill *legis.Bill, root *xmlmap.Node) error {
	var related []legis.RelatedBill
	for _, node := range root.All("relatedbills/bill") {
		congress, err := strconv.Atoi(node.Attr("session"))
		if err != nil {
			continue
		}
		typ, ok := legis.BillTypeByCode(node.Attr("type"))
		if !ok {
			continue
		}
		number, err := strconv.Atoi(node.Attr("number"))
		if err != nil {
			continue
		}

		target, err := r.store.FindBillByKey(ctx, legis.BillKey{Congress: congress, Type: typ, Number: number})
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return err
		}
		related = append(related, legis.RelatedBill{
			BillID:        bill.ID,
			RelatedBillID: target.ID,
			Relation:      node.Attr("relation"),
		})
	}
	return r.store.ReplaceRelatedBills(ctx, bill.ID, related)
}

// processMajorActions extracts the fully-replacing ordered action
// sequence from all action elements carrying a state attribute.
func (r *Reconciler) processMajorActions(bill *legis.Bill, root *xmlmap.Node) error {
	var actions []legis.MajorAction
	for _, group := range root.All("actions") {
		for _, node := range group.Children {
			if !node.HasAttr("state") {
				continue
			}
			date, err := xmlmap.ParseDateTime(node.Attr("datetime"))
			if err != nil {
				return err
			}
			status, ok := legis.StatusByCode(node.Attr("state"))
			if !ok {
				return errors.NewValidationError("state", node.Attr("state"), "unknown bill status code")
			}
			text := ""
			if textNode := node.First("text"); textNode != nil {
				text = textNode.Text
			}
			actions = append(actions, legis.MajorAction{Date: date, Status: status, Text: text})
		}
	}
	bill.MajorActions = actions
	return nil
}
