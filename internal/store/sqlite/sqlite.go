// Package sqlite provides the persistent Store implementation backed by
// SQLite via the pure-Go modernc.org/sqlite driver. Complex owned
// collections (titles, major actions, roles) are stored as JSON columns;
// relationship sets live in join tables that are replaced wholesale
// during reconciliation.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/utc"
	_ "modernc.org/sqlite" // database/sql driver

	"github.com/capitolworks/legisync/pkg/errors"
	"github.com/capitolworks/legisync/pkg/legis"
)

// Store is a SQLite-backed implementation of legis.Store.
type Store struct {
	db *sql.DB
}

// Compile-time interface check.
var _ legis.Store = (*Store)(nil)

// Open opens (creating if necessary) the database at path and applies
// the schema. Use ":memory:" for an ephemeral database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}

	// The driver is safe for concurrent use, but SQLite writes serialize;
	// the batch pipeline is single-threaded anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, errors.WrapResource("configure", "database", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.WrapResource("migrate", "database", path, err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// FindBillByKey looks up a bill by its natural key.
func (s *Store) FindBillByKey(ctx context.Context, key legis.BillKey) (*legis.Bill, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, congress, bill_type, number, title, titles,
		       introduced_date, current_status, current_status_date,
		       sponsor_id, sponsor_role, major_actions,
		       docs_house_gov_postdate, senate_floor_schedule_postdate
		  FROM bills
		 WHERE congress = ? AND bill_type = ? AND number = ?`,
		key.Congress, key.Type.Code(), key.Number)

	bill, err := scanBill(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewReferenceNotFoundError("bill", key.String())
	}
	if err != nil {
		return nil, errors.WrapResource("find", "bill", key.String(), err)
	}

	if err := s.loadBillRefs(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// PutBill inserts or updates a bill together with its owned committee
// and term reference sets.
func (s *Store) PutBill(ctx context.Context, bill *legis.Bill) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.WrapResource("update", "bill", bill.BillKey.String(), err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	titles, err := json.Marshal(bill.Titles)
	if err != nil {
		return errors.WrapResource("encode", "bill titles", bill.BillKey.String(), err)
	}
	actions, err := json.Marshal(bill.MajorActions)
	if err != nil {
		return errors.WrapResource("encode", "bill actions", bill.BillKey.String(), err)
	}
	role, err := marshalRole(bill.SponsorRole)
	if err != nil {
		return errors.WrapResource("encode", "sponsor role", bill.BillKey.String(), err)
	}

	if bill.ID == 0 {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO bills (congress, bill_type, number, title, titles,
			                   introduced_date, current_status, current_status_date,
			                   sponsor_id, sponsor_role, major_actions,
			                   docs_house_gov_postdate, senate_floor_schedule_postdate)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			bill.Congress, bill.Type.Code(), bill.Number, bill.Title, string(titles),
			formatTime(bill.IntroducedDate), string(bill.CurrentStatus), formatTime(bill.CurrentStatusDate),
			bill.SponsorID, role, string(actions),
			formatTimePtr(bill.DocsHouseGovPostdate), formatTimePtr(bill.SenateFloorSchedulePostdate))
		if err != nil {
			return wrapConstraint("create", "bill", bill.BillKey.String(), err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return errors.WrapResource("create", "bill", bill.BillKey.String(), err)
		}
		bill.ID = id
	} else {
		_, err := tx.ExecContext(ctx, `
			UPDATE bills
			   SET congress = ?, bill_type = ?, number = ?, title = ?, titles = ?,
			       introduced_date = ?, current_status = ?, current_status_date = ?,
			       sponsor_id = ?, sponsor_role = ?, major_actions = ?,
			       docs_house_gov_postdate = ?, senate_floor_schedule_postdate = ?
			 WHERE id = ?`,
			bill.Congress, bill.Type.Code(), bill.Number, bill.Title, string(titles),
			formatTime(bill.IntroducedDate), string(bill.CurrentStatus), formatTime(bill.CurrentStatusDate),
			bill.SponsorID, role, string(actions),
			formatTimePtr(bill.DocsHouseGovPostdate), formatTimePtr(bill.SenateFloorSchedulePostdate),
			bill.ID)
		if err != nil {
			return errors.WrapResource("update", "bill", bill.BillKey.String(), err)
		}
	}

	// Reference sets are full-replace.
	if _, err := tx.ExecContext(ctx, `DELETE FROM bill_committees WHERE bill_id = ?`, bill.ID); err != nil {
		return errors.WrapResource("update", "bill committees", bill.BillKey.String(), err)
	}
	for _, code := range bill.CommitteeCodes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO bill_committees (bill_id, committee_code) VALUES (?, ?)`, bill.ID, code); err != nil {
			return errors.WrapResource("update", "bill committees", bill.BillKey.String(), err)
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM bill_terms WHERE bill_id = ?`, bill.ID); err != nil {
		return errors.WrapResource("update", "bill terms", bill.BillKey.String(), err)
	}
	for _, termID := range bill.TermIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO bill_terms (bill_id, term_id) VALUES (?, ?)`, bill.ID, termID); err != nil {
			return errors.WrapResource("update", "bill terms", bill.BillKey.String(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.WrapResource("update", "bill", bill.BillKey.String(), err)
	}
	return nil
}

// RelatedBills lists the related-bill rows owned by a bill.
func (s *Store) RelatedBills(ctx context.Context, billID int64) ([]legis.RelatedBill, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT bill_id, related_bill_id, relation FROM related_bills WHERE bill_id = ?`, billID)
	if err != nil {
		return nil, errors.WrapResource("find", "related bills", strconv.FormatInt(billID, 10), err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows

	var related []legis.RelatedBill
	for rows.Next() {
		var rel legis.RelatedBill
		if err := rows.Scan(&rel.BillID, &rel.RelatedBillID, &rel.Relation); err != nil {
			return nil, errors.WrapResource("find", "related bills", strconv.FormatInt(billID, 10), err)
		}
		related = append(related, rel)
	}
	return related, rows.Err()
}

// ReplaceRelatedBills deletes and rebuilds the related-bill rows for a bill.
func (s *Store) ReplaceRelatedBills(ctx context.Context, billID int64, related []legis.RelatedBill) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.WrapResource("update", "related bills", strconv.FormatInt(billID, 10), err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM related_bills WHERE bill_id = ?`, billID); err != nil {
		return errors.WrapResource("delete", "related bills", strconv.FormatInt(billID, 10), err)
	}
	for _, rel := range related {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO related_bills (bill_id, related_bill_id, relation) VALUES (?, ?, ?)`,
			billID, rel.RelatedBillID, rel.Relation); err != nil {
			return errors.WrapResource("create", "related bill", strconv.FormatInt(billID, 10), err)
		}
	}
	return tx.Commit()
}

// Terms lists all taxonomy terms.
func (s *Store) Terms(ctx context.Context) ([]legis.Term, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, classification, parent_id FROM terms`)
	if err != nil {
		return nil, errors.WrapResource("load", "terms", "", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows

	var terms []legis.Term
	for rows.Next() {
		var term legis.Term
		if err := rows.Scan(&term.ID, &term.Name, &term.Classification, &term.ParentID); err != nil {
			return nil, errors.WrapResource("load", "terms", "", err)
		}
		terms = append(terms, term)
	}
	return terms, rows.Err()
}

// PutTerm inserts a term, enforcing (classification, normalized name)
// uniqueness.
func (s *Store) PutTerm(ctx context.Context, term *legis.Term) error {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO terms (name, classification, parent_id, normalized_name) VALUES (?, ?, ?, ?)`,
		term.Name, term.Classification, term.ParentID, legis.NormalizeTermName(term.Name))
	if err != nil {
		if isConstraintError(err) {
			return &errors.DuplicateTermError{
				Classification: term.Classification.String(),
				Name:           term.Name,
			}
		}
		return errors.WrapResource("create", "term", term.Name, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return errors.WrapResource("create", "term", term.Name, err)
	}
	term.ID = id
	return nil
}

// SetTermParent re-establishes the parent edge of an existing term.
func (s *Store) SetTermParent(ctx context.Context, termID, parentID int64) error {
	result, err := s.db.ExecContext(ctx, `UPDATE terms SET parent_id = ? WHERE id = ?`, parentID, termID)
	if err != nil {
		return errors.WrapResource("update", "term", strconv.FormatInt(termID, 10), err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return errors.NewReferenceNotFoundError("term", strconv.FormatInt(termID, 10))
	}
	return nil
}

// DeleteTerm removes a term and any bill references to it.
func (s *Store) DeleteTerm(ctx context.Context, termID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.WrapResource("delete", "term", strconv.FormatInt(termID, 10), err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM bill_terms WHERE term_id = ?`, termID); err != nil {
		return errors.WrapResource("delete", "term references", strconv.FormatInt(termID, 10), err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM terms WHERE id = ?`, termID); err != nil {
		return errors.WrapResource("delete", "term", strconv.FormatInt(termID, 10), err)
	}
	return tx.Commit()
}

// People lists all people with their roles.
func (s *Store) People(ctx context.Context) ([]legis.Person, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, roles FROM people`)
	if err != nil {
		return nil, errors.WrapResource("load", "people", "", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows

	var people []legis.Person
	for rows.Next() {
		var person legis.Person
		var roles string
		if err := rows.Scan(&person.ID, &person.Name, &roles); err != nil {
			return nil, errors.WrapResource("load", "people", "", err)
		}
		if err := json.Unmarshal([]byte(roles), &person.Roles); err != nil {
			return nil, errors.WrapResource("decode", "person roles", strconv.FormatInt(person.ID, 10), err)
		}
		people = append(people, person)
	}
	return people, rows.Err()
}

// PutPerson inserts or replaces a person.
func (s *Store) PutPerson(ctx context.Context, person *legis.Person) error {
	roles, err := json.Marshal(person.Roles)
	if err != nil {
		return errors.WrapResource("encode", "person roles", strconv.FormatInt(person.ID, 10), err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO people (id, name, roles) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, roles = excluded.roles`,
		person.ID, person.Name, string(roles))
	if err != nil {
		return errors.WrapResource("update", "person", strconv.FormatInt(person.ID, 10), err)
	}
	return nil
}

// Committees lists all committees.
func (s *Store) Committees(ctx context.Context) ([]legis.Committee, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT code, name FROM committees`)
	if err != nil {
		return nil, errors.WrapResource("load", "committees", "", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows

	var committees []legis.Committee
	for rows.Next() {
		var committee legis.Committee
		if err := rows.Scan(&committee.Code, &committee.Name); err != nil {
			return nil, errors.WrapResource("load", "committees", "", err)
		}
		committees = append(committees, committee)
	}
	return committees, rows.Err()
}

// FindCommitteeByCode looks up a committee by code.
func (s *Store) FindCommitteeByCode(ctx context.Context, code string) (*legis.Committee, error) {
	var committee legis.Committee
	err := s.db.QueryRowContext(ctx,
		`SELECT code, name FROM committees WHERE code = ?`, code).
		Scan(&committee.Code, &committee.Name)
	if err == sql.ErrNoRows {
		return nil, errors.NewReferenceNotFoundError("committee", code)
	}
	if err != nil {
		return nil, errors.WrapResource("find", "committee", code, err)
	}
	return &committee, nil
}

// PutCommittee inserts or replaces a committee.
func (s *Store) PutCommittee(ctx context.Context, committee *legis.Committee) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO committees (code, name) VALUES (?, ?)
		ON CONFLICT (code) DO UPDATE SET name = excluded.name`,
		committee.Code, committee.Name)
	if err != nil {
		return errors.WrapResource("update", "committee", committee.Code, err)
	}
	return nil
}

// FindCosponsor looks up the join record for a (bill, person) pair.
func (s *Store) FindCosponsor(ctx context.Context, billID, personID int64) (*legis.Cosponsor, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, bill_id, person_id, joined, withdrawn, role
		  FROM cosponsors WHERE bill_id = ? AND person_id = ?`, billID, personID)

	cosponsor, err := scanCosponsor(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewReferenceNotFoundError("cosponsor", strconv.FormatInt(personID, 10))
	}
	if err != nil {
		return nil, errors.WrapResource("find", "cosponsor", strconv.FormatInt(personID, 10), err)
	}
	return cosponsor, nil
}

// Cosponsors lists the join records for a bill.
func (s *Store) Cosponsors(ctx context.Context, billID int64) ([]legis.Cosponsor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, bill_id, person_id, joined, withdrawn, role
		  FROM cosponsors WHERE bill_id = ?`, billID)
	if err != nil {
		return nil, errors.WrapResource("find", "cosponsors", strconv.FormatInt(billID, 10), err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows

	var cosponsors []legis.Cosponsor
	for rows.Next() {
		cosponsor, err := scanCosponsor(rows)
		if err != nil {
			return nil, errors.WrapResource("find", "cosponsors", strconv.FormatInt(billID, 10), err)
		}
		cosponsors = append(cosponsors, *cosponsor)
	}
	return cosponsors, rows.Err()
}

// PutCosponsor inserts or updates a join record.
func (s *Store) PutCosponsor(ctx context.Context, cosponsor *legis.Cosponsor) error {
	role, err := marshalRole(cosponsor.Role)
	if err != nil {
		return errors.WrapResource("encode", "cosponsor role", strconv.FormatInt(cosponsor.PersonID, 10), err)
	}

	if cosponsor.ID == 0 {
		result, err := s.db.ExecContext(ctx, `
			INSERT INTO cosponsors (bill_id, person_id, joined, withdrawn, role)
			VALUES (?, ?, ?, ?, ?)`,
			cosponsor.BillID, cosponsor.PersonID,
			formatTime(cosponsor.Joined), formatTimePtr(cosponsor.Withdrawn), role)
		if err != nil {
			return wrapConstraint("create", "cosponsor", strconv.FormatInt(cosponsor.PersonID, 10), err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return errors.WrapResource("create", "cosponsor", strconv.FormatInt(cosponsor.PersonID, 10), err)
		}
		cosponsor.ID = id
		return nil
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE cosponsors SET joined = ?, withdrawn = ?, role = ? WHERE id = ?`,
		formatTime(cosponsor.Joined), formatTimePtr(cosponsor.Withdrawn), role, cosponsor.ID)
	if err != nil {
		return errors.WrapResource("update", "cosponsor", strconv.FormatInt(cosponsor.PersonID, 10), err)
	}
	return nil
}

// FileSignature returns the stored signature for a path.
func (s *Store) FileSignature(ctx context.Context, path string) (string, error) {
	var signature string
	err := s.db.QueryRowContext(ctx, `SELECT signature FROM files WHERE path = ?`, path).Scan(&signature)
	if err == sql.ErrNoRows {
		return "", errors.NewReferenceNotFoundError("file record", path)
	}
	if err != nil {
		return "", errors.WrapResource("find", "file record", path, err)
	}
	return signature, nil
}

// SaveFileSignature records the signature for a path.
func (s *Store) SaveFileSignature(ctx context.Context, path, signature string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO files (path, signature) VALUES (?, ?)
		ON CONFLICT (path) DO UPDATE SET signature = excluded.signature`,
		path, signature)
	if err != nil {
		return errors.WrapResource("update", "file record", path, err)
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for shared scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanBill(row scanner) (*legis.Bill, error) {
	var bill legis.Bill
	var billType, titles, actions string
	var introduced, statusDate string
	var role, docsPostdate, senatePostdate sql.NullString

	err := row.Scan(&bill.ID, &bill.Congress, &billType, &bill.Number, &bill.Title, &titles,
		&introduced, &bill.CurrentStatus, &statusDate,
		&bill.SponsorID, &role, &actions, &docsPostdate, &senatePostdate)
	if err != nil {
		return nil, err
	}

	typ, ok := legis.BillTypeByCode(billType)
	if !ok {
		return nil, errors.NewValidationError("bill_type", billType, "unknown bill type code")
	}
	bill.Type = typ

	if bill.IntroducedDate, err = parseTime(introduced); err != nil {
		return nil, err
	}
	if bill.CurrentStatusDate, err = parseTime(statusDate); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(titles), &bill.Titles); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(actions), &bill.MajorActions); err != nil {
		return nil, err
	}
	if bill.SponsorRole, err = unmarshalRole(role); err != nil {
		return nil, err
	}
	if bill.DocsHouseGovPostdate, err = parseTimePtr(docsPostdate); err != nil {
		return nil, err
	}
	if bill.SenateFloorSchedulePostdate, err = parseTimePtr(senatePostdate); err != nil {
		return nil, err
	}
	return &bill, nil
}

func scanCosponsor(row scanner) (*legis.Cosponsor, error) {
	var cosponsor legis.Cosponsor
	var joined string
	var withdrawn, role sql.NullString

	err := row.Scan(&cosponsor.ID, &cosponsor.BillID, &cosponsor.PersonID, &joined, &withdrawn, &role)
	if err != nil {
		return nil, err
	}
	if cosponsor.Joined, err = parseTime(joined); err != nil {
		return nil, err
	}
	if cosponsor.Withdrawn, err = parseTimePtr(withdrawn); err != nil {
		return nil, err
	}
	if cosponsor.Role, err = unmarshalRole(role); err != nil {
		return nil, err
	}
	return &cosponsor, nil
}

func (s *Store) loadBillRefs(ctx context.Context, bill *legis.Bill) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT committee_code FROM bill_committees WHERE bill_id = ?`, bill.ID)
	if err != nil {
		return errors.WrapResource("find", "bill committees", bill.BillKey.String(), err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return errors.WrapResource("find", "bill committees", bill.BillKey.String(), err)
		}
		bill.CommitteeCodes = append(bill.CommitteeCodes, code)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	termRows, err := s.db.QueryContext(ctx,
		`SELECT term_id FROM bill_terms WHERE bill_id = ?`, bill.ID)
	if err != nil {
		return errors.WrapResource("find", "bill terms", bill.BillKey.String(), err)
	}
	defer termRows.Close() //nolint:errcheck // read-only rows
	for termRows.Next() {
		var termID int64
		if err := termRows.Scan(&termID); err != nil {
			return errors.WrapResource("find", "bill terms", bill.BillKey.String(), err)
		}
		bill.TermIDs = append(bill.TermIDs, termID)
	}
	return termRows.Err()
}

func marshalRole(role *legis.Role) (sql.NullString, error) {
	if role == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(role)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func unmarshalRole(value sql.NullString) (*legis.Role, error) {
	if !value.Valid {
		return nil, nil
	}
	var role legis.Role
	if err := json.Unmarshal([]byte(value.String), &role); err != nil {
		return nil, err
	}
	return &role, nil
}

func formatTime(t utc.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *utc.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseTime(value string) (utc.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return utc.Time{}, err
	}
	return utc.Time{Time: t.UTC()}, nil
}

func parseTimePtr(value sql.NullString) (*utc.Time, error) {
	if !value.Valid {
		return nil, nil
	}
	t, err := parseTime(value.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func isConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func wrapConstraint(operation, resource, id string, err error) error {
	if isConstraintError(err) {
		return errors.WrapResource(operation, resource, id, errors.ErrAlreadyExists)
	}
	return errors.WrapResource(operation, resource, id, err)
}
