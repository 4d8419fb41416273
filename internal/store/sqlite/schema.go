package sqlite

// schema is applied on every open; all statements are idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS people (
	id    INTEGER PRIMARY KEY,
	name  TEXT NOT NULL,
	roles TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS committees (
	code TEXT PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS terms (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	name            TEXT NOT NULL,
	classification  INTEGER NOT NULL,
	parent_id       INTEGER NOT NULL DEFAULT 0,
	normalized_name TEXT NOT NULL,
	UNIQUE (classification, normalized_name)
);

CREATE TABLE IF NOT EXISTS bills (
	id                             INTEGER PRIMARY KEY AUTOINCREMENT,
	congress                       INTEGER NOT NULL,
	bill_type                      TEXT NOT NULL,
	number                         INTEGER NOT NULL,
	title                          TEXT NOT NULL DEFAULT '',
	titles                         TEXT NOT NULL DEFAULT '[]',
	introduced_date                TEXT NOT NULL,
	current_status                 TEXT NOT NULL,
	current_status_date            TEXT NOT NULL,
	sponsor_id                     INTEGER NOT NULL DEFAULT 0,
	sponsor_role                   TEXT,
	major_actions                  TEXT NOT NULL DEFAULT '[]',
	docs_house_gov_postdate        TEXT,
	senate_floor_schedule_postdate TEXT,
	UNIQUE (congress, bill_type, number)
);

CREATE TABLE IF NOT EXISTS bill_committees (
	bill_id        INTEGER NOT NULL,
	committee_code TEXT NOT NULL,
	PRIMARY KEY (bill_id, committee_code)
);

CREATE TABLE IF NOT EXISTS bill_terms (
	bill_id INTEGER NOT NULL,
	term_id INTEGER NOT NULL,
	PRIMARY KEY (bill_id, term_id)
);

CREATE TABLE IF NOT EXISTS cosponsors (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	bill_id   INTEGER NOT NULL,
	person_id INTEGER NOT NULL,
	joined    TEXT NOT NULL,
	withdrawn TEXT,
	role      TEXT,
	UNIQUE (bill_id, person_id)
);

CREATE TABLE IF NOT EXISTS related_bills (
	bill_id         INTEGER NOT NULL,
	related_bill_id INTEGER NOT NULL,
	relation        TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_related_bills_bill ON related_bills (bill_id);

CREATE TABLE IF NOT EXISTS files (
	path      TEXT PRIMARY KEY,
	signature TEXT NOT NULL
);
`
