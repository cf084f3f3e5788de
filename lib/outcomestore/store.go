// Package outcomestore persists probe outcomes so that past runs can
// be re-examined. Storing an outcome and reloading it reproduces the
// same discriminant and payload.
package outcomestore

import (
	"context"
	"courseprobe/lib/queryclient"
	"database/sql"
	"strings"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

const Schema = `
create table if not exists probe_outcome (
	id integer primary key autoincrement,
	created_at integer not null,
	operation text not null,
	endpoint text not null,
	outcome text not null
);
create index if not exists probe_outcome_created_at on probe_outcome (created_at);
`

type ProbeRecord struct {
	Id        int64
	CreatedAt time.Time
	Operation string
	Endpoint  string
	Outcome   queryclient.Outcome
}

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) (Store, error) {
	_, err := database.Exec(Schema)
	if err != nil {
		return Store{}, err
	}
	return Store{db: database}, nil
}

// Open opens a store at the given path. libsql:// urls go through the
// libsql driver, everything else is treated as a local sqlite file
// (":memory:" included).
func Open(path string) (Store, error) {
	driver := "sqlite"
	if strings.HasPrefix(path, "libsql://") {
		driver = "libsql"
	}
	database, err := sql.Open(driver, path)
	if err != nil {
		return Store{}, err
	}
	return NewStore(database)
}

func (s Store) Close() error {
	return s.db.Close()
}

func (s Store) Save(ctx context.Context, rec ProbeRecord) (int64, error) {
	encoded, err := rec.Outcome.Encode()
	if err != nil {
		return 0, err
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	res, err := s.db.ExecContext(
		ctx,
		`insert into probe_outcome (created_at, operation, endpoint, outcome) values (?, ?, ?, ?)`,
		createdAt.Unix(), rec.Operation, rec.Endpoint, string(encoded),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s Store) Get(ctx context.Context, id int64) (ProbeRecord, error) {
	row := s.db.QueryRowContext(
		ctx,
		`select id, created_at, operation, endpoint, outcome from probe_outcome where id = ?`,
		id,
	)
	return scanRecord(row.Scan)
}

// List returns the most recent records, newest first.
func (s Store) List(ctx context.Context, limit int) ([]ProbeRecord, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`select id, created_at, operation, endpoint, outcome from probe_outcome order by created_at desc, id desc limit ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProbeRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanRecord(scan func(...any) error) (ProbeRecord, error) {
	var rec ProbeRecord
	var createdAt int64
	var outcome string
	err := scan(&rec.Id, &createdAt, &rec.Operation, &rec.Endpoint, &outcome)
	if err != nil {
		return ProbeRecord{}, err
	}
	rec.CreatedAt = time.Unix(createdAt, 0)
	rec.Outcome, err = queryclient.DecodeOutcome([]byte(outcome))
	if err != nil {
		return ProbeRecord{}, err
	}
	return rec, nil
}
