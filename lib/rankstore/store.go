// Package rankstore persists crawl runs and their extracted standings to
// sqlite so that results survive between invocations and can be inspected
// without re-crawling.
package rankstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"rankcrawl/lib/scrapers/vjudge"

	_ "modernc.org/sqlite"
)

const Schema = `
CREATE TABLE IF NOT EXISTS crawl_runs (
	id TEXT PRIMARY KEY,
	contest TEXT NOT NULL,
	source TEXT NOT NULL,
	fetched_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_crawl_runs_contest ON crawl_runs (contest, fetched_at);

CREATE TABLE IF NOT EXISTS ranking_records (
	run_id TEXT NOT NULL REFERENCES crawl_runs (id),
	position INTEGER NOT NULL,
	rank INTEGER NOT NULL,
	team TEXT NOT NULL,
	score INTEGER NOT NULL,
	penalty INTEGER NOT NULL,
	solved INTEGER NOT NULL,
	problems TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);
`

// Open opens (creating if needed) a sqlite database at path and applies the
// schema.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(Schema)
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return Store{db: db}
}

// Run identifies one crawl of one contest.
type Run struct {
	Id      string
	Contest string
	// Source names the pipeline path that produced the data.
	Source    string
	FetchedAt time.Time
}

// Push saves a run and its records atomically, in record order.
func (s Store) Push(ctx context.Context, run Run, records []vjudge.RankingRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO crawl_runs (id, contest, source, fetched_at) VALUES (?, ?, ?, ?)`,
		run.Id, run.Contest, run.Source, run.FetchedAt.Unix(),
	)
	if err != nil {
		return err
	}

	for i, r := range records {
		problems, err := json.Marshal(r.Problems)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO ranking_records (run_id, position, rank, team, score, penalty, solved, problems)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.Id, i, r.Rank, r.Team, r.Score, r.Penalty, r.Solved, string(problems),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Latest returns the most recent run for a contest and its records. The
// bool result is false when the contest has never been crawled.
func (s Store) Latest(ctx context.Context, contest string) (Run, []vjudge.RankingRecord, bool, error) {
	var run Run
	var fetchedAt int64
	err := s.db.QueryRowContext(
		ctx,
		`SELECT id, contest, source, fetched_at FROM crawl_runs
		 WHERE contest = ? ORDER BY fetched_at DESC, id DESC LIMIT 1`,
		contest,
	).Scan(&run.Id, &run.Contest, &run.Source, &fetchedAt)
	if err == sql.ErrNoRows {
		return Run{}, nil, false, nil
	}
	if err != nil {
		return Run{}, nil, false, err
	}
	run.FetchedAt = time.Unix(fetchedAt, 0)

	records, err := s.records(ctx, run.Id)
	if err != nil {
		return Run{}, nil, false, err
	}
	return run, records, true, nil
}

func (s Store) records(ctx context.Context, runId string) ([]vjudge.RankingRecord, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT rank, team, score, penalty, solved, problems FROM ranking_records
		 WHERE run_id = ? ORDER BY position`,
		runId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []vjudge.RankingRecord
	for rows.Next() {
		var r vjudge.RankingRecord
		var problems string
		err := rows.Scan(&r.Rank, &r.Team, &r.Score, &r.Penalty, &r.Solved, &problems)
		if err != nil {
			return nil, err
		}
		err = json.Unmarshal([]byte(problems), &r.Problems)
		if err != nil {
			slog.Warn("failed to unmarshal stored problem list", "run", runId, "err", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
