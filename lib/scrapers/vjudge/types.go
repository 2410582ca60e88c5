package vjudge

import "context"

// RankingRecord is one team's row in a contest's standings, normalized from
// whatever shape the page exposed it in. Values are never mutated after
// construction.
type RankingRecord struct {
	// Rank is the reported rank, or the record's 1-based position in its
	// source sequence when the page did not report one.
	Rank int
	// Team is the display name of the team or participant.
	Team string
	// Score is the reported total score.
	Score int
	// Penalty is the reported penalty in the contest's time units.
	//
	// When the page renders penalty as an elapsed time ("0:05:00") this
	// value is produced by digit-stripping coercion and carries a
	// nonsensical magnitude (500 for the example). That matches how the
	// observed pages report and is preserved rather than reinterpreted.
	Penalty int
	// Solved counts per-problem cells whose text starts with an
	// elapsed-time string. Independent of len(Problems).
	Solved int
	// Problems holds the raw per-problem result cells in column order.
	// Empty for records that came from JSON paths without problem data.
	Problems []string
}

// BrowserFetcher is the browser-automation collaborator invoked as the last
// fallback. Its records use the loose map shape of the other sources and go
// through the same normalization. Implementations that cannot run in the
// current environment should return an empty slice, not an error.
type BrowserFetcher interface {
	FetchStandings(ctx context.Context, contestID string) ([]map[string]any, error)
}
