package rankstore

import (
	"context"
	"testing"
	"time"

	"rankcrawl/lib/scrapers/vjudge"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()
	store := NewStore(db)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		_, _, ok, err := store.Latest(ctx, "739901")
		require.NoError(t, err)
		require.False(t, ok)
	}

	records := []vjudge.RankingRecord{
		{Rank: 1, Team: "alpha", Score: 3, Penalty: 100, Solved: 3, Problems: []string{"0:10:00", "0:20:00", "1:00:00"}},
		{Rank: 2, Team: "beta", Score: 2, Penalty: 140, Solved: 2, Problems: []string{"0:30:00", "-", "1:10:00 (-2)"}},
	}
	first := Run{
		Id:        "run-1",
		Contest:   "739901",
		Source:    "probe-endpoints",
		FetchedAt: time.Unix(1700000000, 0),
	}
	require.NoError(t, store.Push(ctx, first, records))

	{
		run, got, ok, err := store.Latest(ctx, "739901")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, first.Id, run.Id)
		require.Equal(t, first.Source, run.Source)
		if diff := cmp.Diff(records, got); diff != "" {
			t.Fatal(diff)
		}
	}

	// a later run becomes the latest one
	second := Run{
		Id:        "run-2",
		Contest:   "739901",
		Source:    "scan-main-page-tables",
		FetchedAt: time.Unix(1700003600, 0),
	}
	require.NoError(t, store.Push(ctx, second, records[:1]))

	{
		run, got, ok, err := store.Latest(ctx, "739901")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, second.Id, run.Id)
		require.Len(t, got, 1)
	}

	// other contests are unaffected
	{
		_, _, ok, err := store.Latest(ctx, "111111")
		require.NoError(t, err)
		require.False(t, ok)
	}
}

func TestStoreDuplicateRunId(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()
	store := NewStore(db)

	ctx := context.Background()
	run := Run{Id: "dup", Contest: "1", Source: "probe-endpoints", FetchedAt: time.Unix(0, 0)}
	require.NoError(t, store.Push(ctx, run, nil))
	require.Error(t, store.Push(ctx, run, nil))
}
