package vjudge

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func decodeJSON(t *testing.T, raw string) any {
	var value any
	err := json.Unmarshal([]byte(raw), &value)
	require.NoError(t, err)
	return value
}

func TestNormalizeCanonicalKeys(t *testing.T) {
	value := decodeJSON(t, `[
		{"rank": 1, "team": "alpha", "score": 10, "penalty": 20, "solved": 3},
		{"rank": 2, "team": "beta", "score": 8, "penalty": 35, "solved": 2}
	]`)

	expected := []RankingRecord{
		{Rank: 1, Team: "alpha", Score: 10, Penalty: 20, Solved: 3},
		{Rank: 2, Team: "beta", Score: 8, Penalty: 35, Solved: 2},
	}
	if diff := cmp.Diff(expected, NormalizeRecords(value)); diff != "" {
		t.Fatal(diff)
	}
}

func TestNormalizeSynonyms(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected RankingRecord
	}{
		{
			name:     "short keys",
			raw:      `[{"rk": 4, "user": "gamma", "sc": 2, "time": 90, "ac": 1}]`,
			expected: RankingRecord{Rank: 4, Team: "gamma", Score: 2, Penalty: 90, Solved: 1},
		},
		{
			name:     "long keys",
			raw:      `[{"rank": 1, "teamName": "delta", "totalScore": 5, "totalPenalty": 10, "solved": 2}]`,
			expected: RankingRecord{Rank: 1, Team: "delta", Score: 5, Penalty: 10, Solved: 2},
		},
		{
			name: "first matching key wins",
			raw:  `[{"name": "primary", "team": "secondary", "score": 1, "sc": 99}]`,
			expected: RankingRecord{
				Rank: 1, Team: "primary", Score: 1,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			records := NormalizeRecords(decodeJSON(t, tc.raw))
			require.Len(t, records, 1)
			if diff := cmp.Diff(tc.expected, records[0]); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestNormalizeDefaults(t *testing.T) {
	value := decodeJSON(t, `[{}, {"score": 7}]`)
	records := NormalizeRecords(value)
	require.Len(t, records, 2)

	require.Equal(t, RankingRecord{Rank: 1, Team: "Team_1"}, records[0])
	require.Equal(t, RankingRecord{Rank: 2, Team: "Team_2", Score: 7}, records[1])
}

func TestNormalizeSolvedFromProblems(t *testing.T) {
	value := decodeJSON(t, `[{"team": "eps", "problems": ["0:10:00", "-", "1:00:00"]}]`)
	records := NormalizeRecords(value)
	require.Len(t, records, 1)

	require.Equal(t, 3, records[0].Solved)
	require.Equal(t, []string{"0:10:00", "-", "1:00:00"}, records[0].Problems)
}

func TestNormalizePositional(t *testing.T) {
	value := decodeJSON(t, `[[1, "Alice", 10, 5, 3]]`)
	records := NormalizeRecords(value)
	require.Len(t, records, 1)

	expected := RankingRecord{Rank: 1, Team: "Alice", Score: 10, Penalty: 5, Solved: 3}
	if diff := cmp.Diff(expected, records[0]); diff != "" {
		t.Fatal(diff)
	}
}

func TestNormalizePositionalShortEntriesSkipped(t *testing.T) {
	value := decodeJSON(t, `[[1, "Alice"], [2, "Bob", 4]]`)
	records := NormalizeRecords(value)
	require.Len(t, records, 1)
	require.Equal(t, "Bob", records[0].Team)
}

func TestNormalizeContainerKeys(t *testing.T) {
	for _, key := range []string{"data", "participants", "rank", "standings", "rows"} {
		value := decodeJSON(t, `{"`+key+`": [{"team": "zeta", "score": 1}]}`)
		records := NormalizeRecords(value)
		require.Len(t, records, 1, "container key: %s", key)
		require.Equal(t, "zeta", records[0].Team)
	}
}

func TestNormalizeUnrecognizableShapes(t *testing.T) {
	require.Empty(t, NormalizeRecords(decodeJSON(t, `{"unrelated": 42}`)))
	require.Empty(t, NormalizeRecords(decodeJSON(t, `"just a string"`)))
	require.Empty(t, NormalizeRecords(decodeJSON(t, `[]`)))
	require.Empty(t, NormalizeRecords(nil))
}
