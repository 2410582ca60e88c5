package vjudge

import (
	"fmt"

	"rankcrawl/lib/textutil"
)

// containerKeys are the keys searched, in order, when a top-level JSON value
// is an object instead of a list of entries.
var containerKeys = []string{"data", "participants", "rank", "standings", "rows"}

var (
	rankKeys    = []string{"rank", "rk"}
	teamKeys    = []string{"name", "user", "team", "teamName"}
	scoreKeys   = []string{"score", "totalScore", "sc"}
	penaltyKeys = []string{"penalty", "totalPenalty", "time"}
	solvedKeys  = []string{"solved", "ac"}
)

// NormalizeRecords maps a decoded JSON value of unknown shape into the
// canonical record schema. It accepts either a list of entries (each a
// key-value object or a positional array) or an object wrapping such a list
// under one of a few well-known keys. Anything unrecognizable produces an
// empty result, never an error.
func NormalizeRecords(value any) []RankingRecord {
	switch v := value.(type) {
	case map[string]any:
		for _, key := range containerKeys {
			if nested, ok := v[key].([]any); ok {
				return NormalizeRecords(nested)
			}
		}
		return nil
	case []any:
		var out []RankingRecord
		for i, entry := range v {
			switch e := entry.(type) {
			case map[string]any:
				out = append(out, normalizeMapEntry(e, i))
			case []any:
				if len(e) >= 3 {
					out = append(out, normalizePositionalEntry(e, i))
				}
			}
		}
		return out
	}
	return nil
}

// normalizeMaps adapts record sources that already produce map-shaped rows,
// such as the browser collaborator.
func normalizeMaps(entries []map[string]any) []RankingRecord {
	generic := make([]any, len(entries))
	for i, e := range entries {
		generic[i] = e
	}
	return NormalizeRecords(generic)
}

func normalizeMapEntry(entry map[string]any, position int) RankingRecord {
	record := RankingRecord{
		Rank:    position + 1,
		Team:    fmt.Sprintf("Team_%d", position+1),
		Penalty: toInt(firstKey(entry, penaltyKeys)),
		Score:   toInt(firstKey(entry, scoreKeys)),
	}
	if v, ok := lookupFirst(entry, rankKeys); ok {
		record.Rank = toInt(v)
	}
	if v, ok := lookupFirst(entry, teamKeys); ok {
		record.Team = fmt.Sprint(v)
	}

	problems, hasProblems := entry["problems"].([]any)
	if hasProblems {
		record.Problems = make([]string, len(problems))
		for i, p := range problems {
			record.Problems[i] = fmt.Sprint(p)
		}
	}
	if v, ok := lookupFirst(entry, solvedKeys); ok {
		record.Solved = toInt(v)
	} else if hasProblems {
		record.Solved = len(problems)
	}
	return record
}

// positional entries map indices 0..4 to rank, team, score, penalty, solved.
func normalizePositionalEntry(entry []any, position int) RankingRecord {
	record := RankingRecord{
		Rank: toInt(entry[0]),
		Team: fmt.Sprint(entry[1]),
	}
	if record.Rank == 0 {
		record.Rank = position + 1
	}
	if record.Team == "" {
		record.Team = fmt.Sprintf("Team_%d", position+1)
	}
	record.Score = toInt(entry[2])
	if len(entry) > 3 {
		record.Penalty = toInt(entry[3])
	}
	if len(entry) > 4 {
		record.Solved = toInt(entry[4])
	}
	return record
}

func lookupFirst(entry map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := entry[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func firstKey(entry map[string]any, keys []string) any {
	v, _ := lookupFirst(entry, keys)
	return v
}

// toInt coerces the loosely typed values found in scraped JSON into ints.
func toInt(value any) int {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		return textutil.CoerceInt(v)
	default:
		return textutil.CoerceInt(fmt.Sprint(v))
	}
}
