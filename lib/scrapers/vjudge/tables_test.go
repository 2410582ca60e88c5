package vjudge

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, opts ClientOptions) *Client {
	t.Helper()
	client, err := NewClient(opts)
	require.NoError(t, err)
	return client
}

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

// a standings table carrying every keyword signal, more than two rows and
// more than five elapsed-time strings
const strongTable = `<table>
	<tr><th>Rank</th><th>Team</th><th>Score</th><th>Penalty</th><th>A</th><th>B</th></tr>
	<tr><td>1</td><td>red</td><td>2</td><td>240</td><td>0:30:00</td><td>1:30:00</td></tr>
	<tr><td>2</td><td>green</td><td>1</td><td>130</td><td>0:50:00</td><td>-</td></tr>
	<tr><td>3</td><td>blue</td><td>1</td><td>200</td><td>1:10:00</td><td>2:10:00 (-1)</td></tr>
	<tr><td>4</td><td>white</td><td>0</td><td>0</td><td>-</td><td>0:59:59</td></tr>
</table>`

const decoyTable = `<table>
	<tr><td>Home</td><td>About</td><td>Contact</td></tr>
</table>`

func TestScoreTableSignals(t *testing.T) {
	doc := parseDoc(t, strongTable)
	candidate := scoreTable(0, doc.Find("table"), nil)

	require.True(t, candidate.hasRank)
	require.True(t, candidate.hasTeam)
	require.True(t, candidate.hasScore)
	require.True(t, candidate.hasPenalty)
	require.True(t, candidate.enoughRows)
	require.False(t, candidate.fingerprintHit)
	require.Equal(t, 6, candidate.durations)
	require.GreaterOrEqual(t, candidate.score, 7)
}

func TestScoreTableNoSignals(t *testing.T) {
	doc := parseDoc(t, decoyTable)
	candidate := scoreTable(0, doc.Find("table"), nil)
	require.Equal(t, 0, candidate.score)
}

func TestScoreTableFingerprint(t *testing.T) {
	doc := parseDoc(t, decoyTable)
	candidate := scoreTable(0, doc.Find("table"), []string{"About"})
	require.True(t, candidate.fingerprintHit)
	require.Equal(t, 3, candidate.score)
}

func TestExtractFromTablesSelectsStandings(t *testing.T) {
	client := newTestClient(t, ClientOptions{})
	doc := parseDoc(t, "<html><body>"+decoyTable+strongTable+"</body></html>")

	records := client.extractFromTables(doc)
	require.Len(t, records, 4)

	expected := RankingRecord{
		Rank:     1,
		Team:     "red",
		Score:    2,
		Penalty:  240,
		Solved:   2,
		Problems: []string{"0:30:00", "1:30:00"},
	}
	if diff := cmp.Diff(expected, records[0]); diff != "" {
		t.Fatal(diff)
	}

	// "2:10:00 (-1)" starts with a time, "-" does not
	require.Equal(t, 2, records[2].Solved)
	require.Equal(t, 1, records[3].Solved)
}

func TestExtractFromTablesNoTablePastThreshold(t *testing.T) {
	client := newTestClient(t, ClientOptions{})
	doc := parseDoc(t, "<html><body>"+decoyTable+"</body></html>")
	require.Empty(t, client.extractFromTables(doc))
}

func TestExtractFromTablesFirstPastThresholdWins(t *testing.T) {
	// the second table scores higher, but the first one already clears the
	// threshold and selection stops there
	weaker := `<table>
		<tr><th>Rank</th><th>Team</th><th>Score</th><th>Penalty</th></tr>
		<tr><td>1</td><td>early</td><td>3</td><td>10</td></tr>
		<tr><td>2</td><td>bird</td><td>2</td><td>20</td></tr>
	</table>`
	client := newTestClient(t, ClientOptions{})
	doc := parseDoc(t, "<html><body>"+weaker+strongTable+"</body></html>")

	records := client.extractFromTables(doc)
	require.NotEmpty(t, records)
	require.Equal(t, "early", records[0].Team)
}

func TestParseRankingTableRowRules(t *testing.T) {
	html := `<table>
		<tr><th>Rank</th><th>Team</th><th>Score</th><th>Penalty</th></tr>
		<tr><td>not-a-rank</td><td>alpha</td><td>3</td><td>120` + "\n" + `2:00:00</td></tr>
		<tr><td>too</td><td>short</td></tr>
		<tr><td>7</td><td>beta</td><td>1</td><td>30</td></tr>
	</table>`
	client := newTestClient(t, ClientOptions{})
	doc := parseDoc(t, html)

	records := client.parseRankingTable(doc.Find("table"))
	require.Len(t, records, 2)

	// non-numeric rank cell falls back to the row's position
	require.Equal(t, 1, records[0].Rank)
	// penalty only reads up to the first newline
	require.Equal(t, 120, records[0].Penalty)
	// an explicit numeric rank is kept even when rows were skipped
	require.Equal(t, 7, records[1].Rank)
}
