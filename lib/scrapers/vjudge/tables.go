package vjudge

import (
	"strconv"
	"strings"

	"rankcrawl/lib/htmlutil"
	"rankcrawl/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_tables_found    = "tables.found"
	report_tables_score    = "tables.score"
	report_tables_selected = "tables.selected"
	report_tables_header   = "tables.header"
	report_tables_records  = "tables.records"
)

// selectThreshold is the minimum heuristic score a table needs to be treated
// as the standings table.
const selectThreshold = 5

// candidateTable is the per-table signal breakdown computed during
// selection. It only lives as long as the scan.
type candidateTable struct {
	index int

	hasRank    bool
	hasTeam    bool
	hasScore   bool
	hasPenalty bool
	enoughRows bool

	fingerprintHit bool
	durations      int

	score int
}

// scoreTable rates one table purely from its rendered text and row count.
// Header keywords and row count are weak signals worth one point each; a
// configured participant fingerprint is worth three; a high density of
// elapsed-time strings is worth two.
func scoreTable(index int, table *goquery.Selection, fingerprints []string) candidateTable {
	text := table.Text()
	lower := strings.ToLower(text)

	c := candidateTable{
		index:          index,
		hasRank:        strings.Contains(lower, "rank"),
		hasTeam:        strings.Contains(lower, "team"),
		hasScore:       strings.Contains(lower, "score"),
		hasPenalty:     strings.Contains(lower, "penalty"),
		enoughRows:     table.Find("tr").Length() > 2,
		fingerprintHit: textutil.ContainsAny(text, fingerprints),
		durations:      textutil.CountDurations(text),
	}

	for _, signal := range []bool{c.hasRank, c.hasTeam, c.hasScore, c.hasPenalty, c.enoughRows} {
		if signal {
			c.score++
		}
	}
	if c.fingerprintHit {
		c.score += 3
	}
	if c.durations > 5 {
		c.score += 2
	}
	return c
}

// extractFromTables picks the table most likely to hold standings out of an
// arbitrary page and parses it row by row. Tables are scored in document
// order and the first one past the threshold wins; no global maximum search
// is performed.
func (c *Client) extractFromTables(doc *goquery.Document) []RankingRecord {
	tables := doc.Find("table")
	c.tel.ReportCount(report_tables_found, int64(tables.Length()))

	var selected *goquery.Selection
	tables.EachWithBreak(func(i int, table *goquery.Selection) bool {
		candidate := scoreTable(i, table, c.fingerprints)
		c.tel.ReportDebug(
			report_tables_score,
			candidate.index,
			candidate.score,
			candidate.fingerprintHit,
			candidate.durations,
		)
		if candidate.score >= selectThreshold {
			c.tel.ReportDebug(report_tables_selected, candidate.index, candidate.score)
			selected = table
			return false
		}
		return true
	})
	if selected == nil {
		c.tel.ReportDebug("tables.none-selected")
		return nil
	}

	records := c.parseRankingTable(selected)
	c.tel.ReportCount(report_tables_records, int64(len(records)))
	return records
}

// parseRankingTable walks a selected standings table. The first row is the
// header; every later row with at least four cells becomes one record. Cells
// past index 3 are per-problem results, counted as solved when they start
// with an elapsed-time string.
func (c *Client) parseRankingTable(table *goquery.Selection) []RankingRecord {
	rows := table.Find("tr")
	if rows.Length() < 2 {
		return nil
	}

	var header []string
	rows.First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		header = append(header, textutil.CollapseSpace(cell.Text()))
	})
	c.tel.ReportDebug(report_tables_header, strings.Join(header, " | "))

	var records []RankingRecord
	position := 0
	rows.Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		position++

		var cells []string
		row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, htmlutil.CellText(cell.Nodes[0]))
		})
		if len(cells) < 4 {
			return
		}

		record := RankingRecord{
			Rank: position,
			Team: cells[1],
		}
		if textutil.IsDigits(cells[0]) {
			record.Rank = textutil.CoerceInt(cells[0])
		}
		if record.Team == "" {
			record.Team = "Team_" + strconv.Itoa(position)
		}
		record.Score = textutil.CoerceInt(cells[2])

		// penalty cells often stack an elapsed time under the number,
		// only the first line counts
		penalty, _, _ := strings.Cut(cells[3], "\n")
		record.Penalty = textutil.CoerceInt(penalty)

		for _, problem := range cells[4:] {
			record.Problems = append(record.Problems, problem)
			if textutil.HasLeadingDuration(problem) {
				record.Solved++
			}
		}

		records = append(records, record)
	})
	return records
}
