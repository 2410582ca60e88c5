package vjudge

import (
	"encoding/json"
	"regexp"

	"rankcrawl/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_scripts_match   = "scripts.match"
	report_scripts_badjson = "scripts.bad-json"
)

// scriptVariables are the assignment patterns known to carry standings data
// embedded in inline scripts. The array literal may span multiple lines.
var scriptVariables = []*regexp.Regexp{
	regexp.MustCompile(`(?s)dataRank\s*=\s*(\[.*?\]);`),
	regexp.MustCompile(`(?s)rankData\s*=\s*(\[.*?\]);`),
	regexp.MustCompile(`(?s)standings\s*=\s*(\[.*?\]);`),
	regexp.MustCompile(`(?s)participants\s*=\s*(\[.*?\]);`),
}

// extractFromScripts scans every inline script on the page for a known
// variable assignment holding a JSON array of standings entries. The first
// span that decodes to a non-empty list ends the scan; a span that fails to
// decode is treated as no match and scanning continues.
func (c *Client) extractFromScripts(doc *goquery.Document) []RankingRecord {
	for _, script := range doc.Find("script").Nodes {
		text := htmlutil.GetText(script)
		if text == "" {
			continue
		}

		for _, pattern := range scriptVariables {
			groups := pattern.FindStringSubmatch(text)
			if len(groups) < 2 {
				continue
			}

			var decoded []any
			err := json.Unmarshal([]byte(groups[1]), &decoded)
			if err != nil {
				c.tel.ReportDebug(report_scripts_badjson, pattern.String(), err)
				continue
			}
			if len(decoded) == 0 {
				continue
			}

			c.tel.ReportDebug(report_scripts_match, pattern.String(), len(decoded))
			return NormalizeRecords(decoded)
		}
	}
	return nil
}
