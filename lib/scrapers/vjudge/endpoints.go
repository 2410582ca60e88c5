package vjudge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_prober_try      = "prober.try"
	report_prober_fetch    = "prober.fetch"
	report_prober_status   = "prober.status"
	report_prober_success  = "prober.success"
	report_prober_badhtml  = "prober.bad-html"
)

// DefaultEndpoints are the path templates believed to expose standings data,
// with %s standing in for the contest id. Order matters: earlier endpoints
// have proven more reliable, and probing stops at the first one that yields
// records. Overridable through ClientOptions when a deployment learns better
// candidates.
var DefaultEndpoints = []string{
	"/contest/rank/single/%s",
	"/contest/%s/rank",
	"/api/contest/%s/rank",
	"/contest/%s/data",
	"/contest/data/%s",
	"/contest/%s?output=json",
}

func candidatePaths(templates []string, contestID string) []string {
	paths := make([]string, len(templates))
	for i, t := range templates {
		paths[i] = fmt.Sprintf(t, contestID)
	}
	return paths
}

// probeEndpoints tries every candidate endpoint in order. Each successful
// response is decoded as JSON first; bodies that are not JSON are treated as
// HTML and run through table selection. A transport failure or non-200
// status on one candidate skips to the next, never aborting the probe.
func (c *Client) probeEndpoints(ctx context.Context, contestID string) []RankingRecord {
	for _, path := range candidatePaths(c.endpoints, contestID) {
		c.tel.ReportDebug(report_prober_try, path)

		res, err := c.Http.R().
			SetContext(ctx).
			Get(path)
		if err != nil {
			c.tel.ReportWarning(report_prober_fetch, path, err)
			continue
		}
		if res.StatusCode() != 200 {
			c.tel.ReportWarning(report_prober_status, path, res.Status())
			continue
		}

		body := res.Body()

		var decoded any
		if err := json.Unmarshal(body, &decoded); err == nil {
			records := NormalizeRecords(decoded)
			if len(records) > 0 {
				c.tel.ReportDebug(report_prober_success, path, "json", len(records))
				return records
			}
			continue
		}

		doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(body))
		if err != nil {
			c.tel.ReportWarning(report_prober_badhtml, path, err)
			continue
		}
		records := c.extractFromTables(doc)
		if len(records) > 0 {
			c.tel.ReportDebug(report_prober_success, path, "html", len(records))
			return records
		}
	}
	return nil
}
