package vjudge

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_pipeline_state   = "pipeline.state"
	report_pipeline_panic   = "pipeline.panic"
	report_pipeline_records = "pipeline.records"
	report_mainpage_fetch   = "mainpage.fetch"
	report_browser_fetch    = "browser.fetch"
)

// pipelineState enumerates the fallback chain in the order it runs. Each
// state is attempted only if every earlier state yielded nothing.
type pipelineState int

const (
	stateProbeEndpoints pipelineState = iota
	stateScanMainPageScripts
	stateScanMainPageTables
	stateBrowserFallback
	stateDone
)

func (s pipelineState) String() string {
	switch s {
	case stateProbeEndpoints:
		return "probe-endpoints"
	case stateScanMainPageScripts:
		return "scan-main-page-scripts"
	case stateScanMainPageTables:
		return "scan-main-page-tables"
	case stateBrowserFallback:
		return "browser-fallback"
	case stateDone:
		return "done"
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// FetchContest runs the full extraction pipeline for one contest and returns
// its standings, or an empty slice when every fallback came up dry. The
// second result names the pipeline state that produced the data, empty on
// total failure. It never returns an error and never panics past its
// boundary: each state's failures are reported and treated as that state
// yielding nothing.
func (c *Client) FetchContest(ctx context.Context, contestID string) ([]RankingRecord, string) {
	// the scripts and tables states share one main page fetch
	var mainPage *goquery.Document

	for state := stateProbeEndpoints; state != stateDone; state++ {
		c.tel.ReportDebug(report_pipeline_state, contestID, state.String())

		records := c.runState(ctx, state, contestID, &mainPage)
		if len(records) > 0 {
			c.tel.ReportCount(report_pipeline_records, int64(len(records)))
			c.tel.ReportDebug(report_pipeline_state, contestID, stateDone.String(), state.String())
			return records, state.String()
		}
	}

	c.tel.ReportWarning(report_pipeline_records, contestID, "no ranking data found, the contest may be private or empty")
	return nil, ""
}

func (c *Client) runState(ctx context.Context, state pipelineState, contestID string, mainPage **goquery.Document) (records []RankingRecord) {
	defer func() {
		if r := recover(); r != nil {
			c.tel.ReportBroken(report_pipeline_panic, contestID, state.String(), r)
			records = nil
		}
	}()

	switch state {
	case stateProbeEndpoints:
		return c.probeEndpoints(ctx, contestID)

	case stateScanMainPageScripts:
		doc := c.mainPage(ctx, contestID, mainPage)
		if doc == nil {
			return nil
		}
		return c.extractFromScripts(doc)

	case stateScanMainPageTables:
		doc := c.mainPage(ctx, contestID, mainPage)
		if doc == nil {
			return nil
		}
		return c.extractFromTables(doc)

	case stateBrowserFallback:
		return c.browserFallback(ctx, contestID)
	}
	return nil
}

// mainPage fetches and parses the canonical contest page once, memoizing it
// for later states. A failed fetch yields nil and is reported.
func (c *Client) mainPage(ctx context.Context, contestID string, cached **goquery.Document) *goquery.Document {
	if *cached != nil {
		return *cached
	}

	res, err := c.Http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/contest/%s#rank", contestID))
	if err != nil {
		c.tel.ReportWarning(report_mainpage_fetch, contestID, err)
		return nil
	}
	if res.StatusCode() != 200 {
		c.tel.ReportWarning(report_mainpage_fetch, contestID, res.Status())
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		c.tel.ReportWarning(report_mainpage_fetch, contestID, err)
		return nil
	}

	*cached = doc
	return doc
}

// browserFallback asks the optional browser-automation collaborator for
// record-shaped rows and runs them through the same normalization as every
// other path. A missing collaborator is a normal empty result.
func (c *Client) browserFallback(ctx context.Context, contestID string) []RankingRecord {
	if c.browser == nil {
		c.tel.ReportDebug(report_browser_fetch, contestID, "no browser collaborator configured")
		return nil
	}

	entries, err := c.browser.FetchStandings(ctx, contestID)
	if err != nil {
		c.tel.ReportWarning(report_browser_fetch, contestID, err)
		return nil
	}
	return normalizeMaps(entries)
}
