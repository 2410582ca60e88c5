// Package browser implements the browser-automation fallback for contest
// pages whose standings only exist after client-side rendering. It drives
// headless Chrome and returns the same loose record shape as the HTTP paths.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

const defaultBaseUrl = "https://vjudge.net"

type Options struct {
	// BaseUrl of the contest site, defaults to the public vjudge instance.
	BaseUrl string
	// ChromePath points at the Chrome binary; empty means auto-detect.
	ChromePath string
	// Timeout bounds the whole browser session. Defaults to 45 seconds.
	Timeout time.Duration
	// UserAgent presented by the browser.
	UserAgent string
}

type Fetcher struct {
	opts Options
}

func NewFetcher(opts Options) *Fetcher {
	if opts.BaseUrl == "" {
		opts.BaseUrl = defaultBaseUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 45
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	}
	return &Fetcher{opts: opts}
}

// extractScript walks the table containing participant profile links and
// turns each data row into a loose record. Cells past index 3 matching an
// elapsed-time pattern count toward solved.
const extractScript = `(() => {
	const participantLinks = document.querySelectorAll('a[href*="/user/"]');
	if (participantLinks.length === 0) return [];

	let table = null;
	for (const link of participantLinks) {
		table = link.closest('table');
		if (table) break;
	}
	if (!table) return [];

	const rows = table.querySelectorAll('tr');
	if (rows.length < 2) return [];

	const data = [];
	for (let i = 1; i < rows.length; i++) {
		const cells = Array.from(rows[i].querySelectorAll('td, th')).map(cell => cell.textContent.trim());
		if (cells.length >= 4) {
			let solvedCount = 0;
			for (let j = 4; j < cells.length; j++) {
				if (/\d+:\d+:\d+/.test(cells[j])) {
					solvedCount++;
				}
			}
			data.push({
				rank: cells[0],
				team: cells[1],
				score: cells[2],
				penalty: cells[3].split('\n')[0],
				solved: solvedCount,
			});
		}
	}
	return data;
})()`

// FetchStandings loads the contest page in headless Chrome, waits for the
// rendered standings, and extracts record-shaped rows. Chrome being absent
// or failing to start surfaces as an error; callers treat that as an empty
// result.
func (f *Fetcher) FetchStandings(ctx context.Context, contestID string) ([]map[string]any, error) {
	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.Flag("headless", "new"),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.UserAgent(f.opts.UserAgent),
		chromedp.WindowSize(1920, 1080),
	}
	if f.opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(f.opts.ChromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	runCtx, cancel := context.WithTimeout(allocCtx, f.opts.Timeout)
	defer cancel()

	runCtx, cancel = chromedp.NewContext(runCtx)
	defer cancel()

	targetURL := fmt.Sprintf("%s/contest/%s#rank", f.opts.BaseUrl, contestID)

	var rows []map[string]any
	err := chromedp.Run(runCtx,
		network.SetExtraHTTPHeaders(network.Headers(map[string]any{
			"Accept-Language": "en-US,en;q=0.5",
		})),
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// give rendered standings a chance to appear; an empty contest or
		// private page simply never produces participant links
		chromedp.ActionFunc(func(ctx context.Context) error {
			var hasLinks bool
			// no participant links is not fatal, extraction just returns
			// zero rows
			_ = chromedp.Poll(
				`document.querySelectorAll('a[href*="/user/"]').length > 0`,
				&hasLinks,
				chromedp.WithPollingTimeout(time.Second*15),
			).Do(ctx)
			return nil
		}),
		chromedp.Evaluate(extractScript, &rows),
	)
	if err != nil {
		return nil, fmt.Errorf("browser extraction: %w", err)
	}
	return rows, nil
}
