// Package rankings orchestrates crawling one or more contests and handing
// their standings to the export collaborators (CSV files and the sqlite
// store).
package rankings

import (
	"context"
	"errors"
	"time"

	"rankcrawl/lib/rankstore"
	"rankcrawl/lib/scrapers/vjudge"
	"rankcrawl/lib/telemetry"
	"rankcrawl/lib/textutil"

	"github.com/google/uuid"
)

const (
	report_crawl_invalid_id = "crawl.invalid-id"
	report_crawl_contest    = "crawl.contest"
	report_crawl_empty      = "crawl.empty"
	report_crawl_export     = "crawl.export"
	report_crawl_store      = "crawl.store"
)

// ErrNoValidContests is returned when not a single contest id in a batch
// survives validation.
var ErrNoValidContests = errors.New("no valid contest ids provided")

// Extractor produces standings for one contest. An empty result means the
// contest could not be processed; it is never an error.
type Extractor interface {
	FetchContest(ctx context.Context, contestID string) ([]vjudge.RankingRecord, string)
}

type Service struct {
	extractor Extractor
	store     *rankstore.Store
	outputDir string
	delay     time.Duration
	tel       telemetry.API
}

type Options struct {
	Extractor Extractor
	// Store is optional; when nil results are not persisted.
	Store *rankstore.Store
	// OutputDir receives CSV exports. Empty disables CSV output.
	OutputDir string
	// Delay is the pause inserted between successive contest crawls so the
	// target server is not hammered. Defaults to 2 seconds.
	Delay time.Duration
	// Telemetry receives structured progress events. Defaults to NoopAPI.
	Telemetry telemetry.API
}

func NewService(opts Options) Service {
	if opts.Delay == 0 {
		opts.Delay = time.Second * 2
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.NoopAPI{}
	}
	return Service{
		extractor: opts.Extractor,
		store:     opts.Store,
		outputDir: opts.OutputDir,
		delay:     opts.Delay,
		tel:       telemetry.NewScopedAPI("rankings", opts.Telemetry),
	}
}

// ContestResult is the outcome of crawling a single contest. Records being
// empty means every extraction fallback failed for it.
type ContestResult struct {
	Contest string
	Records []vjudge.RankingRecord
	// Source names the pipeline state that produced the data.
	Source string
	// CsvPath is where the standings were exported, empty when export was
	// disabled or the crawl produced nothing.
	CsvPath string
}

// ValidContestIDs filters a batch down to digit-only contest ids, reporting
// a warning for each rejected one.
func (s Service) ValidContestIDs(ids []string) []string {
	var valid []string
	for _, id := range ids {
		if !textutil.IsDigits(id) {
			s.tel.ReportWarning(report_crawl_invalid_id, id)
			continue
		}
		valid = append(valid, id)
	}
	return valid
}

// CrawlAll processes contests strictly one at a time with a fixed delay
// between them. One contest failing never aborts the rest; interrupting the
// context between contests keeps the results produced so far.
func (s Service) CrawlAll(ctx context.Context, contestIDs []string) ([]ContestResult, error) {
	valid := s.ValidContestIDs(contestIDs)
	if len(valid) == 0 {
		return nil, ErrNoValidContests
	}

	var results []ContestResult
	for i, id := range valid {
		if ctx.Err() != nil {
			return results, ctx.Err()
		}

		results = append(results, s.crawlOne(ctx, id))

		if i < len(valid)-1 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				return results, ctx.Err()
			}
		}
	}
	return results, nil
}

func (s Service) crawlOne(ctx context.Context, contestID string) ContestResult {
	s.tel.ReportDebug(report_crawl_contest, contestID)

	records, source := s.extractor.FetchContest(ctx, contestID)
	result := ContestResult{
		Contest: contestID,
		Records: records,
		Source:  source,
	}
	if len(records) == 0 {
		s.tel.ReportWarning(report_crawl_empty, contestID)
		return result
	}
	s.tel.ReportCount(report_crawl_contest, int64(len(records)))

	if s.outputDir != "" {
		path, err := s.exportCSV(contestID, records)
		if err != nil {
			s.tel.ReportBroken(report_crawl_export, contestID, err)
		} else {
			result.CsvPath = path
		}
	}

	if s.store != nil {
		err := s.store.Push(ctx, rankstore.Run{
			Id:        uuid.NewString(),
			Contest:   contestID,
			Source:    source,
			FetchedAt: time.Now(),
		}, records)
		if err != nil {
			s.tel.ReportBroken(report_crawl_store, contestID, err)
		}
	}

	return result
}
