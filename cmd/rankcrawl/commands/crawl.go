package commands

import (
	"errors"
	"log/slog"
	"time"

	"rankcrawl/lib/browser"
	"rankcrawl/lib/configutil"
	"rankcrawl/lib/rankstore"
	"rankcrawl/lib/scrapers/vjudge"
	"rankcrawl/lib/telemetry"
	"rankcrawl/services/rankings"

	"github.com/spf13/cobra"
)

// Config carries the deployment-specific knobs of the crawler. The
// fingerprint list in particular is page-instance specific and meant to be
// tuned per deployment.
type Config struct {
	BaseUrl        string   `json:"baseUrl"`
	Fingerprints   []string `json:"fingerprints"`
	Endpoints      []string `json:"endpoints"`
	TimeoutSeconds int      `json:"timeoutSeconds"`
	ChromePath     string   `json:"chromePath"`
}

var (
	crawlOutput  *string
	crawlDb      *string
	crawlDelay   *int
	crawlBrowser *bool
	crawlConfig  *string
)

func init() {
	crawlOutput = crawlCmd.Flags().StringP("output", "o", "output", "Output directory for CSV files.")
	crawlDb = crawlCmd.Flags().String("db", "rankings.db", "The database to write crawl results to, empty disables it.")
	crawlDelay = crawlCmd.Flags().Int("delay", 2, "Seconds to wait between contests.")
	crawlBrowser = crawlCmd.Flags().Bool("browser", false, "Enable the headless-browser fallback (requires Chrome).")
	crawlConfig = crawlCmd.Flags().String("config", "rankcrawl.json5", "Path to the configuration file.")
	rootCmd.AddCommand(crawlCmd)
}

var crawlCmd = &cobra.Command{
	Use:   "crawl <contest id> [contest id...]",
	Short: "Crawls the standings of one or more contests.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfigOrDefault(*crawlConfig, Config{})
		if err != nil {
			fatal("failed to read config", err)
		}

		tel := telemetry.SlogAPI{}

		var browserFetcher vjudge.BrowserFetcher
		if *crawlBrowser {
			browserFetcher = browser.NewFetcher(browser.Options{
				BaseUrl:    cfg.BaseUrl,
				ChromePath: cfg.ChromePath,
			})
		}

		client, err := vjudge.NewClient(vjudge.ClientOptions{
			BaseUrl:      cfg.BaseUrl,
			Timeout:      time.Duration(cfg.TimeoutSeconds) * time.Second,
			Fingerprints: cfg.Fingerprints,
			Endpoints:    cfg.Endpoints,
			Browser:      browserFetcher,
			Telemetry:    tel,
		})
		if err != nil {
			fatal("failed to initialize scraper client", err)
		}

		var store *rankstore.Store
		if *crawlDb != "" {
			db, err := rankstore.Open(*crawlDb)
			if err != nil {
				fatal("failed to open db", err)
			}
			defer db.Close()
			s := rankstore.NewStore(db)
			store = &s
		}

		service := rankings.NewService(rankings.Options{
			Extractor: client,
			Store:     store,
			OutputDir: *crawlOutput,
			Delay:     time.Duration(*crawlDelay) * time.Second,
			Telemetry: tel,
		})

		t1 := time.Now()
		results, err := service.CrawlAll(cmd.Context(), args)
		if errors.Is(err, rankings.ErrNoValidContests) {
			fatal("no valid contest ids", err)
		}
		if err != nil {
			slog.Warn("crawl interrupted", "err", err)
		}

		succeeded := 0
		for _, res := range results {
			if len(res.Records) == 0 {
				slog.Warn("contest yielded no data", "contest", res.Contest)
				continue
			}
			succeeded++
			slog.Info(
				"contest crawled",
				"contest", res.Contest,
				"participants", len(res.Records),
				"source", res.Source,
				"csv", res.CsvPath,
			)
		}
		slog.Info(
			"crawl finished",
			"contests", len(results),
			"succeeded", succeeded,
			"seconds", time.Since(t1).Seconds(),
		)
	},
}
