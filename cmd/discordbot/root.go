// ABOUTME: Root Cobra command: config assembly, validation and one pipeline run
// ABOUTME: Wires the store, fetcher, sampler and webhook client together

package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/KS1019/my-discord-bot/internal/config"
	"github.com/KS1019/my-discord-bot/internal/discord"
	"github.com/KS1019/my-discord-bot/internal/fetch"
	"github.com/KS1019/my-discord-bot/internal/models"
	"github.com/KS1019/my-discord-bot/internal/pipeline"
	"github.com/KS1019/my-discord-bot/internal/report"
	"github.com/KS1019/my-discord-bot/internal/sample"
	"github.com/KS1019/my-discord-bot/internal/store"
)

var (
	dbPath     string
	modeFlag   string
	maxEntries int
	dbg        bool
)

var rootCmd = &cobra.Command{
	Use:   "discordbot <rss_links_file> <discord_webhook_url>",
	Short: "Post a random sample of new RSS/Atom entries to a Discord webhook",
	Long: `Reads a newline-delimited list of RSS/Atom feed URLs, picks a bounded
random subset of entries per feed, and posts each never-before-delivered
entry to a Discord webhook exactly once. A local SQLite file tracks what
has been delivered; failed deliveries are retried on a later run.

Blank lines and lines starting with '#' in the links file are ignored.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLog(dbg)

		cfg, err := buildConfig(cmd, args)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		// all configuration is validated; runtime failures from here on
		// are absorbed into counters and the run still exits 0
		cmd.SilenceUsage = true

		return run(cmd, cfg)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "sent_entries.db", "dedup database file path")
	rootCmd.Flags().StringVar(&modeFlag, "mode", "", "run mode: 1=development (dry run), 2=production (default; env MODE)")
	rootCmd.Flags().IntVar(&maxEntries, "max-entries", 0, "max entries sampled per feed (default 5; env MAX_ENTRIES_PER_RSS)")
	rootCmd.PersistentFlags().BoolVar(&dbg, "dbg", false, "debug logging")
}

// buildConfig assembles the run configuration from positional args, flags
// and the MODE / MAX_ENTRIES_PER_RSS environment fallbacks.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	modeStr := modeFlag
	if !cmd.Flags().Changed("mode") {
		modeStr = os.Getenv("MODE")
	}
	mode, err := config.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}

	max := maxEntries
	if !cmd.Flags().Changed("max-entries") {
		max = config.DefaultMaxEntries
		if env := os.Getenv("MAX_ENTRIES_PER_RSS"); env != "" {
			max, err = strconv.Atoi(env)
			if err != nil {
				return nil, fmt.Errorf("MAX_ENTRIES_PER_RSS must be an integer, got: %s", env)
			}
		}
	}

	cfg := &config.Config{
		Mode:       mode,
		MaxEntries: max,
		LinksFile:  args[0],
		WebhookURL: args[1],
		DBPath:     dbPath,
	}

	cfg.FeedURLs, err = config.ReadLinks(cfg.LinksFile)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, cfg *config.Config) error {
	runID := uuid.New().String()
	log.Printf("[INFO] run %s: %d feeds, max %d entries each", runID, len(cfg.FeedURLs), cfg.MaxEntries)

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open dedup store %s: %w", cfg.DBPath, err)
	}
	defer st.Close()

	sampler := sample.New(rand.New(rand.NewSource(time.Now().UnixNano())))
	webhook := discord.NewClient(cfg.WebhookURL)
	p := pipeline.New(st, fetch.New(), sampler, webhook, cfg.Mode == config.Development, cfg.MaxEntries)

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	stats := p.Run(cmd.Context(), cfg.FeedURLs, func(s models.FeedStats) {
		switch {
		case s.Available == 0:
			fmt.Printf("%s %s: no entries\n", red("x"), s.FeedName)
		case s.Failed > 0:
			fmt.Printf("%s %s: %d posted, %d failed\n", red("x"), s.FeedName, s.Posted, s.Failed)
		default:
			fmt.Printf("%s %s: %d new, %s\n", green("v"), s.FeedName, s.New,
				faint(fmt.Sprintf("%d duplicate", s.Duplicate)))
		}
	})

	if cfg.Mode == config.Development {
		if err := report.DumpStore(st); err != nil {
			log.Printf("[WARN] %v", err)
		}
		return nil
	}

	if os.Getenv("GITHUB_ACTIONS") == "true" {
		if err := report.WriteSummary(os.Stdout, runID, stats); err != nil {
			log.Printf("[WARN] failed to write CI summary: %v", err)
		}
	}
	return nil
}

func setupLog(dbg bool) {
	if dbg {
		log.Setup(log.Debug, log.CallerFile, log.Msec, log.LevelBraces)
		return
	}
	log.Setup(log.Msec, log.LevelBraces)
}
