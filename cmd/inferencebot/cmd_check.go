package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inferencebot/internal/checker"
	"inferencebot/internal/logic"
	"inferencebot/internal/report"
	"inferencebot/internal/scraper"
)

var publish bool

var checkCmd = &cobra.Command{
	Use:   "check <url>...",
	Short: "Scrape the given pages and report temporal inconsistencies",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&publish, "publish", false, "write the report back to the wiki summary page")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	timeout, err := time.ParseDuration(cfg.Wiki.Timeout)
	if err != nil {
		return fmt.Errorf("invalid wiki timeout %q: %w", cfg.Wiki.Timeout, err)
	}

	s := scraper.New(logger,
		scraper.WithUserAgent(cfg.Wiki.UserAgent),
		scraper.WithTimeout(timeout))
	res, err := s.Scrape(ctx, args)
	if err != nil {
		return fmt.Errorf("scrape: %w", err)
	}
	if len(res.Data) == 0 {
		return fmt.Errorf("none of the %d page(s) could be scraped", len(args))
	}
	logger.Info("pages scraped", zap.Int("requested", len(args)), zap.Int("parsed", len(res.Data)))

	engineCfg := logic.ChainerConfig{DerivedLimit: cfg.Engine.DerivedFactLimit}
	checkers := checker.NewRegistry(engineCfg, logger)
	facts, err := checker.RunAll(ctx, checkers, res)
	if err != nil {
		return fmt.Errorf("inference: %w", err)
	}
	logger.Info("inference complete", zap.Int("errors", len(facts)))

	lines := report.Format(facts)
	if len(lines) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Aucune incohérence détectée.")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), report.Bulletize(lines))
	}

	if publish {
		w := report.NewWriter(cfg.Wiki.APIURL, cfg.Wiki.SummaryPage, logger).WithTimeout(timeout)
		if err := w.Publish(ctx, lines); err != nil {
			return fmt.Errorf("publish: %w", err)
		}
		if err := w.PublishPages(ctx, lines); err != nil {
			return fmt.Errorf("publish pages: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rapport publié sur %q.\n", cfg.Wiki.SummaryPage)
	}
	return nil
}
