// Command wiktscan extracts English sense records from a Wiktionary
// XML dump into JSON lines.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/macshonle/go-wiktscan"
)

var rootCmd = &cobra.Command{
	Use:   "wiktscan",
	Short: "Scan Wiktionary dumps for English senses",
	Long: `wiktscan reads a MediaWiki XML export of Wiktionary, keeps the
English headwords written in Latin script, and writes one JSON record per
sense.`,
	SilenceUsage: true,
}

var scanCmd = &cobra.Command{
	Use:   "scan INPUT... OUTPUT",
	Short: "Scan dumps into JSON lines",
	Long: `Scan each INPUT (.xml, .xml.bz2, or a multistream .bz2 with --index)
in turn and write records to OUTPUT, or to stdout when OUTPUT is "-".
Limits apply to the whole run, not to each input.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runScan,
}

var (
	configPath string
	flagCfg    Config
)

func init() {
	f := scanCmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML run configuration")
	f.StringVar(&flagCfg.Strategy, "strategy", "sequential", "sequential, batch, channel or two-phase")
	f.IntVar(&flagCfg.Workers, "workers", 0, "worker goroutines (default GOMAXPROCS)")
	f.IntVar(&flagCfg.BatchSize, "batch-size", wiktscan.DefaultBatchSize, "pages per batch")
	f.IntVar(&flagCfg.QueueSize, "queue-size", wiktscan.DefaultQueueSize, "channel strategy queue capacity")
	f.Int64Var(&flagCfg.Limit, "limit", 0, "stop after this many records (0 for no limit)")
	f.Int64Var(&flagCfg.PageLimit, "page-limit", 0, "stop after reading this many pages (0 for no limit)")
	f.StringVar(&flagCfg.Index, "index", "", "multistream index for parallel decompression")
	f.StringVar(&flagCfg.Taxonomy, "taxonomy", "", "taxonomy YAML replacing the built-in one")
	f.BoolVar(&flagCfg.SyllableReport, "syllable-report", false, "write syllable source reports instead of senses")
	f.BoolVarP(&flagCfg.Quiet, "quiet", "q", false, "don't print the summary")
	f.StringVar(&flagCfg.Log.Level, "log-level", "info", "debug, info, warn or error")
	f.StringVar(&flagCfg.Log.Format, "log-format", "text", "text or json")

	rootCmd.AddCommand(scanCmd)
}

// mergeFlags copies every flag the user set over the loaded config.
func mergeFlags(cmd *cobra.Command, cfg *Config) {
	set := cmd.Flags().Changed
	if set("strategy") {
		cfg.Strategy = flagCfg.Strategy
	}
	if set("workers") {
		cfg.Workers = flagCfg.Workers
	}
	if set("batch-size") {
		cfg.BatchSize = flagCfg.BatchSize
	}
	if set("queue-size") {
		cfg.QueueSize = flagCfg.QueueSize
	}
	if set("limit") {
		cfg.Limit = flagCfg.Limit
	}
	if set("page-limit") {
		cfg.PageLimit = flagCfg.PageLimit
	}
	if set("index") {
		cfg.Index = flagCfg.Index
	}
	if set("taxonomy") {
		cfg.Taxonomy = flagCfg.Taxonomy
	}
	if set("syllable-report") {
		cfg.SyllableReport = flagCfg.SyllableReport
	}
	if set("quiet") {
		cfg.Quiet = flagCfg.Quiet
	}
	if set("log-level") {
		cfg.Log.Level = flagCfg.Log.Level
	}
	if set("log-format") {
		cfg.Log.Format = flagCfg.Log.Format
	}
}

func createOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func progressLogger(log *slog.Logger) func(wiktscan.Stats) {
	return func(s wiktscan.Stats) {
		log.Info("progress",
			slog.String("pages", humanize.Comma(s.PagesProcessed)),
			slog.String("words", humanize.Comma(s.WordsWritten)),
			slog.String("senses", humanize.Comma(s.SensesWritten)),
			slog.String("pages_per_sec", humanize.Comma(int64(s.Rate()))))
	}
}

// progressFor is nil for quiet runs.
func progressFor(cfg *Config, log *slog.Logger) func(wiktscan.Stats) {
	if cfg.Quiet {
		return nil
	}
	return progressLogger(log)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	mergeFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := NewLogger(cfg.Log).With(slog.String("run", uuid.NewString()))
	rc, err := cfg.RunConfig()
	if err != nil {
		return err
	}
	rc.Logger = log

	inputs, output := args[:len(args)-1], args[len(args)-1]
	if cfg.Index != "" && len(inputs) > 1 {
		return errors.New("--index needs a single input")
	}
	rc.Progress = progressFor(cfg, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, err := createOutput(output)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}

	stats, err := scanInputs(ctx, inputs, cfg.Index, out, rc)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing output: %w", cerr)
	}
	if !cfg.Quiet {
		stats.Report(cmd.ErrOrStderr(), rc.Strategy)
	}
	if errors.Is(err, context.Canceled) {
		log.Warn("scan interrupted")
	}
	return err
}

// scanInputs runs each input into out and totals the stats.  The
// record and page limits of rc are shared by all inputs.
func scanInputs(ctx context.Context, inputs []string, index string, out io.Writer, rc wiktscan.Config) (wiktscan.Stats, error) {
	workers := rc.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	written := func(s wiktscan.Stats) int64 {
		if rc.SyllableReport {
			return s.WordsWritten
		}
		return s.SensesWritten
	}
	logger := rc.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var total wiktscan.Stats
	start := time.Now()
	for _, path := range inputs {
		run := rc
		run.Logger = logger.With(slog.String("input", path))
		if rc.Limit > 0 {
			run.Limit = rc.Limit - written(total)
		}
		if rc.PageLimit > 0 {
			run.PageLimit = rc.PageLimit - total.PagesProcessed
			if run.PageLimit <= 0 {
				break
			}
		}

		in, err := wiktscan.Open(ctx, path, index, workers)
		if err != nil {
			return total, fmt.Errorf("opening input: %w", err)
		}
		stats, err := wiktscan.Run(ctx, in, out, run)
		in.Close()
		total.Merge(stats)
		total.Elapsed = time.Since(start)
		if err != nil {
			return total, fmt.Errorf("%s: %w", path, err)
		}
		if total.LimitReached {
			break
		}
	}
	return total, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
