package wiktscan

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// Strategy is how a run spreads page processing across goroutines.
type Strategy int

// The strategies.  All of them produce the same output for the same
// input, except where a limit cuts the run short.
const (
	// Sequential processes one page at a time and stops at exactly
	// the output limit.
	Sequential Strategy = iota
	// Batch reads BatchSize pages, processes them in parallel, and
	// writes them before reading more.
	Batch
	// Channel streams pages through a bounded queue to a pool of
	// workers and reorders their results.
	Channel
	// TwoPhase reads the whole dump first, then processes it in
	// parallel chunks.  It needs memory for every page.
	TwoPhase
)

var strategyNames = [...]string{
	Sequential: "sequential",
	Batch:      "batch",
	Channel:    "channel",
	TwoPhase:   "two-phase",
}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy gets a strategy by name.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "twophase" {
		name = "two-phase"
	}
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", name)
}

// Defaults filled in by Run for zero Config fields.
const (
	DefaultBatchSize     = 1000
	DefaultQueueSize     = 10000
	DefaultProgressEvery = 10000
)

// Upper bounds on the sizes a Config may ask for.  Larger values are
// lowered to these.
const (
	MaxBatchSize = 1 << 20
	MaxQueueSize = 1 << 16
)

// Config controls a run.  The zero value is a sequential, unlimited
// run with the default taxonomy.
type Config struct {
	Strategy Strategy
	// Workers defaults to GOMAXPROCS.
	Workers   int
	BatchSize int
	QueueSize int

	// Limit stops the run once this many records have been written.
	// Zero means no limit.
	Limit int64
	// PageLimit stops reading after this many pages.  Zero means no
	// limit.
	PageLimit int64

	// SyllableReport writes a SyllableReport per word in place of
	// sense entries.
	SyllableReport bool

	Taxonomy *Taxonomy
	Logger   *slog.Logger

	// Progress, if set, is called from the writing goroutine every
	// ProgressEvery pages.
	Progress      func(Stats)
	ProgressEvery int64
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.QueueSize <= 0 {
		c.QueueSize = DefaultQueueSize
	}
	c.BatchSize = min(c.BatchSize, MaxBatchSize)
	c.QueueSize = min(c.QueueSize, MaxQueueSize)
	if c.ProgressEvery <= 0 {
		c.ProgressEvery = DefaultProgressEvery
	}
	if c.Taxonomy == nil {
		c.Taxonomy = DefaultTaxonomy()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// A ProcessedPage is the outcome for one page fragment.  Rejected
// pages produce one too, so every sequence number is accounted for.
type ProcessedPage struct {
	Seq     int64
	Title   string
	Reason  Reason
	Entries []SenseEntry
	// Report is only set in syllable report runs.
	Report *SyllableReport
}

// A Processor filters and assembles single pages.  It holds no
// mutable state and may be shared by any number of goroutines.
type Processor struct {
	filter    *Filter
	asm       *Assembler
	syllables bool
}

// NewProcessor gets a Processor for sense entries.
func NewProcessor(tax *Taxonomy) *Processor {
	return &Processor{filter: NewFilter(tax), asm: NewAssembler(tax)}
}

// NewSyllableProcessor gets a Processor producing syllable reports.
func NewSyllableProcessor(tax *Taxonomy) *Processor {
	p := NewProcessor(tax)
	p.syllables = true
	return p
}

// Process turns a fragment into its outcome.
func (p *Processor) Process(frag Fragment) ProcessedPage {
	raw, reason := p.filter.Check(frag)
	rv := ProcessedPage{Seq: frag.Seq, Title: strings.TrimSpace(raw.Title), Reason: reason}

	if p.syllables {
		// Dictionary-only pages still carry pronunciation data.
		if reason == ReasonDictOnly && IsEnglishLike(raw.Title) {
			rv.Reason = ReasonNone
		}
		if rv.Reason != ReasonNone {
			return rv
		}
		english, _ := EnglishSection(raw.Body)
		if rep, ok := SyllableSources(rv.Title, english); ok {
			rv.Report = &rep
		}
		return rv
	}

	if reason != ReasonNone {
		return rv
	}
	rv.Entries = p.asm.Page(raw.Title, raw.Body)
	return rv
}

// Run scans a dump, writing JSONL records to sink.
//
// Reaching cfg.Limit is not an error; it is reported through
// Stats.LimitReached.  Read and write errors and cancellation of ctx
// end the run early with an error, along with the stats so far.
func Run(ctx context.Context, src io.Reader, sink io.Writer, cfg Config) (Stats, error) {
	cfg = cfg.withDefaults()
	start := time.Now()

	splitter := NewSplitter(src)
	var pages PageSource = splitter
	if cfg.PageLimit > 0 {
		pages = &limitedSource{src: splitter, n: cfg.PageLimit}
	}

	proc := NewProcessor(cfg.Taxonomy)
	if cfg.SyllableReport {
		proc = NewSyllableProcessor(cfg.Taxonomy)
	}

	w := newRecordWriter(sink, &cfg, start)
	w.exact = cfg.Strategy == Sequential

	cfg.Logger.Info("scan starting",
		slog.String("strategy", cfg.Strategy.String()),
		slog.Int("workers", cfg.Workers),
		slog.Int64("limit", cfg.Limit),
		slog.Int64("page_limit", cfg.PageLimit))

	var err error
	switch cfg.Strategy {
	case Sequential:
		err = runSequential(ctx, pages, proc, w)
	case Batch:
		err = runBatch(ctx, pages, proc, w, cfg)
	case Channel:
		err = runChannel(ctx, pages, proc, w, cfg)
	case TwoPhase:
		err = runTwoPhase(ctx, pages, proc, w, cfg)
	default:
		err = fmt.Errorf("unknown strategy %v", cfg.Strategy)
	}
	if ferr := w.out.Flush(); err == nil && ferr != nil {
		err = fmt.Errorf("writing records: %w", ferr)
	}

	stats := w.stats
	stats.Elapsed = time.Since(start)

	if si, ok := splitter.SiteInfo(); ok {
		cfg.Logger.Debug("dump header",
			slog.String("site", si.SiteName),
			slog.String("db", si.DBName),
			slog.String("generator", si.Generator))
	}
	if err != nil {
		cfg.Logger.Error("scan failed",
			slog.Int64("pages", stats.PagesProcessed),
			slog.Duration("elapsed", stats.Elapsed),
			slog.Any("error", err))
		return stats, err
	}
	cfg.Logger.Info("scan finished",
		slog.Int64("pages", stats.PagesProcessed),
		slog.Int64("words", stats.WordsWritten),
		slog.Int64("senses", stats.SensesWritten),
		slog.Bool("limit_reached", stats.LimitReached),
		slog.Duration("elapsed", stats.Elapsed))
	return stats, nil
}

// limitedSource stops a PageSource after n fragments.
type limitedSource struct {
	src PageSource
	n   int64
}

func (l *limitedSource) Next() (Fragment, error) {
	if l.n <= 0 {
		return Fragment{}, io.EOF
	}
	l.n--
	return l.src.Next()
}

// recordWriter is the single writer of a run.  It owns the stats and
// raises the stop flag once the limit is met.
type recordWriter struct {
	out      *EntryWriter
	limit    int64
	exact    bool
	written  int64
	stats    Stats
	stop     atomic.Bool
	start    time.Time
	progress func(Stats)
	every    int64
}

func newRecordWriter(sink io.Writer, cfg *Config, start time.Time) *recordWriter {
	return &recordWriter{
		out:      NewEntryWriter(sink),
		limit:    cfg.Limit,
		start:    start,
		progress: cfg.Progress,
		every:    cfg.ProgressEvery,
	}
}

func (w *recordWriter) stopped() bool {
	return w.stop.Load()
}

// write records the outcome of a page.  Pages arriving after the stop
// flag went up are ignored.
func (w *recordWriter) write(p ProcessedPage) error {
	if w.stopped() {
		return nil
	}
	w.stats.PagesProcessed++

	var err error
	switch {
	case p.Reason != ReasonNone:
		w.stats.Reject(p.Reason)
	case p.Report != nil:
		err = w.writeReport(p)
	case len(p.Entries) == 0:
		w.stats.Skipped++
	default:
		err = w.writeEntries(p)
	}
	if err != nil {
		return fmt.Errorf("writing records: %w", err)
	}

	if w.limit > 0 && w.written >= w.limit {
		w.stats.LimitReached = true
		w.stop.Store(true)
	}
	if w.progress != nil && w.stats.PagesProcessed%w.every == 0 {
		s := w.stats
		s.Elapsed = time.Since(w.start)
		w.progress(s)
	}
	return nil
}

func (w *recordWriter) writeReport(p ProcessedPage) error {
	if err := w.out.Write(p.Report); err != nil {
		return err
	}
	w.written++
	w.stats.WordsWritten++
	w.stats.Sources.Add(*p.Report)
	return nil
}

func (w *recordWriter) writeEntries(p ProcessedPage) error {
	entries := p.Entries
	if w.exact && w.limit > 0 {
		if remaining := w.limit - w.written; int64(len(entries)) > remaining {
			entries = entries[:remaining]
		}
	}
	for i := range entries {
		if err := w.out.Write(&entries[i]); err != nil {
			return err
		}
	}
	w.written += int64(len(entries))
	w.stats.SensesWritten += int64(len(entries))
	w.stats.Word(p.Title)
	return nil
}
