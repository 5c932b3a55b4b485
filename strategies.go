package wiktscan

import (
	"context"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"
)

func readErr(err error) error {
	return fmt.Errorf("reading pages: %w", err)
}

func cancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("scan cancelled: %w", err)
	}
	return nil
}

func runSequential(ctx context.Context, pages PageSource, proc *Processor, w *recordWriter) error {
	for !w.stopped() {
		if err := cancelled(ctx); err != nil {
			return err
		}
		f, err := pages.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return readErr(err)
		}
		if err := w.write(proc.Process(f)); err != nil {
			return err
		}
	}
	return nil
}

func runBatch(ctx context.Context, pages PageSource, proc *Processor, w *recordWriter, cfg Config) error {
	var batch []Fragment
	for !w.stopped() {
		if err := cancelled(ctx); err != nil {
			return err
		}

		batch = batch[:0]
		eof := false
		for len(batch) < cfg.BatchSize {
			f, err := pages.Next()
			if err == io.EOF {
				eof = true
				break
			}
			if err != nil {
				return readErr(err)
			}
			batch = append(batch, f)
		}

		results := make([]ProcessedPage, len(batch))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Workers)
		for i := range batch {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = proc.Process(batch[i])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return fmt.Errorf("scan cancelled: %w", err)
		}

		for _, p := range results {
			if w.stopped() {
				break
			}
			if err := w.write(p); err != nil {
				return err
			}
		}
		if eof {
			break
		}
	}
	return nil
}

// runChannel has one producer feeding a bounded queue that every
// worker ranges over.  Workers push results to a single consumer that
// restores page order before writing.
func runChannel(ctx context.Context, pages PageSource, proc *Processor, w *recordWriter, cfg Config) error {
	g, gctx := errgroup.WithContext(ctx)
	work := make(chan Fragment, cfg.QueueSize)
	results := make(chan ProcessedPage, cfg.QueueSize)

	g.Go(func() error {
		defer close(work)
		for !w.stopped() {
			f, err := pages.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return readErr(err)
			}
			select {
			case work <- f:
			case <-gctx.Done():
				return cancelled(gctx)
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	for range cfg.Workers {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for f := range work {
				if w.stopped() {
					continue
				}
				select {
				case results <- proc.Process(f):
				case <-gctx.Done():
					return cancelled(gctx)
				}
			}
			return nil
		})
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	g.Go(func() error {
		pending := NewReorderBuffer[ProcessedPage]()
		for r := range results {
			for _, p := range pending.Push(r.Seq, r) {
				if err := w.write(p); err != nil {
					return err
				}
			}
		}
		if err := cancelled(gctx); err != nil {
			return err
		}
		// Only a stopped run drops pages.
		if n := pending.Pending(); n > 0 && !w.stopped() {
			return fmt.Errorf("%d pages left behind a missing page", n)
		}
		return nil
	})

	return g.Wait()
}

func runTwoPhase(ctx context.Context, pages PageSource, proc *Processor, w *recordWriter, cfg Config) error {
	var frags []Fragment
	for {
		f, err := pages.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return readErr(err)
		}
		frags = append(frags, f)
		if len(frags)%cfg.BatchSize == 0 {
			if err := cancelled(ctx); err != nil {
				return err
			}
		}
	}

	results := make([]ProcessedPage, len(frags))
	chunk := max((len(frags)+cfg.Workers-1)/cfg.Workers, 1)
	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(frags); lo += chunk {
		hi := min(lo+chunk, len(frags))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return fmt.Errorf("scan cancelled: %w", err)
				}
				results[i] = proc.Process(frags[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, p := range results {
		if w.stopped() {
			break
		}
		if err := w.write(p); err != nil {
			return err
		}
	}
	return nil
}
