package wiktscan

import (
	"bytes"
	"compress/bzip2"
	"context"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"
)

type decodedStream struct {
	seq  int64
	data []byte
}

// A MultiStreamReader decompresses the streams of a multistream dump
// in parallel and reads back as the plain document, in order.
type MultiStreamReader struct {
	pr     *io.PipeReader
	cancel context.CancelFunc
	done   chan struct{}
}

// NewMultiStreamReader gets a reader over the decompressed dump in
// data, whose layout comes from ReadStreams.  At most 2*workers
// decompressed streams are held in memory at once.
func NewMultiStreamReader(ctx context.Context, data io.ReaderAt, streams []Stream, workers int) *MultiStreamReader {
	workers = max(workers, 1)
	ctx, cancel := context.WithCancel(ctx)
	pr, pw := io.Pipe()
	rv := &MultiStreamReader{pr: pr, cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(rv.done)
		pw.CloseWithError(decodeStreams(ctx, data, streams, workers, pw))
	}()
	return rv
}

func decodeStreams(ctx context.Context, data io.ReaderAt, streams []Stream, workers int, out io.Writer) error {
	g, gctx := errgroup.WithContext(ctx)
	todo := make(chan int64, workers)
	decoded := make(chan decodedStream, workers)
	inflight := make(chan struct{}, 2*workers)

	g.Go(func() error {
		defer close(todo)
		for i := range streams {
			select {
			case inflight <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			select {
			case todo <- int64(i):
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for seq := range todo {
				b, err := decodeStream(data, streams[seq])
				if err != nil {
					return err
				}
				select {
				case decoded <- decodedStream{seq, b}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		wg.Wait()
		close(decoded)
	}()

	g.Go(func() error {
		pending := NewReorderBuffer[[]byte]()
		for d := range decoded {
			for _, b := range pending.Push(d.seq, d.data) {
				if _, err := io.Copy(out, bytes.NewReader(b)); err != nil {
					return err
				}
				<-inflight
			}
		}
		if n := pending.Pending(); n > 0 && gctx.Err() == nil {
			return fmt.Errorf("%d streams left behind a missing stream", n)
		}
		return nil
	})

	return g.Wait()
}

func decodeStream(data io.ReaderAt, s Stream) ([]byte, error) {
	if s.Length == 0 {
		return nil, nil
	}
	b, err := io.ReadAll(bzip2.NewReader(io.NewSectionReader(data, s.Offset, s.Length)))
	if err != nil {
		return nil, fmt.Errorf("stream at %d: %w", s.Offset, err)
	}
	return b, nil
}

func (m *MultiStreamReader) Read(p []byte) (int, error) {
	return m.pr.Read(p)
}

// Close stops decompression and waits for it to wind down.
func (m *MultiStreamReader) Close() error {
	m.cancel()
	m.pr.Close()
	<-m.done
	return nil
}
