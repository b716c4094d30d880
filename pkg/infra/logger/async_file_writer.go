package logger

import (
	"bufio"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

const flushInterval = 2 * time.Second

// AsyncFileWriter queues log lines so request handlers never block on
// disk. A single goroutine owns the file; when the queue is full the
// line is dropped and counted rather than stalling the caller.
type AsyncFileWriter struct {
	file  *os.File
	buf   *bufio.Writer
	lines chan []byte
	quit  chan struct{}
	wg    sync.WaitGroup

	dropped atomic.Uint64
}

func NewAsyncFileWriter(path string, bufferSize int) (*AsyncFileWriter, error) {
	file, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}

	w := &AsyncFileWriter{
		file:  file,
		buf:   bufio.NewWriterSize(file, bufferSize),
		lines: make(chan []byte, 1000),
		quit:  make(chan struct{}),
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Write enqueues a copy of p and never blocks. logrus reuses the byte
// slice it hands us, so the copy has to happen before returning.
func (w *AsyncFileWriter) Write(p []byte) (int, error) {
	line := make([]byte, len(p))
	copy(line, p)

	select {
	case w.lines <- line:
	default:
		w.dropped.Add(1)
	}
	return len(p), nil
}

// Dropped reports how many lines were discarded because the queue was
// full.
func (w *AsyncFileWriter) Dropped() uint64 {
	return w.dropped.Load()
}

func (w *AsyncFileWriter) run() {
	defer w.wg.Done()

	flush := time.NewTicker(flushInterval)
	defer flush.Stop()

	for {
		select {
		case line := <-w.lines:
			_, _ = w.buf.Write(line)
		case <-flush.C:
			_ = w.buf.Flush()
		case <-w.quit:
			w.drainAndFlush()
			return
		}
	}
}

func (w *AsyncFileWriter) drainAndFlush() {
	for {
		select {
		case line := <-w.lines:
			_, _ = w.buf.Write(line)
		default:
			_ = w.buf.Flush()
			return
		}
	}
}

// Close stops the writer goroutine, drains whatever is still queued and
// closes the underlying file.
func (w *AsyncFileWriter) Close() error {
	close(w.quit)
	w.wg.Wait()
	return w.file.Close()
}
