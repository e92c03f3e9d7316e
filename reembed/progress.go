package reembed

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// progressLog reports reembedding progress to a writer every reportEvery
// listings. Reembedding a large store can run for minutes against a slow
// embedding service, so the operator gets periodic rate feedback.
type progressLog struct {
	writer      io.Writer
	total       int
	reportEvery int

	mu       sync.Mutex
	done     int
	reported int
	began    time.Time
	running  bool
}

func newProgressLog(writer io.Writer, total, reportEvery int) *progressLog {
	return &progressLog{
		writer:      writer,
		total:       total,
		reportEvery: reportEvery,
	}
}

// begin starts the clock. Calls before begin are ignored.
func (l *progressLog) begin() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.began = time.Now()
	l.running = true
	l.done = 0
	l.reported = 0
}

// advance records that done listings have been reembedded so far and emits
// a report when a reporting interval has been crossed.
func (l *progressLog) advance(done int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running {
		return
	}

	if done > l.total {
		done = l.total
	}
	l.done = done

	if l.done-l.reported >= l.reportEvery {
		l.write()
		l.reported = l.done
	}
}

// end emits the final report and a trailing newline.
func (l *progressLog) end() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running {
		return
	}

	l.done = l.total
	l.write()
	fmt.Fprintln(l.writer)
}

// elapsed returns the time since begin.
func (l *progressLog) elapsed() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running {
		return 0
	}
	return time.Since(l.began)
}

// write emits one progress line. Caller holds the lock.
func (l *progressLog) write() {
	elapsed := time.Since(l.began)
	rate := float64(l.done) / elapsed.Seconds()

	percentage := 0.0
	if l.total > 0 {
		percentage = float64(l.done) / float64(l.total) * 100.0
	}

	fmt.Fprintf(l.writer, "\rreembedded %d/%d listings (%.1f%%), %.1f listings/s",
		l.done, l.total, percentage, rate)
}
