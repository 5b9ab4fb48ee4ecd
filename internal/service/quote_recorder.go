package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/guttosm/freight-rate-service/internal/logger"
	"github.com/guttosm/freight-rate-service/internal/metrics"
	"github.com/guttosm/freight-rate-service/internal/repository"
)

// QuoteRecorderConfig holds configuration for the quote history recorder.
type QuoteRecorderConfig struct {
	// BufferSize is the size of the record channel buffer.
	BufferSize int
	// NumWorkers is the number of worker goroutines writing records.
	NumWorkers int
	// BatchSize caps how many buffered records one write carries.
	BatchSize int
	// WriteTimeout is the timeout for one write to the store.
	WriteTimeout time.Duration
}

// DefaultQuoteRecorderConfig returns sensible defaults for the recorder.
func DefaultQuoteRecorderConfig() QuoteRecorderConfig {
	return QuoteRecorderConfig{
		BufferSize:   1000,
		NumWorkers:   2,
		BatchSize:    50,
		WriteTimeout: 5 * time.Second,
	}
}

// QuoteRecorder writes quote history asynchronously through a bounded worker pool.
// Records are dropped when the buffer is full so quoting never waits on storage.
type QuoteRecorder struct {
	repo         repository.QuotesRepositoryInterface
	recordCh     chan *model.QuoteRecord
	wg           sync.WaitGroup
	stopCh       chan struct{}
	stopOnce     sync.Once
	batchSize    int
	writeTimeout time.Duration
	log          zerolog.Logger

	enqueued int64
	dropped  int64
	written  int64
	errors   int64
}

// RecorderStats is a snapshot of the recorder counters.
type RecorderStats struct {
	Enqueued int64 `json:"enqueued"`
	Dropped  int64 `json:"dropped"`
	Written  int64 `json:"written"`
	Errors   int64 `json:"errors"`
}

// NewQuoteRecorder starts a recorder writing to repo. It returns nil when repo is nil.
func NewQuoteRecorder(repo repository.QuotesRepositoryInterface, cfg QuoteRecorderConfig) *QuoteRecorder {
	if repo == nil {
		return nil
	}
	def := DefaultQuoteRecorderConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = def.BufferSize
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = def.NumWorkers
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}

	r := &QuoteRecorder{
		repo:         repo,
		recordCh:     make(chan *model.QuoteRecord, cfg.BufferSize),
		stopCh:       make(chan struct{}),
		batchSize:    cfg.BatchSize,
		writeTimeout: cfg.WriteTimeout,
		log:          logger.Component("quote_recorder"),
	}

	for i := 0; i < cfg.NumWorkers; i++ {
		r.wg.Add(1)
		go r.worker()
	}

	return r
}

func (r *QuoteRecorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case record := <-r.recordCh:
			r.write(r.collect(record))
		case <-r.stopCh:
			// Drain remaining records before stopping
			for {
				select {
				case record := <-r.recordCh:
					r.write(r.collect(record))
				default:
					return
				}
			}
		}
	}
}

// collect gathers already buffered records behind first, up to the batch size.
func (r *QuoteRecorder) collect(first *model.QuoteRecord) []*model.QuoteRecord {
	batch := []*model.QuoteRecord{first}
	for len(batch) < r.batchSize {
		select {
		case record := <-r.recordCh:
			batch = append(batch, record)
		default:
			return batch
		}
	}
	return batch
}

func (r *QuoteRecorder) write(batch []*model.QuoteRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), r.writeTimeout)
	defer cancel()

	var err error
	if len(batch) == 1 {
		err = r.repo.Create(ctx, batch[0])
	} else {
		err = r.repo.CreateMany(ctx, batch)
	}

	n := int64(len(batch))
	if err != nil {
		atomic.AddInt64(&r.errors, n)
		metrics.RecordQuoteHistory("error")
		r.log.Warn().Err(err).Int("records", len(batch)).Msg("Failed to write quote history")
		return
	}
	atomic.AddInt64(&r.written, n)
	metrics.RecordQuoteHistory("written")
}

// Record enqueues a record. It returns false when the buffer is full or the
// recorder is stopped.
func (r *QuoteRecorder) Record(record *model.QuoteRecord) bool {
	select {
	case <-r.stopCh:
		atomic.AddInt64(&r.dropped, 1)
		return false
	default:
	}

	select {
	case r.recordCh <- record:
		atomic.AddInt64(&r.enqueued, 1)
		return true
	default:
		atomic.AddInt64(&r.dropped, 1)
		metrics.RecordQuoteHistory("dropped")
		return false
	}
}

// Stop waits for pending records to be written. It is safe to call more than once.
func (r *QuoteRecorder) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
		r.wg.Wait()
	})
}

// Stats returns the current counters.
func (r *QuoteRecorder) Stats() RecorderStats {
	return RecorderStats{
		Enqueued: atomic.LoadInt64(&r.enqueued),
		Dropped:  atomic.LoadInt64(&r.dropped),
		Written:  atomic.LoadInt64(&r.written),
		Errors:   atomic.LoadInt64(&r.errors),
	}
}
