package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"depositor/internal/mail"
	"depositor/internal/metrics"

	"go.uber.org/zap"
)

type WorkerConfig struct {
	Concurrency int
	MaxAttempts int
	// Backoff is the delay before the first retry; it doubles per attempt.
	Backoff     time.Duration
	PollWait    time.Duration
	SendTimeout time.Duration
}

// Worker drains a Queue and delivers jobs through a mail.Transport.
type Worker struct {
	queue     Queue
	transport mail.Transport
	cfg       WorkerConfig
	logger    *zap.Logger
	metrics   metrics.Collector
}

func NewWorker(q Queue, transport mail.Transport, cfg WorkerConfig, logger *zap.Logger, m metrics.Collector) *Worker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.PollWait <= 0 {
		cfg.PollWait = 5 * time.Second
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.NoopCollector{}
	}
	return &Worker{
		queue:     q,
		transport: transport,
		cfg:       cfg,
		logger:    logger,
		metrics:   m,
	}
}

// Run blocks until ctx is cancelled and every worker goroutine has returned.
func (w *Worker) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < w.cfg.Concurrency; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			w.loop(ctx, id)
		}(i)
	}
	w.logger.Info("mail workers started", zap.Int("concurrency", w.cfg.Concurrency))
	wg.Wait()
	w.logger.Info("mail workers stopped")
}

func (w *Worker) loop(ctx context.Context, id int) {
	for {
		if ctx.Err() != nil {
			return
		}

		job, err := w.queue.Dequeue(ctx, w.cfg.PollWait)
		if err != nil {
			if errors.Is(err, ErrEmpty) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			w.logger.Error("failed to dequeue mail job", zap.Int("worker", id), zap.Error(err))
			if !sleep(ctx, time.Second) {
				return
			}
			continue
		}

		w.Process(ctx, job)
	}
}

// Process sends one job, re-enqueueing it with backoff on failure until
// MaxAttempts is reached, after which it goes to the dead-letter list.
func (w *Worker) Process(ctx context.Context, job *Job) {
	sendCtx, cancel := context.WithTimeout(ctx, w.cfg.SendTimeout)
	err := w.transport.Send(sendCtx, job.To, job.Message)
	cancel()

	if err == nil {
		w.metrics.RecordMailJob(metrics.ResultSuccess)
		w.logger.Debug("mail job delivered", zap.String("job_id", job.ID), zap.String("to", job.To))
		return
	}

	job.Attempts++
	job.LastError = err.Error()
	log := w.logger.With(
		zap.String("job_id", job.ID),
		zap.String("type", job.Type),
		zap.String("to", job.To),
		zap.Int("attempts", job.Attempts),
		zap.Error(err),
	)

	if job.Attempts >= w.cfg.MaxAttempts {
		w.metrics.RecordMailJob(metrics.ResultDead)
		log.Error("mail job exhausted retries")
		// ctx may already be cancelled during shutdown; the job must still land somewhere.
		if dlErr := w.queue.DeadLetter(context.WithoutCancel(ctx), job); dlErr != nil {
			log.Error("failed to dead-letter mail job", zap.NamedError("dead_letter_error", dlErr))
		}
		return
	}

	w.metrics.RecordMailJob(metrics.ResultRetried)
	log.Warn("mail job failed, retrying")

	sleep(ctx, w.backoff(job.Attempts))
	if qErr := w.queue.Enqueue(context.WithoutCancel(ctx), job); qErr != nil {
		log.Error("failed to re-enqueue mail job", zap.NamedError("enqueue_error", qErr))
	}
}

func (w *Worker) backoff(attempt int) time.Duration {
	d := w.cfg.Backoff
	for i := 1; i < attempt; i++ {
		d *= 2
	}
	return d
}

// sleep waits for d or until ctx is done; it reports whether the full wait elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
