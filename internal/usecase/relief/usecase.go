package relief

import (
	"context"
	"time"

	"go.uber.org/zap"

	"relief-fund-backend/internal/domain/uow"
	"relief-fund-backend/internal/observability/logger"
	"relief-fund-backend/internal/observability/metrics"
)

const (
	WorkflowFileComplaint    = "file_complaint"
	WorkflowApproveComplaint = "approve_complaint"
	WorkflowProcessPayment   = "process_payment"
	WorkflowBulkRegister     = "bulk_register"
)

// Cache is the read-side TTL cache. It is never consulted by workflows.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) bool
	SetJSON(ctx context.Context, key string, v any)
	Invalidate(ctx context.Context, keys ...string)
}

type Recorder interface {
	Observe(workflow, outcome string, elapsed time.Duration)
	StepFailed(workflow, step, kind string)
	CacheLookup(entity, result string)
}

// Timeouts bound each unit of work.
type Timeouts struct {
	LockWait    time.Duration
	Timeout     time.Duration
	BulkTimeout time.Duration
}

func DefaultTimeouts() Timeouts {
	return Timeouts{LockWait: 5 * time.Second, Timeout: 30 * time.Second, BulkTimeout: 60 * time.Second}
}

// Usecase is the transaction coordinator. Workflows run through uow; queries
// read through reads, which must not be bound to a transaction.
type Usecase struct {
	uow      uow.UnitOfWork
	reads    uow.Repos
	cache    Cache
	log      *zap.Logger
	metrics  Recorder
	timeouts Timeouts
	now      func() time.Time
}

type Option func(*Usecase)

func WithCache(c Cache) Option { return func(u *Usecase) { u.cache = c } }

func WithLogger(l *zap.Logger) Option { return func(u *Usecase) { u.log = l } }

func WithMetrics(m Recorder) Option { return func(u *Usecase) { u.metrics = m } }

func WithTimeouts(t Timeouts) Option { return func(u *Usecase) { u.timeouts = t } }

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

func NewUsecase(tx uow.UnitOfWork, reads uow.Repos, opts ...Option) *Usecase {
	u := &Usecase{
		uow:      tx,
		reads:    reads,
		log:      zap.NewNop(),
		metrics:  (*metrics.WorkflowMetrics)(nil),
		timeouts: DefaultTimeouts(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.log == nil {
		u.log = zap.NewNop()
	}
	if u.metrics == nil {
		u.metrics = (*metrics.WorkflowMetrics)(nil)
	}
	return u
}

// progress names the step a workflow body has reached.
type progress struct{ step string }

func (p *progress) at(step string) { p.step = step }

// run executes body as one unit of work and logs and measures the outcome.
// The body's error is returned unchanged.
func (u *Usecase) run(ctx context.Context, workflow string, timeout time.Duration, body func(ctx context.Context, tx uow.Tx, p *progress) error) error {
	start := time.Now()
	p := &progress{step: "begin"}
	opts := uow.Options{Name: workflow, LockWait: u.timeouts.LockWait, Timeout: timeout}

	err := u.uow.WithinTx(ctx, opts, func(ctx context.Context, tx uow.Tx) error {
		if err := body(ctx, tx, p); err != nil {
			return err
		}
		p.at("commit")
		return nil
	})
	u.finish(ctx, workflow, p.step, time.Since(start), err)
	return err
}

func (u *Usecase) finish(ctx context.Context, workflow, step string, elapsed time.Duration, err error) {
	log := logger.WithContext(ctx, u.log).With(zap.String("workflow", workflow))
	if err == nil {
		u.metrics.Observe(workflow, metrics.OutcomeSuccess, elapsed)
		log.Info("workflow committed", zap.Duration("elapsed", elapsed))
		return
	}

	kind := KindOf(err)
	u.metrics.Observe(workflow, string(kind), elapsed)
	u.metrics.StepFailed(workflow, step, string(kind))

	fields := []zap.Field{
		zap.String("step", step),
		zap.String("kind", string(kind)),
		zap.Duration("elapsed", elapsed),
		zap.Error(err),
	}
	switch kind {
	case KindConcurrency, KindUnknown:
		log.Error("workflow rolled back", fields...)
	default:
		log.Warn("workflow rejected", fields...)
	}
}

// rejectEarly accounts for a request refused before any unit of work opened.
func (u *Usecase) rejectEarly(ctx context.Context, workflow string, err error) error {
	u.finish(ctx, workflow, "validate", 0, err)
	return err
}

func fundKey(memberID string) string { return "fund:" + memberID }

func complaintKey(complaintID string) string { return "complaint:" + complaintID }

func paymentsKey(memberID string) string { return "payments:" + memberID }

// invalidate runs only after commit.
func (u *Usecase) invalidate(ctx context.Context, keys ...string) {
	if u.cache != nil {
		u.cache.Invalidate(ctx, keys...)
	}
}
