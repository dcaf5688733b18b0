// Package service implements the contact disclosure guard: it decides when an
// employer may see a worker's real contact details, meters reveals through
// credits and rolling daily/monthly caps, and records each reveal once.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"skilloncall/internal/disclosure/metrics"
	"skilloncall/internal/disclosure/models"
	"skilloncall/internal/disclosure/ports"
	id "skilloncall/pkg/domain"
	dErrors "skilloncall/pkg/domain-errors"
)

// Type aliases for the collaborator interfaces.
type (
	CreditLedger     = ports.CreditLedger
	AuditLog         = ports.AuditLog
	PlanCatalog      = ports.PlanCatalog
	ContactDirectory = ports.ContactDirectory
	TxRunner         = ports.TxRunner
	EventPublisher   = ports.EventPublisher
)

// Clock returns the current instant. Injected so window tests need no sleeping.
type Clock func() time.Time

const tracerName = "skilloncall/internal/disclosure"

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Config holds the account defaults applied when a requester is first seen.
type Config struct {
	DailyLimit   int
	MonthlyLimit int
	GrantTTL     time.Duration
}

// DefaultConfig returns 10 reveals a day, 100 a month and a 30 day grant.
func DefaultConfig() Config {
	return Config{
		DailyLimit:   10,
		MonthlyLimit: 100,
		GrantTTL:     30 * 24 * time.Hour,
	}
}

// Service is the contact disclosure guard.
type Service struct {
	ledger    CreditLedger
	events    AuditLog
	catalog   PlanCatalog
	contacts  ContactDirectory
	tx        TxRunner
	publisher EventPublisher
	clock     Clock
	config    Config
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithTxRunner replaces the in-memory sharded runner, e.g. with a Postgres one.
func WithTxRunner(tx TxRunner) Option {
	return func(s *Service) {
		if tx != nil {
			s.tx = tx
		}
	}
}

func WithPublisher(publisher EventPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithConfig(cfg Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// New builds the guard. Ledger, audit log, plan catalog and contact directory are required.
func New(ledger CreditLedger, events AuditLog, catalog PlanCatalog, contacts ContactDirectory, opts ...Option) (*Service, error) {
	if ledger == nil {
		return nil, fmt.Errorf("credit ledger is required")
	}
	if events == nil {
		return nil, fmt.Errorf("audit log is required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("plan catalog is required")
	}
	if contacts == nil {
		return nil, fmt.Errorf("contact directory is required")
	}

	svc := &Service{
		ledger:   ledger,
		events:   events,
		catalog:  catalog,
		contacts: contacts,
		tx:       NewShardedTx(),
		clock:    time.Now,
		config:   DefaultConfig(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(svc)
	}

	if svc.config.DailyLimit < 0 || svc.config.MonthlyLimit < 0 {
		return nil, fmt.Errorf("disclosure limits cannot be negative")
	}
	if svc.config.GrantTTL <= 0 {
		return nil, fmt.Errorf("grant TTL must be positive")
	}
	return svc, nil
}

func (s *Service) startSpan(ctx context.Context, name string, requesterID id.UserID, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("disclosure.requester_id", requesterID.String()))
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func validatePair(requesterID, targetID id.UserID) error {
	if requesterID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "requester is required")
	}
	if targetID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "target is required")
	}
	return nil
}

// seedAccount builds the account a requester starts with. It is not persisted.
func (s *Service) seedAccount(requester models.Requester, now time.Time) (*models.CreditAccount, error) {
	allotment := s.catalog.AllotmentForTier(requester.Tier)
	return models.NewCreditAccount(requester.ID, allotment, s.config.DailyLimit, s.config.MonthlyLimit, now, s.config.GrantTTL)
}
