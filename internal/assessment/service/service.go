// Package service implements the AML assessment lifecycle: scoring,
// creation with the client compliance snapshot, approval decisions,
// sanctions screening and the review queues.
//
// Callers are identified by the user id in the request context and must
// resolve to an active staff profile. Staff see only clients that share one
// of their businesses; decisions and the pending queue need ADMIN.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"amlengine/internal/assessment/metrics"
	"amlengine/internal/assessment/models"
	dirmodels "amlengine/internal/directory/models"
	"amlengine/internal/risk"
	"amlengine/internal/screening"
	id "amlengine/pkg/domain"
	dErrors "amlengine/pkg/domain-errors"
	"amlengine/pkg/platform/audit"
	"amlengine/pkg/platform/middleware/metadata"
	"amlengine/pkg/platform/sentinel"
	"amlengine/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

type AssessmentStore interface {
	Create(ctx context.Context, a *models.AmlAssessment) error
	FindByID(ctx context.Context, assessmentID id.AssessmentID) (*models.AmlAssessment, error)
	FindLatestByClient(ctx context.Context, clientID id.ClientID) (*models.AmlAssessment, error)
	ListByClient(ctx context.Context, clientID id.ClientID) ([]*models.AmlAssessment, error)
	ListPending(ctx context.Context, filter models.PendingFilter) ([]*models.AmlAssessment, int, error)
	ListDue(ctx context.Context, filter models.DueFilter) ([]*models.AmlAssessment, error)
	// UpdateDecision writes only the workflow fields; a non-empty expected
	// status makes the write conditional on the stored status.
	UpdateDecision(ctx context.Context, a *models.AmlAssessment, expected models.Status) error
	// UpdateScreening writes only the sanctions fields.
	UpdateScreening(ctx context.Context, a *models.AmlAssessment) error
}

type ClientStore interface {
	FindByID(ctx context.Context, clientID id.ClientID) (*dirmodels.Client, error)
	FindByIDs(ctx context.Context, ids []id.ClientID) (map[id.ClientID]*dirmodels.Client, error)
	ListIDsByBusinesses(ctx context.Context, businesses []string) ([]id.ClientID, error)
	UpdateComplianceFields(ctx context.Context, clientID id.ClientID, update dirmodels.ComplianceUpdate) error
}

type StaffStore interface {
	FindByUserID(ctx context.Context, userID id.UserID) (*dirmodels.Staff, error)
	FindByIDs(ctx context.Context, ids []id.StaffID) (map[id.StaffID]*dirmodels.Staff, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates assessments over the directory and assessment stores.
type Service struct {
	assessments AssessmentStore
	clients     ClientStore
	staff       StaffStore
	tx          AssessmentStoreTx
	calculator  *risk.Calculator
	screener    screening.Provider

	logger          *slog.Logger
	metrics         *metrics.Metrics
	tracer          trace.Tracer
	compliance      AuditPublisher
	auditPublisher  AuditPublisher
	strictDecisions bool
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithCompliancePublisher sets the fail-closed publisher for assessment,
// decision and screening events. It is called inside the store transaction.
func WithCompliancePublisher(p AuditPublisher) Option {
	return func(s *Service) {
		s.compliance = p
	}
}

// WithAuditPublisher sets the best-effort publisher for access denials,
// degraded screenings and score calculations.
func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = p
	}
}

func WithTx(tx AssessmentStoreTx) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

func WithScreeningProvider(p screening.Provider) Option {
	return func(s *Service) {
		s.screener = p
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithStrictDecisions only allows decisions on PENDING assessments.
func WithStrictDecisions() Option {
	return func(s *Service) {
		s.strictDecisions = true
	}
}

// New wires the service. Without WithTx, a ShardedTx over the given stores
// provides transactions, which needs an assessment store that can undo its
// inserts; without WithScreeningProvider, the stub provider is used.
func New(assessments AssessmentStore, clients ClientStore, staff StaffStore, calculator *risk.Calculator, opts ...Option) *Service {
	s := &Service{
		assessments: assessments,
		clients:     clients,
		staff:       staff,
		calculator:  calculator,
		logger:      slog.Default(),
		tracer:      otel.Tracer("amlengine/assessment"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = defaultTx(assessments, clients)
	}
	if s.screener == nil {
		s.screener = screening.NewStubProvider()
	}
	return s
}

// resolveStaff maps the authenticated user to an active staff profile.
func (s *Service) resolveStaff(ctx context.Context) (*dirmodels.Staff, error) {
	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	staff, err := s.staff.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.denyAccess(ctx, "", "no_staff_profile")
			return nil, dErrors.New(dErrors.CodeForbidden, "staff profile required")
		}
		return nil, translateStoreError(err, "staff profile")
	}
	if !staff.IsActive {
		s.denyAccess(ctx, "", "staff_inactive")
		return nil, dErrors.New(dErrors.CodeForbidden, "staff profile is inactive")
	}
	return staff, nil
}

func (s *Service) requireAdmin(ctx context.Context) (*dirmodels.Staff, error) {
	staff, err := s.resolveStaff(ctx)
	if err != nil {
		return nil, err
	}
	if !staff.IsAdmin() {
		s.denyAccess(ctx, "", "admin_required")
		return nil, dErrors.New(dErrors.CodeForbidden, "admin role required")
	}
	return staff, nil
}

// accessibleClient loads a client the staff member shares a business with.
func (s *Service) accessibleClient(ctx context.Context, staff *dirmodels.Staff, clientID id.ClientID) (*dirmodels.Client, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, translateStoreError(err, "client")
	}
	if !staff.CanAccess(client) {
		s.denyAccess(ctx, clientID.String(), "business_mismatch")
		return nil, dErrors.New(dErrors.CodeForbidden, "no access to client")
	}
	return client, nil
}

func (s *Service) accessibleClientIDs(ctx context.Context, staff *dirmodels.Staff) ([]id.ClientID, error) {
	businesses := staff.AccessibleBusinesses()
	if len(businesses) == 0 {
		return nil, nil
	}
	ids, err := s.clients.ListIDsByBusinesses(ctx, businesses)
	if err != nil {
		return nil, translateStoreError(err, "clients")
	}
	return ids, nil
}

func (s *Service) denyAccess(ctx context.Context, subject, reason string) {
	s.metrics.IncrementAccessDenied()
	s.logger.WarnContext(ctx, "aml access denied",
		"user_id", requestcontext.UserID(ctx).String(),
		"client_id", subject,
		"reason", reason,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.emitBestEffort(ctx, audit.Event{
		Action:   string(audit.EventAccessDenied),
		Subject:  subject,
		Decision: "denied",
		Reason:   reason,
	})
}

// emitCompliance writes a compliance event; failure aborts the caller's tx.
func (s *Service) emitCompliance(ctx context.Context, event audit.Event) error {
	if s.compliance == nil {
		return nil
	}
	s.stampEvent(ctx, &event)
	if err := s.compliance.Emit(ctx, event); err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorage, "failed to record audit event")
	}
	return nil
}

func (s *Service) emitBestEffort(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	s.stampEvent(ctx, &event)
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", event.Action, "error", err)
	}
}

func (s *Service) stampEvent(ctx context.Context, event *audit.Event) {
	event.Timestamp = requestcontext.Now(ctx)
	event.UserID = requestcontext.UserID(ctx)
	event.RequestID = requestcontext.RequestID(ctx)
	event.ClientIP = metadata.GetClientIP(ctx)
	event.UserAgent = metadata.GetUserAgent(ctx)
}

// translateStoreError maps store sentinels to domain errors for resource.
// Anything unrecognised is a storage failure, distinct from validation.
func translateStoreError(err error, resource string) error {
	var de *dErrors.Error
	switch {
	case errors.As(err, &de):
		return err
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, resource+" not found")
	case errors.Is(err, sentinel.ErrInvalidState), errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, resource+" changed concurrently")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "storage unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "storage timed out")
	default:
		return dErrors.Wrap(err, dErrors.CodeStorage, "failed to access "+resource)
	}
}
