// Package handler exposes the assessment service over HTTP under /aml.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"amlengine/internal/assessment/models"
	"amlengine/internal/risk"
	id "amlengine/pkg/domain"
	dErrors "amlengine/pkg/domain-errors"
	"amlengine/pkg/platform/httputil"
	"amlengine/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

// Service is the assessment use-case surface the handler depends on.
type Service interface {
	CalculateRiskScore(ctx context.Context, in risk.Input, ownership []decimal.Decimal) (*models.RiskScore, error)
	CreateAssessment(ctx context.Context, cmd models.CreateAssessmentCommand) (*models.AmlAssessment, error)
	DecideAssessment(ctx context.Context, cmd models.DecideAssessmentCommand) (*models.AmlAssessment, error)
	GetAssessment(ctx context.Context, clientID id.ClientID) (*models.AssessmentView, error)
	GetAssessmentHistory(ctx context.Context, clientID id.ClientID) ([]*models.AssessmentView, error)
	GetPendingReviews(ctx context.Context, q models.PendingReviewsQuery) (*models.PendingReviewsPage, error)
	ClientsRequiringReview(ctx context.Context, daysAhead int) ([]*models.AssessmentView, error)
	ScreenSanctions(ctx context.Context, clientID id.ClientID) (*models.ScreeningOutcome, error)
}

// Handler serves the AML assessment endpoints. Authentication middleware
// is applied by the caller's router.
type Handler struct {
	service         Service
	logger          *slog.Logger
	screeningLimits func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithScreeningLimiter wraps the sanctions screening route, which calls out
// to the external provider.
func WithScreeningLimiter(mw func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.screeningLimits = mw
	}
}

func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{service: service, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the /aml routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Route("/aml", func(r chi.Router) {
		r.Post("/risk-score", h.handleRiskScore)
		r.Post("/assessments", h.handleCreateAssessment)
		r.Post("/assessments/{id}/decision", h.handleDecision)
		r.Get("/clients/{clientID}/assessment", h.handleGetAssessment)
		r.Get("/clients/{clientID}/assessments", h.handleGetHistory)
		screening := r
		if h.screeningLimits != nil {
			screening = r.With(h.screeningLimits)
		}
		screening.Post("/clients/{clientID}/sanctions-screening", h.handleScreenSanctions)
		r.Get("/reviews/pending", h.handlePendingReviews)
		r.Get("/reviews/due", h.handleDueReviews)
	})
}

func (h *Handler) handleRiskScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[RiskScoreRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	score, err := h.service.CalculateRiskScore(ctx, req.input(), req.OwnershipPercentages)
	if err != nil {
		h.fail(ctx, w, err, "failed to calculate risk score")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &RiskScoreResponse{
		RiskScore:      score,
		NextReviewDate: score.NextReviewDate.Format(dateLayout),
	})
}

func (h *Handler) handleCreateAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateAssessmentRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	a, err := h.service.CreateAssessment(ctx, req.command())
	if err != nil {
		h.fail(ctx, w, err, "failed to create assessment")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toAssessmentResponse(&models.AssessmentView{AmlAssessment: a}))
}

func (h *Handler) handleDecision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	assessmentID, err := id.ParseAssessmentID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[DecisionRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	a, err := h.service.DecideAssessment(ctx, models.DecideAssessmentCommand{
		AssessmentID: assessmentID,
		Approved:     *req.Approved,
		Notes:        req.Notes,
	})
	if err != nil {
		h.fail(ctx, w, err, "failed to record decision")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAssessmentResponse(&models.AssessmentView{AmlAssessment: a}))
}

func (h *Handler) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID, err := id.ParseClientID(chi.URLParam(r, "clientID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	view, err := h.service.GetAssessment(ctx, clientID)
	if err != nil {
		h.fail(ctx, w, err, "failed to get assessment")
		return
	}
	// A client that has never been assessed gets a JSON null, not a 404.
	httputil.WriteJSON(w, http.StatusOK, toAssessmentResponse(view))
}

func (h *Handler) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID, err := id.ParseClientID(chi.URLParam(r, "clientID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	views, err := h.service.GetAssessmentHistory(ctx, clientID)
	if err != nil {
		h.fail(ctx, w, err, "failed to get assessment history")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAssessmentResponses(views))
}

func (h *Handler) handleScreenSanctions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID, err := id.ParseClientID(chi.URLParam(r, "clientID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	outcome, err := h.service.ScreenSanctions(ctx, clientID)
	if err != nil {
		h.fail(ctx, w, err, "sanctions screening failed")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, outcome)
}

func (h *Handler) handlePendingReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	page, err := intParam(q.Get("page"), "page")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	limit, err := intParam(q.Get("limit"), "limit")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.GetPendingReviews(ctx, models.PendingReviewsQuery{
		Page:   page,
		Limit:  limit,
		Rating: risk.Rating(q.Get("risk_rating")),
	})
	if err != nil {
		h.fail(ctx, w, err, "failed to list pending reviews")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &PendingReviewsResponse{
		Assessments: toAssessmentResponses(result.Assessments),
		Pagination:  result.Pagination,
	})
}

func (h *Handler) handleDueReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	days, err := intParam(r.URL.Query().Get("days_ahead"), "days_ahead")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	days, err = models.NormalizeDaysAhead(days)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	views, err := h.service.ClientsRequiringReview(ctx, days)
	if err != nil {
		h.fail(ctx, w, err, "failed to list due reviews")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &DueReviewsResponse{
		DaysAhead:   days,
		Count:       len(views),
		Assessments: toAssessmentResponses(views),
	})
}

// fail logs at a level matching the error class and writes the response.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	}
	if httputil.StatusFor(dErrors.GetCode(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}

func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeValidation, name+" must be an integer")
	}
	return n, nil
}
