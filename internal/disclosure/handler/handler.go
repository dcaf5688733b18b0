package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"skilloncall/internal/disclosure/models"
	"skilloncall/internal/platform/metrics"
	id "skilloncall/pkg/domain"
	dErrors "skilloncall/pkg/domain-errors"
	"skilloncall/pkg/platform/httputil"
	adminmw "skilloncall/pkg/platform/middleware/admin"
	authmw "skilloncall/pkg/platform/middleware/auth"
	"skilloncall/pkg/platform/middleware/metadata"
	"skilloncall/pkg/platform/middleware/request"
	"skilloncall/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/disclosure-mocks.go -package=mocks Service

// Service defines the disclosure operations exposed over HTTP.
type Service interface {
	Evaluate(ctx context.Context, requester models.Requester, targetID id.UserID) (models.Decision, error)
	Disclose(ctx context.Context, requester models.Requester, targetID id.UserID) (*models.ContactPayload, error)
	View(ctx context.Context, requester models.Requester, targetID id.UserID) (*models.ContactView, error)
	CreditsSummary(ctx context.Context, requester models.Requester) (*models.Summary, error)
	History(ctx context.Context, requesterID id.UserID, limit int) ([]*models.DisclosureEvent, error)
	RevealedTargets(ctx context.Context, requesterID id.UserID, targetIDs []id.UserID) (map[id.UserID]bool, error)
	GrantCredits(ctx context.Context, requester models.Requester, amount int) (*models.CreditAccount, error)
	UpdateLimits(ctx context.Context, requester models.Requester, daily, monthly int) (*models.CreditAccount, error)
	SyncContact(ctx context.Context, workerID id.UserID, record models.ContactRecord) error
}

// retryAfterSeconds is sent with transient failures.
const retryAfterSeconds = "1"

// Handler serves the contact disclosure endpoints.
type Handler struct {
	logger       *slog.Logger
	disclosure   Service
	metrics      *metrics.Metrics
	jwtValidator authmw.JWTValidator
}

// New creates a new disclosure Handler.
func New(
	disclosure Service,
	logger *slog.Logger,
	metrics *metrics.Metrics,
	jwtValidator authmw.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		disclosure:   disclosure,
		metrics:      metrics,
		jwtValidator: jwtValidator,
	}
}

// Register registers the disclosure routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(request.Recovery(h.logger))
	router.Use(request.RequestID)
	router.Use(request.Logger(h.logger))
	router.Use(metadata.ClientMetadata)
	router.Use(metrics.LatencyMiddleware(h.metrics))
	router.Use(authmw.RequireAuth(h.jwtValidator, h.logger))

	router.Get("/contacts/{targetID}", h.handleView)
	router.Get("/contacts/{targetID}/access", h.handleEvaluate)
	router.Post("/contacts/{targetID}/reveal", h.handleDisclose)
	router.Post("/contacts/revealed", h.handleRevealedTargets)
	router.Get("/credits", h.handleCreditsSummary)
	router.Get("/credits/history", h.handleHistory)

	router.Group(func(admin chi.Router) {
		admin.Use(adminmw.RequireAdmin(h.logger))
		admin.Post("/admin/credits/{requesterID}/grant", h.handleGrantCredits)
		admin.Put("/admin/credits/{requesterID}/limits", h.handleUpdateLimits)
		admin.Put("/admin/contacts/{workerID}", h.handleSyncContact)
	})

	r.Mount("/", router)
}

// requester reads the authenticated requester set by RequireAuth.
func (h *Handler) requester(w http.ResponseWriter, r *http.Request) (models.Requester, bool) {
	ctx := r.Context()
	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		// This should never happen if RequireAuth middleware is configured correctly
		h.logger.ErrorContext(ctx, "userID missing from context despite auth middleware",
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return models.Requester{}, false
	}
	return models.Requester{ID: userID, Tier: requestcontext.Tier(ctx)}, true
}

func (h *Handler) pathUserID(w http.ResponseWriter, r *http.Request, param string) (id.UserID, bool) {
	userID, err := id.ParseUserID(chi.URLParam(r, param))
	if err != nil {
		httputil.WriteError(w, err)
		return id.UserID{}, false
	}
	return userID, true
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	requester, ok := h.requester(w, r)
	if !ok {
		return
	}
	targetID, ok := h.pathUserID(w, r, "targetID")
	if !ok {
		return
	}

	view, err := h.disclosure.View(r.Context(), requester, targetID)
	if err != nil {
		h.writeServiceError(w, r, "view contact", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	requester, ok := h.requester(w, r)
	if !ok {
		return
	}
	targetID, ok := h.pathUserID(w, r, "targetID")
	if !ok {
		return
	}

	decision, err := h.disclosure.Evaluate(r.Context(), requester, targetID)
	if err != nil {
		h.writeServiceError(w, r, "evaluate disclosure", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, decision)
}

func (h *Handler) handleDisclose(w http.ResponseWriter, r *http.Request) {
	requester, ok := h.requester(w, r)
	if !ok {
		return
	}
	targetID, ok := h.pathUserID(w, r, "targetID")
	if !ok {
		return
	}

	payload, err := h.disclosure.Disclose(r.Context(), requester, targetID)
	if err != nil {
		h.writeServiceError(w, r, "disclose contact", err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	httputil.WriteJSON(w, http.StatusOK, payload)
}

func (h *Handler) handleRevealedTargets(w http.ResponseWriter, r *http.Request) {
	requester, ok := h.requester(w, r)
	if !ok {
		return
	}
	var req models.RevealedTargetsRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	targets, err := req.Parse()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	revealed, err := h.disclosure.RevealedTargets(r.Context(), requester.ID, targets)
	if err != nil {
		h.writeServiceError(w, r, "revealed targets", err)
		return
	}
	resp := models.RevealedTargetsResponse{Revealed: []string{}}
	for _, target := range targets {
		if revealed[target] {
			resp.Revealed = append(resp.Revealed, target.String())
		}
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCreditsSummary(w http.ResponseWriter, r *http.Request) {
	requester, ok := h.requester(w, r)
	if !ok {
		return
	}
	summary, err := h.disclosure.CreditsSummary(r.Context(), requester)
	if err != nil {
		h.writeServiceError(w, r, "credits summary", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	requester, ok := h.requester(w, r)
	if !ok {
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a number"))
			return
		}
		limit = parsed
	}

	events, err := h.disclosure.History(r.Context(), requester.ID, limit)
	if err != nil {
		h.writeServiceError(w, r, "disclosure history", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewHistoryResponse(events))
}

func (h *Handler) handleGrantCredits(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := h.pathUserID(w, r, "requesterID")
	if !ok {
		return
	}
	var req models.GrantCreditsRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	account, err := h.disclosure.GrantCredits(r.Context(), models.Requester{ID: requesterID, Tier: req.Tier}, req.Amount)
	if err != nil {
		h.writeServiceError(w, r, "grant credits", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, account)
}

func (h *Handler) handleUpdateLimits(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := h.pathUserID(w, r, "requesterID")
	if !ok {
		return
	}
	var req models.UpdateLimitsRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	account, err := h.disclosure.UpdateLimits(r.Context(), models.Requester{ID: requesterID, Tier: req.Tier}, *req.DailyLimit, *req.MonthlyLimit)
	if err != nil {
		h.writeServiceError(w, r, "update limits", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, account)
}

func (h *Handler) handleSyncContact(w http.ResponseWriter, r *http.Request) {
	workerID, ok := h.pathUserID(w, r, "workerID")
	if !ok {
		return
	}
	var req models.SyncContactRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.disclosure.SyncContact(r.Context(), workerID, req.Record()); err != nil {
		h.writeServiceError(w, r, "sync contact", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError renders disclosure denials with their detail and leaves
// everything else to the shared domain error mapping.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctx := r.Context()
	var denial *models.DisclosureError
	if errors.As(err, &denial) {
		status := denialStatus(denial.Reason)
		if denial.IsRetryable() {
			w.Header().Set("Retry-After", retryAfterSeconds)
			h.logger.ErrorContext(ctx, op+" failed",
				"request_id", requestcontext.RequestID(ctx),
				"error", err.Error(),
			)
		}
		httputil.WriteJSON(w, status, models.NewDenialResponse(denial))
		return
	}

	var de *dErrors.Error
	if !errors.As(err, &de) || de.Code == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, op+" failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}

func denialStatus(reason models.Reason) int {
	switch reason {
	case models.ReasonDailyLimitReached, models.ReasonMonthlyLimitReached:
		return http.StatusTooManyRequests
	case models.ReasonInsufficientCredits:
		return http.StatusPaymentRequired
	case models.ReasonTransientFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
