package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/aldara/sentra/internal/engine"
	"github.com/aldara/sentra/internal/notify"
	"github.com/aldara/sentra/internal/scoring"
	"github.com/aldara/sentra/internal/store"
)

// DefaultAgentID is used by the single-agent aliases of the API.
const DefaultAgentID = "primary"

// Handler holds dependencies for HTTP handlers. audit, dispatcher and
// scorer are optional; nil disables the corresponding surface.
type Handler struct {
	registry   *engine.Registry
	audit      *store.Postgres
	dispatcher *notify.Dispatcher
	scorer     scoring.Scorer
	logger     *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(
	registry *engine.Registry,
	audit *store.Postgres,
	dispatcher *notify.Dispatcher,
	scorer scoring.Scorer,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		registry:   registry,
		audit:      audit,
		dispatcher: dispatcher,
		scorer:     scorer,
		logger:     logger,
	}
}

// Router builds the chi router with all routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.healthCheck)

		r.Post("/agents/{id}/risk", h.riskUpdate)
		r.Get("/agents/{id}/state", h.agentState)
		r.Post("/agents/{id}/reset", h.resetAgent)

		// Single-agent aliases for callers without multi-tenant routing.
		r.Post("/risk/update", h.riskUpdate)
		r.Get("/agent/state", h.agentState)
		r.Post("/agent/reset", h.resetAgent)

		r.Post("/assess", h.assessRisk)
	})

	return r
}

func (h *Handler) agentID(r *http.Request) string {
	if id := chi.URLParam(r, "id"); id != "" {
		return id
	}
	return DefaultAgentID
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"model_linked": h.scorer != nil,
	})
}

type riskUpdateRequest struct {
	RiskScore *float64         `json:"risk_score"`
	Location  *engine.Location `json:"location,omitempty"`
}

func (h *Handler) riskUpdate(w http.ResponseWriter, r *http.Request) {
	var req riskUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if req.RiskScore == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "risk_score is required"})
		return
	}

	agentID := h.agentID(r)
	decision := h.registry.ProcessRiskUpdate(r.Context(), agentID, *req.RiskScore, req.Location)
	h.afterDecision(r, agentID, decision, req.Location)
	writeJSON(w, http.StatusOK, decision)
}

func (h *Handler) agentState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.registry.Summary(h.agentID(r)))
}

func (h *Handler) resetAgent(w http.ResponseWriter, r *http.Request) {
	h.registry.Reset(r.Context(), h.agentID(r))
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "agent reset to initial state",
	})
}

type assessRequest struct {
	AgentID  string           `json:"agent_id,omitempty"`
	Features scoring.Features `json:"features"`
}

// assessRisk chains the external scoring model and the decision engine:
// features in, decision out.
func (h *Handler) assessRisk(w http.ResponseWriter, r *http.Request) {
	if h.scorer == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "scoring model not configured"})
		return
	}

	var req assessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	agentID := req.AgentID
	if agentID == "" {
		agentID = DefaultAgentID
	}

	score, err := h.scorer.Score(r.Context(), req.Features)
	if err != nil {
		h.logger.Error("scoring failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	loc := &engine.Location{Latitude: req.Features.Latitude, Longitude: req.Features.Longitude}
	decision := h.registry.ProcessRiskUpdate(r.Context(), agentID, score, loc)
	h.afterDecision(r, agentID, decision, loc)
	writeJSON(w, http.StatusOK, decision)
}

// afterDecision runs the best-effort side channels: audit trail and alert
// fan-out. Neither can fail the request. Monitor alerts stay quiet; only
// route suggestions and escalations reach the notifiers.
func (h *Handler) afterDecision(r *http.Request, agentID string, d engine.Decision, loc *engine.Location) {
	if h.audit != nil {
		if err := h.audit.RecordDecision(r.Context(), agentID, d, loc); err != nil {
			h.logger.Error("audit insert failed", zap.Error(err))
		}
	}
	if h.dispatcher != nil && d.Alerted && d.Action != engine.ActionMonitor {
		h.dispatcher.Dispatch(r.Context(), &notify.Alert{AgentID: agentID, Decision: d})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
