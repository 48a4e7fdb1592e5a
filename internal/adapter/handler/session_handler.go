package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/srgjo27/flight_booking/internal/core/services"
)

// Handler exposes the per-session stores over HTTP. Backend failures are
// already flattened to a message by the stores and are reported as 502.
type Handler struct {
	sessions *services.SessionManager
	limiter  *RateLimiter
	logger   *zap.Logger
}

// NewHandler builds the gateway handler. limiter may be nil.
func NewHandler(sessions *services.SessionManager, limiter *RateLimiter, logger *zap.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		limiter:  limiter,
		logger:   logger.Named("http"),
	}
}

type createSessionResponse struct {
	SessionID string `json:"sessionId"`
	DeviceID  string `json:"deviceId"`
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Create(r.Context(), r.Header.Get(HeaderDeviceID))
	respondJSON(w, http.StatusCreated, createSessionResponse{SessionID: sess.ID, DeviceID: sess.DeviceID})
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(HeaderSessionID)
	if id == "" {
		respondError(w, http.StatusUnauthorized, "missing "+HeaderSessionID+" header")
		return
	}

	if !h.sessions.Delete(r.Context(), id) {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	if h.limiter != nil {
		h.limiter.Forget(id)
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, sessionFrom(r).Snapshot())
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sess := sessionFrom(r)
	if !sess.Users.SignIn(r.Context(), req.Email, req.Password) {
		respondError(w, http.StatusUnauthorized, sess.Users.Error())
		return
	}

	respondJSON(w, http.StatusOK, sess.Users.User())
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sess := sessionFrom(r)
	if !sess.Users.SignUp(r.Context(), req.Name, req.Email, req.Password) {
		respondError(w, http.StatusBadRequest, sess.Users.Error())
		return
	}

	respondJSON(w, http.StatusCreated, sess.Users.User())
}

func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r).SignOut(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
