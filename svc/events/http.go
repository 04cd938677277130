package events

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/shopnotify/pkg/email"
	"github.com/dmitrymomot/shopnotify/pkg/logger"
	"github.com/dmitrymomot/shopnotify/svc/notify"
)

// EventIDHeader carries the envelope id on HTTP requests and responses.
const EventIDHeader = "X-Event-ID"

// Register mounts the event endpoints on r:
//
//	POST /events          body is an Envelope
//	POST /events/{kind}   body is the bare payload
func (rt *Router) Register(r chi.Router) {
	r.Post("/events", rt.handleEnvelope)
	r.Post("/events/{kind}", rt.handleKind)
}

// Handler returns a standalone chi router serving the event endpoints.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()
	rt.Register(r)
	return r
}

func (rt *Router) handleEnvelope(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, rt.maxBodyBytes))
	if err != nil {
		rt.writeError(w, r, Envelope{}, errors.Join(ErrInvalidPayload, err))
		return
	}

	env, err := ParseEnvelope(body)
	if err != nil {
		rt.writeError(w, r, env, err)
		return
	}
	rt.dispatch(w, r, env)
}

func (rt *Router) handleKind(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, rt.maxBodyBytes))
	if err != nil {
		rt.writeError(w, r, Envelope{}, errors.Join(ErrInvalidPayload, err))
		return
	}

	env := Envelope{
		ID:      r.Header.Get(EventIDHeader),
		Kind:    Kind(chi.URLParam(r, "kind")),
		Payload: body,
	}
	if env.ID == "" {
		env.ID = uuid.NewString()
	}
	rt.dispatch(w, r, env)
}

func (rt *Router) dispatch(w http.ResponseWriter, r *http.Request, env Envelope) {
	if err := rt.Dispatch(r.Context(), env); err != nil {
		rt.writeError(w, r, env, err)
		return
	}
	w.Header().Set(EventIDHeader, env.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, env Envelope, err error) {
	status := StatusCode(err)
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	rt.logger.LogAttrs(r.Context(), level, "event rejected",
		logger.MessageID(env.ID),
		logger.Event(string(env.Kind)),
		slog.Int("status", status),
		logger.Error(err),
	)

	if env.ID != "" {
		w.Header().Set(EventIDHeader, env.ID)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// StatusCode maps a dispatch error to its HTTP status.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusNoContent
	case errors.Is(err, ErrInvalidPayload), errors.Is(err, ErrUnknownEventKind):
		return http.StatusBadRequest
	case errors.Is(err, notify.ErrUnknownOrderState):
		return http.StatusUnprocessableEntity
	case errors.Is(err, notify.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, email.ErrFailedToSendEmail), errors.Is(err, email.ErrInvalidParams):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
