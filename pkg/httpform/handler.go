// Package httpform serves an editing session over HTTP: GET renders the form
// for a fresh session, POST commits the submitted fields and answers with the
// retrieved model.
package httpform

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-paramedit/pkg/model"
	"github.com/goliatone/go-paramedit/pkg/render"
	"github.com/goliatone/go-paramedit/pkg/renderers/vanilla"
	"github.com/goliatone/go-paramedit/pkg/store"
)

// SessionQueryParam names the query parameter addressing a session on
// /model.
const SessionQueryParam = "session"

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler and session logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithRenderer replaces the default vanilla renderer used for GET /.
func WithRenderer(renderer render.Renderer) Option {
	return func(h *Handler) {
		if renderer != nil {
			h.renderer = renderer
		}
	}
}

// WithRenderOptions sets the base render options. The session hidden field is
// merged in per request.
func WithRenderOptions(opts render.RenderOptions) Option {
	return func(h *Handler) {
		h.renderOptions = opts
	}
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(fn func() (string, error)) Option {
	return func(h *Handler) {
		if fn != nil {
			h.newID = fn
		}
	}
}

// Handler owns the sessions created through it. The session table is the only
// state shared between requests; each session is used by one request at a
// time.
type Handler struct {
	form          model.Form
	renderer      render.Renderer
	renderOptions render.RenderOptions
	logger        *zap.Logger
	newID         func() (string, error)
	guard         GuardFunc
	defaultLimit  int
	maxLimit      int
	mux           *http.ServeMux
	sessions      *sessionTable
}

// NewHandler builds a handler serving form.
func NewHandler(form model.Form, options ...Option) (*Handler, error) {
	h := &Handler{
		form:         form,
		logger:       zap.NewNop(),
		newID:        randomID,
		defaultLimit: defaultChoiceLimit,
		maxLimit:     maxChoiceLimit,
		sessions:     newSessionTable(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	if h.renderer == nil {
		renderer, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("httpform: %w", err)
		}
		h.renderer = renderer
	}

	h.mux = http.NewServeMux()
	h.mux.HandleFunc("GET /{$}", h.guarded(h.handleForm))
	h.mux.HandleFunc("POST /{$}", h.guarded(h.handleSubmit))
	h.mux.HandleFunc("GET /model", h.guarded(h.handleModel))
	h.mux.HandleFunc("DELETE /model", h.guarded(h.handleDiscard))
	h.mux.HandleFunc("GET /choices/{id}", h.guarded(h.handleChoices))
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// WithSession runs fn with the session registered under id while holding that
// session's lock. It reports false when no live session has that id.
func (h *Handler) WithSession(id string, fn func(*store.Session)) bool {
	e, ok := h.sessions.get(id)
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.session)
	return true
}

// Len reports the number of live sessions.
func (h *Handler) Len() int {
	return h.sessions.len()
}

func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	id, err := h.newID()
	if err != nil {
		h.fail(w, "create session id", err, http.StatusInternalServerError)
		return
	}
	session := store.New(h.form.Definitions, h.form.Model, store.WithLogger(h.logger.With(zap.String("session", id))))
	form := h.form
	form.Model = session.Snapshot()

	for _, dropped := range h.sessions.add(id, session) {
		h.logger.Debug("session evicted", zap.String("session", dropped))
	}

	opts := h.renderOptions
	opts.HiddenFields = render.MergeHiddenFields(opts.HiddenFields, render.SessionToken(id))

	out, err := h.renderer.Render(r.Context(), form, opts)
	if err != nil {
		h.fail(w, "render form", err, http.StatusInternalServerError)
		return
	}

	h.logger.Debug("session started", zap.String("session", id))
	w.Header().Set("Content-Type", h.renderer.ContentType())
	_, _ = w.Write(out)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}
	id := r.PostForm.Get(render.SessionFieldName)
	var (
		snapshot model.Model
		commits  int
		revision uint64
	)
	ok := h.WithSession(id, func(session *store.Session) {
		commits = render.DecodeSubmission(session.Definitions(), r.PostForm, session.Update)
		revision = session.Revision()
		snapshot = session.Snapshot()
	})
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	h.logger.Debug("submission decoded",
		zap.String("session", id),
		zap.Int("fields", commits),
		zap.Uint64("revision", revision),
	)
	h.writeModel(w, snapshot)
}

func (h *Handler) handleModel(w http.ResponseWriter, r *http.Request) {
	var snapshot model.Model
	ok := h.WithSession(r.URL.Query().Get(SessionQueryParam), func(session *store.Session) {
		snapshot = session.Snapshot()
	})
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	h.writeModel(w, snapshot)
}

func (h *Handler) handleDiscard(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(SessionQueryParam)
	if !h.sessions.remove(id) {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	h.logger.Debug("session discarded", zap.String("session", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeModel(w http.ResponseWriter, m model.Model) {
	payload, err := json.Marshal(m)
	if err != nil {
		h.fail(w, "encode model", err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}

func (h *Handler) fail(w http.ResponseWriter, action string, err error, status int) {
	if errors.Is(err, context.Canceled) {
		return
	}
	h.logger.Error("request failed", zap.String("action", action), zap.Error(err))
	http.Error(w, action+" failed", status)
}

func randomID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
