package httpform

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-paramedit/pkg/model"
	"github.com/goliatone/go-paramedit/pkg/render"
)

// Query parameters accepted by GET /choices/{id}.
const (
	SearchParam = "q"
	LimitParam  = "limit"
)

const (
	defaultChoiceLimit = 50
	maxChoiceLimit     = 200
)

// GuardFunc authorises a request before it reaches a handler route. A
// returned error carrying a StatusCode selects the response status; any other
// error answers 403.
type GuardFunc func(r *http.Request) error

// StatusError pairs an error with the HTTP status a guard wants returned.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// WithGuard installs a guard checked on every route.
func WithGuard(fn GuardFunc) Option {
	return func(h *Handler) {
		h.guard = fn
	}
}

// WithChoiceLimits sets the default and maximum number of options returned by
// GET /choices/{id}. Non-positive values keep the defaults.
func WithChoiceLimits(defaultLimit, maxLimit int) Option {
	return func(h *Handler) {
		if maxLimit > 0 {
			h.maxLimit = maxLimit
		}
		if defaultLimit > 0 {
			h.defaultLimit = defaultLimit
		}
	}
}

type choicesResponse struct {
	Data []render.Option `json:"data"`
}

func (h *Handler) handleChoices(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid parameter id", http.StatusBadRequest)
		return
	}
	def, ok := findDefinition(h.form.Definitions, id)
	if !ok || def.Kind != model.KindChoice {
		http.Error(w, "unknown choice parameter", http.StatusNotFound)
		return
	}

	query := r.URL.Query()
	limit := h.clampLimit(parseInt(query.Get(LimitParam)))
	results := SearchChoices(def.Choices, query.Get(SearchParam), limit)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(choicesResponse{Data: results})
}

// SearchChoices filters choices by a case-insensitive substring match.
// Prefix matches come first; declaration order is kept within each group. An
// empty query returns the leading choices.
func SearchChoices(choices []string, query string, limit int) []render.Option {
	out := []render.Option{}
	if limit <= 0 {
		return out
	}

	query = strings.ToLower(strings.TrimSpace(query))
	type match struct {
		value    string
		isPrefix bool
	}
	matches := make([]match, 0, len(choices))
	for _, choice := range choices {
		lower := strings.ToLower(choice)
		if query != "" && !strings.Contains(lower, query) {
			continue
		}
		matches = append(matches, match{value: choice, isPrefix: strings.HasPrefix(lower, query)})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].isPrefix && !matches[j].isPrefix
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	for _, m := range matches {
		out = append(out, render.Option{Value: m.value, Label: m.value})
	}
	return out
}

func (h *Handler) clampLimit(limit int) int {
	if limit <= 0 {
		limit = h.defaultLimit
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}
	return limit
}

func (h *Handler) guarded(next http.HandlerFunc) http.HandlerFunc {
	if h.guard == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.guard(r); err != nil {
			writeGuardError(w, err)
			return
		}
		next(w, r)
	}
}

func writeGuardError(w http.ResponseWriter, err error) {
	code := http.StatusForbidden
	var httpErr interface{ StatusCode() int }
	if errors.As(err, &httpErr) {
		if c := httpErr.StatusCode(); c > 0 {
			code = c
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func findDefinition(defs []model.ParameterDefinition, id int) (model.ParameterDefinition, bool) {
	for _, def := range defs {
		if def.ID == id {
			return def, true
		}
	}
	return model.ParameterDefinition{}, false
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
