package store

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-paramedit/pkg/model"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger routes session diagnostics (dropped updates, retrievals) to
// logger. Sessions log nothing by default.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session owns the model under edit for one editing session. It is not safe
// for concurrent use; callers that share a session serialise access.
type Session struct {
	definitions []model.ParameterDefinition
	index       map[int]int

	initial  *model.Model
	current  *model.Model
	revision uint64

	logger *zap.Logger
}

// New reconciles initial against definitions and starts a session.
func New(definitions []model.ParameterDefinition, initial model.Model, options ...Option) *Session {
	defs := append([]model.ParameterDefinition(nil), definitions...)
	index := make(map[int]int, len(defs))
	for i, def := range defs {
		if _, exists := index[def.ID]; !exists {
			index[def.ID] = i
		}
	}

	current := Initialize(defs, initial)
	s := &Session{
		definitions: defs,
		index:       index,
		initial:     current,
		current:     current,
		logger:      zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// SetValue applies a single-field update and reports whether the model
// changed. Unknown ids are dropped without error.
func (s *Session) SetValue(id int, value model.Value) bool {
	next := SetValue(s.current, id, value)
	if next == s.current {
		if !Has(s.current, id) {
			s.logger.Debug("dropped update for unknown parameter", zap.Int("parameter_id", id))
		}
		return false
	}
	s.current = next
	s.revision++
	s.logger.Debug("parameter updated",
		zap.Int("parameter_id", id),
		zap.Stringer("value", value),
		zap.Uint64("revision", s.revision),
	)
	return true
}

// Update adapts SetValue to model.ChangeFunc so renderers can report edits
// directly into the session.
func (s *Session) Update(id int, value model.Value) {
	s.SetValue(id, value)
}

// GetValue returns the current value for id, or the empty string.
func (s *Session) GetValue(id int) model.Value {
	return GetValue(s.current, id)
}

// Model returns the current model instance. The pointer only changes when an
// update changes a value; treat the pointee as read-only.
func (s *Session) Model() *model.Model {
	return s.current
}

// Snapshot returns a deep copy of the current model. Later edits never
// affect a returned snapshot.
func (s *Session) Snapshot() model.Model {
	s.logger.Debug("model retrieved",
		zap.Uint64("revision", s.revision),
		zap.Int("values", len(s.current.Values)),
	)
	return s.current.Clone()
}

// Revision counts the updates that changed the model.
func (s *Session) Revision() uint64 {
	return s.revision
}

// Definitions returns the definitions in iteration order.
func (s *Session) Definitions() []model.ParameterDefinition {
	return append([]model.ParameterDefinition(nil), s.definitions...)
}

// Definition looks up a definition by id.
func (s *Session) Definition(id int) (model.ParameterDefinition, bool) {
	idx, ok := s.index[id]
	if !ok {
		return model.ParameterDefinition{}, false
	}
	return s.definitions[idx], true
}

// Dirty lists, in model order, the ids whose value differs from the value the
// session was initialised with.
func (s *Session) Dirty() []int {
	if s.current == s.initial {
		return nil
	}
	var out []int
	for _, pv := range s.current.Values {
		if !GetValue(s.initial, pv.ParameterID).Equal(pv.Value) {
			out = append(out, pv.ParameterID)
		}
	}
	return out
}
