package render

import (
	"context"

	"github.com/goliatone/go-paramedit/pkg/model"
)

// Renderer turns a form (definitions plus current model) into a byte
// representation: HTML markup, or the model retrieved after an interactive
// terminal session.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.Form, options RenderOptions) ([]byte, error)
}
