package render

import (
	"context"
	"encoding/json"
	"fmt"
)

// JSONRenderer serialises the View itself, for clients that drive the wizard
// over fetch requests.
type JSONRenderer struct {
	indent bool
}

// NewJSON returns a JSON renderer. indent pretty-prints the output.
func NewJSON(indent bool) *JSONRenderer {
	return &JSONRenderer{indent: indent}
}

func (r *JSONRenderer) Name() string {
	return "json"
}

func (r *JSONRenderer) ContentType() string {
	return "application/json"
}

func (r *JSONRenderer) Render(_ context.Context, view View) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if r.indent {
		out, err = json.MarshalIndent(view, "", "  ")
	} else {
		out, err = json.Marshal(view)
	}
	if err != nil {
		return nil, fmt.Errorf("render: encode view: %w", err)
	}
	return out, nil
}
