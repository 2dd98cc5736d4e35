package placeholder

import (
	"errors"
	"net/http"
	"strings"
)

// Shape selects what a request returns.
type Shape string

const (
	// ShapeJSON returns the body decoded as JSON (any).
	ShapeJSON Shape = "json"
	// ShapeRaw returns the undecoded body ([]byte).
	ShapeRaw Shape = "raw"
	// ShapeFull returns the whole response (*Response).
	ShapeFull Shape = "full"
)

var (
	// ErrUnsupportedMethod is returned for any method other than GET or PUT.
	ErrUnsupportedMethod = errors.New("unsupported method: request supports GET & PUT")
	// ErrUnsupportedShape is returned for a shape other than json, raw or full.
	ErrUnsupportedShape = errors.New("unsupported response shape: valid options are json, raw, and full")
)

// Valid reports whether s is one of the known shapes.
func (s Shape) Valid() bool {
	switch s {
	case ShapeJSON, ShapeRaw, ShapeFull:
		return true
	}
	return false
}

// normalizeMethod upper-cases method and reports whether it is GET or PUT.
func normalizeMethod(method string) (string, bool) {
	m := strings.ToUpper(strings.TrimSpace(method))
	switch m {
	case http.MethodGet, http.MethodPut:
		return m, true
	}
	return m, false
}
