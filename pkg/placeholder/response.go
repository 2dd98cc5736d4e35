package placeholder

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/samvad-hq/placeholder-checklist/pkg/httpclient"
)

// Response is the full-response shape. Non-2xx statuses are carried here
// rather than reported as errors; callers inspect StatusCode.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	// Encoding is the charset declared by Content-Type. Without one it is
	// ISO-8859-1 for text types, utf-8 for application/json, else empty.
	Encoding string

	body []byte
}

func newResponse(resp httpclient.Response) *Response {
	header := resp.Header()
	if header == nil {
		header = http.Header{}
	}
	return &Response{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Header:     header,
		Encoding:   encodingFromHeader(header),
		body:       resp.Body(),
	}
}

// Body returns the raw payload.
func (r *Response) Body() []byte { return r.body }

// Text returns the payload as a string.
func (r *Response) Text() string { return string(r.body) }

// OK reports a 2xx status.
func (r *Response) OK() bool { return r.StatusCode >= 200 && r.StatusCode < 300 }

// JSON decodes the body on demand.
func (r *Response) JSON() (any, error) {
	return Decode(r.body)
}

// DecodeJSON decodes the body into v.
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.body, v); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

func (r *Response) String() string {
	if r.Status != "" {
		return r.Status
	}
	return fmt.Sprintf("%d %s", r.StatusCode, http.StatusText(r.StatusCode))
}

func encodingFromHeader(h http.Header) string {
	ct := h.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mediaType, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	if cs := params["charset"]; cs != "" {
		return strings.Trim(cs, `"'`)
	}
	switch {
	case strings.Contains(mediaType, "text"):
		return "ISO-8859-1"
	case strings.Contains(mediaType, "application/json"):
		return "utf-8"
	}
	return ""
}
