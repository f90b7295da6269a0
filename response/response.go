package response

import (
	"encoding/json"
	"net/http"
)

// Response is what a handler, middleware, or the dispatcher itself
// produces. A "draft" Response is seeded by the chain before any
// middleware runs (Ok()) and may be freely mutated or replaced as the
// chain unwinds.
type Response struct {
	StatusCode  int
	Headers     http.Header
	ContentType string
	Body        []byte
}

// Ok is the sentinel draft Response: 200, text/plain, body "[]" — the
// conventional Slack Events API "do nothing, but acknowledge" reply.
func Ok() *Response {
	return &Response{
		StatusCode:  http.StatusOK,
		ContentType: "text/plain",
		Body:        []byte("[]"),
		Headers:     http.Header{},
	}
}

// Text builds a text/plain response with the given status and body.
func Text(status int, body string) *Response {
	return &Response{
		StatusCode:  status,
		ContentType: "text/plain",
		Body:        []byte(body),
		Headers:     http.Header{},
	}
}

// JSON marshals body to JSON and sets content-type application/json. If
// body is already []byte or json.RawMessage it's used verbatim.
func JSON(status int, body any) *Response {
	var raw []byte
	switch v := body.(type) {
	case []byte:
		raw = v
	case json.RawMessage:
		raw = v
	case string:
		raw = []byte(v)
	default:
		encoded, err := json.Marshal(body)
		if err != nil {
			encoded = []byte(`{"error":"failed to encode response"}`)
			status = http.StatusInternalServerError
		}
		raw = encoded
	}
	return &Response{
		StatusCode:  status,
		ContentType: "application/json",
		Body:        raw,
		Headers:     http.Header{},
	}
}

// Redirect builds a 302 response pointing at location.
func Redirect(location string) *Response {
	r := &Response{
		StatusCode: http.StatusFound,
		Headers:    http.Header{},
	}
	r.Headers.Set("Location", location)
	return r
}

// Clone returns a shallow copy safe for independent header mutation.
func (r *Response) Clone() *Response {
	headers := make(http.Header, len(r.Headers))
	for k, v := range r.Headers {
		vv := make([]string, len(v))
		copy(vv, v)
		headers[k] = vv
	}
	return &Response{
		StatusCode:  r.StatusCode,
		Headers:     headers,
		ContentType: r.ContentType,
		Body:        append([]byte(nil), r.Body...),
	}
}
