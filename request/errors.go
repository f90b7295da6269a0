package request

import "errors"

// ErrUnrecognizedRequest is returned by Parse when none of the
// classification rules match the incoming HTTP call.
var ErrUnrecognizedRequest = errors.New("request: unrecognized request")

// ErrMalformedPayload is returned when the content-type implies a shape
// (JSON body, form-encoded payload field) but the body doesn't actually
// parse as that shape.
var ErrMalformedPayload = errors.New("request: malformed payload")
