package apiclient

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Response is a successful (2xx) API answer with its body fully read.
type Response struct {
	Status int
	Header http.Header
	Body   []byte

	method string
	path   string
}

// envelope is the {code, message, data} wrapper some API deployments use.
type envelope struct {
	Code    *int            `json:"code"`
	Message *string         `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *string         `json:"error"`
}

// Payload returns the resource JSON, unwrapping the response envelope when present.
func (r *Response) Payload() []byte {
	return payload(r.Body)
}

// Decode unmarshals the payload into v. An empty payload leaves v untouched.
func (r *Response) Decode(v any) error {
	data := r.Payload()
	if len(bytes.TrimSpace(data)) == 0 || v == nil {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &Error{
			Kind:    KindValidation,
			Method:  r.method,
			Path:    r.path,
			Status:  r.Status,
			Message: "malformed response payload",
			Body:    r.Body,
			Err:     err,
		}
	}
	return nil
}

// payload unwraps body only when it is exactly an envelope: a numeric code,
// a string message, a data member, and nothing but those and error.
func payload(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return body
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return body
	}
	for key := range fields {
		switch key {
		case "code", "message", "data", "error":
		default:
			return body
		}
	}
	data, ok := fields["data"]
	if !ok {
		return body
	}
	var code int
	if err := json.Unmarshal(fields["code"], &code); err != nil {
		return body
	}
	var message string
	if err := json.Unmarshal(fields["message"], &message); err != nil {
		return body
	}
	return data
}

// errorMessage extracts a human-readable message from an error body.
func errorMessage(status int, body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Message != nil && *env.Message != "" {
			return *env.Message
		}
		if env.Error != nil && *env.Error != "" {
			return *env.Error
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "unexpected status"
}
