package entity

import (
	"fmt"
	"strconv"
)

const (
	// ErrorField is the field a remote body may use to report a problem with an
	// otherwise successful response.
	ErrorField = "error"

	// TotalPointsField is the remote field holding the all-time points.
	TotalPointsField = "total_points"
	// Last24hPointsField is the remote field holding the points of the last 24 hours.
	Last24hPointsField = "last_24h_points"
)

// FetchResult is the outcome of checking one address.
// On success Payload holds the remote JSON body as decoded, on failure only Error is set.
type FetchResult struct {
	Address       string   `json:"address"`
	Payload       any      `json:"data,omitempty"`
	TotalPoints   *float64 `json:"total_points,omitempty"`
	Last24hPoints *float64 `json:"last_24h_points,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// FetchResult is serialized as a wrapper: address, the verbatim remote body
// under "data", the lifted numeric fields and the error message.

// NewSuccessResult wraps a decoded remote body. The two known numeric fields
// are lifted out when the body is an object carrying them; everything else stays opaque.
func NewSuccessResult(address string, payload any) FetchResult {
	r := FetchResult{Address: address, Payload: payload}
	if obj, ok := payload.(map[string]any); ok {
		r.TotalPoints = numberField(obj, TotalPointsField)
		r.Last24hPoints = numberField(obj, Last24hPointsField)
	}
	return r
}

// NewErrorResult records a failed check with the given message.
func NewErrorResult(address, message string) FetchResult {
	return FetchResult{Address: address, Error: message}
}

// OK reports whether the remote API answered with a 2xx JSON body.
func (r FetchResult) OK() bool {
	return r.Error == ""
}

// StatusMessage is the problem to show for this result, or "" when there is
// none. A failed request reports its Error; a successful body reports its own
// "error" field when that field is set to a truthy value.
func (r FetchResult) StatusMessage() string {
	if r.Error != "" {
		return r.Error
	}
	v, ok := r.Field(ErrorField)
	if !ok || !truthy(v) {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	default:
		return true
	}
}

func numberField(obj map[string]any, key string) *float64 {
	switch v := obj[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	default:
		return nil
	}
}

// Field returns a top-level field of the remote body. ok is false when the
// body is not an object or lacks the field; a JSON null comes back as (nil, true).
func (r FetchResult) Field(name string) (any, bool) {
	obj, ok := r.Payload.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := obj[name]
	return v, ok
}
