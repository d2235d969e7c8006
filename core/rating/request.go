package rating

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"rating-engine/internal/errors"
)

// Validation reasons reported to callers verbatim.
const (
	ReasonRevenueRequired  = "Revenue is required"
	ReasonStateRequired    = "State is required"
	ReasonBusinessRequired = "Business type is required"
	ReasonRevenueInvalid   = "Revenue must be a positive number"
)

// Revenue is the annual revenue field of a request. It keeps enough of the
// wire shape to tell an absent value from one that is present but not a number.
type Revenue struct {
	value   float64
	present bool
	numeric bool
}

// RevenueOf returns a present, numeric revenue.
func RevenueOf(v float64) Revenue {
	return Revenue{value: v, present: true, numeric: true}
}

// Value returns the numeric value and whether one was supplied.
func (r Revenue) Value() (float64, bool) {
	return r.value, r.present && r.numeric
}

// Present reports whether the field was supplied and not null.
func (r Revenue) Present() bool {
	return r.present
}

// UnmarshalJSON accepts any JSON value. null leaves the revenue absent;
// anything other than a JSON number (including numeric strings) is kept as
// present-but-invalid so validation can report it in order.
func (r *Revenue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*r = Revenue{}
		return nil
	}

	var v float64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		*r = Revenue{present: true}
		return nil
	}
	*r = RevenueOf(v)
	return nil
}

// MarshalJSON writes the number, or null when absent or invalid.
func (r Revenue) MarshalJSON() ([]byte, error) {
	if v, ok := r.Value(); ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return json.Marshal(v)
	}
	return []byte("null"), nil
}

// Request is a single rating request.
type Request struct {
	Revenue  Revenue `json:"revenue"`
	State    string  `json:"state"`
	Business string  `json:"business"`
}

// Validate checks presence of all three fields before revenue's value, and
// stops at the first failure.
func (r Request) Validate() error {
	if !r.Revenue.Present() {
		return errors.MissingField(ReasonRevenueRequired).WithContext("field", "revenue")
	}
	if r.State == "" {
		return errors.MissingField(ReasonStateRequired).WithContext("field", "state")
	}
	if r.Business == "" {
		return errors.MissingField(ReasonBusinessRequired).WithContext("field", "business")
	}

	v, ok := r.Revenue.Value()
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return errors.InvalidType(ReasonRevenueInvalid).WithContext("field", "revenue")
	}
	return nil
}

// DecodeRequest parses a JSON request body. The body must be a JSON object:
// null, arrays and scalars are decode failures, not missing fields.
func DecodeRequest(data []byte) (Request, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return Request{}, errors.Internal("decode rating request", fmt.Errorf("body is null"))
	}

	var req Request
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return Request{}, errors.Internal("decode rating request", err)
	}
	return req, nil
}
