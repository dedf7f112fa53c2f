package dto

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errNotScalar = errors.New("expected a string, number or boolean")

// Scalar is a text field that also accepts JSON numbers and booleans.
// Clients send marks, years and flags either quoted or bare; both are stored
// as their literal text.
type Scalar string

// UnmarshalJSON implements json.Unmarshaler
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errNotScalar
	}

	switch data[0] {
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
	case '{', '[':
		return errNotScalar
	case 'n':
		// null on a non-pointer field leaves it empty
		*s = ""
	default:
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = Scalar(data)
	}
	return nil
}

// Text returns the value as an optional column value
func (s *Scalar) Text() *string {
	if s == nil {
		return nil
	}
	str := string(*s)
	return &str
}

// String returns the value or "" when s is nil
func (s *Scalar) String() string {
	if s == nil {
		return ""
	}
	return string(*s)
}
