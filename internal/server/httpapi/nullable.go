package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

var errUnsupportedValue = errors.New("must be a string or a number")

// NullableField keeps a raw JSON member so handlers can tell an absent key
// from an explicit null and from a value.
type NullableField struct {
	Set bool
	Raw json.RawMessage
}

func (f *NullableField) UnmarshalJSON(b []byte) error {
	f.Set = true
	f.Raw = append(f.Raw[:0], b...)
	return nil
}

// IsNull reports whether the field is absent or carries a null-like value:
// JSON null, "" or the literal string "null".
func (f NullableField) IsNull() bool {
	if !f.Set || bytes.Equal(f.Raw, []byte("null")) {
		return true
	}
	s, ok := f.stringValue()
	return ok && (s == "" || s == "null")
}

// Text returns the string value for overwrite-or-keep fields. ok is false
// when the field is null-like and so leaves the stored value unchanged.
func (f NullableField) Text() (value string, ok bool, err error) {
	if f.IsNull() {
		return "", false, nil
	}
	s, isString := f.stringValue()
	if !isString {
		return "", false, errors.New("must be a string")
	}
	return s, true, nil
}

// Contact returns the value to store for clear-on-falsy fields: nil for
// absent, null, "", "null", 0 and false, numbers in plain decimal form.
func (f NullableField) Contact() (*string, error) {
	if f.IsNull() {
		return nil, nil
	}

	if s, ok := f.stringValue(); ok {
		return &s, nil
	}

	switch f.Raw[0] {
	case 'f':
		return nil, nil
	case 't':
		return nil, errUnsupportedValue
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		n, err := strconv.ParseFloat(string(f.Raw), 64)
		if err != nil {
			return nil, errUnsupportedValue
		}
		if n == 0 {
			return nil, nil
		}
		s := strconv.FormatFloat(n, 'f', -1, 64)
		return &s, nil
	}

	return nil, errUnsupportedValue
}

func (f NullableField) stringValue() (string, bool) {
	if len(f.Raw) == 0 || f.Raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(f.Raw, &s); err != nil {
		return "", false
	}
	return s, true
}
