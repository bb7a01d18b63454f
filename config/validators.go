// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// StringValidator accepts any string or stringer value unchanged.
func StringValidator(raw interface{}) (interface{}, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

// BoolValidator accepts a bool, or a string parseable by strconv.ParseBool.
func BoolValidator(raw interface{}) (interface{}, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("not a boolean: %q", v)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("not a boolean: %v", v)
	}
}

// IntValidator accepts an int, or a base-10 string.
func IntValidator(raw interface{}) (interface{}, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("not an integer: %q", v)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("not an integer: %v", v)
	}
}

// FloatValidator accepts a float64, int, or a string parseable as float64.
func FloatValidator(raw interface{}) (interface{}, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", v)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("not a number: %v", v)
	}
}

// IntSliceValidator accepts []int directly, or a comma/space-separated
// string of integers (as the CLI's multitoken index options would supply).
func IntSliceValidator(raw interface{}) (interface{}, error) {
	switch v := raw.(type) {
	case []int:
		return v, nil
	case string:
		fields := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' })
		out := make([]int, 0, len(fields))
		for _, f := range fields {
			n, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return nil, fmt.Errorf("not an integer list: %q", v)
			}
			out = append(out, n)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("not an integer list: %v", v)
	}
}

// EnumValidator builds a Validator accepting any of allowed, matched
// case-insensitively against a string or fmt.Stringer value. The
// returned value is the canonically-cased member of allowed.
func EnumValidator(allowed ...string) Validator {
	lower := make(map[string]string, len(allowed))
	for _, a := range allowed {
		lower[strings.ToLower(a)] = a
	}
	return func(raw interface{}) (interface{}, error) {
		var s string
		switch v := raw.(type) {
		case string:
			s = v
		case fmt.Stringer:
			s = v.String()
		default:
			s = fmt.Sprintf("%v", v)
		}
		canonical, ok := lower[strings.ToLower(s)]
		if !ok {
			return nil, fmt.Errorf("not one of %v: %q", allowed, s)
		}
		return canonical, nil
	}
}
