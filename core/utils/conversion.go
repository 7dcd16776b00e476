package utils

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToInt converts a decoded JSON value to int.
// Strings are trimmed before parsing; anything unparseable yields ok=false.
func ToInt(val any) (int, bool) {
	switch v := val.(type) {
	case nil:
		return 0, false
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	case float32:
		return int(v), true
	case json.Number:
		i, err := strconv.Atoi(v.String())
		if err != nil {
			f, ferr := v.Float64()
			if ferr != nil {
				return 0, false
			}
			return int(f), true
		}
		return i, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		return i, true
	case []byte:
		return ToInt(string(v))
	default:
		return 0, false
	}
}

// ToString converts a decoded JSON value to its string form.
// nil, objects and arrays become "". Whole floats drop their fraction so an
// id stored as 12 or "12" compares equal.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	case map[string]any, []any:
		return ""
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// ToBool reports the truthiness of a decoded JSON value the way the
// browser flows wrote it: true, non-zero numbers, "1" and "true".
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "1" || s == "true"
	case []byte:
		return ToBool(string(v))
	default:
		return false
	}
}

// IsBlank reports whether a decoded JSON value is absent for fallback purposes:
// nil, "", false and 0 are blank.
func IsBlank(val any) bool {
	switch v := val.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case float64:
		return v == 0
	case int:
		return v == 0
	default:
		return false
	}
}

// FirstString returns the first non-blank value among fields of obj, as a string.
func FirstString(obj map[string]any, fields ...string) string {
	for _, f := range fields {
		if v, ok := obj[f]; ok && !IsBlank(v) {
			if s := ToString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// First returns the first non-blank raw value among fields of obj.
func First(obj map[string]any, fields ...string) any {
	for _, f := range fields {
		if v, ok := obj[f]; ok && !IsBlank(v) {
			return v
		}
	}
	return nil
}

// FirstBool is true when any of the fields is truthy.
func FirstBool(obj map[string]any, fields ...string) bool {
	for _, f := range fields {
		if ToBool(obj[f]) {
			return true
		}
	}
	return false
}
