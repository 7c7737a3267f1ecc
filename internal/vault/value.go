package vault

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValueKind distinguishes the closed set of metadata value shapes. Keeping
// the set closed means normalization happens in exactly one place instead of
// type-switching at every call site.
type ValueKind uint8

// ValueKind values.
const (
	KindAbsent ValueKind = iota
	KindString
	KindBool
	KindInt
	KindFloat
	KindList
)

// Value is a single frontmatter field value.
type Value struct {
	Kind  ValueKind
	Str   string
	Bool  bool
	Int   int64
	Float float64
	List  []string
}

// Fields maps frontmatter keys to values. A missing key and a key holding
// an absent value normalize identically.
type Fields map[string]Value

// StringValue creates a string value.
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// BoolValue creates a boolean value.
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// IntValue creates an integer value.
func IntValue(i int64) Value {
	return Value{Kind: KindInt, Int: i}
}

// FloatValue creates a floating point value.
func FloatValue(f float64) Value {
	return Value{Kind: KindFloat, Float: f}
}

// ListValue creates a string list value.
func ListValue(items []string) Value {
	return Value{Kind: KindList, List: items}
}

// AbsentValue is the zero value, returned for missing fields.
func AbsentValue() Value {
	return Value{}
}

// Get returns the value for key, or the absent value when the key is
// missing.
func (f Fields) Get(key string) Value {
	v, ok := f[key]
	if !ok {
		return AbsentValue()
	}

	return v
}

// String renders the value as canonical single-line table cell text.
// Absent values render empty, booleans render as the literals "true" and
// "false", and everything else uses its default string representation.
// Total over all values; never errors.
func (v Value) String() string {
	switch v.Kind {
	case KindAbsent:
		return ""
	case KindString:
		return v.Str
	case KindBool:
		if v.Bool {
			return "true"
		}

		return "false"
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindList:
		return strings.Join(v.List, ",")
	default:
		return ""
	}
}

// IsAbsent reports whether the value is absent.
func (v Value) IsAbsent() bool {
	return v.Kind == KindAbsent
}

// fromAny converts a decoded YAML value into the closed variant. Unknown
// shapes fall back to their fmt representation so Metadata stays total.
func fromAny(raw any) Value {
	switch typed := raw.(type) {
	case nil:
		return AbsentValue()
	case string:
		return StringValue(typed)
	case bool:
		return BoolValue(typed)
	case int:
		return IntValue(int64(typed))
	case int64:
		return IntValue(typed)
	case uint64:
		return IntValue(int64(typed))
	case float64:
		return FloatValue(typed)
	case time.Time:
		return StringValue(formatTime(typed))
	case []any:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fromAny(item).String())
		}

		return ListValue(items)
	case []string:
		return ListValue(typed)
	default:
		return StringValue(fmt.Sprint(typed))
	}
}

// formatTime keeps date-only frontmatter values (the common case in vaults)
// in their date-only form instead of expanding them to full timestamps.
func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}

	return t.Format(time.RFC3339)
}

// yamlValue returns the plain Go value used when serializing the field back
// into a frontmatter block.
func (v Value) yamlValue() any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindList:
		return v.List
	default:
		return nil
	}
}
