package vault

import "testing"

func TestValueString(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name  string
		value Value
		want  string
	}{
		{name: "absent renders empty", value: AbsentValue(), want: ""},
		{name: "string passes through", value: StringValue("done"), want: "done"},
		{name: "true literal", value: BoolValue(true), want: "true"},
		{name: "false literal", value: BoolValue(false), want: "false"},
		{name: "integer", value: IntValue(42), want: "42"},
		{name: "negative integer", value: IntValue(-7), want: "-7"},
		{name: "whole float drops fraction", value: FloatValue(2), want: "2"},
		{name: "fractional float", value: FloatValue(2.5), want: "2.5"},
		{name: "list joined with commas", value: ListValue([]string{"a", "b"}), want: "a,b"},
		{name: "empty list", value: ListValue(nil), want: ""},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.value.String()
			if got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFieldsGet(t *testing.T) {
	t.Parallel()

	fields := Fields{"status": StringValue("done")}

	if got := fields.Get("status").String(); got != "done" {
		t.Errorf("Get(status) = %q, want %q", got, "done")
	}

	if !fields.Get("missing").IsAbsent() {
		t.Error("Get(missing) should be absent")
	}

	var nilFields Fields
	if !nilFields.Get("any").IsAbsent() {
		t.Error("Get on nil Fields should be absent")
	}
}

func TestFromAny(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		raw  any
		want string
	}{
		{name: "nil", raw: nil, want: ""},
		{name: "string", raw: "x", want: "x"},
		{name: "bool", raw: true, want: "true"},
		{name: "int", raw: 3, want: "3"},
		{name: "float", raw: 1.5, want: "1.5"},
		{name: "mixed list", raw: []any{"a", 2, true}, want: "a,2,true"},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fromAny(tt.raw).String()
			if got != tt.want {
				t.Errorf("fromAny(%v).String() = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
