package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("POINTS_TEST_SET", "value")
	t.Setenv("POINTS_TEST_EMPTY", "")

	assert.Equal(t, "value", GetEnv("POINTS_TEST_SET", "fallback"))
	assert.Equal(t, "fallback", GetEnv("POINTS_TEST_EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("POINTS_TEST_UNSET_KEY", "fallback"))
}

func TestFormatPoints(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name string
		in   *float64
		want string
	}{
		{"nil", nil, "-"},
		{"zero", f(0), "0"},
		{"integer", f(10), "10"},
		{"fraction", f(12.5), "12.5"},
		{"large", f(1234567), "1234567"},
		{"negative", f(-3.25), "-3.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPoints(tt.in))
		})
	}
}

func TestFormatField(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		present bool
		want    string
	}{
		{"absent", nil, false, "-"},
		{"null", nil, true, ""},
		{"bool", true, true, ""},
		{"float", 10.0, true, "10"},
		{"fraction", 0.75, true, "0.75"},
		{"int", 7, true, "7"},
		{"int64", int64(42), true, "42"},
		{"string", "12.3", true, "12.3"},
		{"object", map[string]any{"a": 1.0}, true, "map[a:1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatField(tt.in, tt.present))
		})
	}
}

func TestFormatStatus(t *testing.T) {
	assert.Equal(t, "✅ Success", FormatStatus(""))
	assert.Equal(t, "❌ Failed for abc", FormatStatus("Failed for abc"))
}
