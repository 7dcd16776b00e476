package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"Nil", nil, ""},
		{"String", "abc", "abc"},
		{"WholeFloat", float64(12), "12"},
		{"Fraction", 1.5, "1.5"},
		{"Bool", true, "true"},
		{"Object", map[string]any{"a": 1}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToString(tt.in))
		})
	}
}

func TestToInt(t *testing.T) {
	v, ok := ToInt(" 34 ")
	assert.True(t, ok)
	assert.Equal(t, 34, v)

	v, ok = ToInt(float64(20))
	assert.True(t, ok)
	assert.Equal(t, 20, v)

	_, ok = ToInt("abc")
	assert.False(t, ok)

	_, ok = ToInt(nil)
	assert.False(t, ok)
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool("1"))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool(float64(1)))
	assert.False(t, ToBool("0"))
	assert.False(t, ToBool(nil))
	assert.False(t, ToBool("yes"))
}

func TestFirstString(t *testing.T) {
	obj := map[string]any{
		"teamId":  "",
		"team_id": float64(7),
		"id":      "9",
	}
	assert.Equal(t, "7", FirstString(obj, "teamId", "team_id", "id"))
	assert.Equal(t, "", FirstString(obj, "missing"))
	assert.Nil(t, First(obj, "teamId"))
	assert.True(t, FirstBool(map[string]any{"a": false, "b": "true"}, "a", "b"))
}
