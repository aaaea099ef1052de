package interpreter

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveFloat(t *testing.T) {
	tests := []struct {
		name    string
		def     float64
		sources []string
		want    float64
	}{
		{"first present wins", 0, []string{"3", "4"}, 3},
		{"skips absent", 0, []string{"", "", "2.5"}, 2.5},
		{"all absent", 1, []string{"", ""}, 1},
		{"no sources", 0.1, nil, 0.1},
		{"unparsable does not fall through", 1, []string{"abc", "4"}, 1},
		{"surrounding spaces", 0, []string{" -7 "}, -7},
		{"nan rejected", 2, []string{"NaN"}, 2},
		{"inf rejected", 2, []string{"+Inf"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveFloat(tt.def, tt.sources...))
		})
	}
}

func TestResolveBool(t *testing.T) {
	assert.True(t, resolveBool(false, "TRUE"))
	assert.False(t, resolveBool(true, "0"))
	assert.True(t, resolveBool(true, "maybe", "false"))
	assert.False(t, resolveBool(false))
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, 100*time.Millisecond, seconds(0.1))
	assert.Equal(t, 2500*time.Millisecond, seconds(2.5))
	assert.Zero(t, seconds(-1))
	assert.Equal(t, time.Duration(math.MaxInt64), seconds(1e10))
	assert.Equal(t, time.Duration(math.MaxInt64), seconds(math.MaxFloat64))
}

func TestParseParamAssignment(t *testing.T) {
	tests := []struct {
		arg   string
		key   string
		value string
		ok    bool
	}{
		{"score=10", "score", "10", true},
		{`name="Alice"`, "name", "Alice", true},
		{`name=\"Alice\"`, "name", "Alice", true},
		{" mood = calm ", "mood", "calm", true},
		{"expr=a=b", "expr", "a=b", true},
		{"score=", "", "", false},
		{"=10", "", "", false},
		{`key=""`, "", "", false},
		{"novalue", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			key, value, ok := parseParamAssignment(tt.arg)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.value, value)
		})
	}
}
