package textutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		maxLen int
		want   string
	}{
		{"nil", nil, 10, "null"},
		{"string", "hello", 10, "hello"},
		{"int", 42, 10, "42"},
		{"bool", true, 10, "true"},
		{"stringer", time.Second, 10, "1s"},
		{"sorted map", map[string]int{"b": 2, "a": 1}, 40, "map[a:1 b:2]"},
		{"slice", []int{1, 2, 3}, 40, "[1 2 3]"},
		{"cut", "abcdefghij", 6, "abc..."},
		{"unlimited", "abcdefghij", -1, "abcdefghij"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Abbreviate(tt.value, tt.maxLen))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 5))
	assert.Equal(t, "lo...", Truncate("long text", 5))
	assert.Equal(t, "æø", Truncate("æøå", 2))
	assert.Equal(t, "æøå", Truncate("æøå", 3))
	assert.Equal(t, "", Truncate("anything", 0))
}
