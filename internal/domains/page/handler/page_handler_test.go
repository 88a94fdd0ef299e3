package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMonthDay(t *testing.T) {
	tests := []struct {
		raw        string
		month, day int
		ok         bool
	}{
		{"7-15", 7, 15, true},
		{"12-31", 12, 31, true},
		{"2-29", 2, 29, true},
		{"715", 0, 0, false},
		{"a-1", 0, 0, false},
		{"1-b", 0, 0, false},
	}
	for _, tt := range tests {
		m, d, ok := parseMonthDay(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		if tt.ok {
			assert.Equal(t, tt.month, m)
			assert.Equal(t, tt.day, d)
		}
	}
}
