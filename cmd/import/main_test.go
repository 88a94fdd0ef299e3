package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-stars", "s.xlsx", "-update"})
	require.NoError(t, err)
	assert.Equal(t, "s.xlsx", opts.starsFile)
	assert.True(t, opts.update)

	opts, err = parseFlags([]string{"-countries", "c.xlsx"})
	require.NoError(t, err)
	assert.Equal(t, "c.xlsx", opts.countriesFile)
}

func TestParseFlags_Invalid(t *testing.T) {
	tests := [][]string{
		{},
		{"-stars", "s.xlsx", "-countries", "c.xlsx"},
		{"-countries", "c.xlsx", "-update"},
	}
	for _, args := range tests {
		_, err := parseFlags(args)
		assert.Error(t, err, "%v", args)
	}
}
