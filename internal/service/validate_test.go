package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidDate(t *testing.T) {
	valid := []string{"30.08.2025", "01.01.2025", "31.02.2025"}
	for _, s := range valid {
		assert.True(t, validDate(s), "date %q must be accepted", s)
	}

	invalid := []string{"2025-08-30", "30/08/2025", "30.8.2025", "3.08.2025", "30.08.25", "", "вчера", "30.08.2025 "}
	for _, s := range invalid {
		assert.False(t, validDate(s), "date %q must be rejected", s)
	}
}

func TestNormalizeAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1000", "1000", true},
		{"50000", "50000", true},
		{"1234,50", "1234.50", true},
		{"1234.50", "1234.50", true},
		{"0", "0", true},
		{"0.99", "0.99", true},
		{"1 234,50", "", false},
		{"-500", "", false},
		{"+500", "", false},
		{"12,34,56", "", false},
		{"12.", "", false},
		{"", "", false},
		{"сто", "", false},
	}
	for _, tc := range cases {
		got, ok := normalizeAmount(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, "input %q", tc.in)
		}
	}
}
