package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoerceInt(t *testing.T) {
	testCases := []struct {
		input    string
		expected int
	}{
		{"42", 42},
		{"-5", -5},
		{"12.9", 12},
		{"", 0},
		{"N/A", 0},
		{"  7 pts ", 7},
		{"0:05:00", 500},
		{"--", 0},
		{"1st", 1},
		{"1,024", 1024},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, CoerceInt(tc.input), "input: %q", tc.input)
	}
}

func TestCountDurations(t *testing.T) {
	require.Equal(t, 0, CountDurations("no times here"))
	require.Equal(t, 2, CountDurations("0:36:26 something 1:35:25"))
	require.Equal(t, 1, CountDurations("prefix 12:00:01 suffix"))
}

func TestHasLeadingDuration(t *testing.T) {
	require.True(t, HasLeadingDuration("0:36:26"))
	require.True(t, HasLeadingDuration("0:36:26 (-2)"))
	require.False(t, HasLeadingDuration(" 0:36:26"))
	require.False(t, HasLeadingDuration("-"))
	require.False(t, HasLeadingDuration("36:26"))
}

func TestContainsAny(t *testing.T) {
	require.True(t, ContainsAny("abc Krutoichel xyz", []string{"nobody", "Krutoichel"}))
	require.False(t, ContainsAny("abc krutoichel xyz", []string{"Krutoichel"}))
	require.False(t, ContainsAny("anything", nil))
	require.False(t, ContainsAny("anything", []string{""}))
}

func TestIsDigits(t *testing.T) {
	require.True(t, IsDigits("739901"))
	require.False(t, IsDigits(""))
	require.False(t, IsDigits("73a901"))
	require.False(t, IsDigits("-1"))
}

func TestCollapseSpace(t *testing.T) {
	require.Equal(t, "a b c", CollapseSpace("  a \n\tb   c "))
	require.Equal(t, "", CollapseSpace("   "))
}
