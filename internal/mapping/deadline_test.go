package mapping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDeadline_KnownLayouts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "iso date",
			input: "2024-12-15",
			want:  time.Date(2024, time.December, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name:  "us slash date",
			input: "11/13/2024",
			want:  time.Date(2024, time.November, 13, 0, 0, 0, 0, time.Local),
		},
		{
			name:  "long month with year",
			input: "January 15, 2025",
			want:  time.Date(2025, time.January, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name:  "long month without year gets current year",
			input: "November 13",
			want:  time.Date(time.Now().Year(), time.November, 13, 0, 0, 0, 0, time.Local),
		},
		{
			name:  "surrounding whitespace",
			input: "  2024-12-15 ",
			want:  time.Date(2024, time.December, 15, 0, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDeadline(tt.input))
		})
	}
}

func TestParseDeadline_RoundTripsISOInput(t *testing.T) {
	const input = "2024-12-15"
	assert.Equal(t, input, ParseDeadline(input).Format("2006-01-02"))
}

func TestParseDeadline_UnparseableFallsBackToNow(t *testing.T) {
	for _, input := range []string{"", "soon", "13/45/20", "next Tuesday"} {
		got := ParseDeadline(input)
		assert.WithinDuration(t, time.Now(), got, time.Minute, "input %q", input)
	}
}

func TestParseDeadline_FirstMatchingLayoutWins(t *testing.T) {
	// Parseable by the iso layout only; must not be mangled by later ones.
	got := ParseDeadline("2025-01-02")
	assert.Equal(t, time.Date(2025, time.January, 2, 0, 0, 0, 0, time.Local), got)
}
