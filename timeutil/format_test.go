package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name      string
		timestamp string
		want      string
	}{
		{"french form", "19/01/2026 à 14:30:45", "14:30"},
		{"french form with extra spaces", "19/01/2026  à  09:05:00", "09:05"},
		{"iso form", "2026-01-19T10:42:00Z", "10:42"},
		{"iso form with offset", "2026-01-19T10:42:00+01:00", "10:42"},
		{"unparseable passthrough", "hier soir", "hier soir"},
		{"empty passthrough", "", ""},
		{"french form truncated", "19/01/2026 à 14", "19/01/2026 à 14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTime(tt.timestamp))
		})
	}
}
