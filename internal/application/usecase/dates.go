package usecase

import (
	"strings"
	"time"

	"github.com/jhoicas/estoque-api/internal/application/dto"
)

// parseDate acepta AAAA-MM-DD o RFC3339 y devuelve la fecha (00:00 UTC).
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dto.DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return dateOnly(t), true
	}
	return time.Time{}, false
}

// dateOnly descarta la hora conservando el día calendario de t.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
