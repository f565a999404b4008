package pos

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stasha-pos/internal/domain"
)

// DateLayout formato de fecha de los reportes (columnas DATE).
const DateLayout = "2006-01-02"

// BusinessZone hora local del negocio: EAT, UTC+3 sin horario de verano.
var BusinessZone = time.FixedZone("EAT", 3*60*60)

// DayRange devuelve [00:00 del día de t, 00:00 del día siguiente) en loc.
func DayRange(t time.Time, loc *time.Location) (from, to time.Time) {
	t = t.In(loc)
	from = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 0, 1)
}

// MonthRange devuelve [día 1 del mes de t, día 1 del mes siguiente) en loc.
func MonthRange(t time.Time, loc *time.Location) (from, to time.Time) {
	t = t.In(loc)
	from = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 1, 0)
}

// ParseDay interpreta YYYY-MM-DD en loc; vacío = el día de now.
func ParseDay(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		day, _ := DayRange(now, loc)
		return day, nil
	}
	day, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q (se espera YYYY-MM-DD)", domain.ErrInvalidInput, s)
	}
	return day, nil
}
