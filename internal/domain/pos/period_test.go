package pos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stasha-pos/internal/domain"
)

func TestDayRange_UsaLaHoraDelNegocio(t *testing.T) {
	// 22:30 UTC ya es el día siguiente en Nairobi.
	now := time.Date(2026, 3, 9, 22, 30, 0, 0, time.UTC)

	from, to := DayRange(now, BusinessZone)
	assert.Equal(t, "2026-03-10", from.Format(DateLayout))
	assert.Equal(t, 24*time.Hour, to.Sub(from))
}

func TestMonthRange_CruzaDeAño(t *testing.T) {
	from, to := MonthRange(time.Date(2026, 12, 15, 10, 0, 0, 0, BusinessZone), BusinessZone)
	assert.Equal(t, "2026-12-01", from.Format(DateLayout))
	assert.Equal(t, "2027-01-01", to.Format(DateLayout))
}

func TestParseDay(t *testing.T) {
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, BusinessZone)

	d, err := ParseDay("", now, BusinessZone)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-09", d.Format(DateLayout))

	d, err = ParseDay("2026-02-28", now, BusinessZone)
	require.NoError(t, err)
	assert.Equal(t, BusinessZone, d.Location())

	_, err = ParseDay("28/02/2026", now, BusinessZone)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
