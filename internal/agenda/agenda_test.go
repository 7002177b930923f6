package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstThursday(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2026, time.October, 1},  // starts on a Thursday
		{2026, time.January, 1},  // Thursday
		{2025, time.March, 6},    // starts on a Saturday
		{2024, time.February, 1}, // Thursday
		{2024, time.May, 2},      // starts on a Wednesday
		{2025, time.June, 5},     // starts on a Sunday
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FirstThursday(c.year, c.month), "%d-%02d", c.year, c.month)
	}
}

func TestMonthGrid(t *testing.T) {
	now := time.Date(2025, time.June, 12, 20, 0, 0, 0, time.UTC)
	m, err := Month(2025, time.June, now)
	require.NoError(t, err)

	// June 2025 starts on a Sunday: six blanks, 30 days, six trailing blanks.
	require.Len(t, m.Cells, 42)
	for i := 0; i < 6; i++ {
		assert.Nil(t, m.Cells[i])
	}
	require.NotNil(t, m.Cells[6])
	assert.Equal(t, 1, m.Cells[6].Day)
	assert.Equal(t, 30, m.Cells[35].Day)
	for i := 36; i < 42; i++ {
		assert.Nil(t, m.Cells[i])
	}

	assert.Equal(t, 5, m.FirstThursday)
	blitz := m.Cells[6+4]
	assert.Equal(t, 5, blitz.Day)
	require.Len(t, blitz.Events, 2)
	assert.Equal(t, "Monats Blitz", blitz.Events[0].Title)
	assert.Equal(t, "Clubabend", blitz.Events[1].Title)

	today := m.Cells[6+11]
	assert.Equal(t, 12, today.Day)
	assert.True(t, today.Today)
	require.Len(t, today.Events, 1)
	assert.Equal(t, "Clubabend", today.Events[0].Title)

	assert.Empty(t, m.Cells[7].Events)
	assert.False(t, m.Cells[7].Today)
}

func TestMonthGridWithoutPadding(t *testing.T) {
	// February 2021 starts on a Monday and has exactly four weeks.
	m, err := Month(2021, time.February, time.Time{})
	require.NoError(t, err)
	require.Len(t, m.Cells, 28)
	assert.Equal(t, 1, m.Cells[0].Day)
	assert.Equal(t, 28, m.Cells[27].Day)
}

func TestMonthInvalid(t *testing.T) {
	_, err := Month(2025, 13, time.Now())
	assert.ErrorIs(t, err, ErrInvalidMonth)
	_, err = Month(2025, 0, time.Now())
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestNavigation(t *testing.T) {
	y, m := Next(2025, time.December)
	assert.Equal(t, 2026, y)
	assert.Equal(t, time.January, m)

	y, m = Prev(2026, time.January)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.December, m)
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "März", MonthName(time.March))
	assert.Empty(t, MonthName(0))
}
