package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	for _, bad := range []string{"9:30:00", "25:00", "12:60", "noon", ""} {
		_, err := NewTimeStringFromString(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, "input %q", bad)
	}
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(0)
	require.NoError(t, err)
	assert.Equal(t, "00:00", ts.String())

	ts, err = NewTimeStringFromMinutes(615)
	require.NoError(t, err)
	assert.Equal(t, "10:15", ts.String())

	ts, err = NewTimeStringFromMinutes(1439)
	require.NoError(t, err)
	assert.Equal(t, "23:59", ts.String())

	_, err = NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	_, err = NewTimeStringFromMinutes(1440)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeStringMinutes(t *testing.T) {
	m, err := TimeString("17:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 1020, m)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts, err := TimeString("10:00").AddMinutes(75)
	require.NoError(t, err)
	assert.Equal(t, "11:15", ts.String())

	// Переход через полночь запрещён
	_, err = TimeString("23:30").AddMinutes(45)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeStringCompare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:15"))
	assert.False(t, TimeString("10:15").IsBefore("10:15"))
	assert.True(t, TimeString("17:00").IsAfter("09:00"))
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	// Postgres отдаёт TIME как "HH:MM:SS"
	require.NoError(t, ts.Scan("10:15:00"))
	assert.Equal(t, "10:15", ts.String())

	require.NoError(t, ts.Scan([]byte("09:00:00")))
	assert.Equal(t, "09:00", ts.String())

	require.NoError(t, ts.Scan(time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, "14:30", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeStringValue(t *testing.T) {
	v, err := TimeString("12:45").Value()
	require.NoError(t, err)
	assert.Equal(t, "12:45", v)

	_, err = TimeString("junk").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeStringToDateTime(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	dt, err := TimeString("10:30").ToDateTime(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC), dt)

	_, err = TimeString("").ToDateTime(date)
	assert.Error(t, err)
}
