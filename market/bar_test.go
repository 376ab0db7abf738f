package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarShape(t *testing.T) {
	up := Bar{Open: 10.0, High: 10.5, Low: 9.9, Close: 10.4}
	assert.True(t, up.IsUp())
	assert.InDelta(t, 0.4/0.6, up.BodyRatio(), 1e-9)
	assert.InDelta(t, 0.04, up.Gain(), 1e-9)

	down := Bar{Open: 10.0, High: 10.1, Low: 9.5, Close: 9.6}
	assert.False(t, down.IsUp())
	assert.InDelta(t, 0.4/0.6, down.BodyRatio(), 1e-9, "body ratio is unsigned")

	flat := Bar{Open: 10.0, High: 10.0, Low: 10.0, Close: 10.0}
	assert.Zero(t, flat.BodyRatio(), "zero range")
	assert.Zero(t, Bar{}.Gain(), "zero open")
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := ParseDate("20240102")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "20240102", FormatDate(d))

	_, err = ParseDate("2024-01-02")
	assert.Error(t, err)
	_, err = ParseDate("20241340")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	n, err := DaysBetween("20240102", "20240105")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = DaysBetween("20240105", "20240102")
	require.NoError(t, err)
	assert.Equal(t, -3, n)

	n, err = DaysBetween("20231229", "20240102")
	require.NoError(t, err)
	assert.Equal(t, 4, n, "spans the year boundary")

	_, err = DaysBetween("bad", "20240102")
	assert.Error(t, err)
}
