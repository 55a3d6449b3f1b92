package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestParseClock(t *testing.T) {
	c, err := ParseClock("07:30")
	require.NoError(t, err)
	assert.Equal(t, datatypes.NewTime(7, 30, 0, 0), c)
	assert.Equal(t, "07:30", FormatClock(c))

	c, err = ParseClock(" 13:05:09 ")
	require.NoError(t, err)
	assert.Equal(t, "13:05", FormatClock(c))

	_, err = ParseClock("25:00")
	assert.Error(t, err)
	_, err = ParseClock("jam tujuh")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-07-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-07-15", FormatDate(datatypes.Date(d)))

	_, err = ParseDate("15/07/2024")
	assert.Error(t, err)
}
