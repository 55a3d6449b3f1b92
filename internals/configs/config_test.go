package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "42")
	t.Setenv("X_BAD_INT", "abc")
	t.Setenv("X_DUR", "750ms")
	t.Setenv("X_BAD_DUR", "-1s")
	t.Setenv("X_BOOL", "yes")

	assert.Equal(t, 42, GetEnvInt("X_INT", 1))
	assert.Equal(t, 1, GetEnvInt("X_BAD_INT", 1))
	assert.Equal(t, 7, GetEnvInt("X_MISSING", 7))

	assert.Equal(t, 750*time.Millisecond, GetEnvDuration("X_DUR", time.Second))
	assert.Equal(t, time.Second, GetEnvDuration("X_BAD_DUR", time.Second))

	assert.True(t, GetEnvBool("X_BOOL", false))
	assert.True(t, GetEnvBool("X_MISSING", true))

	assert.Equal(t, "fallback", GetEnv("X_MISSING", "fallback"))
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitCSV(" a, ,b ,"))
	assert.Empty(t, splitCSV(""))
}
