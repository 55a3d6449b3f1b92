package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestBandColumnsKeepFullPrecision(t *testing.T) {
	s, err := schema.Parse(&TargetConfiguration{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	for _, col := range []string{
		"target_juz",
		"merah_min", "merah_max", "kuning_min", "kuning_max",
		"hijau_min", "hijau_max", "biru_min", "biru_max",
		"pink_threshold",
	} {
		f := s.LookUpField(col)
		require.NotNil(t, f, col)
		assert.Equal(t, schema.DataType("double precision"), f.DataType, col)
	}
}
