package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestStudentForeignKeyCascades(t *testing.T) {
	s, err := schema.Parse(&MemorizationRecord{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	rel, ok := s.Relationships.Relations["Student"]
	require.True(t, ok)
	c := rel.ParseConstraint()
	require.NotNil(t, c)
	assert.Equal(t, "CASCADE", c.OnDelete)
	assert.Equal(t, "students", c.ReferenceSchema.Table)
	require.Len(t, c.ForeignKeys, 1)
	assert.Equal(t, "student_id", c.ForeignKeys[0].DBName)
}
