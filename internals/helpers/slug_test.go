package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "kelas-7a", Slugify("  Kelas 7A ", 0))
	assert.Equal(t, "tahfidz-putri", Slugify("Tahfidz Putri!!", 0))
	assert.Equal(t, "cafe", Slugify("Café", 0))
	assert.Equal(t, "item", Slugify("***", 0))
	assert.Equal(t, "abc", Slugify("abc-def", 3))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "progres_hafalan.pdf", FileName("progres_hafalan", "", "pdf"))
	assert.Equal(t, "progres_hafalan_7a-putra.xlsx", FileName("progres_hafalan", "7A Putra", "xlsx"))
}
