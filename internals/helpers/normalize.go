package helper

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText: NFC + trim + spasi ganda dirapatkan. Dipakai untuk nama kelas
// karena lookup target memakai exact match.
func NormalizeText(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}
