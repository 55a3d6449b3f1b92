package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SortParam hasil ?sort_by=&order= yang sudah dicocokkan ke whitelist kolom.
type SortParam struct {
	Column string
	Desc   bool
}

// ParseSort: kolom di luar whitelist jatuh ke defaultKey.
func ParseSort(c *fiber.Ctx, allowed map[string]string, defaultKey string, defaultDesc bool) SortParam {
	key := strings.TrimSpace(c.Query("sort_by"))
	col, ok := allowed[key]
	if !ok {
		col = allowed[defaultKey]
	}

	desc := defaultDesc
	order := strings.ToLower(strings.TrimSpace(c.Query("order", c.Query("sort"))))
	switch order {
	case "asc":
		desc = false
	case "desc":
		desc = true
	}
	return SortParam{Column: col, Desc: desc}
}
