package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// parsePage reads ?page=; ok is false when absent or not a positive integer.
func parsePage(c *fiber.Ctx) (page int, ok bool) {
	v := strings.TrimSpace(c.Query("page"))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
