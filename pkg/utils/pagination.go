package utils

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

type PageQuery struct {
	Page  int
	Limit int
}

// GetPageQuery reads ?page and ?limit; page starts at 1 and limit is capped at MaxPageLimit.
func GetPageQuery(c echo.Context) PageQuery {
	return PageQuery{
		Page:  GetIntQuery(c, "page", 1, math.MaxInt32),
		Limit: GetIntQuery(c, "limit", DefaultPageLimit, MaxPageLimit),
	}
}

// GetIntQuery parses an integer query parameter clamped to [1, max].
func GetIntQuery(c echo.Context, name string, def, max int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || v <= 0 {
		return def
	}
	if v > max {
		return max
	}
	return v
}
