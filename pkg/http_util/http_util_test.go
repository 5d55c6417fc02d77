package http_util

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo"
	"gotest.tools/assert"
)

func paginationContext(target string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestPaginationDefaults(t *testing.T) {
	skip, limit := Pagination(paginationContext("/"))
	assert.Equal(t, skip, 0)
	assert.Equal(t, limit, 0)
}

func TestPaginationPassesValues(t *testing.T) {
	skip, limit := Pagination(paginationContext("/?skip=20&limit=5"))
	assert.Equal(t, skip, 20)
	assert.Equal(t, limit, 5)
}

func TestPaginationClampsNegatives(t *testing.T) {
	skip, limit := Pagination(paginationContext("/?skip=-5&limit=-10"))
	assert.Equal(t, skip, 0)
	assert.Equal(t, limit, 0)
}
