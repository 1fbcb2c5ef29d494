package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func contextWithUserID(v interface{}) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/movies", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if v != nil {
		c.Set("user_id", v)
	}
	return c
}

func TestCurrentUserID(t *testing.T) {
	cases := []struct {
		name  string
		claim interface{}
		want  string
	}{
		{"string claim", "42", "42"},
		{"float64 claim (json number)", float64(42), "42"},
		{"uint64 claim", uint64(42), "42"},
		{"int64 claim", int64(42), "42"},
		{"empty string", "", "anon"},
		{"unauthenticated", nil, "anon"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, currentUserID(contextWithUserID(tc.claim)))
		})
	}
}
