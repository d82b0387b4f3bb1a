package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	apperrors "depositor/internal/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPagination(t *testing.T) {
	app := fiber.New()
	var got Pagination
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetPagination(c, 1, 20)
		return nil
	})

	cases := []struct {
		query  string
		page   int
		limit  int
		offset int
	}{
		{"", 1, 20, 0},
		{"?page=3&limit=10", 3, 10, 20},
		{"?page=-1&limit=abc", 1, 20, 0},
		{"?limit=1000", 1, MaxPageLimit, 0},
	}
	for _, tc := range cases {
		_, err := app.Test(httptest.NewRequest("GET", "/"+tc.query, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.page, got.Page, tc.query)
		assert.Equal(t, tc.limit, got.Limit, tc.query)
		assert.Equal(t, tc.offset, got.Offset, tc.query)
	}

	p := Pagination{Limit: 10}
	p.SetTotal(41)
	assert.Equal(t, 5, p.LastPage)
}

func TestDomainErrorResponse(t *testing.T) {
	app := fiber.New()
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return DomainError(c, fmt.Errorf("%w: must be greater than zero", apperrors.ErrInvalidAmount))
	})
	app.Get("/persist", func(c *fiber.Ctx) error {
		return DomainError(c, fmt.Errorf("%w: %w", apperrors.ErrPersistence, fmt.Errorf("dial tcp: refused")))
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return DomainError(c, fmt.Errorf("boom"))
	})

	decode := func(path string) (int, map[string]string) {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		raw, _ := io.ReadAll(resp.Body)
		body := map[string]string{}
		require.NoError(t, json.Unmarshal(raw, &body))
		return resp.StatusCode, body
	}

	status, body := decode("/invalid")
	assert.Equal(t, 400, status)
	assert.Equal(t, "INVALID_AMOUNT", body["code"])
	assert.Equal(t, "invalid amount: must be greater than zero", body["detail"])

	status, body = decode("/persist")
	assert.Equal(t, 500, status)
	assert.Equal(t, "failed to record deposit", body["error"])
	assert.NotContains(t, body, "detail")

	status, body = decode("/plain")
	assert.Equal(t, 500, status)
	assert.Equal(t, "internal server error", body["error"])
}

func TestValidateStruct(t *testing.T) {
	type login struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required"`
	}

	assert.NoError(t, ValidateStruct(login{Email: "a@b.co", Password: "x"}))

	err := ValidateStruct(login{Email: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email failed on 'email'")
	assert.Contains(t, err.Error(), "password failed on 'required'")
}
