package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/expensio/expensio_backend/internal/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Every error leaving the service layer is a wrapped sentinel; this mapping
// is the only translation to HTTP status codes.
func TestRespondError_SentinelStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperrors.ErrValidation, http.StatusBadRequest},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusForbidden},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden},
		{"not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"invalid transition", apperrors.ErrInvalidTransition, http.StatusConflict},
		{"duplicate", apperrors.ErrDuplicate, http.StatusConflict},
		{"conflict", apperrors.ErrConflict, http.StatusConflict},
		{"storage unavailable", apperrors.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{"extraction unavailable", apperrors.ErrExtractionUnavailable, http.StatusServiceUnavailable},
		{"wrapped sentinel still maps", fmt.Errorf("expense abc: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{"doubly wrapped sentinel still maps", fmt.Errorf("outer: %w", fmt.Errorf("%w: inner", apperrors.ErrValidation)), http.StatusBadRequest},
		{"unknown error is internal", errors.New("connection reset"), http.StatusInternalServerError},
		{"internal sentinel", apperrors.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, slog.Default(), tc.err)

			assert.Equal(t, tc.want, w.Code)
		})
	}
}
