package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vietanh2810/dining-pos-api/internal/domain"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantText   string
	}{
		{
			name:       "validation",
			err:        fmt.Errorf("h.svc.AddItem -> %w", domain.Validationf("quantity must be at least 1, got 0")),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
			wantText:   "quantity must be at least 1, got 0",
		},
		{
			name:       "not found",
			err:        fmt.Errorf("s.repo.FindByID -> %w", domain.NotFoundf("table not found")),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantText:   "table not found",
		},
		{
			name:       "conflict",
			err:        domain.Conflictf("tables 1 and 2 would overlap"),
			wantStatus: http.StatusConflict,
			wantCode:   "CONFLICT",
			wantText:   "tables 1 and 2 would overlap",
		},
		{
			name:       "state",
			err:        domain.Statef("order group is closed"),
			wantStatus: http.StatusConflict,
			wantCode:   "STATE_ERROR",
			wantText:   "order group is closed",
		},
		{
			name:       "capacity",
			err:        domain.NewError(domain.ErrCapacityExceeded, "no free position"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "CAPACITY_EXCEEDED",
			wantText:   "no free position",
		},
		{
			name:       "internal hides the cause",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL",
			wantText:   "internal server error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromError(tt.err)

			assert.Equal(t, tt.wantStatus, got.HTTPStatusCode)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantText, got.ErrorText)
			assert.Equal(t, http.StatusText(tt.wantStatus), got.StatusText)
		})
	}
}

func TestErrNotFound(t *testing.T) {
	got := ErrNotFound("table", "id", 3)

	assert.Equal(t, http.StatusNotFound, got.HTTPStatusCode)
	assert.Equal(t, "table with id 3 not found", got.ErrorText)
}
