package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seth-vargas/biztime/internal/shared"
)

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestNotFoundNamesKey(t *testing.T) {
	rr := httptest.NewRecorder()
	NotFound(rr, "missing")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "missing not found", decodeError(t, rr).Error)
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
		wantServer bool
	}{
		{name: "not found", err: fmt.Errorf("repo: %w", shared.ErrNotFound), wantStatus: http.StatusNotFound, wantBody: "-209 not found"},
		{name: "duplicate", err: shared.ErrDuplicate, wantStatus: http.StatusConflict, wantBody: "duplicate entry"},
		{name: "validation", err: shared.ErrValidation, wantStatus: http.StatusBadRequest, wantBody: "validation failed"},
		{name: "unexpected", err: errors.New("connection refused"), wantStatus: http.StatusInternalServerError, wantBody: "An error occurred", wantServer: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			server := RespondError(rr, tt.err, "-209", "An error occurred")

			assert.Equal(t, tt.wantServer, server)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantBody, decodeError(t, rr).Error)
		})
	}
}
