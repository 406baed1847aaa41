package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lending/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFail(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   int
		msg    string
	}{
		{core.ErrNotEnoughCollateral, http.StatusConflict, 100300, "NotEnoughCollateral"},
		{fmt.Errorf("wrapped: %w", core.ErrLoanNotFound), http.StatusNotFound, 100402, "LoanNotFound"},
		{core.ErrNotAuthorized, http.StatusForbidden, 100401, "NotAuthorized"},
		{core.ErrLoanTooSmall, http.StatusBadRequest, 100100, "LoanTooSmall"},
		{errors.New("db down"), http.StatusInternalServerError, -1, "internal error"},
	}

	for _, test := range tests {
		t.Run(test.msg, func(t *testing.T) {
			w := httptest.NewRecorder()
			Fail(w, test.err)
			assert.Equal(t, test.status, w.Code)

			var body errorResponse
			require.Nil(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, test.code, body.Code)
			assert.Equal(t, test.msg, body.Msg)
		})
	}
}

func TestWrapResponse(t *testing.T) {
	h := WrapResponse(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			Fail(w, core.ErrInvalidState)
			return
		}

		JSON(w, H{"id": 1})
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"id":1}}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"code":100400,"msg":"InvalidState"}`, w.Body.String())
}
