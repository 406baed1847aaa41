package render

import (
	"encoding/json"
	"errors"
	"net/http"

	"lending/core"

	"github.com/sirupsen/logrus"
)

// H shortcut of a json object
type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Errorln("render json")
	}
}

// Error write error
func Error(w http.ResponseWriter, statusCode, errCode int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(errorResponse{Code: errCode, Msg: err.Error()}); err != nil {
		logrus.WithError(err).Errorln("render error")
	}
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusBadRequest, -1, err)
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusNotFound, -1, err)
}

// Fail render err, engine error codes keep their code and readable name
func Fail(w http.ResponseWriter, err error) {
	var code core.ErrorCode
	if !errors.As(err, &code) {
		logrus.WithError(err).Errorln("internal error")
		Error(w, http.StatusInternalServerError, -1, errors.New("internal error"))
		return
	}

	Error(w, StatusOf(code), int(code), code)
}

// StatusOf http status of an engine error code
func StatusOf(code core.ErrorCode) int {
	switch code {
	case core.ErrLoanNotFound:
		return http.StatusNotFound
	case core.ErrNotAuthorized:
		return http.StatusForbidden
	case core.ErrInvalidState, core.ErrNotEnoughCollateral, core.ErrNotLiquidatable, core.ErrNotOverdue:
		return http.StatusConflict
	case core.ErrStaleOrInvalidQuote:
		return http.StatusServiceUnavailable
	case core.ErrUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
