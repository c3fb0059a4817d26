package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vietanh2810/dining-pos-api/internal/domain"
)

// Err is the JSON body of every failed request.
type Err struct {
	HTTPStatusCode int    `json:"-"`
	StatusText     string `json:"status"`
	Code           string `json:"code"`
	ErrorText      string `json:"error,omitempty"`
}

func (e *Err) Error() string {
	return e.ErrorText
}

func RenderErr(ctx *gin.Context, err *Err) {
	ctx.AbortWithStatusJSON(err.HTTPStatusCode, err)
}

func newErr(status int, code string, err error) *Err {
	e := &Err{
		HTTPStatusCode: status,
		StatusText:     http.StatusText(status),
		Code:           code,
	}
	if err != nil {
		e.ErrorText = err.Error()
	}

	return e
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, "VALIDATION_ERROR", err)
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, "UNAUTHORIZED", err)
}

func ErrNotFound(resource, key string, value any) *Err {
	return newErr(http.StatusNotFound, "NOT_FOUND", fmt.Errorf("%v with %v %v not found", resource, key, value))
}

func ErrInternalServerError(err error) *Err {
	zap.L().Error("internal server error", zap.Error(err))

	return newErr(http.StatusInternalServerError, "INTERNAL", errors.New("internal server error"))
}

// FromError maps a service error to a response by its kind. Errors without a kind
// are logged and hidden behind a 500.
func FromError(err error) *Err {
	switch kind := domain.KindOf(err); kind {
	case "VALIDATION_ERROR":
		return newErr(http.StatusBadRequest, kind, rootMessage(err))
	case "NOT_FOUND":
		return newErr(http.StatusNotFound, kind, rootMessage(err))
	case "CONFLICT", "STATE_ERROR":
		return newErr(http.StatusConflict, kind, rootMessage(err))
	case "CAPACITY_EXCEEDED":
		return newErr(http.StatusUnprocessableEntity, kind, rootMessage(err))
	default:
		return ErrInternalServerError(err)
	}
}

// rootMessage drops the call chain prefix and keeps the domain message.
func rootMessage(err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return de
	}

	return err
}
