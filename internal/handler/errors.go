package handler

import (
	"errors"
	"net/http"

	"chatboard/internal/transport/httpdto"
	"chatboard/internal/validation"
	chatboard_errors "chatboard/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// HTTPStatus maps a service error to its status code and error code.
func HTTPStatus(err error) (int, string) {
	switch {
	case errors.Is(err, chatboard_errors.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, chatboard_errors.ErrConflict):
		return http.StatusBadRequest, "CONFLICT"
	case errors.Is(err, chatboard_errors.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, chatboard_errors.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, chatboard_errors.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, chatboard_errors.ErrAlreadyExists):
		return http.StatusConflict, "ALREADY_EXISTS"
	case errors.Is(err, chatboard_errors.ErrDataIntegrity):
		return http.StatusInternalServerError, "DATA_INTEGRITY"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// writeError writes the error response for err. Unclassified errors are left
// to the error middleware so their details never reach the client.
func writeError(c *gin.Context, err error) {
	status, code := HTTPStatus(err)
	if code == "INTERNAL_ERROR" {
		c.Status(status)
		_ = c.Error(err)
		return
	}
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
}

// bindJSON decodes the body into req and writes a 400 when it does not validate.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]httpdto.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, httpdto.FieldError{Field: fe.Field(), Message: validation.Message(fe)})
		}
		c.JSON(http.StatusBadRequest, httpdto.NewValidationErrorResponse(fields))
		return false
	}

	c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
	return false
}

// pathID parses the named path parameter and writes a 400 when it is not an id.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := validation.ParseID(name, c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(err.Error(), "INVALID_REQUEST"))
		return uuid.Nil, false
	}
	return id, true
}
