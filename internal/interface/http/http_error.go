package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weather-advisor/internal/infra/mcp"
)

// HTTPError is a failure raised by middleware before the tool server sees the request.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

// envelope renders the error as a JSON-RPC error response with a null id.
func (e *HTTPError) envelope(message string) mcp.Response {
	rpcCode := mcp.CodeInternalError
	if e.Status < http.StatusInternalServerError {
		rpcCode = mcp.CodeInvalidRequest
	}
	resp := mcp.NewError(nil, rpcCode, message)
	resp.Error.Data, _ = json.Marshal(gin.H{"reason": e.Code})
	return resp
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
