package errors

import "errors"

// Codes shared by the weather client, the tool server and the CLI.
const (
	CodeTransport        = "transport_error"
	CodeMalformed        = "malformed_response"
	CodePayloadNotFound  = "payload_not_found"
	CodeRPC              = "rpc_error"
	CodeTool             = "tool_error"
	CodeInvalidInput     = "invalid_input"
	CodeLLM              = "llm_error"
	CodeUpstream         = "upstream_error"
	CodeLocationNotFound = "location_not_found"
)

// AppError encodes domain specific error details.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap produces a new AppError instance.
func Wrap(code, message string, err error) error {
	if err == nil {
		return &AppError{Code: code, Message: message}
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// IsCode helps callers differentiate failures.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf returns the outermost AppError code, or an empty string.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
