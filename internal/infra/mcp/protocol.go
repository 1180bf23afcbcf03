package mcp

import "encoding/json"

const (
	jsonRPCVersion = "2.0"

	// MethodToolsCall invokes a named tool.
	MethodToolsCall = "tools/call"
	// WeatherTool is the tool returning current conditions for a city.
	WeatherTool = "weather_now"
)

// Request is the JSON-RPC 2.0 envelope posted to the tool-invocation endpoint.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// ToolCallParams names the tool and its arguments.
type ToolCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// RPCError is the JSON-RPC error member.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ContentBlock is one human-readable block of a tool result.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ToolResult is the tool-call result. Servers disagree on the spelling of the
// structured payload key, so both are accepted.
type ToolResult struct {
	Content                []ContentBlock  `json:"content,omitempty"`
	StructuredContent      json.RawMessage `json:"structuredContent,omitempty"`
	StructuredContentSnake json.RawMessage `json:"structured_content,omitempty"`
	IsError                bool            `json:"isError,omitempty"`
}

// Document is the canonical decoded response: a JSON object keyed by member name.
type Document map[string]json.RawMessage

// JSON-RPC error codes used for transport-level failures.
const (
	CodeInvalidRequest = -32600
	CodeInternalError  = -32603
)

// Response is a JSON-RPC reply envelope.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// NewError builds an error reply. A missing id is sent as null.
func NewError(id json.RawMessage, code int, message string) Response {
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	return Response{JSONRPC: jsonRPCVersion, ID: id, Error: &RPCError{Code: code, Message: message}}
}
