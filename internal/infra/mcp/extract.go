package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/yanqian/weather-advisor/pkg/errors"
)

const maxDiagnosticBody = 1024

// payloadStrategy locates the structured payload inside a tool result. Strategies are
// tried in order and the first hit wins; new wrapping conventions are appended here.
type payloadStrategy struct {
	name string
	find func(ToolResult) (json.RawMessage, bool)
}

var payloadStrategies = []payloadStrategy{
	{name: "structuredContent", find: func(r ToolResult) (json.RawMessage, bool) {
		return nonEmptyObject(r.StructuredContent)
	}},
	{name: "structured_content", find: func(r ToolResult) (json.RawMessage, bool) {
		return nonEmptyObject(r.StructuredContentSnake)
	}},
	{name: "content text", find: func(r ToolResult) (json.RawMessage, bool) {
		if len(r.Content) == 0 {
			return nil, false
		}
		return nonEmptyObject(json.RawMessage(strings.TrimSpace(r.Content[0].Text)))
	}},
}

// ExtractPayload unwraps an optional top-level "result" member and returns the
// structured tool payload together with the name of the strategy that found it.
func ExtractPayload(doc Document) (json.RawMessage, string, error) {
	if doc == nil {
		return nil, "", apperrors.Wrap(apperrors.CodeMalformed, "response carried no decodable JSON document", nil)
	}

	if rpcErr, ok := rpcError(doc); ok {
		return nil, "", apperrors.Wrap(apperrors.CodeRPC, fmt.Sprintf("tool server returned error %d: %s", rpcErr.Code, rpcErr.Message), nil)
	}

	result, err := unwrapResult(doc)
	if err != nil {
		return nil, "", err
	}

	for _, strategy := range payloadStrategies {
		if payload, ok := strategy.find(result); ok {
			return payload, strategy.name, nil
		}
	}

	if result.IsError {
		msg := "tool reported an error"
		if len(result.Content) > 0 && strings.TrimSpace(result.Content[0].Text) != "" {
			msg = strings.TrimSpace(result.Content[0].Text)
		}
		return nil, "", apperrors.Wrap(apperrors.CodeTool, msg, nil)
	}

	return nil, "", apperrors.Wrap(apperrors.CodePayloadNotFound, "unexpected response shape, no structured payload: "+diagnostic(doc), nil)
}

func rpcError(doc Document) (RPCError, bool) {
	raw, ok := doc["error"]
	if !ok || isNull(raw) {
		return RPCError{}, false
	}
	if res, hasResult := doc["result"]; hasResult && !isNull(res) {
		return RPCError{}, false
	}
	var rpcErr RPCError
	if err := json.Unmarshal(raw, &rpcErr); err != nil || rpcErr.Message == "" {
		return RPCError{}, false
	}
	return rpcErr, true
}

func unwrapResult(doc Document) (ToolResult, error) {
	raw, ok := doc["result"]
	if !ok || isNull(raw) {
		encoded, err := json.Marshal(doc)
		if err != nil {
			return ToolResult{}, apperrors.Wrap(apperrors.CodeMalformed, "re-encode response document", err)
		}
		raw = encoded
	}

	var result ToolResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return ToolResult{}, apperrors.Wrap(apperrors.CodeMalformed, "tool result is not an object: "+diagnostic(doc), err)
	}
	return result, nil
}

func nonEmptyObject(raw json.RawMessage) (json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &members); err != nil || len(members) == 0 {
		return nil, false
	}
	return json.RawMessage(trimmed), true
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func diagnostic(doc Document) string {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return fmt.Sprintf("%v", doc)
	}
	if len(encoded) > maxDiagnosticBody {
		return string(encoded[:maxDiagnosticBody]) + "..."
	}
	return string(encoded)
}
