package mcp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"

	apperrors "github.com/yanqian/weather-advisor/pkg/errors"
)

const eventStreamType = "text/event-stream"

// Normalize decodes a tool-invocation response body into a Document regardless of
// whether the server answered with a plain JSON document or an event stream.
//
// For event streams only "data:" lines are considered and the last one wins; a stream
// with no such line, whose last data line is not a JSON object, or with a line too long
// to read, yields a nil
// Document and no error. A plain body that is not a JSON object is malformed.
func Normalize(body []byte, contentType string) (Document, error) {
	if IsEventStream(contentType) {
		return lastDataFrame(body), nil
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeMalformed, "response body is not a JSON object", err)
	}
	return doc, nil
}

// IsEventStream reports whether a Content-Type header announces server-sent events.
func IsEventStream(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), eventStreamType)
}

func lastDataFrame(body []byte) Document {
	var last string
	found := false

	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 0, 4096), 4<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		last = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		found = true
	}
	// An unreadable line may be the last frame, so nothing earlier can be trusted.
	if scanner.Err() != nil || !found {
		return nil
	}

	var doc Document
	if err := json.Unmarshal([]byte(last), &doc); err != nil {
		return nil
	}
	return doc
}
