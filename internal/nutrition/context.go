package nutrition

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// normalizeContext returns the compacted grocery plan, or nil when there is
// none. Only JSON objects and arrays within max bytes are kept; anything
// else is dropped and the reason returned for logging.
func normalizeContext(raw json.RawMessage, max int) (json.RawMessage, string) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ""
	}

	switch trimmed[0] {
	case '{', '[':
	default:
		return nil, "context is not a JSON object or array"
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, "context is not valid JSON"
	}
	if max > 0 && buf.Len() > max {
		return nil, fmt.Sprintf("context exceeds %d bytes", max)
	}

	return buf.Bytes(), ""
}
