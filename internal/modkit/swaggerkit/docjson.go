package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"iter"
	"net/http"
	"strconv"
	"strings"

	perr "chimera/internal/platform/errors"
)

//go:embed openapi.json
var openapiJSON []byte

// source is swapped in tests
var source = func() []byte { return openapiJSON }

// defaultErrors is added to every operation that does not document the status itself
var defaultErrors = []struct {
	status int
	code   perr.ErrorCode
	msg    string
}{
	{http.StatusBadRequest, perr.ErrorCodeValidation, "분석할 텍스트를 입력해주세요."},
	{http.StatusInternalServerError, perr.ErrorCodePanic, "internal error"},
}

// errorEnvelope mirrors the failure shape of phttp.Envelope
var errorEnvelope = map[string]any{
	"type":        "object",
	"description": "Standard error response",
	"required":    []any{"status_code", "status"},
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer", "format": "int32"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "integer", "format": "int32"},
		"error":       map[string]any{"type": "string"},
		"field":       map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
	},
}

// render prepares the embedded document for the bundled UI
// it pins OAS 3.0.3, sets the server base, suffixes the title and fills in error responses
func render(raw []byte, titleSuffix string) ([]byte, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	delete(doc, "swagger")
	if v, _ := doc["openapi"].(string); !strings.HasPrefix(v, "3.0") {
		doc["openapi"] = "3.0.3"
	}
	if _, ok := doc["servers"]; !ok {
		doc["servers"] = []any{map[string]any{"url": "/api/v1"}}
	}
	if info, ok := doc["info"].(map[string]any); ok && titleSuffix != "" {
		info["title"] = strings.TrimSpace(str(info["title"]) + " " + titleSuffix)
	}

	schemas := child(child(doc, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = errorEnvelope
	}

	for op := range operations(doc) {
		responses := child(op, "responses")
		for _, d := range defaultErrors {
			key := strconv.Itoa(d.status)
			if _, ok := responses[key]; !ok {
				responses[key] = errorResponse(d.status, d.code, d.msg)
			}
		}
	}
	return json.Marshal(doc)
}

func errorResponse(status int, code perr.ErrorCode, msg string) map[string]any {
	text := http.StatusText(status)
	return map[string]any{
		"description": text,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": status,
					"status":      text,
					"code":        int(code),
					"error":       msg,
					"request_id":  "host/abc-000001",
				},
			},
		},
	}
}

// operations yields every operation object under paths
func operations(doc map[string]any) iter.Seq[map[string]any] {
	return func(yield func(map[string]any) bool) {
		paths, _ := doc["paths"].(map[string]any)
		for _, item := range paths {
			methods, _ := item.(map[string]any)
			for _, op := range methods {
				if m, ok := op.(map[string]any); ok && !yield(m) {
					return
				}
			}
		}
	}
}

// child returns m[key] as an object, creating it when absent
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
