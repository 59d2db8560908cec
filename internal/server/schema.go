package server

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// chatRequestSchema rejects malformed chat bodies before any handler
// logic runs. Roles are restricted to the two stored kinds; the system
// instruction is never accepted from the caller.
const chatRequestSchema = `{
	"type": "object",
	"required": ["messages"],
	"additionalProperties": false,
	"properties": {
		"messages": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["role", "content"],
				"additionalProperties": false,
				"properties": {
					"role": {"type": "string", "enum": ["user", "assistant"]},
					"content": {"type": "string"}
				}
			}
		},
		"sessionId": {"type": "string"}
	}
}`

var chatSchema = mustCompileSchema(chatRequestSchema)

func mustCompileSchema(source string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		panic(fmt.Sprintf("invalid request schema: %v", err))
	}
	return schema
}

func validateChatRequest(body []byte) error {
	result, err := chatSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("request is not valid JSON: %w", err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return fmt.Errorf("invalid request: %s", strings.Join(details, "; "))
	}

	return nil
}
