// Package schemas provides JSON Schema validation of request payloads.
package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jonathan/docorator/internal/types"
	payloadschemas "github.com/jonathan/docorator/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

var (
	payloadOnce   sync.Once
	payloadSchema *gojsonschema.Schema
	payloadErr    error
)

func compiledPayloadSchema() (*gojsonschema.Schema, error) {
	payloadOnce.Do(func() {
		payloadSchema, payloadErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(payloadschemas.Payload))
		if payloadErr != nil {
			payloadErr = &SchemaLoadError{
				Path:    "payload.schema.json",
				Message: "failed to compile embedded schema",
				Cause:   payloadErr,
			}
		}
	})
	return payloadSchema, payloadErr
}

// ValidatePayload checks a generate payload against the embedded payload schema.
func ValidatePayload(p types.Payload) error {
	schema, err := compiledPayloadSchema()
	if err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to validate payload: %w", err)
	}
	return resultError(result)
}

// ValidatePayloadFile checks a JSON file against the embedded payload schema.
func ValidatePayloadFile(jsonPath string) error {
	jsonAbsPath, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}
	if _, err := os.Stat(jsonAbsPath); os.IsNotExist(err) {
		return fmt.Errorf("JSON file not found: %s", jsonAbsPath)
	}
	data, err := os.ReadFile(jsonAbsPath)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	return ValidateJSONString(payloadschemas.Payload, string(data))
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	return resultError(result)
}

func resultError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
