// Package schemas provides JSON Schema validation for untrusted,
// model-generated JSON output. Schemas check structure and numeric ranges;
// enum values are checked at the typed layer after case normalization.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

var (
	compiled   = make(map[string]*gojsonschema.Schema)
	compiledMu sync.Mutex
)

// ValidationError represents a schema validation failure with field paths,
// detailed enough to diagnose which field the model got wrong.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s validation failed:", ve.Schema))
	for _, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf(" [%s: %s]", err.Field, err.Message))
	}
	return sb.String()
}

// Fields returns the field paths that failed validation.
func (ve *ValidationError) Fields() []string {
	fields := make([]string, 0, len(ve.Errors))
	for _, err := range ve.Errors {
		fields = append(fields, err.Field)
	}
	return fields
}

// ValidateAnalysis validates a resume analysis document.
func ValidateAnalysis(document string) error {
	return validate("resume_analysis.schema.json", document)
}

// ValidateRoadmap validates a learning roadmap document.
func ValidateRoadmap(document string) error {
	return validate("roadmap.schema.json", document)
}

// ValidateSkillGap validates a skill gap analysis document.
func ValidateSkillGap(document string) error {
	return validate("skill_gap.schema.json", document)
}

func validate(schemaFile, document string) error {
	schema, err := loadSchema(schemaFile)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(document))
	if err != nil {
		return fmt.Errorf("failed to validate against %s: %w", schemaFile, err)
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Schema: strings.TrimSuffix(schemaFile, ".schema.json"),
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

// loadSchema compiles an embedded schema once and caches it.
func loadSchema(filename string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if schema, exists := compiled[filename]; exists {
		return schema, nil
	}

	data, err := schemaFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", filename, err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", filename, err)
	}

	compiled[filename] = schema
	return schema, nil
}
