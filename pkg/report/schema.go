package report

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

// ErrSchemaViolation is returned when a document does not match the output schema.
var ErrSchemaViolation = errors.New("document does not match dependency graph schema")

// Violation is one schema error, addressed by its JSON field path.
type Violation struct {
	Field       string
	Description string
}

func (v Violation) String() string {
	return v.Field + ": " + v.Description
}

// Schema returns the JSON Schema describing dependencies.json.
func Schema() []byte {
	return schemaJSON
}

// Validate checks data against the schema. The error is non-nil only when
// data could not be evaluated at all; mismatches are returned as violations.
func Validate(data []byte) ([]Violation, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("evaluate schema: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	violations := make([]Violation, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		violations = append(violations, Violation{Field: verr.Field(), Description: verr.Description()})
	}

	return violations, nil
}

// Check is Validate folded into a single error wrapping ErrSchemaViolation.
func Check(data []byte) error {
	violations, err := Validate(data)
	if err != nil {
		return err
	}

	if len(violations) == 0 {
		return nil
	}

	msgs := make([]string, len(violations))
	for i, v := range violations {
		msgs[i] = v.String()
	}

	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(msgs, "; "))
}
