package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	oerrors "github.com/avides/gitlab-release/internal/errors"
)

//go:embed schema.cue
var schemaCUE []byte

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Unwrap marks every ValidationErrors as an ErrValidation.
func (e ValidationErrors) Unwrap() error {
	return oerrors.ErrValidation
}

// Validator validates configuration files against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	if !def.Exists() {
		return nil, fmt.Errorf("schema has no #Config definition")
	}

	return &Validator{ctx: ctx, schema: def}, nil
}

// ValidateFile validates the YAML config file at path.
func (v *Validator) ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return oerrors.NewNotFoundError("config file not found", path,
				"run 'gitlab-release config init' to create one")
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return v.Validate(data)
}

// Validate validates YAML config data. Unknown keys and wrongly typed values
// are all reported, not only the first.
func (v *Validator) Validate(data []byte) error {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ValidationErrors{{Field: "(document)", Message: err.Error()}}
	}
	if doc == nil {
		doc = map[string]any{}
	}

	value := v.ctx.Encode(doc)
	if value.Err() != nil {
		return ValidationErrors{{Field: "(document)", Message: value.Err().Error()}}
	}

	errs := validateFields(v.schema, value, nil, nil)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// validateFields walks every field of data and checks it against the matching
// schema node, so a disallowed key does not hide errors in its siblings.
func validateFields(schema, data cue.Value, path []string, errs ValidationErrors) ValidationErrors {
	iter, err := data.Fields()
	if err != nil {
		return errs
	}

	for iter.Next() {
		name := iter.Selector().Unquoted()
		fieldVal := iter.Value()
		fieldPath := append(append([]string(nil), path...), name)
		field := strings.Join(fieldPath, ".")

		if !schema.Allows(cue.Str(name)) {
			errs = append(errs, ValidationError{Field: field, Message: "field not allowed"})
			continue
		}

		schemaField := schema.LookupPath(cue.MakePath(cue.Str(name).Optional()))
		if !schemaField.Exists() {
			schemaField = schema.LookupPath(cue.MakePath(cue.Str(name)))
		}
		if !schemaField.Exists() {
			continue
		}

		if fieldVal.IncompleteKind() == cue.StructKind {
			errs = validateFields(schemaField, fieldVal, fieldPath, errs)
			continue
		}

		if fieldErr := schemaField.Unify(fieldVal).Validate(cue.Concrete(true)); fieldErr != nil {
			for _, e := range cueerrors.Errors(fieldErr) {
				format, args := e.Msg()
				errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
			}
		}
	}
	return errs
}
