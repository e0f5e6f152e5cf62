// Package validation checks write payloads against the JSON schemas the
// backend enforces, so bad input is reported before a request is sent.
package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"storedash/internal/domain"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	SchemaCategory = "category"
	SchemaProduct  = "product"
)

// FieldError is one failed constraint
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every field that failed
type ValidationError struct {
	Schema string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Schema, strings.Join(parts, "; "))
}

// Has reports whether field is among the failures
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Validator validates payloads before they are sent
type Validator interface {
	Category(c domain.Category) error
	Product(p domain.ProductPayload) error
}

// SchemaValidator compiles the embedded schemas on first use
type SchemaValidator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// New builds a validator backed by jsonschema v5
func New() *SchemaValidator {
	return &SchemaValidator{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

func (v *SchemaValidator) Category(c domain.Category) error {
	return v.Validate(SchemaCategory, c)
}

func (v *SchemaValidator) Product(p domain.ProductPayload) error {
	return v.Validate(SchemaProduct, p)
}

// Validate checks value, encoded as JSON, against the named schema
func (v *SchemaValidator) Validate(name string, value any) error {
	schema, err := v.schemaFor(name)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", name, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return fmt.Errorf("failed to normalize %s payload: %w", name, err)
	}

	if err := schema.Validate(payload); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return &ValidationError{Schema: name, Fields: collect(verr)}
		}
		return fmt.Errorf("failed to validate %s: %w", name, err)
	}
	return nil
}

func (v *SchemaValidator) schemaFor(name string) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[name]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}

	data, err := schemaFS.ReadFile("schemas/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("unknown schema %q: %w", name, err)
	}
	compiler := jsonschema.NewCompiler()
	url := name + ".json"
	if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to load schema %s: %w", name, err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	v.mu.Lock()
	v.compiled[name] = compiled
	v.mu.Unlock()
	return compiled, nil
}

// collect flattens the leaf causes into one entry per field
func collect(root *jsonschema.ValidationError) []FieldError {
	seen := map[string]bool{}
	var fields []FieldError

	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, c := range e.Causes {
				walk(c)
			}
			return
		}
		for _, field := range fieldsOf(e) {
			if seen[field] {
				continue
			}
			seen[field] = true
			fields = append(fields, FieldError{Field: field, Message: e.Message})
		}
	}
	walk(root)

	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return fields
}

// fieldsOf names the fields an error is about. "required" errors sit on the
// parent object and list the missing properties in their message.
func fieldsOf(e *jsonschema.ValidationError) []string {
	if strings.HasSuffix(e.KeywordLocation, "/required") {
		var names []string
		for _, part := range strings.Split(e.Message, "'") {
			part = strings.TrimSpace(part)
			if part == "" || strings.ContainsAny(part, ":,") {
				continue
			}
			names = append(names, part)
		}
		if len(names) > 0 {
			return names
		}
	}
	field := strings.TrimPrefix(e.InstanceLocation, "/")
	if i := strings.Index(field, "/"); i >= 0 {
		field = field[:i]
	}
	if field == "" {
		field = "payload"
	}
	return []string{field}
}
