// Package schemacheck validates raw JSON payloads against embedded JSON
// schemas before they are decoded into typed values.
package schemacheck

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrInvalidSchema = errors.New("schemacheck: invalid schema")
	ErrViolation     = errors.New("schemacheck: payload violates schema")
)

// Issue is one leaf failure, addressed by JSON pointer into the payload.
type Issue struct {
	Pointer string
	Message string
}

func (i Issue) String() string {
	pointer := "#" + strings.TrimPrefix(strings.TrimSpace(i.Pointer), "#")
	if i.Message == "" {
		return pointer
	}
	return pointer + ": " + i.Message
}

// Error carries every issue found in a payload, sorted by pointer.
type Error struct {
	Issues []Issue
	Cause  error
}

func (e *Error) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrViolation.Error()
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return strings.Join(parts, "; ")
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrViolation}
	}
	return []error{ErrViolation, e.Cause}
}

// Compile compiles a draft 2020-12 schema registered under name.
func Compile(name string, raw []byte) (*jsonschema.Schema, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "schema.json"
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSchema, name, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSchema, name, err)
	}
	return compiled, nil
}

// Check decodes raw and validates it against schema. A nil schema accepts
// any well-formed JSON.
func Check(schema *jsonschema.Schema, raw []byte) error {
	var payload any
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return &Error{Issues: []Issue{{Message: err.Error()}}, Cause: err}
	}
	if schema == nil {
		return nil
	}
	if err := schema.Validate(payload); err != nil {
		return &Error{Issues: Issues(err), Cause: err}
	}
	return nil
}

// Issues flattens err into leaf issues. Errors that did not come from a
// schema check become a single issue without a pointer.
func Issues(err error) []Issue {
	if err == nil {
		return nil
	}
	var checkErr *Error
	if errors.As(err, &checkErr) {
		return checkErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		issues := leaves(validationErr, nil)
		sort.SliceStable(issues, func(a, b int) bool {
			return issues[a].Pointer < issues[b].Pointer
		})
		return issues
	}
	return []Issue{{Message: err.Error()}}
}

func leaves(node *jsonschema.ValidationError, out []Issue) []Issue {
	if len(node.Causes) == 0 {
		return append(out, Issue{
			Pointer: strings.TrimSpace(node.InstanceLocation),
			Message: strings.TrimSpace(node.Message),
		})
	}
	for _, cause := range node.Causes {
		out = leaves(cause, out)
	}
	return out
}
