package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"sort"

	"casacalc/internal/errors"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const propertyInputSchema = "schemas/property_input.json"

var propertySchema = mustCompile(propertyInputSchema)

func mustCompile(name string) *jsonschema.Schema {
	data, err := schemaFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("read schema %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", name, err))
	}
	return compiler.MustCompile(name)
}

// ValidatePropertyRequest checks a raw request body against the property
// input schema before it is decoded.
func ValidatePropertyRequest(body []byte) error {
	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return errors.ErrInvalidRequest.WithDetails("body is not valid JSON")
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.ErrInvalidRequest.WithDetails("body is not valid JSON")
	}

	if err := propertySchema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if stderrors.As(err, &ve) {
			return errors.ErrInvalidRequest.WithDetails(schemaDetails(ve)...)
		}
		return errors.ErrInvalidRequest.WithDetails(err.Error())
	}
	return nil
}

// schemaDetails flattens a validation error tree into its leaf messages,
// prefixed with the offending JSON pointer.
func schemaDetails(ve *jsonschema.ValidationError) []string {
	seen := make(map[string]struct{})
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			seen[loc+": "+e.Message] = struct{}{}
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)

	out := make([]string, 0, len(seen))
	for msg := range seen {
		out = append(out, msg)
	}
	sort.Strings(out)
	return out
}
