package facts

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource []byte

// Validator checks facts against the embedded CUE schema before they leave
// the compiler. A mismatch is a compiler bug, not a user error.
type Validator struct {
	ctx   *cue.Context
	input cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaSource)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}
	input := schema.LookupPath(cue.ParsePath("#Input"))
	if input.Err() != nil {
		return nil, fmt.Errorf("looking up #Input definition: %w", input.Err())
	}
	return &Validator{ctx: ctx, input: input}, nil
}

// Validate marshals t and checks it.
func (v *Validator) Validate(t Tables) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshaling facts to JSON: %w", err)
	}
	return v.ValidateJSON(data)
}

// ValidateJSON checks raw JSON against #Input.
func (v *Validator) ValidateJSON(data []byte) error {
	value := v.ctx.CompileBytes(data)
	if value.Err() != nil {
		return fmt.Errorf("compiling JSON as CUE: %w", value.Err())
	}
	if err := v.input.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// Problems lists every schema violation in data, one line each.
func (v *Validator) Problems(data []byte) []string {
	err := v.ValidateJSON(data)
	if err == nil {
		return nil
	}
	var out []string
	for _, e := range errors.Errors(err) {
		out = append(out, e.Error())
	}
	if len(out) == 0 {
		out = append(out, err.Error())
	}
	return out
}
