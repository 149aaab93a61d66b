package voevent

import (
	"bytes"
	"fmt"

	"github.com/tsawler/voevent/schema"
)

// Validator checks serialized packets. *schema.Schema implements it.
type Validator = schema.Validator

func defaultValidator() Validator {
	v, err := schema.V2()
	if err != nil {
		panic(fmt.Sprintf("voevent: embedded schema does not compile: %v", err))
	}
	return v
}

// Valid reports whether d conforms to the VOEvent v2.0 schema.
func Valid(d *Document) bool {
	return AssertValid(d) == nil
}

// AssertValid returns nil if d conforms to the VOEvent v2.0 schema, or a
// *ValidationError naming the first violation.
func AssertValid(d *Document) error {
	return AssertValidAgainst(defaultValidator(), d)
}

// ValidAgainst reports whether d is accepted by v.
func ValidAgainst(v Validator, d *Document) bool {
	return AssertValidAgainst(v, d) == nil
}

// AssertValidAgainst validates the document's standard serialization with
// v. The document is not modified.
func AssertValidAgainst(v Validator, d *Document) error {
	data, err := Serialize(d, WriteOptions{XMLDeclaration: true})
	if err != nil {
		return err
	}
	if err := v.Validate(bytes.NewReader(data)); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}
