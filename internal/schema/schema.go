package schema

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ViolationError reports a record that does not match its schema. It names
// the offending field and is never auto-corrected: callers either reject
// the record or surface the error.
type ViolationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("schema violation in %s: field %q %s", e.Entity, e.Field, e.Reason)
}

// Kind is the primitive type a schema field must hold.
type Kind int

const (
	KindString Kind = iota
	KindUuid
	KindBool
	KindInt
	KindTimestamp
	KindStringArray
	KindUuidArray
)

// Field describes one document field.
type Field struct {
	Name     string
	Kind     Kind
	Optional bool
}

// Descriptor enumerates the fields of one entity. Validation is strict:
// fields outside the descriptor fail the record, so reference lists cannot
// hide under misspelled names.
type Descriptor struct {
	Entity string
	Fields []Field
}

// Validate checks a raw document against the descriptor.
func (d Descriptor) Validate(raw bson.M) error {
	known := make(map[string]Field, len(d.Fields))
	for _, f := range d.Fields {
		known[f.Name] = f
	}

	for name := range raw {
		if _, ok := known[name]; !ok {
			return &ViolationError{Entity: d.Entity, Field: name, Reason: "is not part of the schema"}
		}
	}

	for _, f := range d.Fields {
		value, present := raw[f.Name]
		if !present {
			if f.Optional {
				continue
			}
			return &ViolationError{Entity: d.Entity, Field: f.Name, Reason: "is required but missing"}
		}
		if err := checkKind(f.Kind, value); err != "" {
			return &ViolationError{Entity: d.Entity, Field: f.Name, Reason: err}
		}
	}
	return nil
}

// checkKind accepts both the Go values this service writes and the BSON
// representations the driver produces on read.
func checkKind(kind Kind, value interface{}) string {
	switch kind {
	case KindString:
		if _, ok := value.(string); !ok {
			return "must be a string"
		}
	case KindUuid:
		s, ok := value.(string)
		if !ok {
			return "must be a uuid string"
		}
		if s == "" {
			return "must be a non-empty uuid"
		}
	case KindBool:
		if _, ok := value.(bool); !ok {
			return "must be a boolean"
		}
	case KindInt:
		switch value.(type) {
		case int, int32, int64, float64:
		default:
			return "must be a number"
		}
	case KindTimestamp:
		switch value.(type) {
		case time.Time, primitive.DateTime:
		default:
			return "must be a timestamp"
		}
	case KindStringArray, KindUuidArray:
		items, err := stringItems(value)
		if err != "" {
			return err
		}
		if kind == KindUuidArray {
			for _, item := range items {
				if item == "" {
					return "must not contain empty uuids"
				}
			}
		}
	}
	return ""
}

func stringItems(value interface{}) ([]string, string) {
	switch v := value.(type) {
	case []string:
		return v, ""
	case bson.A:
		return interfaceItems(v)
	case []interface{}:
		return interfaceItems(v)
	default:
		return nil, "must be an array of strings"
	}
}

func interfaceItems(items []interface{}) ([]string, string) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, "must contain only strings"
		}
		out = append(out, s)
	}
	return out, ""
}

// decode validates raw against the descriptor, then unmarshals it into the
// typed DTO.
func decode(d Descriptor, raw bson.M, out interface{}) error {
	if err := d.Validate(raw); err != nil {
		return err
	}

	bytes, err := bson.Marshal(raw)
	if err != nil {
		return &ViolationError{Entity: d.Entity, Field: "", Reason: fmt.Sprintf("cannot be encoded: %v", err)}
	}
	if err := bson.Unmarshal(bytes, out); err != nil {
		return &ViolationError{Entity: d.Entity, Field: "", Reason: fmt.Sprintf("cannot be decoded: %v", err)}
	}
	return nil
}
