package schema_test

import (
	"errors"
	"testing"

	"github.com/relabs-tech/energytrack/core/schema"
)

const (
	ref1 = `{ "type" : "string" ,
		      "$id" : "http://some_host.com/string.json"}`
	ref2 = `{ "$id" : "http://some_host.com/maxlength.json",
	 		  "maxLength" : 5 }`

	top_level1 = `
	{ "$id" : "http://some_host.com/top1.json",
	  "allOf" : [
		{ "$ref" : "http://some_host.com/string.json" },
		{ "$ref" : "http://some_host.com/maxlength.json" }
		]
	}`
	top_level2 = `
	{ "$id" : "http://some_host.com/top2.json",
	  "type": "object",
	  "required": ["label"],
	  "properties": {
		  "label":  { "type": "string" },
		  "rating": { "type": "integer", "minimum": 1, "maximum": 10 }
	  }
	}`
)

func TestValidateString(t *testing.T) {
	v, err := schema.NewValidator([]string{top_level1, top_level2}, []string{ref1, ref2})
	if err != nil {
		t.Fatalf("No error expected when creating validator, got %v", err)
	}

	schemaID1 := "http://some_host.com/top1.json"
	schemaID2 := "http://some_host.com/top2.json"
	jsonShortString := `"short"`
	jsonLongString := `"a very long string"`

	// Valid json
	if err := v.ValidateString(jsonShortString, schemaID1); err != nil {
		t.Fatalf("%s is expected to be valid with schema %s. Reported error was: %v", jsonShortString, schemaID1, err)
	}

	// Invalid json
	if err := v.ValidateString(jsonLongString, schemaID1); err == nil {
		t.Fatalf("%s is expected to be invalid with schema %s. Reported error was: %v", jsonLongString, schemaID1, err)
	}

	// Valid json
	if err := v.ValidateString(`{"label":"walk","rating":7}`, schemaID2); err != nil {
		t.Fatalf("object is expected to be valid with schema %s. Reported error was: %v", schemaID2, err)
	}

	// Unknown schema
	if err := v.ValidateString(jsonShortString, "http://some_host.com/unknown.json"); err == nil {
		t.Fatal("expected an error for an unknown schema id")
	}
}

func TestHasSchema(t *testing.T) {
	v, err := schema.NewValidator([]string{top_level1, top_level2}, []string{ref1, ref2})
	if err != nil {
		t.Fatalf("No error expected when creating validator, got %v", err)
	}

	schemaID := "http://some_host.com/top1.json"
	if !v.HasSchema(schemaID) {
		t.Fatalf("%s schemaID is expected to be available", schemaID)
	}
	schemaID = "http://some_host.com/top2.json"
	if !v.HasSchema(schemaID) {
		t.Fatalf("%s schemaID is expected to be available", schemaID)
	}

	schemaID = "http://some_host.com/unknown.json"
	if v.HasSchema(schemaID) {
		t.Fatalf("%s schemaID is not expected to be available", schemaID)
	}
}

func TestValidateStringDetails(t *testing.T) {
	v, err := schema.NewValidator([]string{top_level2}, nil)
	if err != nil {
		t.Fatalf("No error expected when creating validator, got %v", err)
	}
	schemaID2 := "http://some_host.com/top2.json"

	// a missing required property is reported on the property itself
	err = v.ValidateString(`{"rating":7}`, schemaID2)
	verr := &schema.ValidationError{}
	if !errors.As(err, &verr) {
		t.Fatalf("expected a *ValidationError, got %v", err)
	}
	if len(verr.Details) != 1 {
		t.Fatalf("unexpected details: %+v", verr.Details)
	}
	if verr.Details[0].Field != "label" || verr.Details[0].Type != "required" {
		t.Fatalf("unexpected detail: %+v", verr.Details[0])
	}

	// a range violation is reported on the failing field
	err = v.ValidateString(`{"label":"walk","rating":11}`, schemaID2)
	verr = &schema.ValidationError{}
	if !errors.As(err, &verr) {
		t.Fatalf("expected a *ValidationError, got %v", err)
	}
	if len(verr.Details) != 1 || verr.Details[0].Field != "rating" {
		t.Fatalf("unexpected details: %+v", verr.Details)
	}
	if verr.Details[0].Message == "" {
		t.Fatal("expected a message for the failing field")
	}
}
