// Package schemas declares the JSON schemas that Pet Store API responses must conform to.
//
// The schemas are built once when the package is initialized and must never be modified.
package schemas

import (
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

var (
	// Pet is the shape of a pet resource.
	Pet = named("Pet", openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewInt64Schema()).
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("category", idAndNameSchema()).
		WithProperty("photoUrls", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())).
		WithProperty("tags", openapi3.NewArraySchema().WithItems(idAndNameSchema())).
		WithProperty("status", openapi3.NewStringSchema().WithEnum("available", "pending", "sold")),
		"id", "name", "status")

	// PetList is the shape of a findByStatus result.
	PetList = named("PetList", openapi3.NewArraySchema().WithItems(Pet))

	// Order is the shape of a store order resource.
	Order = named("Order", openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewInt64Schema()).
		WithProperty("petId", openapi3.NewInt64Schema()).
		WithProperty("quantity", openapi3.NewInt32Schema()).
		WithProperty("shipDate", openapi3.NewStringSchema()).
		WithProperty("status", openapi3.NewStringSchema().WithEnum("placed", "approved", "delivered")).
		WithProperty("complete", openapi3.NewBoolSchema()),
		"id", "petId", "quantity", "status", "complete")

	// Inventory maps each pet status name to the number of pets with that status. The set of
	// status names is not fixed, since the service counts whatever statuses pets have.
	Inventory = named("Inventory", openapi3.NewObjectSchema().
		WithAdditionalProperties(openapi3.NewInt32Schema()))
)

// Violation means that a JSON document did not conform to a schema.
type Violation struct {
	Schema string
	Err    error
}

func (v *Violation) Error() string {
	return fmt.Sprintf("response does not conform to %s schema: %s", v.Schema, v.Err)
}

func (v *Violation) Unwrap() error {
	return v.Err
}

// Validate checks document against schema. It returns nil if the document conforms, or a
// *Violation describing every mismatch that was found.
func Validate(document ldvalue.Value, schema *openapi3.Schema) error {
	err := schema.VisitJSON(document.AsArbitraryValue(), openapi3.MultiErrors())
	if err == nil {
		return nil
	}
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var messages []string
		for _, e := range multi {
			messages = append(messages, e.Error())
		}
		err = errors.New(strings.Join(messages, "; "))
	}
	return &Violation{Schema: schema.Title, Err: err}
}

func idAndNameSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewInt64Schema()).
		WithProperty("name", openapi3.NewStringSchema())
}

// named sets the title that violations are reported under, and the required properties.
func named(title string, s *openapi3.Schema, required ...string) *openapi3.Schema {
	s.Title = title
	s.Required = required
	return s
}
