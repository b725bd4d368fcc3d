package config

import (
	"github.com/invopop/jsonschema"
)

// discriminatedObjectSchema describes a holder type whose concrete shape is chosen by a discriminator field.
// The concrete fields are validated in Go after unmarshalling.
func discriminatedObjectSchema(field string, values ...string) *jsonschema.Schema {
	enum := make([]interface{}, 0, len(values))
	for _, v := range values {
		enum = append(enum, v)
	}

	props := jsonschema.NewProperties()
	props.Set(field, &jsonschema.Schema{Type: "string", Enum: enum})

	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   []string{field},
	}
}
