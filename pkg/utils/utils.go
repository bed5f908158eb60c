// Package utils generates JSON schemas from config structs, so editors can
// complete and validate the YAML files the CLIs read and write.
package utils

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
)

// GetSchemaFromConfig reflects a draft-07 JSON schema from a config struct.
// Fields that read YAML in a special form map to their string shape:
// optional dates become date strings, durations become Go duration strings
// and decimals become plain strings.
func GetSchemaFromConfig(config any, title, description string) (string, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct:            true,
		AllowAdditionalProperties: false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date",
				}
			}
			if t == reflect.TypeOf(time.Duration(0)) {
				return &jsonschema.Schema{
					Type:    "string",
					Pattern: `^([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`,
				}
			}
			if strings.HasSuffix(t.String(), "decimal.Decimal") {
				return &jsonschema.Schema{
					Type: "string",
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(config)
	schema.Title = title
	schema.Description = description
	schema.Version = "http://json-schema.org/draft-07/schema#"

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
