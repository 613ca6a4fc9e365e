package service

// Schema is the subset of JSON Schema accepted by structured outputs
type Schema struct {
	Type                 string             `json:"type"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties *bool              `json:"additionalProperties,omitempty"`
}

// JSONSchemaFormat names a schema for the json_schema response format
type JSONSchemaFormat struct {
	Name   string  `json:"name"`
	Strict bool    `json:"strict"`
	Schema *Schema `json:"schema"`
}

// ResponseFormat is the response_format field of a chat completion request
type ResponseFormat struct {
	Type       string            `json:"type"`
	JSONSchema *JSONSchemaFormat `json:"json_schema,omitempty"`
}

var (
	closed = false

	stringSchema = &Schema{Type: "string"}
	stringList   = &Schema{Type: "array", Items: stringSchema}

	recipeFields = []string{
		"title", "description", "difficulty", "prepTime",
		"servings", "category", "imageUrl", "author",
		"ingredients", "steps", "tips",
	}

	// recipeResponseFormat is built once and only ever marshaled.
	recipeResponseFormat = &ResponseFormat{
		Type: "json_schema",
		JSONSchema: &JSONSchemaFormat{
			Name:   "recipe_response",
			Strict: true,
			Schema: &Schema{
				Type: "object",
				Properties: map[string]*Schema{
					"response": {
						Type: "object",
						Properties: map[string]*Schema{
							"title":       stringSchema,
							"description": stringSchema,
							"difficulty":  stringSchema,
							"prepTime":    stringSchema,
							"servings":    stringSchema,
							"category":    stringSchema,
							"imageUrl":    stringSchema,
							"author":      stringSchema,
							"ingredients": stringList,
							"steps":       stringList,
							"tips":        stringList,
						},
						Required:             recipeFields,
						AdditionalProperties: &closed,
					},
				},
				Required:             []string{"response"},
				AdditionalProperties: &closed,
			},
		},
	}
)
