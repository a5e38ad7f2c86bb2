package advisor

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// The system instructions embed schemas reflected from the result types, so the
// prompt and the validator describe the same shape.
var (
	analysisSchema   = renderSchema[Analysis]()
	suggestionSchema = renderSchema[Suggestions]()
)

func renderSchema[T any]() string {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		ExpandedStruct:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	schema.Version = ""
	schema.ID = ""

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		panic("advisor: rendering output schema: " + err.Error())
	}
	return string(data)
}

// AnalysisSchema returns the JSON Schema text embedded in the analysis instruction.
func AnalysisSchema() string { return analysisSchema }

// SuggestionSchema returns the JSON Schema text embedded in the suggestion instruction.
func SuggestionSchema() string { return suggestionSchema }
