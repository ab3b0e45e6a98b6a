package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/scguardian/guardian/internal/models"
)

// SchemaName identifies the analysis schema in structured-output requests.
const SchemaName = "supply_chain_analysis"

// Analysis fields. These are the only keys a reply may carry, matched exactly.
const (
	fieldRelevant          = "relevant"
	fieldConfidence        = "confidence"
	fieldUrgency           = "urgency"
	fieldImpactType        = "impact_type"
	fieldAffectedAspect    = "affected_aspect"
	fieldReasoning         = "reasoning"
	fieldRecommendedAction = "recommended_action"
	fieldEstimatedTimeline = "estimated_timeline"
)

var analysisFields = map[string]bool{
	fieldRelevant:          true,
	fieldConfidence:        true,
	fieldUrgency:           true,
	fieldImpactType:        true,
	fieldAffectedAspect:    true,
	fieldReasoning:         true,
	fieldRecommendedAction: true,
	fieldEstimatedTimeline: true,
}

// Schema is a flat object schema. Properties marked Nullable are rendered as
// a type union with "null" (and null added to any enum), the form JSON Schema
// validators and structured-output backends understand.
type Schema struct {
	jsonschema.Definition
}

// MarshalJSON implements json.Marshaler.
func (s Schema) MarshalJSON() ([]byte, error) {
	props := make(map[string]json.RawMessage, len(s.Properties))
	for name, prop := range s.Properties {
		raw, err := marshalProperty(prop)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", name, err)
		}
		props[name] = raw
	}

	return json.Marshal(struct {
		Type                 jsonschema.DataType        `json:"type"`
		Description          string                     `json:"description,omitempty"`
		Properties           map[string]json.RawMessage `json:"properties"`
		Required             []string                   `json:"required,omitempty"`
		AdditionalProperties any                        `json:"additionalProperties"`
	}{
		Type:                 s.Type,
		Description:          s.Description,
		Properties:           props,
		Required:             s.Required,
		AdditionalProperties: s.AdditionalProperties,
	})
}

func marshalProperty(prop jsonschema.Definition) (json.RawMessage, error) {
	nullable := prop.Nullable
	prop.Nullable = false
	raw, err := json.Marshal(&prop)
	if err != nil || !nullable {
		return raw, err
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	fields["type"] = []jsonschema.DataType{prop.Type, jsonschema.Null}
	if len(prop.Enum) > 0 {
		enum := make([]any, 0, len(prop.Enum)+1)
		for _, v := range prop.Enum {
			enum = append(enum, v)
		}
		fields["enum"] = append(enum, nil)
	}
	return json.Marshal(fields)
}

// AnalysisSchema returns the closed output schema the model must satisfy.
func AnalysisSchema() Schema {
	return Schema{jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			fieldRelevant: {
				Type:        jsonschema.Boolean,
				Description: "Whether the alert materially affects this business's supply chain.",
			},
			fieldConfidence: {
				Type: jsonschema.String,
				Enum: enumStrings(models.Confidences),
			},
			fieldUrgency: {
				Type:        jsonschema.String,
				Enum:        enumStrings(models.Urgencies),
				Nullable:    true,
				Description: "Null when the alert is not relevant.",
			},
			fieldImpactType: {
				Type:     jsonschema.String,
				Enum:     enumStrings(models.ImpactTypes),
				Nullable: true,
			},
			fieldAffectedAspect: {
				Type:        jsonschema.String,
				Nullable:    true,
				Description: "The specific part of the supply chain impacted.",
			},
			fieldReasoning: {
				Type:        jsonschema.String,
				Description: "Explanation of the assessment. Always required.",
			},
			fieldRecommendedAction: {
				Type:     jsonschema.String,
				Nullable: true,
			},
			fieldEstimatedTimeline: {
				Type:     jsonschema.String,
				Nullable: true,
			},
		},
		Required:             []string{fieldRelevant, fieldConfidence, fieldReasoning},
		AdditionalProperties: false,
	}}
}

// wireAnalysis is the raw decode target. Pointers distinguish absent from zero.
type wireAnalysis struct {
	Relevant          *bool   `json:"relevant"`
	Confidence        *string `json:"confidence"`
	Urgency           *string `json:"urgency"`
	ImpactType        *string `json:"impact_type"`
	AffectedAspect    *string `json:"affected_aspect"`
	Reasoning         *string `json:"reasoning"`
	RecommendedAction *string `json:"recommended_action"`
	EstimatedTimeline *string `json:"estimated_timeline"`
}

// DecodeAnalysis parses a model response and validates it against the
// analysis schema. Every failure wraps ErrSchemaViolation.
func DecodeAnalysis(text string) (models.AnalysisResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.AnalysisResult{}, fmt.Errorf("%w: empty response", ErrSchemaViolation)
	}

	if err := checkKeys(text); err != nil {
		return models.AnalysisResult{}, err
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()

	var wire wireAnalysis
	if err := dec.Decode(&wire); err != nil {
		return models.AnalysisResult{}, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return models.AnalysisResult{}, fmt.Errorf("%w: trailing data after JSON object", ErrSchemaViolation)
	}

	return wire.validate()
}

// checkKeys requires a single JSON object whose keys are exact-case analysis
// fields, each at most once. encoding/json alone folds case and lets a later
// duplicate overwrite an earlier value.
func checkKeys(text string) error {
	dec := json.NewDecoder(strings.NewReader(text))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: response is not a JSON object", ErrSchemaViolation)
	}

	seen := make(map[string]bool, len(analysisFields))
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: unexpected token %v", ErrSchemaViolation, tok)
		}
		if !analysisFields[key] {
			return fmt.Errorf("%w: unknown field %q", ErrSchemaViolation, key)
		}
		if seen[key] {
			return fmt.Errorf("%w: duplicate field %q", ErrSchemaViolation, key)
		}
		seen[key] = true

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("%w: field %q: %v", ErrSchemaViolation, key, err)
		}
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	return nil
}

func (w wireAnalysis) validate() (models.AnalysisResult, error) {
	if w.Relevant == nil {
		return models.AnalysisResult{}, fmt.Errorf("%w: missing required field relevant", ErrSchemaViolation)
	}
	if w.Confidence == nil {
		return models.AnalysisResult{}, fmt.Errorf("%w: missing required field confidence", ErrSchemaViolation)
	}
	if w.Reasoning == nil || strings.TrimSpace(*w.Reasoning) == "" {
		return models.AnalysisResult{}, fmt.Errorf("%w: missing required field reasoning", ErrSchemaViolation)
	}

	confidence := models.Confidence(*w.Confidence)
	if !confidence.Valid() {
		return models.AnalysisResult{}, fmt.Errorf("%w: confidence %q not in enum", ErrSchemaViolation, *w.Confidence)
	}

	result := models.AnalysisResult{
		Relevant:          *w.Relevant,
		Confidence:        confidence,
		AffectedAspect:    w.AffectedAspect,
		Reasoning:         *w.Reasoning,
		RecommendedAction: w.RecommendedAction,
		EstimatedTimeline: w.EstimatedTimeline,
	}

	if w.Urgency != nil {
		urgency := models.Urgency(*w.Urgency)
		if !urgency.Valid() {
			return models.AnalysisResult{}, fmt.Errorf("%w: urgency %q not in enum", ErrSchemaViolation, *w.Urgency)
		}
		result.Urgency = &urgency
	}

	if w.ImpactType != nil {
		impact := models.ImpactType(*w.ImpactType)
		if !impact.Valid() {
			return models.AnalysisResult{}, fmt.Errorf("%w: impact_type %q not in enum", ErrSchemaViolation, *w.ImpactType)
		}
		result.ImpactType = &impact
	}

	return result, nil
}

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
