package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/xeipuuv/gojsonschema"

	"sei-agent-engine/internal/crm"
)

// ToolKind is the closed set of tools the orchestrator exposes to the model.
// Adding a tool means adding a constant here and a case to every switch over
// ToolKind.
type ToolKind string

const (
	// ToolFinalizeDiscovery packages the gathered prospect details and hands
	// them to the lead gateway.
	ToolFinalizeDiscovery ToolKind = "finalize_discovery_submission"
)

// ParseToolKind maps a model-supplied function name onto the closed enum.
func ParseToolKind(name string) (ToolKind, bool) {
	switch ToolKind(name) {
	case ToolFinalizeDiscovery:
		return ToolFinalizeDiscovery, true
	default:
		return "", false
	}
}

// finalizeArgsSchema is the statically declared parameter contract for the
// finalize tool. The same document is sent to the model as the function
// declaration and used to validate whatever the model sends back.
const finalizeArgsSchema = `{
	"type": "object",
	"properties": {
		"prospect": {
			"type": "object",
			"properties": {
				"contact_name": {"type": "string", "description": "Full name of the prospect contact"},
				"company_name": {"type": "string", "description": "Company the prospect represents"},
				"bottleneck": {"type": "string", "description": "The operational bottleneck they described"},
				"industry": {"type": "string"},
				"annual_revenue_estimate": {"type": "integer"},
				"employee_count": {"type": "string"},
				"job_title": {"type": "string"},
				"email": {"type": "string"},
				"phone": {"type": "string"},
				"tech_stack": {"type": "array", "items": {"type": "string"}}
			},
			"required": ["contact_name", "company_name", "bottleneck"]
		},
		"analysis": {
			"type": "object",
			"properties": {
				"notes": {"type": "string", "description": "Qualitative assessment of the opportunity"},
				"risk_score": {"type": "integer", "minimum": 0, "maximum": 100},
				"growth_index": {"type": "number", "minimum": 0, "maximum": 1},
				"current_pain_points": {"type": "array", "items": {"type": "string"}},
				"tech_stack_match": {"type": "array", "items": {"type": "string"}}
			},
			"required": ["notes"]
		}
	},
	"required": ["prospect", "analysis"]
}`

// finalizeToolDefinition builds the OpenAI tool declaration. The description
// comes from the persona spec so prompt wording stays out of code.
func finalizeToolDefinition(description string) openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        string(ToolFinalizeDiscovery),
			Description: description,
			Parameters:  json.RawMessage(finalizeArgsSchema),
		},
	}
}

type finalizeArgs struct {
	Prospect crm.ProspectRecord `json:"prospect"`
	Analysis crm.AnalysisRecord `json:"analysis"`
}

// parseFinalizeArgs validates the raw tool-call arguments against the
// declared schema and decodes them. Schema violations come back as one
// error listing every failed constraint.
func parseFinalizeArgs(raw string) (crm.ProspectRecord, crm.AnalysisRecord, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(finalizeArgsSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return crm.ProspectRecord{}, crm.AnalysisRecord{}, fmt.Errorf("tool arguments are not valid JSON: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return crm.ProspectRecord{}, crm.AnalysisRecord{}, fmt.Errorf("tool arguments violate schema: %s", strings.Join(details, "; "))
	}

	var args finalizeArgs
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return crm.ProspectRecord{}, crm.AnalysisRecord{}, fmt.Errorf("decode tool arguments: %w", err)
	}
	return args.Prospect, args.Analysis, nil
}
