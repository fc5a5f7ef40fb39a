package crm

import (
	"fmt"
	"strings"
)

// SourceSystem identifies this deployment to the downstream CRM verifier.
const SourceSystem = "SENTRY-ALPHA-1"

// ProspectRecord holds the qualifying details gathered during conversation.
// ContactName, CompanyName and Bottleneck must be non-empty before submission.
type ProspectRecord struct {
	ContactName           string   `json:"contact_name"`
	CompanyName           string   `json:"company_name"`
	Bottleneck            string   `json:"bottleneck"`
	Industry              string   `json:"industry,omitempty"`
	AnnualRevenueEstimate int64    `json:"annual_revenue_estimate,omitempty"`
	EmployeeCount         string   `json:"employee_count,omitempty"`
	JobTitle              string   `json:"job_title,omitempty"`
	Email                 string   `json:"email,omitempty"`
	Phone                 string   `json:"phone,omitempty"`
	TechStack             []string `json:"tech_stack,omitempty"`
}

// Validate reports which required fields are blank, if any.
func (p ProspectRecord) Validate() error {
	var missing []string
	if strings.TrimSpace(p.ContactName) == "" {
		missing = append(missing, "contact_name")
	}
	if strings.TrimSpace(p.CompanyName) == "" {
		missing = append(missing, "company_name")
	}
	if strings.TrimSpace(p.Bottleneck) == "" {
		missing = append(missing, "bottleneck")
	}
	if len(missing) > 0 {
		return fmt.Errorf("prospect record incomplete: missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// AnalysisRecord is the agent's qualitative assessment accompanying a prospect.
type AnalysisRecord struct {
	Notes             string   `json:"notes"`
	RiskScore         *int     `json:"risk_score,omitempty"`
	GrowthIndex       *float64 `json:"growth_index,omitempty"`
	CurrentPainPoints []string `json:"current_pain_points,omitempty"`
	TechStackMatch    []string `json:"tech_stack_match,omitempty"`
}

// EventMetadata carries submission identity and the detached signature.
type EventMetadata struct {
	SourceSystem string `json:"source_system"`
	EventID      string `json:"event_id"`
	TimestampUTC string `json:"timestamp_utc"`
	SecurityHash string `json:"security_hash"`
}

// Envelope is the signed wire record POSTed to the CRM. The security hash in
// EventMetadata is computed over the whole envelope with that field held at
// the placeholder value (see Signer).
type Envelope struct {
	EventMetadata  EventMetadata  `json:"event_metadata"`
	ProspectData   ProspectRecord `json:"prospect_data"`
	SentryAnalysis AnalysisRecord `json:"sentry_analysis"`
}
