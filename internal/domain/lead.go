package domain

// Lead quality tiers as produced by the extraction prompt.
const (
	LeadQualityGood = "good"
	LeadQualityOk   = "ok"
	LeadQualitySpam = "spam"
)

// LeadAnalysis is the structured summary extracted from a conversation's user
// messages. The JSON keys are fixed by the extraction prompt's schema. A
// re-analysis overwrites the whole object, never merges.
//
// Required fields (customerName, customerEmail, customerProblem, leadQuality)
// are not re-validated after parsing; a parsed object missing them is stored
// as-is.
type LeadAnalysis struct {
	CustomerName         string `json:"customerName"`
	CustomerEmail        string `json:"customerEmail"`
	CustomerPhone        string `json:"customerPhone,omitempty"`
	CustomerIndustry     string `json:"customerIndustry,omitempty"`
	CustomerProblem      string `json:"customerProblem"`
	CustomerAvailability string `json:"customerAvailability,omitempty"`
	CustomerConsultation bool   `json:"customerConsultation,omitempty"`
	SpecialNotes         string `json:"specialNotes,omitempty"`
	LeadQuality          string `json:"leadQuality"`
}
