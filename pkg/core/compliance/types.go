// Package compliance implements the Schedule III compliance validation
// engine: twenty independently weighted rule groups evaluated against a
// single company data snapshot, aggregated into a scored report.
package compliance

// Severity classifies a detected deficiency.
// error = hard non-compliance, warning = recommended but not mandatory,
// info = observational/contextual.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is one detected disclosure deficiency. Issues are append-only
// output of a rule group and are never mutated after creation.
type Issue struct {
	Severity       Severity `json:"severity"`
	Category       string   `json:"category"`
	Issue          string   `json:"issue"`
	Recommendation string   `json:"recommendation"`
	NoteRef        string   `json:"noteRef,omitempty"`
}

// RuleGroupResult is the intermediate output of a single rule group.
type RuleGroupResult struct {
	ChecksAttempted int
	ChecksPassed    int
	Issues          []Issue
}

func (r *RuleGroupResult) pass()           { r.ChecksPassed++ }
func (r *RuleGroupResult) add(issue Issue) { r.Issues = append(r.Issues, issue) }

// OverallStatus is the compliance tier derived from the score.
type OverallStatus string

const (
	StatusCompliant    OverallStatus = "compliant"
	StatusPartial      OverallStatus = "partial"
	StatusNonCompliant OverallStatus = "non-compliant"
)

// SummaryStatus is the tri-state result of one top-line summary area.
type SummaryStatus string

const (
	SummaryPass    SummaryStatus = "pass"
	SummaryFail    SummaryStatus = "fail"
	SummaryWarning SummaryStatus = "warning"
)

// Summary gives the six top-line areas of the report. Each field is
// derived from snapshot presence and note-selection state, not from the
// compliance score.
type Summary struct {
	EntityInformation    SummaryStatus `json:"entityInformation"`
	MandatoryDisclosures SummaryStatus `json:"mandatoryDisclosures"`
	NoteSelections       SummaryStatus `json:"noteSelections"`
	FinancialStatements  SummaryStatus `json:"financialStatements"`
	AgingSchedules       SummaryStatus `json:"agingSchedules"`
	RatioAnalysis        SummaryStatus `json:"ratioAnalysis"`
}

// ComplianceReport is the engine's output. It is recomputed on every
// evaluation from current snapshot data and is never persisted.
type ComplianceReport struct {
	OverallStatus   OverallStatus `json:"overallStatus"`
	ComplianceScore int           `json:"complianceScore"` // 0-100
	TotalChecks     int           `json:"totalChecks"`
	PassedChecks    int           `json:"passedChecks"`
	Issues          []Issue       `json:"issues"`
	Summary         Summary       `json:"summary"`
}

// NoteComplianceResult is the output of the targeted single-note check.
type NoteComplianceResult struct {
	Exists            bool     `json:"exists"`
	Selected          bool     `json:"selected"`
	HasContent        bool     `json:"hasContent"`
	SystemRecommended bool     `json:"systemRecommended,omitempty"`
	Issues            []string `json:"issues"`
}

// FormatComplianceResult is the output of the statement format check.
type FormatComplianceResult struct {
	FormatCompliant bool     `json:"formatCompliant"`
	Issues          []string `json:"issues"`
	TotalChecks     int      `json:"totalChecks"`
	PassedChecks    int      `json:"passedChecks"`
}
