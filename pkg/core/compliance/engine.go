package compliance

import (
	"context"
	"fmt"
	"math"

	"financials_automation/pkg/models"
)

// SnapshotSource retrieves the point-in-time data set for a company.
// A failed fetch aborts the whole evaluation; the engine never produces
// a partial report.
type SnapshotSource interface {
	Fetch(ctx context.Context, companyID string) (*models.CompanyDataSnapshot, error)
}

// ruleGroup pairs a fixed execution position with its check function.
// Groups run in this order and their issues are concatenated in this
// order; the report is never re-sorted.
type ruleGroup struct {
	name string
	run  func(*models.CompanyDataSnapshot, Config) RuleGroupResult
}

var ruleGroups = []ruleGroup{
	{"entity_information", checkEntityInformation},
	{"trial_balance_integrity", checkTrialBalanceIntegrity},
	{"note_selections", checkNoteSelections},
	{"aging_schedules", checkAgingSchedules},
	{"ratio_variances", checkRatioVariances},
	{"related_parties", checkRelatedParties},
	{"contingent_liabilities", checkContingentLiabilities},
	{"accounting_policies", checkAccountingPolicies},
	{"share_capital", checkShareCapital},
	{"tax_compliance", checkTaxCompliance},
	{"cwip_aging", checkCWIPAging},
	{"revenue_recognition", checkRevenueRecognition},
	{"borrowings", checkBorrowings},
	{"inventory", checkInventory},
	{"depreciation_consistency", checkDepreciationConsistency},
	{"cash_flow_preparability", checkCashFlowPreparability},
	{"segment_reporting", checkSegmentReporting},
	{"provisions_adequacy", checkProvisionsAdequacy},
	{"foreign_currency", checkForeignCurrency},
	{"earnings_per_share", checkEarningsPerShare},
}

// Evaluator runs the full Schedule III compliance evaluation for a
// company. It is safe for concurrent use; all state lives in the
// per-request snapshot.
type Evaluator struct {
	source SnapshotSource
	cfg    Config
}

// NewEvaluator creates an evaluator over a snapshot source.
func NewEvaluator(source SnapshotSource, cfg Config) *Evaluator {
	return &Evaluator{source: source, cfg: cfg}
}

// Config returns the active rule configuration.
func (e *Evaluator) Config() Config {
	return e.cfg
}

// Evaluate fetches the company snapshot once and evaluates every rule
// group against it.
func (e *Evaluator) Evaluate(ctx context.Context, companyID string) (*ComplianceReport, error) {
	snapshot, err := e.source.Fetch(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("compliance evaluation aborted: %w", err)
	}
	return EvaluateSnapshot(snapshot, e.cfg), nil
}

// EvaluateSnapshot runs all rule groups against an already-fetched
// snapshot. Deterministic: the same snapshot always produces an
// identical report.
func EvaluateSnapshot(snapshot *models.CompanyDataSnapshot, cfg Config) *ComplianceReport {
	ClassifyTrialBalance(snapshot)

	report := &ComplianceReport{}
	for _, group := range ruleGroups {
		result := group.run(snapshot, cfg)
		report.TotalChecks += result.ChecksAttempted
		report.PassedChecks += result.ChecksPassed
		report.Issues = append(report.Issues, result.Issues...)
	}

	if report.TotalChecks > 0 {
		report.ComplianceScore = int(math.Round(float64(report.PassedChecks) / float64(report.TotalChecks) * 100))
	}

	switch {
	case report.ComplianceScore >= 90:
		report.OverallStatus = StatusCompliant
	case report.ComplianceScore >= 60:
		report.OverallStatus = StatusPartial
	default:
		report.OverallStatus = StatusNonCompliant
	}

	report.Summary = buildSummary(snapshot, cfg)
	return report
}

// buildSummary derives the six top-line areas directly from snapshot
// presence and note-selection state, independent of the score.
func buildSummary(s *models.CompanyDataSnapshot, cfg Config) Summary {
	summary := Summary{
		EntityInformation:    SummaryFail,
		MandatoryDisclosures: SummaryFail,
		NoteSelections:       SummaryFail,
		FinancialStatements:  SummaryFail,
		AgingSchedules:       SummaryWarning,
		RatioAnalysis:        SummaryWarning,
	}

	if cc := s.Entity; cc != nil && cc.EntityName != "" && cc.Address != "" &&
		cc.FinancialYearStart != nil && cc.FinancialYearEnd != nil {
		summary.EntityInformation = SummaryPass
	}
	if s.NoteSelected(NoteCorporateInfo) && s.NoteSelected(NoteAccountingPolicies) {
		summary.MandatoryDisclosures = SummaryPass
	}
	if len(s.NoteSelections) > 0 {
		summary.NoteSelections = SummaryPass
	}
	if len(s.TrialBalance) > 0 {
		summary.FinancialStatements = SummaryPass
	}
	if len(s.Receivables) > 0 || len(s.Payables) > 0 {
		summary.AgingSchedules = SummaryPass
	}
	if len(s.Ratios) > 0 {
		summary.RatioAnalysis = SummaryPass
	}

	return summary
}
