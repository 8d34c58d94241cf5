package compliance

import (
	"fmt"
	"strings"

	"financials_automation/pkg/core/validate"
	"financials_automation/pkg/models"
)

// Statement types accepted by ValidateStatementFormat.
const (
	StatementBalanceSheet = "balance_sheet"
	StatementProfitLoss   = "profit_loss"
	StatementCashFlow     = "cash_flow"
)

// Required major heads per statement type. Balance sheet heads are hard
// requirements; P&L heads produce warnings only.
var requiredBalanceSheetHeads = []string{
	"Property, Plant and Equipment",
	"Intangible Assets",
	"Trade Receivables",
	"Cash and Cash Equivalents",
	"Equity Share Capital",
	"Trade Payables",
}

var requiredProfitLossHeads = []string{
	"Revenue from Operations",
	"Other Income",
	"Employee Benefits Expense",
	"Finance Costs",
	"Depreciation and Amortization",
}

// ErrUnknownStatementType is returned before any evaluation when the
// statement type is not one of the accepted values.
type ErrUnknownStatementType struct {
	StatementType string
}

func (e *ErrUnknownStatementType) Error() string {
	return fmt.Sprintf("unknown statement type %q", e.StatementType)
}

// ValidateStatementFormat checks that the trial balance carries the
// major-head structure required to render a statement in Schedule III
// format.
func ValidateStatementFormat(s *models.CompanyDataSnapshot, cfg Config, statementType string) (*FormatComplianceResult, error) {
	switch statementType {
	case StatementBalanceSheet, StatementProfitLoss, StatementCashFlow:
	default:
		return nil, &ErrUnknownStatementType{StatementType: statementType}
	}

	ClassifyTrialBalance(s)

	result := &FormatComplianceResult{
		FormatCompliant: true,
		Issues:          []string{},
	}

	switch statementType {
	case StatementBalanceSheet:
		result.TotalChecks = len(requiredBalanceSheetHeads) + 1

		bsEntries := make([]models.TrialBalanceEntry, 0, len(s.TrialBalance))
		for _, e := range s.TrialBalance {
			if e.Type == "BS" {
				bsEntries = append(bsEntries, e)
			}
		}

		for _, head := range requiredBalanceSheetHeads {
			found := false
			for _, e := range bsEntries {
				if strings.Contains(e.MajorHead, head) {
					found = true
					break
				}
			}
			if !found {
				result.Issues = append(result.Issues, fmt.Sprintf("Missing required major head: %s", head))
				result.FormatCompliant = false
			}
		}

		var totalAssets, totalLiabilitiesEquity float64
		for _, e := range bsEntries {
			if e.Class.Has(models.HeadAsset) {
				totalAssets += e.ClosingBalanceCY
			}
			if e.Class.Has(models.HeadLiabilityEquity) {
				totalLiabilitiesEquity += abs(e.ClosingBalanceCY)
			}
		}
		balance := validate.CheckBalanceEquation(totalAssets, totalLiabilitiesEquity, 0, cfg.BalanceTolerance)
		if !balance.IsBalanced {
			result.Issues = append(result.Issues, "Balance sheet does not balance - Assets != Equity + Liabilities")
			result.FormatCompliant = false
		}

	case StatementProfitLoss:
		result.TotalChecks = len(requiredProfitLossHeads)

		for _, head := range requiredProfitLossHeads {
			found := false
			for _, e := range s.TrialBalance {
				if e.Type == "PL" && strings.Contains(e.MajorHead, head) {
					found = true
					break
				}
			}
			if !found {
				// Recommended heads only; the statement format is still
				// considered compliant.
				result.Issues = append(result.Issues, fmt.Sprintf("Missing recommended major head: %s", head))
			}
		}

	case StatementCashFlow:
		result.TotalChecks = 1

		hasDepreciation := len(entriesWith(s.TrialBalance, models.HeadDepreciation)) > 0
		if !hasDepreciation {
			result.Issues = append(result.Issues, "No depreciation data found - required for cash flow statement")
			result.FormatCompliant = false
		}
	}

	result.PassedChecks = result.TotalChecks - len(result.Issues)
	if result.PassedChecks < 0 {
		result.PassedChecks = 0
	}

	return result, nil
}
