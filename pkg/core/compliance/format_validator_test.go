package compliance

import (
	"errors"
	"strings"
	"testing"

	"financials_automation/pkg/models"
)

func TestValidateStatementFormat(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("UnknownType", func(t *testing.T) {
		result, err := ValidateStatementFormat(compliantSnapshot(), cfg, "trial_balance")
		if result != nil {
			t.Error("Expected no result for unknown statement type")
		}
		var unknownErr *ErrUnknownStatementType
		if !errors.As(err, &unknownErr) {
			t.Errorf("Expected ErrUnknownStatementType, got %v", err)
		}
	})

	t.Run("BalanceSheetCompliant", func(t *testing.T) {
		result, err := ValidateStatementFormat(compliantSnapshot(), cfg, StatementBalanceSheet)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !result.FormatCompliant {
			t.Errorf("Expected compliant balance sheet, issues: %v", result.Issues)
		}
		if result.TotalChecks != 7 || result.PassedChecks != 7 {
			t.Errorf("Expected 7/7, got %d/%d", result.PassedChecks, result.TotalChecks)
		}
	})

	t.Run("BalanceSheetMissingHeads", func(t *testing.T) {
		s := &models.CompanyDataSnapshot{
			TrialBalance: []models.TrialBalanceEntry{
				{LedgerName: "Cash in hand", Type: "BS", MajorHead: "Cash and Cash Equivalents", ClosingBalanceCY: 100},
				{LedgerName: "Equity shares", Type: "BS", MajorHead: "Equity Share Capital", ClosingBalanceCY: -100},
			},
		}
		result, err := ValidateStatementFormat(s, cfg, StatementBalanceSheet)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if result.FormatCompliant {
			t.Error("Expected non-compliant balance sheet")
		}
		// Four of the six required heads are missing; the equation holds.
		if len(result.Issues) != 4 {
			t.Errorf("Expected 4 issues, got %d: %v", len(result.Issues), result.Issues)
		}
		if result.PassedChecks != 3 {
			t.Errorf("Expected 3/7, got %d/%d", result.PassedChecks, result.TotalChecks)
		}
	})

	t.Run("BalanceSheetImbalance", func(t *testing.T) {
		s := compliantSnapshot()
		s.TrialBalance[0].ClosingBalanceCY += 50
		result, err := ValidateStatementFormat(s, cfg, StatementBalanceSheet)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if result.FormatCompliant {
			t.Error("Expected non-compliant on imbalance")
		}
		found := false
		for _, issue := range result.Issues {
			if strings.Contains(issue, "does not balance") {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected balance issue, got %v", result.Issues)
		}
	})

	t.Run("ProfitLossMissingHeadsStillCompliant", func(t *testing.T) {
		s := &models.CompanyDataSnapshot{
			TrialBalance: []models.TrialBalanceEntry{
				{LedgerName: "Sales", Type: "PL", MajorHead: "Revenue from Operations", ClosingBalanceCY: -1000},
			},
		}
		result, err := ValidateStatementFormat(s, cfg, StatementProfitLoss)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		// P&L heads are recommended only.
		if !result.FormatCompliant {
			t.Error("Expected P&L to stay format-compliant with advisory issues")
		}
		if len(result.Issues) != 4 {
			t.Errorf("Expected 4 advisory issues, got %d: %v", len(result.Issues), result.Issues)
		}
	})

	t.Run("CashFlowRequiresDepreciation", func(t *testing.T) {
		s := &models.CompanyDataSnapshot{
			TrialBalance: []models.TrialBalanceEntry{
				{LedgerName: "Sales", Type: "PL", MajorHead: "Revenue from Operations", ClosingBalanceCY: -1000},
			},
		}
		result, err := ValidateStatementFormat(s, cfg, StatementCashFlow)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if result.FormatCompliant {
			t.Error("Expected non-compliant cash flow without depreciation")
		}

		result, err = ValidateStatementFormat(compliantSnapshot(), cfg, StatementCashFlow)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !result.FormatCompliant || result.PassedChecks != 1 {
			t.Errorf("Expected 1/1 compliant cash flow, got %+v", result)
		}
	})
}
