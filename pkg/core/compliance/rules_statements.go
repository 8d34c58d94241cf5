package compliance

import (
	"fmt"
	"math"
	"strings"

	"financials_automation/pkg/core/validate"
	"financials_automation/pkg/models"
)

// Rule group 2: Trial Balance Integrity (3 checks).
// At least one entry, Balance Sheet equality within tolerance, and the
// presence of previous-year comparatives.
func checkTrialBalanceIntegrity(s *models.CompanyDataSnapshot, cfg Config) RuleGroupResult {
	r := RuleGroupResult{ChecksAttempted: 3}

	if len(s.TrialBalance) == 0 {
		r.add(Issue{
			Severity:       SeverityError,
			Category:       "Financial Statements",
			Issue:          "No trial balance data available",
			Recommendation: "Upload trial balance data to generate financial statements",
		})
		return r
	}
	r.pass()

	var totalAssets, totalLiabilitiesEquity float64
	for _, e := range s.TrialBalance {
		if e.Type != "BS" {
			continue
		}
		if e.Class.Has(models.HeadAsset) {
			totalAssets += e.ClosingBalanceCY
		}
		if e.Class.Has(models.HeadLiabilityEquity) {
			totalLiabilitiesEquity += abs(e.ClosingBalanceCY)
		}
	}

	balance := validate.CheckBalanceEquation(totalAssets, totalLiabilitiesEquity, 0, cfg.BalanceTolerance)
	if balance.IsBalanced {
		r.pass()
	} else {
		r.add(Issue{
			Severity:       SeverityError,
			Category:       "Financial Statements",
			Issue:          fmt.Sprintf("Balance Sheet does not balance. Assets: %.2f, Liabilities+Equity: %.2f", totalAssets, totalLiabilitiesEquity),
			Recommendation: "Ensure Assets = Liabilities + Equity in trial balance data",
		})
	}

	hasPriorYear := false
	for _, e := range s.TrialBalance {
		if e.ClosingBalancePY != 0 {
			hasPriorYear = true
			break
		}
	}
	if hasPriorYear {
		r.pass()
	} else {
		r.add(Issue{
			Severity:       SeverityWarning,
			Category:       "Financial Statements",
			Issue:          "No previous year data found in trial balance",
			Recommendation: "Provide previous year figures for comparative analysis",
		})
	}

	return r
}

// Rule group 12: Revenue Recognition (2 checks).
// Revenue entries must exist; growth beyond the threshold needs an
// explanation. First-year operations (zero prior-year revenue) pass.
func checkRevenueRecognition(s *models.CompanyDataSnapshot, cfg Config) RuleGroupResult {
	r := RuleGroupResult{ChecksAttempted: 2}

	revenue := entriesWith(s.TrialBalance, models.HeadRevenue)
	if len(revenue) == 0 {
		r.add(Issue{
			Severity:       SeverityError,
			Category:       "Revenue Recognition",
			Issue:          "No revenue entries found in trial balance",
			Recommendation: "Ensure revenue accounts are properly classified in trial balance",
		})
		return r
	}
	r.pass()

	var totalCY, totalPY float64
	for _, e := range revenue {
		totalCY += abs(e.ClosingBalanceCY)
		totalPY += abs(e.ClosingBalancePY)
	}

	if totalPY == 0 {
		r.pass() // first year of operations
		return r
	}

	growth := validate.CalculateYoY(totalCY, totalPY)
	if math.Abs(growth) > cfg.RevenueGrowthPct {
		r.add(Issue{
			Severity:       SeverityWarning,
			Category:       "Revenue Recognition",
			Issue:          fmt.Sprintf("Revenue growth/decline of %.1f%% requires explanation", growth),
			Recommendation: "Provide detailed explanation for significant revenue changes",
			NoteRef:        NoteRevenue,
		})
	} else {
		r.pass()
	}

	return r
}

// Rule group 13: Borrowings and Interest Coverage (2 checks).
func checkBorrowings(s *models.CompanyDataSnapshot, cfg Config) RuleGroupResult {
	r := RuleGroupResult{ChecksAttempted: 2}

	borrowings := entriesWith(s.TrialBalance, models.HeadBorrowing)
	if len(borrowings) == 0 {
		r.ChecksPassed = 2
		return r
	}
	r.pass()

	totalBorrowings := sumAbsClosingCY(s.TrialBalance, models.HeadBorrowing)
	totalInterest := sumAbsClosingCY(s.TrialBalance, models.HeadInterest)

	if totalBorrowings > 0 && totalInterest == 0 {
		r.add(Issue{
			Severity:       SeverityWarning,
			Category:       "Borrowings",
			Issue:          fmt.Sprintf("Borrowings of ₹%.2f but no interest expense recorded", totalBorrowings),
			Recommendation: "Verify if interest expense should be recorded or if borrowings are interest-free",
			NoteRef:        NoteBorrowings,
		})
	} else {
		r.pass()
	}

	return r
}

// Rule group 14: Inventory Valuation and Movement (2 checks).
func checkInventory(s *models.CompanyDataSnapshot, cfg Config) RuleGroupResult {
	r := RuleGroupResult{ChecksAttempted: 2}

	inventory := entriesWith(s.TrialBalance, models.HeadInventory)
	if len(inventory) == 0 {
		r.ChecksPassed = 2
		return r
	}
	r.pass()

	totalInventory := sumAbsClosingCY(s.TrialBalance, models.HeadInventory)
	totalCOGS := sumAbsClosingCY(s.TrialBalance, models.HeadCOGS)

	if totalInventory > 0 && totalCOGS == 0 {
		r.add(Issue{
			Severity:       SeverityWarning,
			Category:       "Inventory",
			Issue:          fmt.Sprintf("Inventory of ₹%.2f but no cost of goods sold", totalInventory),
			Recommendation: "Verify inventory movement and cost allocation",
			NoteRef:        NoteInventories,
		})
	} else {
		r.pass()
	}

	return r
}

// Rule group 15: Depreciation Policy Consistency (2 checks).
// The P&L depreciation expense must reconcile with the PPE schedule.
func checkDepreciationConsistency(s *models.CompanyDataSnapshot, cfg Config) RuleGroupResult {
	r := RuleGroupResult{ChecksAttempted: 2}

	depreciation := entriesWith(s.TrialBalance, models.HeadDepreciation)
	if len(depreciation) == 0 || len(s.PPESchedule) == 0 {
		r.ChecksPassed = 2
		return r
	}
	r.pass()

	expense := sumAbsClosingCY(s.TrialBalance, models.HeadDepreciation)
	var scheduled float64
	for _, e := range s.PPESchedule {
		scheduled += e.DepreciationForYear
	}

	variance := validate.CheckRelativeVariance(expense, scheduled, cfg.DepreciationTolerancePct/100)
	if variance.WithinBand {
		r.pass()
	} else {
		r.add(Issue{
			Severity:       SeverityError,
			Category:       "Depreciation",
			Issue:          fmt.Sprintf("Depreciation expense (₹%.2f) doesn't match PPE schedule (₹%.2f)", expense, scheduled),
			Recommendation: "Reconcile depreciation expense with PPE schedule calculations",
			NoteRef:        NotePPE,
		})
	}

	return r
}

// Rule group 16: Cash Flow Statement Preparability (3 checks).
// Cash balances, a prior-year opening balance, and data for all three
// cash flow categories.
func checkCashFlowPreparability(s *models.CompanyDataSnapshot, cfg Config) RuleGroupResult {
	r := RuleGroupResult{ChecksAttempted: 3}

	cash := entriesWith(s.TrialBalance, models.HeadCash)
	if len(cash) == 0 {
		r.add(Issue{
			Severity:       SeverityError,
			Category:       "Cash Flow",
			Issue:          "No cash and bank accounts found",
			Recommendation: "Add cash and bank balances to trial balance",
		})
		return r
	}
	r.pass()

	var totalCashPY float64
	for _, e := range cash {
		totalCashPY += e.ClosingBalancePY
	}
	if totalCashPY == 0 {
		r.add(Issue{
			Severity:       SeverityWarning,
			Category:       "Cash Flow",
			Issue:          "No previous year cash balance for cash flow statement preparation",
			Recommendation: "Provide opening cash balance for cash flow statement",
		})
		return r
	}
	r.pass()

	hasOperating := false
	for _, e := range s.TrialBalance {
		if e.Type == "PL" {
			hasOperating = true
			break
		}
	}
	hasInvesting := len(entriesWith(s.TrialBalance, models.HeadDepreciation)) > 0 || len(s.PPESchedule) > 0
	hasFinancing := len(entriesWith(s.TrialBalance, models.HeadBorrowing)) > 0 ||
		len(entriesWith(s.TrialBalance, models.HeadShareCapital)) > 0 ||
		len(s.ShareCapital) > 0

	if hasOperating && hasInvesting && hasFinancing {
		r.pass()
	} else {
		var missing []string
		if !hasOperating {
			missing = append(missing, "operating activities")
		}
		if !hasInvesting {
			missing = append(missing, "investing activities")
		}
		if !hasFinancing {
			missing = append(missing, "financing activities")
		}
		r.add(Issue{
			Severity:       SeverityWarning,
			Category:       "Cash Flow",
			Issue:          fmt.Sprintf("Insufficient data for cash flow statement: missing %s", strings.Join(missing, ", ")),
			Recommendation: "Ensure all cash flow categories have supporting data",
			NoteRef:        NoteCashFlow,
		})
	}

	return r
}

// Rule group 18: Provisions and Contingencies Adequacy (2 checks).
// Contingent liabilities far in excess of recorded provisions may warrant
// recognition instead of disclosure-only treatment.
func checkProvisionsAdequacy(s *models.CompanyDataSnapshot, cfg Config) RuleGroupResult {
	r := RuleGroupResult{ChecksAttempted: 2}

	provisions := entriesWith(s.TrialBalance, models.HeadProvision)
	if len(provisions) == 0 && len(s.ContingentLiabilities) == 0 {
		r.ChecksPassed = 2
		return r
	}
	r.pass()

	totalProvisions := sumAbsClosingCY(s.TrialBalance, models.HeadProvision)
	var totalContingent float64
	for _, cl := range s.ContingentLiabilities {
		totalContingent += cl.AmountCY
	}

	if totalProvisions > 0 && totalContingent > 0 {
		if totalContingent/totalProvisions > cfg.ContingentProvisionRatio {
			r.add(Issue{
				Severity:       SeverityWarning,
				Category:       "Provisions",
				Issue:          fmt.Sprintf("Contingent liabilities (₹%.2f) are significantly higher than provisions (₹%.2f)", totalContingent, totalProvisions),
				Recommendation: "Review if some contingent liabilities should be recognized as provisions",
				NoteRef:        NoteContingent,
			})
		} else {
			r.pass()
		}
	} else {
		r.pass() // only one side exists
	}

	return r
}
