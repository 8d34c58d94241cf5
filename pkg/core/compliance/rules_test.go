package compliance

import (
	"strings"
	"testing"
	"time"

	"financials_automation/pkg/models"
)

func TestCheckEntityInformation(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("NoCommonControl", func(t *testing.T) {
		r := checkEntityInformation(&models.CompanyDataSnapshot{}, cfg)
		if r.ChecksAttempted != 5 || r.ChecksPassed != 0 {
			t.Errorf("Expected 0/5, got %d/%d", r.ChecksPassed, r.ChecksAttempted)
		}
		if len(r.Issues) != 1 || r.Issues[0].Severity != SeverityError {
			t.Errorf("Expected single error issue, got %v", r.Issues)
		}
	})

	t.Run("Complete", func(t *testing.T) {
		s := compliantSnapshot()
		r := checkEntityInformation(s, cfg)
		if r.ChecksPassed != 5 {
			t.Errorf("Expected 5/5, got %d/5: %v", r.ChecksPassed, r.Issues)
		}
	})

	t.Run("MissingCIN", func(t *testing.T) {
		s := compliantSnapshot()
		s.Entity.CINNumber = ""
		r := checkEntityInformation(s, cfg)
		if r.ChecksPassed != 4 {
			t.Errorf("Expected 4/5, got %d/5", r.ChecksPassed)
		}
		found := false
		for _, issue := range r.Issues {
			if issue.Severity == SeverityWarning && strings.Contains(issue.Issue, "CIN") {
				found = true
			}
		}
		if !found {
			t.Error("Expected CIN warning")
		}
	})

	t.Run("ShortFinancialYear", func(t *testing.T) {
		s := compliantSnapshot()
		end := time.Date(2024, time.September, 30, 0, 0, 0, 0, time.UTC)
		s.Entity.FinancialYearEnd = &end
		r := checkEntityInformation(s, cfg)
		// The date check itself passes; the period length is a warning.
		if r.ChecksPassed != 5 {
			t.Errorf("Expected 5/5, got %d/5", r.ChecksPassed)
		}
		found := false
		for _, issue := range r.Issues {
			if strings.Contains(issue.Issue, "12 months") {
				found = true
			}
		}
		if !found {
			t.Error("Expected 12-month period warning")
		}
	})
}

func TestCheckTrialBalanceIntegrity(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("Empty", func(t *testing.T) {
		r := checkTrialBalanceIntegrity(&models.CompanyDataSnapshot{}, cfg)
		if r.ChecksAttempted != 3 || r.ChecksPassed != 0 {
			t.Errorf("Expected 0/3, got %d/%d", r.ChecksPassed, r.ChecksAttempted)
		}
	})

	t.Run("Balanced", func(t *testing.T) {
		s := compliantSnapshot()
		ClassifyTrialBalance(s)
		r := checkTrialBalanceIntegrity(s, cfg)
		if r.ChecksPassed != 3 {
			t.Errorf("Expected 3/3, got %d/3: %v", r.ChecksPassed, r.Issues)
		}
	})

	t.Run("ImbalanceWithinTolerance", func(t *testing.T) {
		s := compliantSnapshot()
		// Shift one asset by exactly the tolerance.
		s.TrialBalance[0].ClosingBalanceCY += cfg.BalanceTolerance
		ClassifyTrialBalance(s)
		r := checkTrialBalanceIntegrity(s, cfg)
		if r.ChecksPassed != 3 {
			t.Errorf("Expected difference of %v to stay balanced, got %d/3", cfg.BalanceTolerance, r.ChecksPassed)
		}
	})

	t.Run("ImbalanceBeyondTolerance", func(t *testing.T) {
		s := compliantSnapshot()
		s.TrialBalance[0].ClosingBalanceCY += 5
		ClassifyTrialBalance(s)
		r := checkTrialBalanceIntegrity(s, cfg)
		if r.ChecksPassed != 2 {
			t.Errorf("Expected 2/3, got %d/3", r.ChecksPassed)
		}
		errorCount := 0
		for _, issue := range r.Issues {
			if issue.Severity != SeverityError {
				continue
			}
			errorCount++
			// The error must cite both totals.
			if !strings.Contains(issue.Issue, "1055.00") || !strings.Contains(issue.Issue, "1050.00") {
				t.Errorf("Expected both totals in issue text, got %q", issue.Issue)
			}
		}
		if errorCount != 1 {
			t.Errorf("Expected exactly one error, got %d", errorCount)
		}
	})

	t.Run("NoPriorYear", func(t *testing.T) {
		s := compliantSnapshot()
		for i := range s.TrialBalance {
			s.TrialBalance[i].ClosingBalancePY = 0
		}
		ClassifyTrialBalance(s)
		r := checkTrialBalanceIntegrity(s, cfg)
		if r.ChecksPassed != 2 {
			t.Errorf("Expected 2/3, got %d/3", r.ChecksPassed)
		}
	})
}

func TestCheckNoteSelections(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("AllMandatorySelected", func(t *testing.T) {
		r := checkNoteSelections(compliantSnapshot(), cfg)
		if r.ChecksPassed != 2 {
			t.Errorf("Expected 2/2, got %d/2: %v", r.ChecksPassed, r.Issues)
		}
	})

	t.Run("MissingMandatoryNote", func(t *testing.T) {
		s := compliantSnapshot()
		for i := range s.NoteSelections {
			if s.NoteSelections[i].NoteRef == NoteRatioVariance {
				s.NoteSelections[i].FinalSelected = false
			}
		}
		r := checkNoteSelections(s, cfg)
		if r.ChecksPassed != 1 {
			t.Errorf("Expected 1/2, got %d/2", r.ChecksPassed)
		}
		found := false
		for _, issue := range r.Issues {
			if issue.Severity == SeverityError && issue.NoteRef == NoteRatioVariance {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected error for unselected mandatory note %s", NoteRatioVariance)
		}
	})

	t.Run("RecommendedNoteWithDataNotSelected", func(t *testing.T) {
		s := compliantSnapshot()
		for i := range s.NoteSelections {
			if s.NoteSelections[i].NoteRef == NoteRelatedParties {
				s.NoteSelections[i].FinalSelected = false
			}
		}
		r := checkNoteSelections(s, cfg)
		found := false
		for _, issue := range r.Issues {
			if issue.Severity == SeverityWarning && issue.NoteRef == NoteRelatedParties {
				found = true
			}
		}
		if !found {
			t.Error("Expected warning for recommended note with backing data")
		}
	})
}

func TestCheckRatioVariances(t *testing.T) {
	cfg := DefaultConfig()

	ratio := func(variance float64, explanation string) models.RatioAnalysis {
		return models.RatioAnalysis{RatioName: "Current Ratio", VariancePercentage: variance, Explanation: explanation}
	}
	longExplanation := "Inventory build-up ahead of the festive season increased current assets substantially."

	tests := []struct {
		name           string
		ratios         []models.RatioAnalysis
		expectedPassed int
		expectSeverity Severity
	}{
		{"NoRatios", nil, 3, SeverityInfo},
		{"BelowThreshold", []models.RatioAnalysis{ratio(20, "")}, 3, ""},
		{"MissingExplanation", []models.RatioAnalysis{ratio(40, "")}, 2, SeverityError},
		{"ShortExplanation", []models.RatioAnalysis{ratio(40, "Seasonal demand spike.")}, 2, SeverityWarning},
		{"AdequateExplanation", []models.RatioAnalysis{ratio(40, longExplanation)}, 3, ""},
		{"NegativeVarianceCounts", []models.RatioAnalysis{ratio(-40, "")}, 2, SeverityError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := &models.CompanyDataSnapshot{Ratios: tc.ratios}
			r := checkRatioVariances(s, cfg)
			if r.ChecksAttempted != 3 {
				t.Errorf("Expected 3 checks, got %d", r.ChecksAttempted)
			}
			if r.ChecksPassed != tc.expectedPassed {
				t.Errorf("Expected %d passed, got %d", tc.expectedPassed, r.ChecksPassed)
			}
			if tc.expectSeverity != "" {
				found := false
				for _, issue := range r.Issues {
					if issue.Severity == tc.expectSeverity {
						found = true
					}
				}
				if !found {
					t.Errorf("Expected %s issue, got %v", tc.expectSeverity, r.Issues)
				}
			}
		})
	}
}

func TestCheckAgingSchedules(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("NoDataNotPenalized", func(t *testing.T) {
		r := checkAgingSchedules(&models.CompanyDataSnapshot{}, cfg)
		if r.ChecksAttempted != 4 || r.ChecksPassed != 4 {
			t.Errorf("Expected 4/4 with no data, got %d/%d", r.ChecksPassed, r.ChecksAttempted)
		}
		for _, issue := range r.Issues {
			if issue.Severity != SeverityInfo {
				t.Errorf("Expected only info issues, got %s: %s", issue.Severity, issue.Issue)
			}
		}
	})

	t.Run("InvalidBucket", func(t *testing.T) {
		s := &models.CompanyDataSnapshot{
			Receivables: []models.ReceivableLedgerEntry{
				{PartyName: "Alpha", OutstandingAmount: 100, AgingBucket: "0-6 months"},
				{PartyName: "Beta", OutstandingAmount: 50, AgingBucket: "< 182 Days"},
			},
		}
		r := checkAgingSchedules(s, cfg)
		found := false
		for _, issue := range r.Issues {
			if issue.Severity == SeverityError && strings.Contains(issue.Issue, "1 receivable entries") {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected invalid bucket error, got %v", r.Issues)
		}
	})

	t.Run("DisputedConcentration", func(t *testing.T) {
		s := &models.CompanyDataSnapshot{
			Receivables: []models.ReceivableLedgerEntry{
				{PartyName: "Alpha", OutstandingAmount: 90, AgingBucket: "< 182 Days"},
				{PartyName: "Beta", OutstandingAmount: 10, Disputed: true, AgingBucket: "> 3 Years"},
			},
		}
		r := checkAgingSchedules(s, cfg)
		// 10% disputed is above the 5% disclosure threshold.
		found := false
		for _, issue := range r.Issues {
			if issue.Severity == SeverityInfo && strings.Contains(issue.Issue, "disputed") {
				found = true
			}
		}
		if !found {
			t.Error("Expected disputed receivables disclosure")
		}
		if r.ChecksPassed != 4 {
			t.Errorf("Concentration findings must not fail checks, got %d/4", r.ChecksPassed)
		}
	})
}

func TestEmptyCollectionsNotPenalized(t *testing.T) {
	cfg := DefaultConfig()
	empty := &models.CompanyDataSnapshot{}

	groups := []struct {
		name string
		run  func(*models.CompanyDataSnapshot, Config) RuleGroupResult
	}{
		{"related_parties", checkRelatedParties},
		{"contingent_liabilities", checkContingentLiabilities},
		{"share_capital", checkShareCapital},
		{"cwip_aging", checkCWIPAging},
		{"borrowings", checkBorrowings},
		{"inventory", checkInventory},
		{"depreciation_consistency", checkDepreciationConsistency},
		{"provisions_adequacy", checkProvisionsAdequacy},
		{"earnings_per_share", checkEarningsPerShare},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			r := g.run(empty, cfg)
			if r.ChecksPassed != r.ChecksAttempted {
				t.Errorf("Expected %d/%d for absent data, got %d passed",
					r.ChecksAttempted, r.ChecksAttempted, r.ChecksPassed)
			}
			for _, issue := range r.Issues {
				if issue.Severity == SeverityError || issue.Severity == SeverityWarning {
					t.Errorf("Absent data must not raise %s: %s", issue.Severity, issue.Issue)
				}
			}
		})
	}
}

func TestCheckDepreciationConsistency(t *testing.T) {
	cfg := DefaultConfig()

	build := func(expense, scheduled float64) *models.CompanyDataSnapshot {
		s := &models.CompanyDataSnapshot{
			TrialBalance: []models.TrialBalanceEntry{
				{LedgerName: "Depreciation charge", Type: "PL", MajorHead: "Depreciation and Amortization", ClosingBalanceCY: expense},
			},
			PPESchedule: []models.PPEScheduleEntry{
				{AssetClass: "Buildings", DepreciationForYear: scheduled},
			},
		}
		ClassifyTrialBalance(s)
		return s
	}

	t.Run("Reconciled", func(t *testing.T) {
		r := checkDepreciationConsistency(build(100, 102), cfg)
		if r.ChecksPassed != 2 {
			t.Errorf("Expected 2/2 for 2%% variance, got %d/2", r.ChecksPassed)
		}
	})

	t.Run("Mismatch", func(t *testing.T) {
		r := checkDepreciationConsistency(build(100, 120), cfg)
		if r.ChecksPassed != 1 {
			t.Errorf("Expected 1/2 for 20%% variance, got %d/2", r.ChecksPassed)
		}
		if len(r.Issues) != 1 || r.Issues[0].Severity != SeverityError {
			t.Errorf("Expected reconciliation error, got %v", r.Issues)
		}
		if r.Issues[0].NoteRef != NotePPE {
			t.Errorf("Expected note ref %s, got %s", NotePPE, r.Issues[0].NoteRef)
		}
	})
}

func TestCheckRevenueRecognition(t *testing.T) {
	cfg := DefaultConfig()

	build := func(cy, py float64) *models.CompanyDataSnapshot {
		s := &models.CompanyDataSnapshot{
			TrialBalance: []models.TrialBalanceEntry{
				{LedgerName: "Sales", Type: "PL", MajorHead: "Revenue from Operations", ClosingBalanceCY: cy, ClosingBalancePY: py},
			},
		}
		ClassifyTrialBalance(s)
		return s
	}

	t.Run("NoRevenue", func(t *testing.T) {
		r := checkRevenueRecognition(&models.CompanyDataSnapshot{}, cfg)
		if r.ChecksPassed != 0 || len(r.Issues) != 1 || r.Issues[0].Severity != SeverityError {
			t.Errorf("Expected hard failure with one error, got %d passed, %v", r.ChecksPassed, r.Issues)
		}
	})

	t.Run("FirstYearOperations", func(t *testing.T) {
		r := checkRevenueRecognition(build(-1000, 0), cfg)
		if r.ChecksPassed != 2 {
			t.Errorf("Expected zero prior-year revenue to pass, got %d/2", r.ChecksPassed)
		}
	})

	t.Run("GrowthAboveThreshold", func(t *testing.T) {
		r := checkRevenueRecognition(build(-1600, -1000), cfg)
		if r.ChecksPassed != 1 {
			t.Errorf("Expected 1/2 for 60%% growth, got %d/2", r.ChecksPassed)
		}
		if len(r.Issues) != 1 || r.Issues[0].NoteRef != NoteRevenue {
			t.Errorf("Expected growth warning on note %s, got %v", NoteRevenue, r.Issues)
		}
	})

	t.Run("DeclineAboveThreshold", func(t *testing.T) {
		r := checkRevenueRecognition(build(-400, -1000), cfg)
		if r.ChecksPassed != 1 {
			t.Errorf("Expected 1/2 for 60%% decline, got %d/2", r.ChecksPassed)
		}
	})
}

func TestCheckCashFlowPreparability(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("NoCash", func(t *testing.T) {
		r := checkCashFlowPreparability(&models.CompanyDataSnapshot{}, cfg)
		if r.ChecksPassed != 0 {
			t.Errorf("Expected 0/3 without cash accounts, got %d/3", r.ChecksPassed)
		}
	})

	t.Run("NoOpeningBalance", func(t *testing.T) {
		s := &models.CompanyDataSnapshot{
			TrialBalance: []models.TrialBalanceEntry{
				{LedgerName: "Cash in hand", Type: "BS", MajorHead: "Cash and Cash Equivalents", ClosingBalanceCY: 100},
			},
		}
		ClassifyTrialBalance(s)
		r := checkCashFlowPreparability(s, cfg)
		if r.ChecksPassed != 1 {
			t.Errorf("Expected 1/3 without opening balance, got %d/3", r.ChecksPassed)
		}
	})

	t.Run("MissingCategories", func(t *testing.T) {
		s := &models.CompanyDataSnapshot{
			TrialBalance: []models.TrialBalanceEntry{
				{LedgerName: "Cash in hand", Type: "BS", MajorHead: "Cash and Cash Equivalents", ClosingBalanceCY: 100, ClosingBalancePY: 80},
			},
		}
		ClassifyTrialBalance(s)
		r := checkCashFlowPreparability(s, cfg)
		if r.ChecksPassed != 2 {
			t.Errorf("Expected 2/3 with missing categories, got %d/3", r.ChecksPassed)
		}
		found := false
		for _, issue := range r.Issues {
			if strings.Contains(issue.Issue, "operating activities") &&
				strings.Contains(issue.Issue, "investing activities") &&
				strings.Contains(issue.Issue, "financing activities") {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected all missing categories listed, got %v", r.Issues)
		}
	})

	t.Run("AllCategoriesPresent", func(t *testing.T) {
		s := compliantSnapshot()
		ClassifyTrialBalance(s)
		r := checkCashFlowPreparability(s, cfg)
		if r.ChecksPassed != 3 {
			t.Errorf("Expected 3/3, got %d/3: %v", r.ChecksPassed, r.Issues)
		}
	})
}
