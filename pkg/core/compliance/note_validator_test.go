package compliance

import (
	"testing"

	"financials_automation/pkg/models"
)

func TestValidateNote(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("UnknownNote", func(t *testing.T) {
		result := ValidateNote(compliantSnapshot(), cfg, "Z.99")
		if result.Exists {
			t.Error("Expected exists=false for a note with no selection record")
		}
		if len(result.Issues) != 1 {
			t.Errorf("Expected one issue, got %v", result.Issues)
		}
	})

	t.Run("CorporateInfoRequiresEntityName", func(t *testing.T) {
		s := compliantSnapshot()
		s.Entity.EntityName = ""
		result := ValidateNote(s, cfg, NoteCorporateInfo)
		if result.HasContent {
			t.Error("Expected hasContent=false without entity name")
		}
	})

	t.Run("AccountingPoliciesWithContent", func(t *testing.T) {
		result := ValidateNote(compliantSnapshot(), cfg, NoteAccountingPolicies)
		if !result.Exists || !result.Selected || !result.HasContent {
			t.Errorf("Expected clean result, got %+v", result)
		}
		if len(result.Issues) != 0 {
			t.Errorf("Expected no issues, got %v", result.Issues)
		}
	})

	t.Run("AccountingPoliciesWithoutContent", func(t *testing.T) {
		s := compliantSnapshot()
		s.AccountingPolicies = nil
		result := ValidateNote(s, cfg, NoteAccountingPolicies)
		if result.HasContent {
			t.Error("Expected hasContent=false without policy content")
		}
	})

	t.Run("RelatedPartiesSelectedWithoutTransactions", func(t *testing.T) {
		s := compliantSnapshot()
		s.RelatedParties = nil
		result := ValidateNote(s, cfg, NoteRelatedParties)
		if len(result.Issues) != 1 {
			t.Errorf("Expected one issue, got %v", result.Issues)
		}
		// Selection state alone, not content, is at issue here.
		if !result.HasContent {
			t.Error("Expected hasContent to remain true")
		}
	})

	t.Run("RatioVarianceUnexplained", func(t *testing.T) {
		s := compliantSnapshot()
		s.Ratios = []models.RatioAnalysis{
			{RatioName: "Current Ratio", VariancePercentage: 60},
		}
		result := ValidateNote(s, cfg, NoteRatioVariance)
		if result.HasContent {
			t.Error("Expected hasContent=false with unexplained variances")
		}
		if len(result.Issues) != 1 {
			t.Errorf("Expected one issue, got %v", result.Issues)
		}
	})

	t.Run("AgingSelectedWithoutData", func(t *testing.T) {
		s := compliantSnapshot()
		s.Receivables = nil
		s.Payables = nil
		result := ValidateNote(s, cfg, NoteAgingSchedules)
		if result.HasContent {
			t.Error("Expected hasContent=false without aging data")
		}
	})
}
