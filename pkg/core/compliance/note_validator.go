package compliance

import (
	"fmt"
	"math"
	"strings"

	"financials_automation/pkg/models"
)

// ValidateNote performs the targeted compliance check for a single note
// reference. Notes without specific content rules validate on selection
// state alone.
func ValidateNote(s *models.CompanyDataSnapshot, cfg Config, noteRef string) *NoteComplianceResult {
	note := s.FindNote(noteRef)
	if note == nil {
		return &NoteComplianceResult{
			Exists: false,
			Issues: []string{fmt.Sprintf("Note %s does not exist for this company", noteRef)},
		}
	}

	result := &NoteComplianceResult{
		Exists:            true,
		Selected:          note.FinalSelected,
		HasContent:        true,
		SystemRecommended: note.SystemRecommended,
		Issues:            []string{},
	}

	switch noteRef {
	case NoteCorporateInfo:
		if s.Entity == nil || s.Entity.EntityName == "" {
			result.Issues = append(result.Issues, "Entity name is required for corporate information note")
			result.HasContent = false
		}

	case NoteAccountingPolicies:
		hasContent := false
		for _, policy := range s.AccountingPolicies {
			if policy.NoteRef == noteRef {
				hasContent = true
				break
			}
		}
		if !hasContent {
			result.Issues = append(result.Issues, "No accounting policy content found")
			result.HasContent = false
		}

	case NoteRelatedParties:
		if note.FinalSelected && len(s.RelatedParties) == 0 {
			result.Issues = append(result.Issues, "Note is selected but no related party transactions found")
		}

	case NoteRatioVariance:
		missing := 0
		for _, ratio := range s.Ratios {
			if math.Abs(ratio.VariancePercentage) > cfg.RatioVariancePct && strings.TrimSpace(ratio.Explanation) == "" {
				missing++
			}
		}
		if missing > 0 {
			result.Issues = append(result.Issues,
				fmt.Sprintf("%d ratios with >%.0f%% variance lack explanations", missing, cfg.RatioVariancePct))
			result.HasContent = false
		}

	case NoteAgingSchedules:
		if note.FinalSelected && len(s.Receivables) == 0 && len(s.Payables) == 0 {
			result.Issues = append(result.Issues, "Note is selected but no aging data found")
			result.HasContent = false
		}
	}

	return result
}
