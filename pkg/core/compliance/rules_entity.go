package compliance

import (
	"financials_automation/pkg/models"
)

// Rule group 1: Entity Information (5 checks).
// Entity name, address, CIN, financial year dates and currency/units must
// all be configured before statements can be prepared.
func checkEntityInformation(s *models.CompanyDataSnapshot, cfg Config) RuleGroupResult {
	r := RuleGroupResult{ChecksAttempted: 5}
	cc := s.Entity

	if cc == nil {
		r.add(Issue{
			Severity:       SeverityError,
			Category:       "Entity Information",
			Issue:          "Common control data not configured",
			Recommendation: "Configure entity details in Common Control settings",
		})
		return r
	}

	if cc.EntityName != "" {
		r.pass()
	} else {
		r.add(Issue{
			Severity:       SeverityError,
			Category:       "Entity Information",
			Issue:          "Entity name is missing",
			Recommendation: "Provide entity name in Common Control settings",
		})
	}

	if cc.Address != "" {
		r.pass()
	} else {
		r.add(Issue{
			Severity:       SeverityError,
			Category:       "Entity Information",
			Issue:          "Entity address is missing",
			Recommendation: "Provide complete address in Common Control settings",
		})
	}

	if cc.CINNumber != "" {
		r.pass()
	} else {
		r.add(Issue{
			Severity:       SeverityWarning,
			Category:       "Entity Information",
			Issue:          "CIN number is missing",
			Recommendation: "Provide Corporate Identification Number for compliance",
		})
	}

	if cc.FinancialYearStart != nil && cc.FinancialYearEnd != nil {
		r.pass()
		start, end := *cc.FinancialYearStart, *cc.FinancialYearEnd
		months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
		if months != 12 {
			r.add(Issue{
				Severity:       SeverityWarning,
				Category:       "Entity Information",
				Issue:          "Financial year period is not 12 months",
				Recommendation: "Ensure financial year is exactly 12 months for Schedule III compliance",
			})
		}
	} else {
		r.add(Issue{
			Severity:       SeverityError,
			Category:       "Entity Information",
			Issue:          "Financial year dates are missing",
			Recommendation: "Set financial year start and end dates",
		})
	}

	if cc.Currency != "" && cc.Units != "" {
		r.pass()
	} else {
		r.add(Issue{
			Severity:       SeverityWarning,
			Category:       "Entity Information",
			Issue:          "Currency or reporting units not specified",
			Recommendation: "Specify currency and reporting units (Lakhs/Crores/Millions)",
		})
	}

	return r
}
