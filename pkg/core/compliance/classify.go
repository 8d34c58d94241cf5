package compliance

import (
	"strings"

	"financials_automation/pkg/models"
)

// Major head keyword table. Classification happens once when the snapshot
// is prepared; rule groups only test the resulting flags. A head can carry
// several flags ("Cash and Cash Equivalents" is both an asset and a cash
// balance).
var headKeywords = []struct {
	class    models.HeadClass
	keywords []string
}{
	{models.HeadAsset, []string{"Assets", "Receivables", "Cash", "Inventories"}},
	{models.HeadLiabilityEquity, []string{"Liabilities", "Payables", "Equity", "Share Capital"}},
	{models.HeadRevenue, []string{"Revenue", "Sales"}},
	{models.HeadBorrowing, []string{"Borrowings", "Loans"}},
	{models.HeadInterest, []string{"Finance Costs", "Interest"}},
	{models.HeadInventory, []string{"Inventories", "Stock"}},
	{models.HeadCOGS, []string{"Cost of Goods Sold", "Cost of Materials"}},
	{models.HeadDepreciation, []string{"Depreciation", "Amortization"}},
	{models.HeadCash, []string{"Cash", "Bank"}},
	{models.HeadProvision, []string{"Provisions"}},
	{models.HeadProfit, []string{"Profit"}},
	{models.HeadShareCapital, []string{"Share Capital"}},
}

// ClassifyHead derives the classification flags for a major head name.
func ClassifyHead(majorHead string) models.HeadClass {
	var class models.HeadClass
	for _, group := range headKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(majorHead, kw) {
				class |= group.class
				break
			}
		}
	}
	return class
}

// ClassifyTrialBalance attaches head classifications to every row of a
// snapshot. Call once after fetching, before rule evaluation.
func ClassifyTrialBalance(snapshot *models.CompanyDataSnapshot) {
	for i := range snapshot.TrialBalance {
		snapshot.TrialBalance[i].Class = ClassifyHead(snapshot.TrialBalance[i].MajorHead)
	}
}

// entriesWith returns the trial balance rows carrying all given flags.
func entriesWith(tb []models.TrialBalanceEntry, class models.HeadClass) []models.TrialBalanceEntry {
	var out []models.TrialBalanceEntry
	for _, e := range tb {
		if e.Class.Has(class) {
			out = append(out, e)
		}
	}
	return out
}

// sumAbsClosingCY totals |closingBalanceCY| over the rows with the flags.
func sumAbsClosingCY(tb []models.TrialBalanceEntry, class models.HeadClass) float64 {
	var total float64
	for _, e := range tb {
		if e.Class.Has(class) {
			total += abs(e.ClosingBalanceCY)
		}
	}
	return total
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func containsAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
