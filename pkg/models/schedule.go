package models

import (
	"time"
)

// CommonControl holds the entity-level settings shared by every statement
// and disclosure note (Schedule III "corporate information").
type CommonControl struct {
	ID                 string     `json:"id"`
	CompanyID          string     `json:"company_id"`
	EntityName         string     `json:"entity_name"`
	Address            string     `json:"address"`
	CINNumber          string     `json:"cin_number"`
	FinancialYearStart *time.Time `json:"financial_year_start"`
	FinancialYearEnd   *time.Time `json:"financial_year_end"`
	Currency           string     `json:"currency"`
	Units              string     `json:"units"` // 'Lakhs', 'Crores', 'Millions'
}

// HeadClass is a bitmask of statement classifications attached to a trial
// balance row when the snapshot is prepared. Rule evaluation tests flags
// instead of re-scanning major head names.
type HeadClass uint32

const (
	HeadAsset HeadClass = 1 << iota
	HeadLiabilityEquity
	HeadRevenue
	HeadBorrowing
	HeadInterest
	HeadInventory
	HeadCOGS
	HeadDepreciation
	HeadCash
	HeadProvision
	HeadProfit
	HeadShareCapital
)

// Has reports whether all flags in c are set.
func (h HeadClass) Has(c HeadClass) bool { return h&c == c }

// TrialBalanceEntry is one ledger line, typed BS or PL, with its linked
// major head name and the classification derived from it.
type TrialBalanceEntry struct {
	ID               string    `json:"id"`
	CompanyID        string    `json:"company_id"`
	LedgerName       string    `json:"ledger_name"`
	Type             string    `json:"type"` // 'BS' or 'PL'
	MajorHead        string    `json:"major_head"`
	Grouping         string    `json:"grouping"`
	Class            HeadClass `json:"-"`
	OpeningBalance   float64   `json:"opening_balance"`
	DebitCY          float64   `json:"debit_cy"`
	CreditCY         float64   `json:"credit_cy"`
	ClosingBalanceCY float64   `json:"closing_balance_cy"`
	ClosingBalancePY float64   `json:"closing_balance_py"`
}

// NoteSelection records whether a disclosure note is included in the final
// statement set.
type NoteSelection struct {
	ID                string `json:"id"`
	CompanyID         string `json:"company_id"`
	NoteRef           string `json:"note_ref"`
	Description       string `json:"description"`
	SystemRecommended bool   `json:"system_recommended"`
	UserSelected      bool   `json:"user_selected"`
	FinalSelected     bool   `json:"final_selected"`
}

type ShareCapitalEntry struct {
	ID                  string   `json:"id"`
	CompanyID           string   `json:"company_id"`
	ShareholderName     string   `json:"shareholder_name"`
	ShareClass          string   `json:"share_class"`
	NumberOfShares      float64  `json:"number_of_shares"`
	FaceValue           float64  `json:"face_value"`
	HoldingPercentageCY *float64 `json:"holding_percentage_cy"`
	HoldingPercentagePY *float64 `json:"holding_percentage_py"`
}

type PPEScheduleEntry struct {
	ID                  string  `json:"id"`
	CompanyID           string  `json:"company_id"`
	AssetClass          string  `json:"asset_class"`
	GrossBlockOpening   float64 `json:"gross_block_opening"`
	Additions           float64 `json:"additions"`
	Disposals           float64 `json:"disposals"`
	GrossBlockClosing   float64 `json:"gross_block_closing"`
	DepreciationForYear float64 `json:"depreciation_for_year"`
	AccumulatedDep      float64 `json:"accumulated_depreciation"`
}

type CWIPScheduleEntry struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"company_id"`
	ProjectName string  `json:"project_name"`
	AmountCY    float64 `json:"amount_cy"`
	AgingBucket string  `json:"aging_bucket"`
}

type IntangibleScheduleEntry struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"company_id"`
	AssetName   string  `json:"asset_name"`
	AmountCY    float64 `json:"amount_cy"`
	AgingBucket string  `json:"aging_bucket"` // set only for assets under development
}

type InvestmentEntry struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	Particulars    string  `json:"particulars"`
	InvestmentType string  `json:"investment_type"`
	AmountCY       float64 `json:"amount_cy"`
	AmountPY       float64 `json:"amount_py"`
}

type EmployeeBenefitEntry struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"company_id"`
	BenefitType string  `json:"benefit_type"`
	AmountCY    float64 `json:"amount_cy"`
	AmountPY    float64 `json:"amount_py"`
}

type TaxEntry struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"company_id"`
	Particulars string  `json:"particulars"`
	AmountCY    float64 `json:"amount_cy"`
	AmountPY    float64 `json:"amount_py"`
}

type DeferredTaxEntry struct {
	ID                   string  `json:"id"`
	CompanyID            string  `json:"company_id"`
	Particulars          string  `json:"particulars"`
	BookValue            float64 `json:"book_value"`
	TaxValue             float64 `json:"tax_value"`
	DeferredTaxAsset     float64 `json:"deferred_tax_asset"`
	DeferredTaxLiability float64 `json:"deferred_tax_liability"`
}

type RelatedPartyTransaction struct {
	ID           string  `json:"id"`
	CompanyID    string  `json:"company_id"`
	PartyName    string  `json:"party_name"`
	Relationship string  `json:"relationship"`
	Nature       string  `json:"nature"`
	AmountCY     float64 `json:"amount_cy"`
	AmountPY     float64 `json:"amount_py"`
}

type ContingentLiability struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"company_id"`
	Particulars string  `json:"particulars"`
	Type        string  `json:"type"` // 'Contingent Liability' or 'Commitment'
	AmountCY    float64 `json:"amount_cy"`
	AmountPY    float64 `json:"amount_py"`
}

type ReceivableLedgerEntry struct {
	ID                string  `json:"id"`
	CompanyID         string  `json:"company_id"`
	PartyName         string  `json:"party_name"`
	OutstandingAmount float64 `json:"outstanding_amount"`
	Disputed          bool    `json:"disputed"`
	AgingBucket       string  `json:"aging_bucket"`
}

type PayableLedgerEntry struct {
	ID                string  `json:"id"`
	CompanyID         string  `json:"company_id"`
	PartyName         string  `json:"party_name"`
	OutstandingAmount float64 `json:"outstanding_amount"`
	PayableType       string  `json:"payable_type"` // 'MSME' or 'Other'
	AgingBucket       string  `json:"aging_bucket"`
}

// RatioAnalysis is one financial ratio with its year-over-year variance and
// the explanation Schedule III requires above the variance threshold.
type RatioAnalysis struct {
	ID                 string  `json:"id"`
	CompanyID          string  `json:"company_id"`
	RatioName          string  `json:"ratio_name"`
	CurrentYear        float64 `json:"current_year"`
	PreviousYear       float64 `json:"previous_year"`
	VariancePercentage float64 `json:"variance_percentage"`
	Explanation        string  `json:"explanation"`
}

type AccountingPolicy struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	NoteRef   string `json:"note_ref"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

// CompanyDataSnapshot is the point-in-time view of every collection the
// compliance engine reads. It is fetched once per evaluation and shared
// read-only across all rule groups.
type CompanyDataSnapshot struct {
	CompanyID string `json:"company_id"`

	Entity                *CommonControl            `json:"entity"`
	TrialBalance          []TrialBalanceEntry       `json:"trial_balance"`
	NoteSelections        []NoteSelection           `json:"note_selections"`
	ShareCapital          []ShareCapitalEntry       `json:"share_capital"`
	PPESchedule           []PPEScheduleEntry        `json:"ppe_schedule"`
	CWIPSchedule          []CWIPScheduleEntry       `json:"cwip_schedule"`
	IntangibleSchedule    []IntangibleScheduleEntry `json:"intangible_schedule"`
	Investments           []InvestmentEntry         `json:"investments"`
	EmployeeBenefits      []EmployeeBenefitEntry    `json:"employee_benefits"`
	TaxEntries            []TaxEntry                `json:"tax_entries"`
	DeferredTax           []DeferredTaxEntry        `json:"deferred_tax"`
	RelatedParties        []RelatedPartyTransaction `json:"related_parties"`
	ContingentLiabilities []ContingentLiability     `json:"contingent_liabilities"`
	Receivables           []ReceivableLedgerEntry   `json:"receivables"`
	Payables              []PayableLedgerEntry      `json:"payables"`
	Ratios                []RatioAnalysis           `json:"ratios"`
	AccountingPolicies    []AccountingPolicy        `json:"accounting_policies"`
}

// FindNote returns the selection record for a note reference, or nil.
func (s *CompanyDataSnapshot) FindNote(noteRef string) *NoteSelection {
	for i := range s.NoteSelections {
		if s.NoteSelections[i].NoteRef == noteRef {
			return &s.NoteSelections[i]
		}
	}
	return nil
}

// NoteSelected reports whether a note reference is marked finalSelected.
func (s *CompanyDataSnapshot) NoteSelected(noteRef string) bool {
	n := s.FindNote(noteRef)
	return n != nil && n.FinalSelected
}
