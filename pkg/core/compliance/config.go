package compliance

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Note references used by the rule groups. The statutory meaning of each
// reference is fixed by the Schedule III note index.
const (
	NoteCorporateInfo      = "A.1"    // Corporate information
	NoteAccountingPolicies = "A.2"    // Significant accounting policies
	NoteForexPolicy        = "A.2.7"  // AS 11 foreign currency policy
	NoteSegmentReporting   = "A.2.15" // AS 17 segment reporting
	NoteShareCapital       = "B.1"
	NoteBorrowings         = "B.3"
	NotePPE                = "C.1"
	NoteCWIPAging          = "C.2"
	NoteIntangibleAging    = "C.3"
	NoteInvestments        = "C.4"
	NoteInventories        = "C.5"
	NoteRevenue            = "D.1"
	NoteEmployeeBenefits   = "D.4"
	NoteEPS                = "D.10" // AS 20 earnings per share
	NoteDeferredTax        = "D.11"
	NoteCashFlow           = "E.1"
	NoteRelatedParties     = "E.3" // AS 18 related party disclosures
	NoteContingent         = "E.5" // Contingent liabilities and commitments
	NoteRatioVariance      = "F.8"
	NoteAgingSchedules     = "F.9"
	NoteMSME               = "G.2"
)

// Config carries every note list, keyword set and numeric threshold the
// rule groups consume. The values come from the Schedule III requirements;
// thresholds with no documented statutory basis are exposed here so an
// operator can tune them without touching rule logic.
type Config struct {
	// MandatoryNotes must all be finalSelected for any filing.
	MandatoryNotes []string `yaml:"mandatory_notes" json:"mandatory_notes"`
	// RecommendedNotes should be selected whenever the corresponding data
	// collection is non-empty.
	RecommendedNotes []string `yaml:"recommended_notes" json:"recommended_notes"`

	// ReceivableAgingBuckets is the fixed Schedule III bucket set for
	// receivable and payable aging disclosure.
	ReceivableAgingBuckets []string `yaml:"receivable_aging_buckets" json:"receivable_aging_buckets"`
	// CWIPAgingBuckets applies to capital work-in-progress and intangible
	// assets under development.
	CWIPAgingBuckets []string `yaml:"cwip_aging_buckets" json:"cwip_aging_buckets"`

	// KeyPolicyAreas must each be covered by the accounting policy content,
	// matched by case-insensitive substring against titles and content.
	KeyPolicyAreas []string `yaml:"key_policy_areas" json:"key_policy_areas"`
	// ForexKeywords flag ledger names that indicate foreign currency
	// transactions.
	ForexKeywords []string `yaml:"forex_keywords" json:"forex_keywords"`
	// KMPKeywords flag related-party relationships that count as key
	// management personnel.
	KMPKeywords []string `yaml:"kmp_keywords" json:"kmp_keywords"`

	BalanceTolerance         float64 `yaml:"balance_tolerance" json:"balance_tolerance"`                   // units
	RatioVariancePct         float64 `yaml:"ratio_variance_pct" json:"ratio_variance_pct"`                 // explanation required above this
	MinExplanationLen        int     `yaml:"min_explanation_len" json:"min_explanation_len"`               // characters
	DisputedReceivablePct    float64 `yaml:"disputed_receivable_pct" json:"disputed_receivable_pct"`       // disclosure note above this
	MSMEPayablePct           float64 `yaml:"msme_payable_pct" json:"msme_payable_pct"`                     // disclosure note above this
	RevenueGrowthPct         float64 `yaml:"revenue_growth_pct" json:"revenue_growth_pct"`                 // explanation required above this
	DepreciationTolerancePct float64 `yaml:"depreciation_tolerance_pct" json:"depreciation_tolerance_pct"` // PPE schedule reconciliation
	SegmentRevenueThreshold  float64 `yaml:"segment_revenue_threshold" json:"segment_revenue_threshold"`   // AS 17 materiality
	ContingentProvisionRatio float64 `yaml:"contingent_provision_ratio" json:"contingent_provision_ratio"` // recognition review above this
	HoldingTolerancePct      float64 `yaml:"holding_tolerance_pct" json:"holding_tolerance_pct"`           // shareholding must sum to 100 +/- this
}

// DefaultConfig returns the standard Schedule III rule configuration.
func DefaultConfig() Config {
	return Config{
		MandatoryNotes: []string{
			NoteCorporateInfo,
			NoteAccountingPolicies,
			NoteRatioVariance,
			NoteAgingSchedules,
		},
		RecommendedNotes: []string{
			NoteShareCapital,
			NotePPE,
			NoteInvestments,
			NoteEmployeeBenefits,
			NoteRelatedParties,
			NoteContingent,
		},
		ReceivableAgingBuckets: []string{
			"< 182 Days", "182-365 Days", "1-2 Years", "2-3 Years", "> 3 Years",
		},
		CWIPAgingBuckets: []string{
			"<1 Year", "1-2 Years", "2-3 Years", ">3 Years",
		},
		KeyPolicyAreas: []string{
			"Revenue Recognition",
			"Property, Plant and Equipment",
			"Depreciation",
			"Inventories",
			"Employee Benefits",
			"Income Taxes",
		},
		ForexKeywords: []string{"forex", "foreign", "exchange"},
		KMPKeywords:   []string{"key management", "director"},

		BalanceTolerance:         1,
		RatioVariancePct:         25,
		MinExplanationLen:        50,
		DisputedReceivablePct:    5,
		MSMEPayablePct:           10,
		RevenueGrowthPct:         50,
		DepreciationTolerancePct: 5,
		SegmentRevenueThreshold:  50000000, // 5 crores
		ContingentProvisionRatio: 5,
		HoldingTolerancePct:      1,
	}
}

// LoadConfig reads a YAML rule configuration, applying the file's values
// over the defaults so a partial file only overrides what it names.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read rule config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse rule config: %w", err)
	}
	return cfg, nil
}
