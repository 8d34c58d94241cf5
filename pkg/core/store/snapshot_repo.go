package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"financials_automation/pkg/models"
)

// DataUnavailableError reports a storage or connectivity failure while
// fetching a snapshot collection. It aborts the whole evaluation; the
// engine never degrades to a partial report.
type DataUnavailableError struct {
	Collection string
	Err        error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("data unavailable for %s: %v", e.Collection, e.Err)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }

// SnapshotRepo loads the complete per-company data set the compliance
// engine evaluates. All collections are read in one pass so every rule
// group sees a consistent point-in-time view.
type SnapshotRepo struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepo creates a snapshot repository over a connection pool.
func NewSnapshotRepo(pool *pgxpool.Pool) *SnapshotRepo {
	return &SnapshotRepo{pool: pool}
}

// Fetch retrieves the current state of every collection for a company.
// Any failure wraps into DataUnavailableError.
func (r *SnapshotRepo) Fetch(ctx context.Context, companyID string) (*models.CompanyDataSnapshot, error) {
	if r.pool == nil {
		return nil, &DataUnavailableError{Collection: "database", Err: fmt.Errorf("connection pool not initialized")}
	}
	if err := r.pool.Ping(ctx); err != nil {
		return nil, &DataUnavailableError{Collection: "database", Err: err}
	}

	snapshot := &models.CompanyDataSnapshot{CompanyID: companyID}
	var err error

	if snapshot.Entity, err = r.fetchCommonControl(ctx, companyID); err != nil {
		return nil, &DataUnavailableError{Collection: "common_control", Err: err}
	}
	if snapshot.TrialBalance, err = r.fetchTrialBalance(ctx, companyID); err != nil {
		return nil, &DataUnavailableError{Collection: "trial_balance_entries", Err: err}
	}
	if snapshot.NoteSelections, err = r.fetchNoteSelections(ctx, companyID); err != nil {
		return nil, &DataUnavailableError{Collection: "note_selections", Err: err}
	}
	if snapshot.ShareCapital, err = r.fetchShareCapital(ctx, companyID); err != nil {
		return nil, &DataUnavailableError{Collection: "share_capital_entries", Err: err}
	}
	if snapshot.PPESchedule, err = r.fetchPPESchedule(ctx, companyID); err != nil {
		return nil, &DataUnavailableError{Collection: "ppe_schedule_entries", Err: err}
	}
	if snapshot.CWIPSchedule, err = r.fetchCWIPSchedule(ctx, companyID); err != nil {
		return nil, &DataUnavailableError{Collection: "cwip_schedule_entries", Err: err}
	}
	if snapshot.IntangibleSchedule, err = r.fetchIntangibleSchedule(ctx, companyID); err != nil {
		return nil, &DataUnavailableError{Collection: "intangible_schedule_entries", Err: err}
	}
	if snapshot.Investments, err = r.fetchInvestments(ctx, companyID); err != nil {
		return nil, &DataUnavailableError{Collection: "investment_entries", Err: err}
	}
	if snapshot.EmployeeBenefits, err = r.fetchEmployeeBenefits(ctx, companyID); err != nil {
		return nil, &DataUnavailableError{Collection: "employee_benefit_entries", Err: err}
	}
	if snapshot.TaxEntries, err = r.fetchTaxEntries(ctx, companyID); err != nil {
		return nil, &DataUnavailableError{Collection: "tax_entries", Err: err}
	}
	if snapshot.DeferredTax, err = r.fetchDeferredTax(ctx, companyID); err != nil {
		return nil, &DataUnavailableError{Collection: "deferred_tax_entries", Err: err}
	}
	if snapshot.RelatedParties, err = r.fetchRelatedParties(ctx, companyID); err != nil {
		return nil, &DataUnavailableError{Collection: "related_party_transactions", Err: err}
	}
	if snapshot.ContingentLiabilities, err = r.fetchContingentLiabilities(ctx, companyID); err != nil {
		return nil, &DataUnavailableError{Collection: "contingent_liabilities", Err: err}
	}
	if snapshot.Receivables, err = r.fetchReceivables(ctx, companyID); err != nil {
		return nil, &DataUnavailableError{Collection: "receivable_ledger_entries", Err: err}
	}
	if snapshot.Payables, err = r.fetchPayables(ctx, companyID); err != nil {
		return nil, &DataUnavailableError{Collection: "payable_ledger_entries", Err: err}
	}
	if snapshot.Ratios, err = r.fetchRatios(ctx, companyID); err != nil {
		return nil, &DataUnavailableError{Collection: "ratio_analysis", Err: err}
	}
	if snapshot.AccountingPolicies, err = r.fetchAccountingPolicies(ctx, companyID); err != nil {
		return nil, &DataUnavailableError{Collection: "accounting_policy_content", Err: err}
	}

	return snapshot, nil
}

func (r *SnapshotRepo) fetchCommonControl(ctx context.Context, companyID string) (*models.CommonControl, error) {
	query := `
		SELECT id, company_id, entity_name, address, cin_number,
		       financial_year_start, financial_year_end, currency, units
		FROM common_control
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	cc := &models.CommonControl{}
	err := r.pool.QueryRow(ctx, query, companyID).Scan(
		&cc.ID, &cc.CompanyID, &cc.EntityName, &cc.Address, &cc.CINNumber,
		&cc.FinancialYearStart, &cc.FinancialYearEnd, &cc.Currency, &cc.Units,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return cc, nil
}

func (r *SnapshotRepo) fetchTrialBalance(ctx context.Context, companyID string) ([]models.TrialBalanceEntry, error) {
	query := `
		SELECT tb.id, tb.company_id, tb.ledger_name, tb.type,
		       COALESCE(mh.name, ''), COALESCE(g.name, ''),
		       tb.opening_balance, tb.debit_cy, tb.credit_cy,
		       tb.closing_balance_cy, tb.closing_balance_py
		FROM trial_balance_entries tb
		LEFT JOIN major_heads mh ON mh.id = tb.major_head_id
		LEFT JOIN groupings g ON g.id = tb.grouping_id
		WHERE tb.company_id = $1
		ORDER BY tb.id
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.TrialBalanceEntry
	for rows.Next() {
		var e models.TrialBalanceEntry
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.LedgerName, &e.Type,
			&e.MajorHead, &e.Grouping,
			&e.OpeningBalance, &e.DebitCY, &e.CreditCY,
			&e.ClosingBalanceCY, &e.ClosingBalancePY); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SnapshotRepo) fetchNoteSelections(ctx context.Context, companyID string) ([]models.NoteSelection, error) {
	query := `
		SELECT id, company_id, note_ref, COALESCE(description, ''),
		       system_recommended, user_selected, final_selected
		FROM note_selections
		WHERE company_id = $1
		ORDER BY note_ref
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []models.NoteSelection
	for rows.Next() {
		var n models.NoteSelection
		if err := rows.Scan(&n.ID, &n.CompanyID, &n.NoteRef, &n.Description,
			&n.SystemRecommended, &n.UserSelected, &n.FinalSelected); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *SnapshotRepo) fetchShareCapital(ctx context.Context, companyID string) ([]models.ShareCapitalEntry, error) {
	query := `
		SELECT id, company_id, shareholder_name, share_class,
		       number_of_shares, face_value, holding_percentage_cy, holding_percentage_py
		FROM share_capital_entries
		WHERE company_id = $1
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ShareCapitalEntry
	for rows.Next() {
		var e models.ShareCapitalEntry
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.ShareholderName, &e.ShareClass,
			&e.NumberOfShares, &e.FaceValue, &e.HoldingPercentageCY, &e.HoldingPercentagePY); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SnapshotRepo) fetchPPESchedule(ctx context.Context, companyID string) ([]models.PPEScheduleEntry, error) {
	query := `
		SELECT id, company_id, asset_class, gross_block_opening, additions,
		       disposals, gross_block_closing, depreciation_for_year, accumulated_depreciation
		FROM ppe_schedule_entries
		WHERE company_id = $1
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.PPEScheduleEntry
	for rows.Next() {
		var e models.PPEScheduleEntry
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.AssetClass, &e.GrossBlockOpening, &e.Additions,
			&e.Disposals, &e.GrossBlockClosing, &e.DepreciationForYear, &e.AccumulatedDep); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SnapshotRepo) fetchCWIPSchedule(ctx context.Context, companyID string) ([]models.CWIPScheduleEntry, error) {
	query := `
		SELECT id, company_id, project_name, amount_cy, COALESCE(aging_bucket, '')
		FROM cwip_schedule_entries
		WHERE company_id = $1
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.CWIPScheduleEntry
	for rows.Next() {
		var e models.CWIPScheduleEntry
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.ProjectName, &e.AmountCY, &e.AgingBucket); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SnapshotRepo) fetchIntangibleSchedule(ctx context.Context, companyID string) ([]models.IntangibleScheduleEntry, error) {
	query := `
		SELECT id, company_id, asset_name, amount_cy, COALESCE(aging_bucket, '')
		FROM intangible_schedule_entries
		WHERE company_id = $1
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.IntangibleScheduleEntry
	for rows.Next() {
		var e models.IntangibleScheduleEntry
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.AssetName, &e.AmountCY, &e.AgingBucket); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SnapshotRepo) fetchInvestments(ctx context.Context, companyID string) ([]models.InvestmentEntry, error) {
	query := `
		SELECT id, company_id, particulars, COALESCE(investment_type, ''), amount_cy, amount_py
		FROM investment_entries
		WHERE company_id = $1
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.InvestmentEntry
	for rows.Next() {
		var e models.InvestmentEntry
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Particulars, &e.InvestmentType, &e.AmountCY, &e.AmountPY); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SnapshotRepo) fetchEmployeeBenefits(ctx context.Context, companyID string) ([]models.EmployeeBenefitEntry, error) {
	query := `
		SELECT id, company_id, benefit_type, amount_cy, amount_py
		FROM employee_benefit_entries
		WHERE company_id = $1
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.EmployeeBenefitEntry
	for rows.Next() {
		var e models.EmployeeBenefitEntry
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.BenefitType, &e.AmountCY, &e.AmountPY); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SnapshotRepo) fetchTaxEntries(ctx context.Context, companyID string) ([]models.TaxEntry, error) {
	query := `
		SELECT id, company_id, particulars, amount_cy, amount_py
		FROM tax_entries
		WHERE company_id = $1
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.TaxEntry
	for rows.Next() {
		var e models.TaxEntry
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Particulars, &e.AmountCY, &e.AmountPY); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SnapshotRepo) fetchDeferredTax(ctx context.Context, companyID string) ([]models.DeferredTaxEntry, error) {
	query := `
		SELECT id, company_id, particulars, book_value, tax_value,
		       deferred_tax_asset, deferred_tax_liability
		FROM deferred_tax_entries
		WHERE company_id = $1
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.DeferredTaxEntry
	for rows.Next() {
		var e models.DeferredTaxEntry
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Particulars, &e.BookValue, &e.TaxValue,
			&e.DeferredTaxAsset, &e.DeferredTaxLiability); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SnapshotRepo) fetchRelatedParties(ctx context.Context, companyID string) ([]models.RelatedPartyTransaction, error) {
	query := `
		SELECT id, company_id, party_name, relationship, COALESCE(nature, ''), amount_cy, amount_py
		FROM related_party_transactions
		WHERE company_id = $1
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.RelatedPartyTransaction
	for rows.Next() {
		var e models.RelatedPartyTransaction
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.PartyName, &e.Relationship, &e.Nature, &e.AmountCY, &e.AmountPY); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SnapshotRepo) fetchContingentLiabilities(ctx context.Context, companyID string) ([]models.ContingentLiability, error) {
	query := `
		SELECT id, company_id, particulars, type, amount_cy, amount_py
		FROM contingent_liabilities
		WHERE company_id = $1
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ContingentLiability
	for rows.Next() {
		var e models.ContingentLiability
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Particulars, &e.Type, &e.AmountCY, &e.AmountPY); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SnapshotRepo) fetchReceivables(ctx context.Context, companyID string) ([]models.ReceivableLedgerEntry, error) {
	query := `
		SELECT id, company_id, party_name, outstanding_amount, disputed, COALESCE(aging_bucket, '')
		FROM receivable_ledger_entries
		WHERE company_id = $1
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ReceivableLedgerEntry
	for rows.Next() {
		var e models.ReceivableLedgerEntry
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.PartyName, &e.OutstandingAmount, &e.Disputed, &e.AgingBucket); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SnapshotRepo) fetchPayables(ctx context.Context, companyID string) ([]models.PayableLedgerEntry, error) {
	query := `
		SELECT id, company_id, party_name, outstanding_amount, COALESCE(payable_type, ''), COALESCE(aging_bucket, '')
		FROM payable_ledger_entries
		WHERE company_id = $1
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.PayableLedgerEntry
	for rows.Next() {
		var e models.PayableLedgerEntry
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.PartyName, &e.OutstandingAmount, &e.PayableType, &e.AgingBucket); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SnapshotRepo) fetchRatios(ctx context.Context, companyID string) ([]models.RatioAnalysis, error) {
	query := `
		SELECT id, company_id, ratio_name, current_year, previous_year,
		       variance_percentage, COALESCE(explanation, '')
		FROM ratio_analysis
		WHERE company_id = $1
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.RatioAnalysis
	for rows.Next() {
		var e models.RatioAnalysis
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.RatioName, &e.CurrentYear, &e.PreviousYear,
			&e.VariancePercentage, &e.Explanation); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SnapshotRepo) fetchAccountingPolicies(ctx context.Context, companyID string) ([]models.AccountingPolicy, error) {
	query := `
		SELECT id, company_id, note_ref, title, content
		FROM accounting_policy_content
		WHERE company_id = $1
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AccountingPolicy
	for rows.Next() {
		var e models.AccountingPolicy
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.NoteRef, &e.Title, &e.Content); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
