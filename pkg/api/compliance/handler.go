package compliance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"financials_automation/pkg/core/compliance"
	"financials_automation/pkg/core/store"
)

var evaluator *compliance.Evaluator
var snapshots *store.SnapshotRepo

func InitHandler(ev *compliance.Evaluator, repo *store.SnapshotRepo) {
	evaluator = ev
	snapshots = repo
}

type ValidateRequest struct {
	CompanyID string `json:"company_id"`
}

type NoteRequest struct {
	CompanyID string `json:"company_id"`
	NoteRef   string `json:"note_ref"`
}

type StatementFormatRequest struct {
	CompanyID     string `json:"company_id"`
	StatementType string `json:"statement_type"`
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// HandleValidate runs the full Schedule III rule set for a company and
// returns the compliance report.
func HandleValidate(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.CompanyID == "" {
		http.Error(w, "company_id is required", http.StatusBadRequest)
		return
	}

	runID := uuid.New().String()[:8]
	fmt.Printf("[COMPLIANCE] Run %s: validating company %s\n", runID, req.CompanyID)
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	report, err := evaluator.Evaluate(ctx, req.CompanyID)
	if err != nil {
		var dataErr *store.DataUnavailableError
		if errors.As(err, &dataErr) {
			fmt.Printf("[COMPLIANCE] Run %s: aborted, %v\n", runID, dataErr)
			http.Error(w, fmt.Sprintf("Validation aborted: %v", dataErr), http.StatusServiceUnavailable)
			return
		}
		fmt.Printf("[ERROR] Run %s: %v\n", runID, err)
		http.Error(w, fmt.Sprintf("Validation failed: %v", err), http.StatusInternalServerError)
		return
	}

	fmt.Printf("[COMPLIANCE] Run %s: %s score=%d (%d/%d checks, %d issues) in %v\n",
		runID, report.OverallStatus, report.ComplianceScore,
		report.PassedChecks, report.TotalChecks, len(report.Issues), time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// HandleNote validates a single disclosure note for a company.
func HandleNote(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.CompanyID == "" || req.NoteRef == "" {
		http.Error(w, "company_id and note_ref are required", http.StatusBadRequest)
		return
	}

	fmt.Printf("[COMPLIANCE] Note check: company %s note %s\n", req.CompanyID, req.NoteRef)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	snapshot, err := snapshots.Fetch(ctx, req.CompanyID)
	if err != nil {
		var dataErr *store.DataUnavailableError
		if errors.As(err, &dataErr) {
			http.Error(w, fmt.Sprintf("Validation aborted: %v", dataErr), http.StatusServiceUnavailable)
			return
		}
		http.Error(w, fmt.Sprintf("Note validation failed: %v", err), http.StatusInternalServerError)
		return
	}

	result := compliance.ValidateNote(snapshot, evaluator.Config(), req.NoteRef)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// HandleStatementFormat validates the structural layout of one statement.
func HandleStatementFormat(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req StatementFormatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.CompanyID == "" || req.StatementType == "" {
		http.Error(w, "company_id and statement_type are required", http.StatusBadRequest)
		return
	}

	fmt.Printf("[COMPLIANCE] Format check: company %s statement %s\n", req.CompanyID, req.StatementType)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	snapshot, err := snapshots.Fetch(ctx, req.CompanyID)
	if err != nil {
		var dataErr *store.DataUnavailableError
		if errors.As(err, &dataErr) {
			http.Error(w, fmt.Sprintf("Validation aborted: %v", dataErr), http.StatusServiceUnavailable)
			return
		}
		http.Error(w, fmt.Sprintf("Format validation failed: %v", err), http.StatusInternalServerError)
		return
	}

	result, err := compliance.ValidateStatementFormat(snapshot, evaluator.Config(), req.StatementType)
	if err != nil {
		var unknownErr *compliance.ErrUnknownStatementType
		if errors.As(err, &unknownErr) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, fmt.Sprintf("Format validation failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
