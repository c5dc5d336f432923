package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/invitation-letters/internal/grouping"
	"github.com/jonathan/invitation-letters/internal/letters"
	"github.com/jonathan/invitation-letters/internal/server/middleware"
	"github.com/jonathan/invitation-letters/internal/types"
	"go.uber.org/zap"
)

var validate = validator.New()

// AddInvitedRequest is the body of POST /invited.
type AddInvitedRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1,dive,gt=0"`
}

// ReplaceInvitedRequest is the body of PUT /invited. An empty list clears.
type ReplaceInvitedRequest struct {
	IDs []int64 `json:"ids" validate:"dive,gt=0"`
}

// EmployeesResponse lists employees.
type EmployeesResponse struct {
	Employees []types.Employee `json:"employees"`
	Count     int              `json:"count"`
}

// GroupsResponse is the document data every group would be generated from.
type GroupsResponse struct {
	Groups  []types.GroupDocument `json:"groups"`
	Skipped []grouping.Skipped    `json:"skipped,omitempty"`
}

func employeesResponse(employees []types.Employee) EmployeesResponse {
	if employees == nil {
		employees = []types.Employee{}
	}
	return EmployeesResponse{Employees: employees, Count: len(employees)}
}

// decodeJSON decodes and validates a request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return &ErrValidation{Field: fieldErrs[0].Namespace(), Message: "failed on '" + fieldErrs[0].Tag() + "'"}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRoster(w http.ResponseWriter, r *http.Request) {
	employees, err := s.roster.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, employeesResponse(employees))
}

func (s *Server) handleListInvited(w http.ResponseWriter, r *http.Request) {
	invited, err := s.roster.Invited(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, employeesResponse(invited))
}

func (s *Server) handleAddInvited(w http.ResponseWriter, r *http.Request) {
	var req AddInvitedRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	result, err := s.roster.AddInvited(r.Context(), req.IDs)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.logger.Info("invited list extended",
		zap.String("operator", operator(r)),
		zap.Int("added", len(result.Added)),
		zap.Int("already_invited", len(result.AlreadyInvited)),
	)
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleReplaceInvited(w http.ResponseWriter, r *http.Request) {
	var req ReplaceInvitedRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	ids, err := s.roster.ReplaceInvited(r.Context(), req.IDs)
	if err != nil {
		s.fail(w, err)
		return
	}
	if ids == nil {
		ids = []int64{}
	}
	s.logger.Info("invited list replaced", zap.String("operator", operator(r)), zap.Int("count", len(ids)))
	s.jsonResponse(w, http.StatusOK, map[string]any{"ids": ids, "count": len(ids)})
}

func (s *Server) handleRemoveInvited(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		s.fail(w, &ErrValidation{Field: "id", Message: "must be a positive integer"})
		return
	}

	removed, err := s.roster.RemoveInvited(r.Context(), []int64{id})
	if err != nil {
		s.fail(w, err)
		return
	}
	if removed == 0 {
		s.fail(w, &ErrNotFound{Resource: "invited employee", ID: raw})
		return
	}
	s.logger.Info("invited employee removed", zap.String("operator", operator(r)), zap.Int64("employee_id", id))
	s.jsonResponse(w, http.StatusOK, map[string]int{"removed": removed})
}

func (s *Server) handleClearInvited(w http.ResponseWriter, r *http.Request) {
	if err := s.roster.ClearInvited(r.Context()); err != nil {
		s.fail(w, err)
		return
	}
	s.logger.Info("invited list cleared", zap.String("operator", operator(r)))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	snap, err := s.roster.Snapshot(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	docs, skipped := s.generator.Preview(snap)
	s.jsonResponse(w, http.StatusOK, GroupsResponse{Groups: docs, Skipped: skipped})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if !s.generating.TryLock() {
		s.fail(w, &ErrGenerationInProgress{})
		return
	}
	defer s.generating.Unlock()

	snap, err := s.roster.Snapshot(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}

	report, genErr := s.generator.Generate(r.Context(), snap)
	if s.runs != nil && report != nil {
		// The run is recorded even if the client went away mid-run.
		if err := s.runs.RecordRun(context.WithoutCancel(r.Context()), report); err != nil {
			s.logger.Error("failed to record generation run", zap.Stringer("run_id", report.RunID), zap.Error(err))
		}
	}

	if genErr != nil {
		s.logger.Error("generation failed", zap.String("operator", operator(r)), zap.Error(genErr))
		s.jsonResponse(w, HTTPStatus(genErr), report)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		s.fail(w, &ErrNotFound{Resource: "run history", ID: "-"})
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.fail(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = n
	}

	runs, err := s.runs.ListRuns(r.Context(), limit)
	if err != nil {
		s.fail(w, err)
		return
	}
	if runs == nil {
		runs = []letters.Report{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": runs, "count": len(runs)})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		s.fail(w, &ErrNotFound{Resource: "run history", ID: "-"})
		return
	}

	raw := r.PathValue("id")
	runID, err := uuid.Parse(raw)
	if err != nil {
		s.fail(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	report, err := s.runs.GetRun(r.Context(), runID)
	if err != nil {
		s.fail(w, err)
		return
	}
	if report == nil {
		s.fail(w, &ErrNotFound{Resource: "run", ID: raw})
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

// operator returns the authenticated operator, or "anonymous".
func operator(r *http.Request) string {
	if name, err := middleware.GetOperator(r); err == nil {
		return name
	}
	return "anonymous"
}
