package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/plannerhq/eventra-backend/api/responses"
	"github.com/plannerhq/eventra-backend/api/validators"
	budgetsvc "github.com/plannerhq/eventra-backend/internal/budgets"
	pkgerrors "github.com/plannerhq/eventra-backend/pkg/errors"
	"github.com/plannerhq/eventra-backend/pkg/logger"
)

// CreateBudget creates a budget with its expense lines.
func CreateBudget(svc budgetsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "budget service unavailable"))
			return
		}

		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload budgetsvc.CreateBudgetDTO
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.CreatedBy = uid

		budget, err := svc.CreateBudget(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, budget)
	}
}

// GetBudget returns one budget with its expense lines.
func GetBudget(svc budgetsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "budget service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "budgetId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		budget, err := svc.GetBudget(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, budget)
	}
}

// ListBudgets returns a filtered, paginated budget listing.
func ListBudgets(svc budgetsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "budget service unavailable"))
			return
		}

		params, err := validators.ParsePageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := budgetsvc.ListBudgetsFilter{Params: params}
		if raw := strings.TrimSpace(r.URL.Query().Get("event_id")); raw != "" {
			eventID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid event id"))
				return
			}
			filter.EventID = &eventID
		}

		budgets, meta, err := svc.ListBudgets(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"budgets": budgets, "meta": meta})
	}
}

// UpdateBudget replaces budget fields and, when provided, the full
// expense set.
func UpdateBudget(svc budgetsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "budget service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "budgetId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload budgetsvc.UpdateBudgetDTO
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		budget, err := svc.UpdateBudget(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, budget)
	}
}

// UpdateBudgetStatus moves a budget through its approval workflow.
func UpdateBudgetStatus(svc budgetsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "budget service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "budgetId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload budgetsvc.UpdateStatusDTO
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		budget, err := svc.UpdateStatus(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, budget)
	}
}

// DeleteBudget removes a budget and its expense lines.
func DeleteBudget(svc budgetsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "budget service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "budgetId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteBudget(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
