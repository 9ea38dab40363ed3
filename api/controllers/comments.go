package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/plannerhq/eventra-backend/api/responses"
	"github.com/plannerhq/eventra-backend/api/validators"
	commentsvc "github.com/plannerhq/eventra-backend/internal/comments"
	pkgerrors "github.com/plannerhq/eventra-backend/pkg/errors"
	"github.com/plannerhq/eventra-backend/pkg/logger"
)

type createCommentRequest struct {
	Body            string  `json:"body" validate:"required"`
	ParentCommentID *string `json:"parent_comment_id,omitempty"`
}

// CreateTaskComment posts a comment or a reply on a task.
func CreateTaskComment(svc commentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "comment service unavailable"))
			return
		}

		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		taskID, err := validators.ParseUUIDParam(r, "taskId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createCommentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto := commentsvc.CreateCommentDTO{
			TaskID:   taskID,
			AuthorID: uid,
			Body:     payload.Body,
		}
		if payload.ParentCommentID != nil {
			parentID, err := uuid.Parse(*payload.ParentCommentID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid parent comment id"))
				return
			}
			dto.ParentCommentID = &parentID
		}

		comment, err := svc.CreateComment(r.Context(), dto)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, comment)
	}
}

// ListTaskComments returns a task's comment thread, replies nested
// under their parents.
func ListTaskComments(svc commentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "comment service unavailable"))
			return
		}

		taskID, err := validators.ParseUUIDParam(r, "taskId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		comments, err := svc.ListByTask(r.Context(), taskID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"comments": comments})
	}
}

// DeleteComment removes one comment; replies stay in the thread.
func DeleteComment(svc commentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "comment service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "commentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteComment(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
