package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom-backend/api/responses"
	"github.com/stockroomhq/stockroom-backend/pkg/enums"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/kv/models"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

// AuditLogReader is the audit surface the admin endpoints read from.
type AuditLogReader interface {
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]models.AuditLogEntry, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.AuditLogEntry, error)
	FindByAction(ctx context.Context, action enums.LogAction) ([]models.AuditLogEntry, error)
}

// AuditLogsByUser lists every mutation a given user performed, newest first.
func AuditLogsByUser(store AuditLogReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "audit log store unavailable"))
			return
		}

		id, err := parsePathUUID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logs, err := store.FindByUserID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list audit logs"))
			return
		}

		responses.WriteSuccess(w, logs)
	}
}

// AuditLogsByAction lists every mutation of one kind (CREATE, UPDATE or
// DELETE), newest first.
func AuditLogsByAction(store AuditLogReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "audit log store unavailable"))
			return
		}

		raw := strings.TrimSpace(r.URL.Query().Get("action"))
		action, err := enums.ParseLogAction(strings.ToUpper(raw))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid action").
				WithDetails(map[string]string{"action": "must be one of CREATE UPDATE DELETE"}))
			return
		}

		logs, err := store.FindByAction(r.Context(), action)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list audit logs"))
			return
		}

		responses.WriteSuccess(w, logs)
	}
}
