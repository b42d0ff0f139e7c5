package controllers

import (
	"net/http"
	"strings"

	"github.com/trovekart/storefront-backend/api/responses"
	"github.com/trovekart/storefront-backend/internal/users"
	"github.com/trovekart/storefront-backend/pkg/enums"
	pkgerrors "github.com/trovekart/storefront-backend/pkg/errors"
	"github.com/trovekart/storefront-backend/pkg/logger"
)

// AdminUserList returns the registered user directory.
func AdminUserList(repo users.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var role *enums.UserRole
		if raw := strings.TrimSpace(r.URL.Query().Get("role")); raw != "" {
			parsed, err := enums.ParseUserRole(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role filter"))
				return
			}
			role = &parsed
		}
		list, err := repo.List(r.Context(), role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users"))
			return
		}
		responses.WriteSuccess(w, users.FromModels(list))
	}
}
