package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fyb-funds/fund-service/services"
	"github.com/fyb-funds/fund-service/utils"
)

// respondServiceError maps service error kinds onto HTTP statuses. Anything
// that is not a known kind is a persistence failure: logged with the cause,
// returned as an opaque 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		slog.Error("Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		utils.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
