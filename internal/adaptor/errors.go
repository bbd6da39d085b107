package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"event-booking/internal/apperror"
	"event-booking/pkg/utils"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a single JSON object from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return apperror.InvalidInput(fmt.Sprintf("request body must not exceed %d bytes", maxBodyBytes))
		case errors.Is(err, io.EOF):
			return apperror.InvalidInput("request body is required")
		default:
			return apperror.InvalidInput("Invalid request body")
		}
	}

	return nil
}

// handleServiceError maps an error kind to its status code. Causes of 5xx errors are logged, never returned.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	kind := apperror.KindOf(err)
	code := kind.HTTPStatus()
	if code >= http.StatusInternalServerError {
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	// only *apperror.Error carries a client kind
	var appErr *apperror.Error
	errors.As(err, &appErr)

	log.Warn(operation+" failed",
		zap.String("kind", string(kind)),
		zap.String("message", appErr.Message),
	)

	if len(appErr.Fields) > 0 {
		utils.ResponseError(w, code, appErr.Message, appErr.Fields)
		return
	}
	utils.ResponseError(w, code, appErr.Message, nil)
}
