package restapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"convertkit.dev/internal/domain"
	"convertkit.dev/internal/logging"
	"convertkit.dev/internal/models"
	"convertkit.dev/internal/utils"
)

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "request failed", err,
		slog.String("path", r.URL.Path),
		slog.String("request_id", logging.RequestIDFromContext(r.Context())),
		slog.String("component", "http_server"))

	response := struct {
		Code        int    `json:"code"`
		CurrentTime int64  `json:"currentTime"`
		Text        string `json:"text"`
		Version     int    `json:"version"`
	}{
		Code:        http.StatusInternalServerError,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        "internal server error",
		Version:     models.ResponseVersion,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	encoderErr := json.NewEncoder(w).Encode(response)
	if encoderErr != nil {
		api.Logger.Error("failed to encode server error response", "error", encoderErr)
	}
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}{
		FieldErrors: fieldErrors,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.Logger.Error("failed to encode validation error response", "error", err)
	}
}

func (api *RestAPI) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewResponse(http.StatusMethodNotAllowed, nil, "method not allowed"))
}

// domainErrorResponse maps a classified error onto an HTTP status: input
// errors with a field become 400 field errors, unknown domains 404, rate
// source failures 502, anything else 500.
func (api *RestAPI) domainErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch domain.KindOf(err) {
	case domain.KindUnknownDomain:
		api.sendNotFound(w, r)
		return
	case domain.KindRateSource:
		logging.LogError(logging.FromContext(r.Context()), "rate source unavailable", err,
			slog.String("component", "http_server"))
		api.sendResponse(w, r, models.NewResponse(http.StatusBadGateway, nil, "rate source unavailable"))
		return
	}

	if fieldErrors, ok := utils.FieldErrorsFromError(err); ok {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}
	api.serverErrorResponse(w, r, err)
}
