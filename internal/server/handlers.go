package server

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/Ayupanchal18/Renters-sub007/internal/common/errors"
	"github.com/Ayupanchal18/Renters-sub007/internal/common/logger"
	"github.com/Ayupanchal18/Renters-sub007/internal/filterstate"
	"github.com/Ayupanchal18/Renters-sub007/internal/listings"
	"github.com/Ayupanchal18/Renters-sub007/internal/location"
	"github.com/Ayupanchal18/Renters-sub007/internal/store"
	"github.com/Ayupanchal18/Renters-sub007/internal/urlquery"
)

type handlers struct {
	store     *store.Store
	locations *location.Service
	logger    logger.Logger
}

type searchResponse struct {
	Results        []listings.Listing      `json:"results"`
	TotalCount     int                     `json:"totalCount"`
	AppliedFilters filterstate.FilterState `json:"appliedFilters"`
	CanonicalQuery string                  `json:"canonicalQuery"`
	Recovered      bool                    `json:"recovered,omitempty"`
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

// search decodes filters from the query string. The free-text query travels
// as "q", outside the filter codec.
func (h *handlers) search(w http.ResponseWriter, r *http.Request) {
	state := urlquery.Decode(r.URL.RawQuery)
	query := r.URL.Query().Get("q")

	res, err := h.store.Search(r.Context(), state, query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Results:        res.Filtered,
		TotalCount:     res.TotalCount,
		AppliedFilters: res.Applied,
		CanonicalQuery: h.store.CanonicalQuery(),
	})
}

// searchBody accepts an arbitrary JSON filter object. Malformed fields are
// recovered to defaults rather than rejected; the response says when that
// happened.
func (h *handlers) searchBody(w http.ResponseWriter, r *http.Request) {
	var raw map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.writeError(w, r, apperrors.NewInvalidFilterFormatError(err.Error()))
		return
	}

	state, recovered := filterstate.Parse(raw)
	res, err := h.store.Search(r.Context(), state, "")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Results:        res.Filtered,
		TotalCount:     res.TotalCount,
		AppliedFilters: res.Applied,
		CanonicalQuery: h.store.CanonicalQuery(),
		Recovered:      recovered,
	})
}

// clearFilters resets all filter fields, keeping sort, view mode, and scroll.
func (h *handlers) clearFilters(w http.ResponseWriter, r *http.Request) {
	res, err := h.store.ClearAll(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Results:        res.Filtered,
		TotalCount:     res.TotalCount,
		AppliedFilters: res.Applied,
		CanonicalQuery: h.store.CanonicalQuery(),
	})
}

func (h *handlers) locate(w http.ResponseWriter, r *http.Request) {
	if h.locations == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Code:    string(apperrors.ErrCodeGeoPositionUnavailable),
			Message: "Location detection is not configured.",
		})
		return
	}

	loc, err := h.locations.CurrentLocation(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loc)
}

// validateLocation checks a typed location string without applying it, so
// clients can surface inline feedback before committing the filter.
func (h *handlers) validateLocation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Location string `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, r, apperrors.NewInvalidLocationInputError(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, location.ValidateInput(body.Location))
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.CodeOf(err)

	status := http.StatusInternalServerError
	switch code {
	case apperrors.ErrCodeGeoPermissionDenied:
		status = http.StatusForbidden
	case apperrors.ErrCodeGeoTimeout:
		status = http.StatusGatewayTimeout
	case apperrors.ErrCodeGeoPositionUnavailable, apperrors.ErrCodeListingSourceFailed,
		apperrors.ErrCodeDatabaseConnectionFailed:
		status = http.StatusServiceUnavailable
	case apperrors.ErrCodeGeocodeFailed, apperrors.ErrCodeSearchQueryFailed:
		status = http.StatusBadGateway
	case apperrors.ErrCodeInvalidFilterFormat, apperrors.ErrCodeInvalidLocationInput:
		status = http.StatusBadRequest
	}

	var retryable bool
	var stdErr *apperrors.StandardError
	if errors.As(err, &stdErr) {
		retryable = stdErr.Retryable
	}

	h.logger.Warn("request failed", map[string]interface{}{
		"request_id": RequestIDFromContext(r.Context()),
		"path":       r.URL.Path,
		"code":       string(code),
		"error":      err.Error(),
	})

	writeJSON(w, status, errorResponse{
		Code:      string(code),
		Message:   apperrors.UserMessageOf(err),
		Retryable: retryable,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
