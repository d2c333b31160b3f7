package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/HenriqueBragaMoreira/gesture-pro/internal/apperr"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/http/apierr"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck
	json.NewEncoder(w).Encode(data)
}

func respondError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	log.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	respondJSON(w, res.StatusCode, res)
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.ErrValidation.WithMsg("invalid JSON body").WrapParent(err)
	}
	return nil
}

// parsePagination reads offset/limit query parameters with sane bounds.
func parsePagination(r *http.Request) (offset, limit int32) {
	offset, limit = 0, defaultLimit

	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil && n >= 0 {
			offset = int32(n)
		}
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			switch {
			case n < 1:
				limit = 1
			case n > maxLimit:
				limit = maxLimit
			default:
				limit = int32(n)
			}
		}
	}

	return offset, limit
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.ErrValidation.WithMsg("invalid " + name + " path parameter")
	}
	return id, nil
}

func parseOptionalInt64Query(r *http.Request, name string) (*int64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, apperr.ErrValidation.WithMsg("invalid " + name + " query parameter")
	}
	return &n, nil
}
