package adapthttp

import (
	"errors"
	"net/http"

	"fittrack/internal/app"
	"fittrack/internal/logging"
)

func (s *Server) handleFoodSearch(w http.ResponseWriter, r *http.Request) {
	item, err := s.svc.Food.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeFoodError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item": item})
}

func (s *Server) handleFoodAutocomplete(w http.ResponseWriter, r *http.Request) {
	names, err := s.svc.Food.Autocomplete(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeFoodError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": names})
}

// writeFoodError reports upstream failures as 502 rather than 500.
func (s *Server) writeFoodError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, app.ErrEmptyQuery), errors.Is(err, app.ErrNotFound), errors.Is(err, app.ErrFoodSearchDisabled):
		writeServiceError(w, r, err)
	default:
		logging.Ctx(r.Context()).Warn().Err(err).Msg("food search failed")
		writeError(w, http.StatusBadGateway, errors.New("food search failed"))
	}
}
