package adapthttp

import (
	"net/http"

	"fittrack/internal/app"
	"fittrack/internal/domain"
)

const defaultProgressUnit = domain.UnitLb

func (s *Server) handleProfileGet(w http.ResponseWriter, r *http.Request) {
	user, err := s.svc.Profile.Get(r.Context(), currentUser(r).ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (s *Server) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	var in app.ProfileUpdate
	if err := parseJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	user, err := s.svc.Profile.Update(r.Context(), currentUser(r).ID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	unit := r.URL.Query().Get("unit")
	if unit == "" {
		unit = defaultProgressUnit
	}
	p, err := s.svc.Progress.Get(r.Context(), currentUser(r).ID, unit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
