package adapthttp

import (
	"net/http"
	"time"
)

const defaultRecentWeights = 14

func localDayString(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02")
}

func (s *Server) handleWeightTodayGet(w http.ResponseWriter, r *http.Request) {
	today := localDayString(time.Now())
	entry, err := s.svc.Weight.GetTodayWeight(r.Context(), currentUser(r).ID, today)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"today": today, "entry": entry})
}

func (s *Server) handleWeightTodayPut(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value float64 `json:"value"`
		Unit  string  `json:"unit"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	entry, today, err := s.svc.Weight.RecordWeight(r.Context(), currentUser(r).ID, body.Value, body.Unit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"today": today, "entry": entry})
}

func (s *Server) handleWeightRecent(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", defaultRecentWeights)
	items, err := s.svc.Weight.ListRecent(r.Context(), currentUser(r).ID, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": nonNil(items)})
}

func (s *Server) handleWeightUndoLast(w http.ResponseWriter, r *http.Request) {
	deleted, entry, today, err := s.svc.Weight.UndoLast(r.Context(), currentUser(r).ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted, "today": today, "entry": entry})
}

// nonNil turns a nil slice into an empty one so it encodes as [].
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
