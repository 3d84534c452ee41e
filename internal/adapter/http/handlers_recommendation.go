package adapthttp

import (
	"net/http"
)

func (s *Server) handleRecommendationGenerate(w http.ResponseWriter, r *http.Request) {
	rec, analysis, err := s.svc.Recommendations.Generate(r.Context(), currentUser(r).ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"recommendation": rec, "analysis": analysis})
}

func (s *Server) handleRecommendationCurrent(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.Recommendations.Current(r.Context(), currentUser(r).ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"recommendation": rec})
}

func (s *Server) handleRecommendationHistory(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Recommendations.History(r.Context(), currentUser(r).ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": nonNil(items)})
}

func (s *Server) handleRecommendationFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.svc.Recommendations.SubmitFeedback(r.Context(), currentUser(r).ID, id, body.Status); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "id": id, "status": body.Status})
}
