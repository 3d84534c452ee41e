package adapthttp

import (
	"net/http"

	"fittrack/internal/app"
)

func (s *Server) handleMealLog(w http.ResponseWriter, r *http.Request) {
	var in app.MealInput
	if err := parseJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	meal, err := s.svc.Meals.Log(r.Context(), currentUser(r).ID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"meal": meal})
}

func (s *Server) handleMealRecent(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Meals.ListRecent(r.Context(), currentUser(r).ID, intQuery(r, "limit", 0))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": nonNil(items)})
}

func (s *Server) handleMealReuse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	meal, err := s.svc.Meals.Reuse(r.Context(), currentUser(r).ID, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"meal": meal})
}

func (s *Server) handleWorkoutLog(w http.ResponseWriter, r *http.Request) {
	var in app.WorkoutInput
	if err := parseJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	workout, err := s.svc.Workouts.Log(r.Context(), currentUser(r).ID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"workout": workout})
}

func (s *Server) handleWorkoutList(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Workouts.List(r.Context(), currentUser(r).ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": nonNil(items)})
}
