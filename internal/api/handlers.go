package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/events"
	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/utils"
)

// eventResponse adds display strings formatted with the current settings
type eventResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Description string          `json:"description,omitempty"`
	Category    models.Category `json:"category"`
	DisplayTime string          `json:"displayTime"`
	DisplayDate string          `json:"displayDate"`
}

func (s *Server) present(e models.Event, prefs models.Settings) eventResponse {
	return eventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Date:        e.DateString(),
		Time:        e.Time,
		Description: e.Description,
		Category:    e.Category,
		DisplayTime: utils.FormatTime(e.Time, prefs.TimeFormat),
		DisplayDate: utils.FormatDate(e.Date, prefs.DateFormat),
	}
}

func (s *Server) presentAll(list []models.Event) []eventResponse {
	prefs := s.settings.Get()
	out := make([]eventResponse, 0, len(list))
	for _, e := range list {
		out = append(out, s.present(e, prefs))
	}
	return out
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": constants.Version,
		"events":  s.events.Len(),
	})
}

// GET /api/events[?date=YYYY-MM-DD]
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		respondJSON(w, http.StatusOK, s.presentAll(s.events.Sorted()))
		return
	}

	date, err := utils.ParseDate(dateStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}
	respondJSON(w, http.StatusOK, s.presentAll(s.events.EventsOn(date)))
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.presentAll(s.events.EventsToday()))
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var in events.Input
	if err := decodeBody(w, r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	prefs := s.settings.Get()
	e, err := in.NewEvent(s.events.Now(), prefs.DefaultEventCategory)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	stored := s.events.Add(e)
	respondJSON(w, http.StatusCreated, s.present(stored, prefs))
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	e, ok := s.events.Get(mux.Vars(r)["id"])
	if !ok {
		respondError(w, http.StatusNotFound, "Event not found")
		return
	}
	respondJSON(w, http.StatusOK, s.present(e, s.settings.Get()))
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var in events.Input
	if err := decodeBody(w, r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updated, found, err := s.events.Edit(mux.Vars(r)["id"], in)
	if !found {
		respondError(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, s.present(updated, s.settings.Get()))
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if !s.events.Delete(mux.Vars(r)["id"]) {
		respondError(w, http.StatusNotFound, "Event not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.settings.Get())
}

// PUT /api/settings/{key} with {"value": ...}. String values go through the
// same parser as the CLI, so "monday" and "off" are accepted.
func (s *Server) handleSetSetting(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value any `json:"value"`
	}
	if err := decodeBody(w, r, &body); err != nil || body.Value == nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload, expected {\"value\": ...}")
		return
	}

	key := mux.Vars(r)["key"]
	var err error
	if raw, ok := body.Value.(string); ok {
		err = s.settings.SetFieldString(key, raw)
	} else {
		err = s.settings.SetField(key, body.Value)
	}

	switch {
	case errors.Is(err, models.ErrUnknownSetting):
		respondError(w, http.StatusNotFound, err.Error())
	case err != nil:
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondJSON(w, http.StatusOK, s.settings.Get())
	}
}

func (s *Server) handleResetSettings(w http.ResponseWriter, r *http.Request) {
	s.settings.Reset()
	respondJSON(w, http.StatusOK, s.settings.Get())
}

func (s *Server) handleWeekdays(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, utils.WeekdayLabels(s.settings.Get().WeekStartDay))
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
