package internalhttp

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/s1290025/worldtime-calendar/internal/colors"
	"github.com/s1290025/worldtime-calendar/internal/ics"
	"github.com/s1290025/worldtime-calendar/internal/layout"
	"github.com/s1290025/worldtime-calendar/internal/session"
	"github.com/s1290025/worldtime-calendar/internal/storage"
	"github.com/s1290025/worldtime-calendar/internal/timezone"
	log "github.com/sirupsen/logrus"
)

const (
	errMissingParameter = "missing required parameter"
	errInvalidBody      = "invalid request body"
	errSessionNotFound  = "session not found"

	exportPastWindow   = 30 * 24 * time.Hour
	exportFutureWindow = 90 * 24 * time.Hour
)

func (s *Server) addEvent(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var e storage.Event
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, errInvalidBody)
		return
	}
	id, err := s.app.CreateEvent(r.Context(), e)
	if err != nil {
		writeError(w, err)
		return
	}
	e.ID = id
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	var e storage.Event
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, errInvalidBody)
		return
	}
	if err := s.app.UpdateEvent(r.Context(), pathParams["id"], e); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": pathParams["id"]})
}

func (s *Server) removeEvent(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	if err := s.app.RemoveEvent(r.Context(), pathParams["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) dayGrid(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	q := r.URL.Query()
	calendarID, date, tz := q.Get("calendar"), q.Get("date"), q.Get("tz")
	if calendarID == "" || date == "" || tz == "" {
		writeErrorMessage(w, http.StatusBadRequest, errMissingParameter)
		return
	}
	grid, err := s.app.BuildDayGrid(r.Context(), calendarID, date, tz)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grid)
}

func (s *Server) multiZoneGrid(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	q := r.URL.Query()
	calendarID, date := q.Get("calendar"), q.Get("date")
	baseline, zoneList := q.Get("baseline"), q.Get("zones")
	if calendarID == "" || date == "" || baseline == "" || zoneList == "" {
		writeErrorMessage(w, http.StatusBadRequest, errMissingParameter)
		return
	}
	grid, err := s.app.BuildMultiZoneGrid(r.Context(), calendarID, date, baseline, strings.Split(zoneList, ","))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grid)
}

func (s *Server) monthGrid(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	q := r.URL.Query()
	calendarID, month, tz := q.Get("calendar"), q.Get("month"), q.Get("tz")
	if calendarID == "" || month == "" || tz == "" {
		writeErrorMessage(w, http.StatusBadRequest, errMissingParameter)
		return
	}
	grid, err := s.app.BuildMonthGrid(r.Context(), calendarID, month, tz)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grid)
}

func (s *Server) listTimezones(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	writeJSON(w, http.StatusOK, timezone.ByCountry())
}

func (s *Server) listCountries(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	writeJSON(w, http.StatusOK, timezone.Countries())
}

func (s *Server) addCalendar(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req struct {
		Name      string `json:"name"`
		CreatedBy string `json:"createdBy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeErrorMessage(w, http.StatusBadRequest, errInvalidBody)
		return
	}
	c, err := s.app.CreateCalendar(r.Context(), req.Name, req.CreatedBy, s.baseURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) listCalendars(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	calendars, err := s.app.ListCalendars(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, calendars)
}

func (s *Server) getCalendar(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	c, err := s.app.GetCalendar(r.Context(), pathParams["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) addParticipant(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeErrorMessage(w, http.StatusBadRequest, errInvalidBody)
		return
	}
	p, err := s.app.JoinCalendar(r.Context(), pathParams["id"], req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) listParticipants(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	participants, err := s.app.ListParticipants(r.Context(), pathParams["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, participants)
}

func (s *Server) exportCalendar(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	c, err := s.app.GetCalendar(r.Context(), pathParams["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	now := time.Now().UTC()
	from, to := now.Add(-exportPastWindow), now.Add(exportFutureWindow)
	if v := r.URL.Query().Get("from"); v != "" {
		if from, err = time.Parse(time.RFC3339, v); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "invalid from timestamp")
			return
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if to, err = time.Parse(time.RFC3339, v); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "invalid to timestamp")
			return
		}
	}
	events, err := s.app.Storage.GetEventsForRange(r.Context(), c.ID, from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+ics.Filename(c))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(ics.Export(c, events))); err != nil {
		log.Errorf("failed to write ics export: %v", err)
	}
}

func (s *Server) addSession(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var u session.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil || u.Name == "" {
		writeErrorMessage(w, http.StatusBadRequest, errInvalidBody)
		return
	}
	if u.Timezone != "" {
		if _, err := s.app.Timezone.ToLocal(time.Now(), u.Timezone); err != nil {
			writeError(w, err)
			return
		}
	}
	if u.Color == "" {
		u.Color = colors.Random()
	}
	token := s.sessions.Save(u)
	writeJSON(w, http.StatusCreated, map[string]any{
		"token":     token,
		"user":      u,
		"expiresIn": session.Duration.Seconds(),
	})
}

func (s *Server) getSession(w http.ResponseWriter, _ *http.Request, pathParams map[string]string) {
	token := pathParams["token"]
	u, ok := s.sessions.Get(token)
	if !ok {
		writeErrorMessage(w, http.StatusNotFound, errSessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user":      u,
		"expiresIn": s.sessions.Remaining(token).Seconds(),
	})
}

func (s *Server) removeSession(w http.ResponseWriter, _ *http.Request, pathParams map[string]string) {
	s.sessions.Delete(pathParams["token"])
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, timezone.ErrInvalidTimezone),
		errors.Is(err, layout.ErrInvalidInterval),
		errors.Is(err, storage.ErrIncorrectEventTime),
		errors.Is(err, storage.ErrIncorrectStartDate):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrNotFoundEvent), errors.Is(err, storage.ErrNotFoundCalendar):
		writeErrorMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrDuplicateEventID), errors.Is(err, storage.ErrDuplicateCalendarID):
		writeErrorMessage(w, http.StatusConflict, err.Error())
	default:
		log.Errorf("request failed: %v", err)
		writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
