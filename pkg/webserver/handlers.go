package webserver

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"f1strategydashboard/pkg/apierror"
	"f1strategydashboard/pkg/charts"
	"f1strategydashboard/pkg/process"
)

// availableYears are the seasons the OpenF1 API has data for.
var availableYears = []int{2023, 2024, 2025}

type meetingOption struct {
	MeetingKey int    `json:"meeting_key"`
	Label      string `json:"label"`
	Year       int    `json:"year"`
}

type sessionOption struct {
	SessionKey  int    `json:"session_key"`
	Label       string `json:"label"`
	SessionType string `json:"session_type"`
}

func (m *Manager) handleYears(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, availableYears)
}

func (m *Manager) handleCountries(w http.ResponseWriter, r *http.Request) {
	year, err := intParam(r, "year")
	if err != nil {
		writeError(w, err)
		return
	}

	meetings, err := m.fetcher.Meetings(r.Context(), year, "")
	if err != nil {
		writeError(w, errors.Wrap(err, "fetching meetings"))
		return
	}

	seen := map[string]bool{}
	countries := []string{}
	for _, meeting := range meetings {
		if meeting.CountryName == "" || seen[meeting.CountryName] {
			continue
		}
		seen[meeting.CountryName] = true
		countries = append(countries, meeting.CountryName)
	}
	sort.Strings(countries)

	writeJSON(w, http.StatusOK, countries)
}

func (m *Manager) handleMeetings(w http.ResponseWriter, r *http.Request) {
	year, err := intParam(r, "year")
	if err != nil {
		writeError(w, err)
		return
	}
	country := r.URL.Query().Get("country_name")

	meetings, err := m.fetcher.Meetings(r.Context(), year, country)
	if err != nil {
		writeError(w, errors.Wrap(err, "fetching meetings"))
		return
	}

	seen := map[int]bool{}
	options := []meetingOption{}
	for _, meeting := range meetings {
		if meeting.MeetingKey == 0 || seen[meeting.MeetingKey] {
			continue
		}
		seen[meeting.MeetingKey] = true
		options = append(options, meetingOption{
			MeetingKey: meeting.MeetingKey,
			Label:      meeting.Label(),
			Year:       meeting.Year,
		})
	}

	// newest meetings first
	sort.Slice(options, func(i, j int) bool {
		return options[i].MeetingKey > options[j].MeetingKey
	})

	params := ParseParams(r)
	writeJSON(w, http.StatusOK, NewResponse(paginate(options, params), params.Page, params.PerPage, len(options)))
}

func (m *Manager) handleSessions(w http.ResponseWriter, r *http.Request) {
	meetingKey, err := intParam(r, "meeting_key")
	if err != nil {
		writeError(w, err)
		return
	}

	sessions, err := m.fetcher.Sessions(r.Context(), meetingKey)
	if err != nil {
		writeError(w, errors.Wrap(err, "fetching sessions"))
		return
	}

	seen := map[int]bool{}
	options := []sessionOption{}
	for _, session := range sessions {
		if session.SessionKey == 0 || seen[session.SessionKey] {
			continue
		}
		seen[session.SessionKey] = true
		options = append(options, sessionOption{
			SessionKey:  session.SessionKey,
			Label:       session.Label(),
			SessionType: session.SessionType,
		})
	}

	writeJSON(w, http.StatusOK, options)
}

func (m *Manager) handleLapsChart(w http.ResponseWriter, r *http.Request) {
	sessionKey, err := intParam(r, "session_key")
	if err != nil {
		writeError(w, err)
		return
	}

	drivers, err := m.fetcher.Drivers(r.Context(), sessionKey)
	if err != nil {
		writeError(w, errors.Wrap(err, "fetching drivers"))
		return
	}
	laps, err := m.fetcher.Laps(r.Context(), sessionKey)
	if err != nil {
		writeError(w, errors.Wrap(err, "fetching laps"))
		return
	}

	cleaned, err := process.CleanLaps(laps)
	if err != nil {
		writeError(w, err)
		return
	}

	fig := charts.LapTimes(cleaned, process.AcronymIndex(drivers), process.BuildColorMap(drivers))
	writeJSON(w, http.StatusOK, fig)
}

func (m *Manager) handleStintsChart(w http.ResponseWriter, r *http.Request) {
	sessionKey, err := intParam(r, "session_key")
	if err != nil {
		writeError(w, err)
		return
	}

	drivers, err := m.fetcher.Drivers(r.Context(), sessionKey)
	if err != nil {
		writeError(w, errors.Wrap(err, "fetching drivers"))
		return
	}
	stints, err := m.fetcher.Stints(r.Context(), sessionKey)
	if err != nil {
		writeError(w, errors.Wrap(err, "fetching stints"))
		return
	}

	ranges, err := process.BuildStints(stints)
	if err != nil {
		writeError(w, err)
		return
	}

	fig := charts.TireStrategy(ranges, process.AcronymIndex(drivers), process.BuildColorMap(drivers))
	writeJSON(w, http.StatusOK, fig)
}

func (m *Manager) handlePitsChart(w http.ResponseWriter, r *http.Request) {
	sessionKey, err := intParam(r, "session_key")
	if err != nil {
		writeError(w, err)
		return
	}

	drivers, err := m.fetcher.Drivers(r.Context(), sessionKey)
	if err != nil {
		writeError(w, errors.Wrap(err, "fetching drivers"))
		return
	}
	pits, err := m.fetcher.PitStops(r.Context(), sessionKey)
	if err != nil {
		writeError(w, errors.Wrap(err, "fetching pit stops"))
		return
	}

	cleaned, err := process.CleanPitStops(pits)
	if err != nil {
		writeError(w, err)
		return
	}

	fig := charts.PitStops(cleaned, process.AcronymIndex(drivers), process.BuildColorMap(drivers))
	writeJSON(w, http.StatusOK, fig)
}

func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, apierror.BadInput(name + " is required")
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierror.BadInput(name + " must be a number")
	}
	return value, nil
}

func paginate[T any](items []T, params Params) []T {
	if params.Offset >= len(items) {
		return []T{}
	}
	end := params.Offset + params.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[params.Offset:end]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("error encoding response: %s\n", err)
	}
}

type errorBody struct {
	Kind    apierror.Kind `json:"kind"`
	Message string        `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	log.Printf("request failed: %s\n", err.Error())

	kind, ok := apierror.KindOf(err)
	if !ok {
		kind = "internal"
	}
	writeJSON(w, apierror.HTTPStatus(err), map[string]errorBody{
		"error": {Kind: kind, Message: err.Error()},
	})
}
