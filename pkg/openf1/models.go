package openf1

import "fmt"

// Record types for the OpenF1 endpoints the dashboard uses. Fields the API
// may return as null are pointers so a missing value is distinguishable
// from zero. Everything is transient; records live for one render only.

type Meeting struct {
	MeetingKey  int    `json:"meeting_key"`
	MeetingName string `json:"meeting_name"`
	Location    string `json:"location"`
	CountryName string `json:"country_name"`
	Year        int    `json:"year"`
}

// Label is the dropdown display text for a meeting.
func (m Meeting) Label() string {
	return fmt.Sprintf("%s - %s", m.MeetingName, m.Location)
}

type Session struct {
	SessionKey  int    `json:"session_key"`
	MeetingKey  int    `json:"meeting_key"`
	SessionName string `json:"session_name"`
	SessionType string `json:"session_type"`
	DateStart   string `json:"date_start"`
}

// Label is the dropdown display text for a session.
func (s Session) Label() string {
	return fmt.Sprintf("%s (%s)", s.SessionName, s.DateStart)
}

type Lap struct {
	SessionKey   int      `json:"session_key"`
	DriverNumber int      `json:"driver_number"`
	LapNumber    int      `json:"lap_number"`
	LapDuration  *float64 `json:"lap_duration"`
	IsPitOutLap  bool     `json:"is_pit_out_lap"`
}

type PitStop struct {
	SessionKey   int      `json:"session_key"`
	DriverNumber int      `json:"driver_number"`
	LapNumber    int      `json:"lap_number"`
	PitDuration  *float64 `json:"pit_duration"`
}

type Stint struct {
	SessionKey   int    `json:"session_key"`
	DriverNumber int    `json:"driver_number"`
	StintNumber  int    `json:"stint_number"`
	Compound     string `json:"compound"`
	LapStart     int    `json:"lap_start"`
	LapEnd       int    `json:"lap_end"`
}

type Driver struct {
	SessionKey   int    `json:"session_key"`
	DriverNumber int    `json:"driver_number"`
	NameAcronym  string `json:"name_acronym"`
	FullName     string `json:"full_name"`
	TeamName     string `json:"team_name"`
	TeamColour   string `json:"team_colour"`
}
