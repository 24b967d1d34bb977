package openf1

import "time"

const (
	providerName       = "openf1"
	defaultBaseURL     = "https://api.openf1.org/v1"
	defaultHTTPTimeout = 15 * time.Second
)

type sessionResponse struct {
	SessionKey  int    `json:"session_key"`
	SessionName string `json:"session_name"`
	SessionType string `json:"session_type"`
	MeetingKey  int    `json:"meeting_key"`
	DateStart   string `json:"date_start"`
	Location    string `json:"location"`
	CountryName string `json:"country_name"`
	Year        int    `json:"year"`
}

type lapResponse struct {
	DriverNumber int      `json:"driver_number"`
	LapNumber    int      `json:"lap_number"`
	DateStart    *string  `json:"date_start"`
	LapDuration  *float64 `json:"lap_duration"`
}

type carDataResponse struct {
	Date         string  `json:"date"`
	DriverNumber int     `json:"driver_number"`
	Speed        float64 `json:"speed"`
}
