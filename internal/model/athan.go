package model

type Prayer struct {
	Name   string // “FAJR”, “DHUHR”, …
	Time   string // “05:12”
	Period string // “AM” or “PM”
}

type AthanPageData struct {
	City    string
	Date    string // “AUGUST 5, 2025”
	Method  string
	Qibla   string // “58° ENE”
	Prayers []Prayer
}
