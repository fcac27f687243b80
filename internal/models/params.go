package models

// Query holds the query parameters understood by the logger API.
type Query struct {
	OpMode string
	Run    string
	Suffix string
	Base   string
}
