package entities

// ComplexSummary backs the complex picker: one row per parking complex with
// spot counts broken down by status.
type ComplexSummary struct {
	Name      string `json:"name"`
	Total     int    `json:"total"`
	Available int    `json:"available"`
	Reserved  int    `json:"reserved"`
	Occupied  int    `json:"occupied"`
}
