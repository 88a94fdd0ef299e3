package model

// ImportResult summarises a spreadsheet import run.
type ImportResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  int      `json:"errors"`
	Details []string `json:"details,omitempty"`
}

// GenitiveResult summarises a country genitive import run.
type GenitiveResult struct {
	Updated  int `json:"updated"`
	NotFound int `json:"not_found"`
}

// Defaults used when a spreadsheet row names no country or category.
const (
	FallbackCountry  = "Неизвестно"
	FallbackCategory = "Другое"
)
