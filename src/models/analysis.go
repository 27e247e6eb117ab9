package models

// SpendingAnalysis is the JSON shape the statement model is instructed to
// return. Field names match the prompt exactly.
type SpendingAnalysis struct {
	Locations []AnalyzedLocation `json:"locations"`
	Summary   AnalysisSummary    `json:"summary"`
}

type AnalyzedLocation struct {
	Name         string                `json:"name"`
	TotalSpent   float64               `json:"totalSpent"`
	Transactions []AnalyzedTransaction `json:"transactions"`
	Address      string                `json:"address,omitempty"`
	City         string                `json:"city,omitempty"`
	State        string                `json:"state,omitempty"`
	Zip          string                `json:"zip,omitempty"`
}

type AnalyzedTransaction struct {
	Date        string  `json:"date"`
	Time        string  `json:"time,omitempty"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

type AnalysisSummary struct {
	TotalSpent       float64   `json:"totalSpent"`
	TransactionCount int       `json:"transactionCount"`
	DateRange        DateRange `json:"dateRange"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
