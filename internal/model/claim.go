package model

// Claim represents a factual assertion extracted from generated content
type Claim struct {
	Type ClaimType `json:"type"`
	Text string    `json:"text"` // The matched assertion text

	// Statistic claims
	Value   string `json:"value,omitempty"`   // The numeric value (e.g., "304 million")
	Context string `json:"context,omitempty"` // Trailing context after the number

	// Historical claims
	Date  string `json:"date,omitempty"`  // Year or year range (e.g., "1998", "1914-1918")
	Event string `json:"event,omitempty"` // Event description

	// Biographical claims
	Person string `json:"person,omitempty"` // Proper name
	Role   string `json:"role,omitempty"`   // Role description after the copular verb
}

// ClaimType categorizes the nature of the claim
type ClaimType string

const (
	ClaimTypeStatistic    ClaimType = "statistic"    // Numeric/statistical assertions
	ClaimTypeHistorical   ClaimType = "historical"   // Dated events
	ClaimTypeBiographical ClaimType = "biographical" // Person-role statements
)
