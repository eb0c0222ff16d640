package model

import "time"

// SourceType identifies the provider category a result originated from
type SourceType string

const (
	SourceAnswerEngine SourceType = "answer_engine" // Aggregated AI answer with citations
	SourceNewsIndex    SourceType = "news_index"    // Keyword search over a news index
)

// ResultItem represents one piece of evidence returned by a research search
type ResultItem struct {
	SourceType     SourceType `json:"source_type"`
	Title          string     `json:"title"`
	URL            string     `json:"url"`
	Excerpt        string     `json:"excerpt,omitempty"`
	PublishedDate  *time.Time `json:"published_date,omitempty"`
	RelevanceScore int        `json:"relevance_score"` // 0-100
}

// Confidence is a coarse measure of how well-supported a claim is
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// VerificationStatus is the decision outcome gating downstream publication
type VerificationStatus string

const (
	StatusVerified VerificationStatus = "verified"
	StatusDisputed VerificationStatus = "disputed"
	StatusUnknown  VerificationStatus = "unknown"
)

// Recommendation strings returned to the publication gate
const (
	RecommendationUse    = "OK to use"
	RecommendationReject = "Do not use"
	RecommendationReview = "Needs review"
)

// FactCheckResult is the verdict object returned per claim.
// It is a transient decision artifact and is never persisted.
type FactCheckResult struct {
	Claim                string             `json:"claim"`
	Confidence           Confidence         `json:"confidence"`
	VerificationStatus   VerificationStatus `json:"verification_status"`
	SupportingSources    []string           `json:"supporting_sources"`
	ContradictingSources []ResultItem       `json:"contradicting_sources"`
	Recommendation       string             `json:"recommendation"`
	Explanation          string             `json:"explanation"`
	SuggestedCorrection  string             `json:"suggested_correction,omitempty"`
}
