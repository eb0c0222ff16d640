package verify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/veridex/internal/extract"
	"github.com/ppiankov/veridex/internal/model"
	"github.com/ppiankov/veridex/internal/worker"
)

// Searcher is the research aggregator surface the fact checker consumes
type Searcher interface {
	Search(ctx context.Context, query, language string, sources ...model.SourceType) ([]model.ResultItem, error)
}

// FactChecker converts gathered evidence into a calibrated verdict per
// claim. Verdicts are transient: re-evaluated fresh on every call, never
// persisted.
type FactChecker struct {
	research   Searcher
	classifier Classifier
	extractor  extract.Extractor
	logger     *zap.Logger
	workers    int
}

// NewFactChecker creates a fact checker over the given aggregator
func NewFactChecker(cfg *model.Config, research Searcher, logger *zap.Logger) *FactChecker {
	workers := cfg.Concurrency.VerifyWorkers
	if workers <= 0 {
		workers = 3
	}

	return &FactChecker{
		research:   research,
		classifier: NewLexicalClassifier(),
		extractor:  extract.NewPatternExtractor(cfg.Research.MaxClaims),
		logger:     logger,
		workers:    workers,
	}
}

// WithClassifier swaps the evidence classifier (used by tests and future
// model-backed implementations)
func (c *FactChecker) WithClassifier(classifier Classifier) *FactChecker {
	c.classifier = classifier
	return c
}

// WithExtractor swaps the claim extractor
func (c *FactChecker) WithExtractor(extractor extract.Extractor) *FactChecker {
	c.extractor = extractor
	return c
}

// CheckFact verifies a single claim against aggregated evidence. A research
// failure or an empty evidence set degrades to the low-confidence unknown
// verdict; callers must treat "unknown" as needs-human-review, not as an
// error.
func (c *FactChecker) CheckFact(ctx context.Context, claim, language string) (*model.FactCheckResult, error) {
	if strings.TrimSpace(claim) == "" {
		return nil, fmt.Errorf("claim must not be empty")
	}

	results, err := c.research.Search(ctx, claim, language)
	if err != nil {
		c.logger.Warn("research failed, treating as no evidence",
			zap.String("claim", claim),
			zap.Error(err))
		results = nil
	}

	if len(results) == 0 {
		return &model.FactCheckResult{
			Claim:              claim,
			Confidence:         model.ConfidenceLow,
			VerificationStatus: model.StatusUnknown,
			Recommendation:     model.RecommendationReview,
			Explanation:        "No sources were found for this claim.",
		}, nil
	}

	var (
		supporting    []model.ResultItem
		contradicting []model.ResultItem
		neutral       int
	)
	for _, item := range results {
		switch c.classifier.Classify(claim, item, language) {
		case SentimentSupporting:
			supporting = append(supporting, item)
		case SentimentContradicting:
			contradicting = append(contradicting, item)
		default:
			neutral++
		}
	}

	confidence := confidenceFor(len(supporting), len(contradicting))
	status := statusFor(confidence, len(supporting), len(contradicting))

	verdict := &model.FactCheckResult{
		Claim:                claim,
		Confidence:           confidence,
		VerificationStatus:   status,
		SupportingSources:    sourceURLs(supporting),
		ContradictingSources: contradicting,
		Recommendation:       recommendationFor(status, confidence),
		Explanation: fmt.Sprintf("Checked %d sources: %d supporting, %d contradicting, %d neutral.",
			len(results), len(supporting), len(contradicting), neutral),
	}

	if status == model.StatusDisputed && len(contradicting) > 0 {
		verdict.SuggestedCorrection = SuggestCorrection(claim, contradicting)
	}

	c.logger.Info("fact check complete",
		zap.String("claim", claim),
		zap.String("status", string(status)),
		zap.String("confidence", string(confidence)))

	return verdict, nil
}

// VerifyClaims maps CheckFact over each claim with bounded concurrency.
// Verdicts are returned in claim order. There is no cross-claim interaction
// beyond whatever the aggregator's cache provides per distinct claim text.
func (c *FactChecker) VerifyClaims(ctx context.Context, claims []string, language string) []model.FactCheckResult {
	verdicts := make([]model.FactCheckResult, len(claims))

	pool := worker.NewPool(c.workers)
	pool.Start(ctx)

	for i, claim := range claims {
		idx, text := i, claim
		verdicts[idx] = model.FactCheckResult{
			Claim:              text,
			Confidence:         model.ConfidenceLow,
			VerificationStatus: model.StatusUnknown,
			Recommendation:     model.RecommendationReview,
			Explanation:        "Verification did not run for this claim.",
		}
		pool.Submit(func(ctx context.Context) {
			verdict, err := c.CheckFact(ctx, text, language)
			if err != nil {
				verdicts[idx].Explanation = fmt.Sprintf("Verification failed: %v", err)
				return
			}
			verdicts[idx] = *verdict
		})
	}

	pool.Wait()
	return verdicts
}

// CheckContent extracts claims from raw content and verifies each one
func (c *FactChecker) CheckContent(ctx context.Context, content, language string) ([]model.Claim, []model.FactCheckResult, error) {
	claims := c.extractor.Extract(content)
	if len(claims) == 0 {
		return nil, nil, nil
	}

	texts := make([]string, len(claims))
	for i, claim := range claims {
		texts[i] = claim.Text
	}

	return claims, c.VerifyClaims(ctx, texts, language), nil
}

// ExtractClaims exposes the claim extractor for callers that only want the
// preprocessing step
func (c *FactChecker) ExtractClaims(content string) []model.Claim {
	return c.extractor.Extract(content)
}

// confidenceFor applies the confidence table. Rows are evaluated in order;
// the first match wins, so the table is total for any count pair.
func confidenceFor(supporting, contradicting int) model.Confidence {
	total := supporting + contradicting
	if total == 0 {
		return model.ConfidenceLow
	}

	ratio := float64(supporting) / float64(total)
	switch {
	case ratio >= 0.8 && supporting >= 3:
		return model.ConfidenceHigh
	case ratio >= 0.6 && supporting >= 2:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}

// statusFor applies the verification-status table
func statusFor(confidence model.Confidence, supporting, contradicting int) model.VerificationStatus {
	switch {
	case confidence == model.ConfidenceHigh && supporting > contradicting:
		return model.StatusVerified
	case contradicting > supporting:
		return model.StatusDisputed
	default:
		return model.StatusUnknown
	}
}

// recommendationFor maps (status, confidence) to the publication-gate string
func recommendationFor(status model.VerificationStatus, confidence model.Confidence) string {
	switch {
	case status == model.StatusVerified && confidence == model.ConfidenceHigh:
		return model.RecommendationUse
	case status == model.StatusDisputed:
		return model.RecommendationReject
	default:
		return model.RecommendationReview
	}
}

func sourceURLs(items []model.ResultItem) []string {
	var urls []string
	for _, item := range items {
		if item.URL != "" {
			urls = append(urls, item.URL)
		}
	}
	return urls
}
