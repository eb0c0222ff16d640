package verify

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/ppiankov/veridex/internal/model"
)

// fakeSearcher returns canned evidence per query
type fakeSearcher struct {
	results map[string][]model.ResultItem
	err     error
	calls   int
}

func (f *fakeSearcher) Search(ctx context.Context, query, language string, sources ...model.SourceType) ([]model.ResultItem, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results[query], nil
}

func newTestChecker(searcher Searcher) *FactChecker {
	return NewFactChecker(model.DefaultConfig(), searcher, zap.NewNop())
}

func TestCheckFact_NoEvidenceShortCircuit(t *testing.T) {
	checker := newTestChecker(&fakeSearcher{results: map[string][]model.ResultItem{}})

	verdict, err := checker.CheckFact(context.Background(), "digital nomad visa Portugal 2024", "en")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if verdict.Confidence != model.ConfidenceLow {
		t.Errorf("Expected low confidence, got %s", verdict.Confidence)
	}
	if verdict.VerificationStatus != model.StatusUnknown {
		t.Errorf("Expected unknown status, got %s", verdict.VerificationStatus)
	}
	if verdict.Recommendation != model.RecommendationReview {
		t.Errorf("Expected needs-review recommendation, got %s", verdict.Recommendation)
	}
	if verdict.SuggestedCorrection != "" {
		t.Error("Expected no correction suggestion without evidence")
	}
	if !strings.Contains(verdict.Explanation, "No sources") {
		t.Errorf("Expected explanation to state no sources found, got %s", verdict.Explanation)
	}
}

func TestCheckFact_SearchFailureDegradesToUnknown(t *testing.T) {
	checker := newTestChecker(&fakeSearcher{err: fmt.Errorf("boom")})

	verdict, err := checker.CheckFact(context.Background(), "some claim text", "en")
	if err != nil {
		t.Fatalf("Expected graceful degradation, got error %v", err)
	}
	if verdict.VerificationStatus != model.StatusUnknown {
		t.Errorf("Expected unknown status on research failure, got %s", verdict.VerificationStatus)
	}
}

func TestCheckFact_WellSupportedClaimVerified(t *testing.T) {
	claim := "304 million expatriates worldwide"

	var evidence []model.ResultItem
	for i := 0; i < 5; i++ {
		evidence = append(evidence, model.ResultItem{
			Title:          fmt.Sprintf("Report %d: 304 million expatriates counted", i+1),
			URL:            fmt.Sprintf("https://example.org/report-%d", i+1),
			Excerpt:        "The worldwide expatriate population reached 304 million.",
			RelevanceScore: 80,
		})
	}

	checker := newTestChecker(&fakeSearcher{results: map[string][]model.ResultItem{claim: evidence}})

	verdict, err := checker.CheckFact(context.Background(), claim, "en")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if verdict.Confidence != model.ConfidenceHigh {
		t.Errorf("Expected high confidence, got %s", verdict.Confidence)
	}
	if verdict.VerificationStatus != model.StatusVerified {
		t.Errorf("Expected verified status, got %s", verdict.VerificationStatus)
	}
	if verdict.Recommendation != model.RecommendationUse {
		t.Errorf("Expected OK-to-use recommendation, got %s", verdict.Recommendation)
	}
	if len(verdict.SupportingSources) != 5 {
		t.Errorf("Expected 5 supporting sources, got %d", len(verdict.SupportingSources))
	}
}

func TestCheckFact_DisputedClaimWithCorrection(t *testing.T) {
	claim := "expatriate population is 150 million"

	evidence := []model.ResultItem{
		{
			Title:   "Expatriate population estimated at 150 million by one outlet",
			URL:     "https://example.org/support",
			Excerpt: "One report puts the expatriate population at 150 million.",
		},
	}
	for i := 0; i < 4; i++ {
		evidence = append(evidence, model.ResultItem{
			Title:   "Official statistics show the cited figure is incorrect",
			URL:     fmt.Sprintf("https://example.org/contra-%d", i+1),
			Excerpt: "That claim is false; the expatriate population is 304 million.",
		})
	}

	checker := newTestChecker(&fakeSearcher{results: map[string][]model.ResultItem{claim: evidence}})

	verdict, err := checker.CheckFact(context.Background(), claim, "en")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if verdict.VerificationStatus != model.StatusDisputed {
		t.Errorf("Expected disputed status, got %s", verdict.VerificationStatus)
	}
	if verdict.Recommendation != model.RecommendationReject {
		t.Errorf("Expected do-not-use recommendation, got %s", verdict.Recommendation)
	}
	if verdict.SuggestedCorrection == "" {
		t.Fatal("Expected a correction suggestion for disputed numeric claim")
	}
	if !strings.Contains(verdict.SuggestedCorrection, "304") {
		t.Errorf("Expected correction to substitute 304, got '%s'", verdict.SuggestedCorrection)
	}
	if len(verdict.ContradictingSources) != 4 {
		t.Errorf("Expected 4 contradicting sources, got %d", len(verdict.ContradictingSources))
	}
}

func TestCheckFact_EmptyClaimRejected(t *testing.T) {
	checker := newTestChecker(&fakeSearcher{})

	if _, err := checker.CheckFact(context.Background(), "   ", "en"); err == nil {
		t.Error("Expected error for empty claim")
	}
}

func TestConfidenceTable(t *testing.T) {
	cases := []struct {
		supporting    int
		contradicting int
		want          model.Confidence
	}{
		{0, 0, model.ConfidenceLow},
		{5, 0, model.ConfidenceHigh},  // ratio 1.0, supporting >= 3
		{3, 0, model.ConfidenceHigh},  // boundary: exactly 3 supporting
		{2, 0, model.ConfidenceMedium}, // ratio 1.0 but only 2 supporting
		{4, 1, model.ConfidenceHigh},  // ratio 0.8
		{3, 1, model.ConfidenceMedium}, // ratio 0.75
		{2, 1, model.ConfidenceMedium}, // ratio 0.66
		{1, 4, model.ConfidenceLow},
		{0, 5, model.ConfidenceLow},
		{1, 0, model.ConfidenceLow}, // ratio 1.0 but only 1 supporting
	}

	for _, tc := range cases {
		got := confidenceFor(tc.supporting, tc.contradicting)
		if got != tc.want {
			t.Errorf("confidenceFor(%d, %d) = %s, want %s", tc.supporting, tc.contradicting, got, tc.want)
		}
	}
}

func TestStatusTable(t *testing.T) {
	cases := []struct {
		confidence    model.Confidence
		supporting    int
		contradicting int
		want          model.VerificationStatus
	}{
		{model.ConfidenceHigh, 5, 0, model.StatusVerified},
		{model.ConfidenceHigh, 4, 1, model.StatusVerified},
		{model.ConfidenceLow, 1, 4, model.StatusDisputed},
		{model.ConfidenceMedium, 2, 3, model.StatusDisputed},
		{model.ConfidenceLow, 0, 0, model.StatusUnknown},
		{model.ConfidenceMedium, 2, 1, model.StatusUnknown},
		{model.ConfidenceLow, 2, 2, model.StatusUnknown},
	}

	for _, tc := range cases {
		got := statusFor(tc.confidence, tc.supporting, tc.contradicting)
		if got != tc.want {
			t.Errorf("statusFor(%s, %d, %d) = %s, want %s", tc.confidence, tc.supporting, tc.contradicting, got, tc.want)
		}
	}
}

func TestVerifyClaims_PreservesOrder(t *testing.T) {
	results := map[string][]model.ResultItem{}
	var claims []string
	for i := 0; i < 8; i++ {
		claim := fmt.Sprintf("claim number %d about expatriates", i)
		claims = append(claims, claim)
		results[claim] = nil // Zero evidence: every verdict is unknown
	}

	checker := newTestChecker(&fakeSearcher{results: results})

	verdicts := checker.VerifyClaims(context.Background(), claims, "en")

	if len(verdicts) != len(claims) {
		t.Fatalf("Expected %d verdicts, got %d", len(claims), len(verdicts))
	}
	for i, v := range verdicts {
		if v.Claim != claims[i] {
			t.Errorf("Verdict %d out of order: got claim '%s'", i, v.Claim)
		}
	}
}

func TestCheckContent_ExtractsAndVerifies(t *testing.T) {
	content := "There are 304 million expatriates living and working abroad today."

	searcher := &fakeSearcher{results: map[string][]model.ResultItem{}}
	checker := newTestChecker(searcher)

	claims, verdicts, err := checker.CheckContent(context.Background(), content, "en")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(claims) == 0 {
		t.Fatal("Expected claims to be extracted from content")
	}
	if len(verdicts) != len(claims) {
		t.Errorf("Expected one verdict per claim, got %d for %d claims", len(verdicts), len(claims))
	}
	if searcher.calls != len(claims) {
		t.Errorf("Expected one search per claim, got %d calls", searcher.calls)
	}
}
