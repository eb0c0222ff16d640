package verify

import (
	"testing"

	"github.com/ppiankov/veridex/internal/model"
)

func TestSuggestCorrection_SubstitutesMostFrequentNumber(t *testing.T) {
	claim := "The program admitted 150 applicants last year"
	contradicting := []model.ResultItem{
		{Title: "Figures disputed", Excerpt: "The program admitted 320 applicants."},
		{Title: "Count was wrong", Excerpt: "Official records list 320 admissions."},
		{Title: "Another correction", Excerpt: "A late tally suggested 310, later revised to 320."},
	}

	got := SuggestCorrection(claim, contradicting)

	want := "The program admitted 320 applicants last year"
	if got != want {
		t.Errorf("Expected '%s', got '%s'", want, got)
	}
}

func TestSuggestCorrection_NoNumberInClaim(t *testing.T) {
	claim := "The program was wildly successful"
	contradicting := []model.ResultItem{
		{Excerpt: "Enrollment fell to 12 participants."},
	}

	got := SuggestCorrection(claim, contradicting)

	if got != genericCorrection {
		t.Errorf("Expected generic correction, got '%s'", got)
	}
}

func TestSuggestCorrection_SameNumberYieldsGenericMessage(t *testing.T) {
	claim := "The fund holds 500 million in assets"
	contradicting := []model.ResultItem{
		{Excerpt: "The fund does hold 500 million, but the assets are encumbered."},
	}

	got := SuggestCorrection(claim, contradicting)

	if got != genericCorrection {
		t.Errorf("Expected generic correction when numbers agree, got '%s'", got)
	}
}

func TestSuggestCorrection_NoNumbersInSources(t *testing.T) {
	claim := "The fund holds 500 million in assets"
	contradicting := []model.ResultItem{
		{Excerpt: "The fund's holdings are overstated."},
	}

	got := SuggestCorrection(claim, contradicting)

	if got != genericCorrection {
		t.Errorf("Expected generic correction without source numbers, got '%s'", got)
	}
}

func TestMostFrequentNumber_TieGoesToFirstSeen(t *testing.T) {
	if got := mostFrequentNumber("first 42 then 99 then 99 and 42"); got != "42" {
		t.Errorf("Expected tie to go to first-seen number, got '%s'", got)
	}
}
