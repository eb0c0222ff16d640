package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/veridex/internal/model"
)

var (
	checkLang    string
	checkTimeout time.Duration
	checkJSON    bool
	checkContent string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [claim]",
	Short: "Verify a claim (or all claims in a content file) against gathered evidence",
	Long: `Check gathers evidence for a claim and returns a calibrated verdict:
verification status (verified, disputed, unknown), confidence, supporting
and contradicting sources, and - for disputed numeric claims - a suggested
correction.

With --content, claims are first extracted from the file and each one is
verified.

Example:
  veridex check "304 million expatriates worldwide"
  veridex check --content article.html --lang en --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkLang, "lang", "en", "2-letter language code")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall verification timeout")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print verdicts as JSON")
	checkCmd.Flags().StringVar(&checkContent, "content", "", "extract and verify claims from this file instead")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkContent == "" && len(args) == 0 {
		return fmt.Errorf("provide a claim or --content <file>")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	var verdicts []model.FactCheckResult

	if checkContent != "" {
		data, err := os.ReadFile(checkContent)
		if err != nil {
			return fmt.Errorf("read content: %w", err)
		}

		claims, results, err := a.checker.CheckContent(ctx, string(data), checkLang)
		if err != nil {
			return err
		}
		if len(claims) == 0 {
			fmt.Println("No verifiable claims found in content.")
			return nil
		}
		verdicts = results
	} else {
		verdict, err := a.checker.CheckFact(ctx, args[0], checkLang)
		if err != nil {
			return err
		}
		verdicts = []model.FactCheckResult{*verdict}
	}

	if checkJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(verdicts)
	}

	for _, v := range verdicts {
		printVerdict(v)
	}

	return nil
}

func printVerdict(v model.FactCheckResult) {
	fmt.Printf("Claim:          %s\n", v.Claim)
	fmt.Printf("Status:         %s (%s confidence)\n", v.VerificationStatus, v.Confidence)
	fmt.Printf("Recommendation: %s\n", v.Recommendation)
	fmt.Printf("Evidence:       %s\n", v.Explanation)
	for _, url := range v.SupportingSources {
		fmt.Printf("  + %s\n", url)
	}
	for _, item := range v.ContradictingSources {
		fmt.Printf("  - %s\n", item.URL)
	}
	if v.SuggestedCorrection != "" {
		fmt.Printf("Correction:     %s\n", v.SuggestedCorrection)
	}
	fmt.Println()
}
