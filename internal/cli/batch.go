package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/veridex/internal/model"
	"github.com/ppiankov/veridex/internal/worker"
)

var (
	batchLang        string
	batchTimeout     time.Duration
	batchConcurrency int
	batchOutput      string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple claims from a file in parallel",
	Long: `Batch reads claims from a file (one per line) and verifies them
concurrently. Identical claim texts are served from the research cache, so
re-running a batch within the cache TTL costs no provider calls.

Example:
  veridex batch claims.txt
  veridex batch claims.txt --concurrency 8 --out verdicts.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchLang, "lang", "en", "2-letter language code")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch verification")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "number of concurrent workers")
	batchCmd.Flags().StringVar(&batchOutput, "out", "", "write verdicts as JSON to this file")
}

func runBatch(cmd *cobra.Command, args []string) error {
	claims, err := readClaims(args[0])
	if err != nil {
		return err
	}
	if len(claims) == 0 {
		return fmt.Errorf("no claims found in %s", args[0])
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Verifying %d claims with %d workers\n\n", len(claims), batchConcurrency)

	verdicts := make([]model.FactCheckResult, len(claims))
	pool := worker.NewPool(batchConcurrency)
	pool.Start(ctx)

	for i, claim := range claims {
		idx, text := i, claim
		pool.Submit(func(ctx context.Context) {
			verdict, err := a.checker.CheckFact(ctx, text, batchLang)
			if err != nil {
				verdicts[idx] = model.FactCheckResult{
					Claim:              text,
					Confidence:         model.ConfidenceLow,
					VerificationStatus: model.StatusUnknown,
					Recommendation:     model.RecommendationReview,
					Explanation:        fmt.Sprintf("Verification failed: %v", err),
				}
				return
			}
			verdicts[idx] = *verdict
		})
	}
	pool.Wait()

	counts := make(map[model.VerificationStatus]int)
	for _, v := range verdicts {
		counts[v.VerificationStatus]++
		fmt.Printf("[%-8s] %s\n", v.VerificationStatus, v.Claim)
	}

	fmt.Printf("\n%d verified, %d disputed, %d unknown\n",
		counts[model.StatusVerified], counts[model.StatusDisputed], counts[model.StatusUnknown])

	if batchOutput != "" {
		data, err := json.MarshalIndent(verdicts, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(batchOutput, data, 0644); err != nil {
			return fmt.Errorf("write verdicts: %w", err)
		}
		fmt.Fprintf(os.Stderr, "\nWrote verdicts: %s\n", batchOutput)
	}

	return nil
}

// readClaims reads one claim per line, skipping blanks and # comments
func readClaims(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open claims file: %w", err)
	}
	defer f.Close()

	var claims []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		claims = append(claims, line)
	}

	return claims, scanner.Err()
}
