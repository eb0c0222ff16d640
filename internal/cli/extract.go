package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/veridex/internal/extract"
)

var extractJSON bool

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract verifiable claims from a content file",
	Long: `Extract mines statistic, historical, and biographical claims from
content without verifying them. Useful for previewing what check --content
would verify.

Example:
  veridex extract article.html
  veridex extract draft.txt --json`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "print claims as JSON")
}

func runExtract(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read content: %w", err)
	}

	extractor := extract.NewPatternExtractor(extract.DefaultMaxClaims)
	claims := extractor.Extract(string(data))

	if extractJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(claims)
	}

	if len(claims) == 0 {
		fmt.Println("No verifiable claims found.")
		return nil
	}

	for i, c := range claims {
		fmt.Printf("%2d. [%s] %s\n", i+1, c.Type, c.Text)
	}

	return nil
}
