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
	searchLang    string
	searchTimeout time.Duration
	searchJSON    bool
	searchSources []string
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Aggregate ranked evidence for a query",
	Long: `Search queries every configured provider, merges and deduplicates
the results, and prints them ranked by relevance. Repeat searches within the
cache TTL are served from the cache without calling any provider.

Example:
  veridex search "digital nomad visa Portugal 2024"
  veridex search "remittance flows 2023" --lang es --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchLang, "lang", "en", "2-letter language code")
	searchCmd.Flags().DurationVar(&searchTimeout, "timeout", 60*time.Second, "overall search timeout")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print results as JSON")
	searchCmd.Flags().StringSliceVar(&searchSources, "source", nil, "restrict to sources (answer_engine, news_index)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	var sources []model.SourceType
	for _, s := range searchSources {
		sources = append(sources, model.SourceType(s))
	}

	results, err := a.aggregator.Search(ctx, query, searchLang, sources...)
	if err != nil {
		return err
	}

	if searchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	for i, r := range results {
		fmt.Printf("%2d. [%3d] %s\n", i+1, r.RelevanceScore, r.Title)
		if r.URL != "" {
			fmt.Printf("    %s (%s)\n", r.URL, r.SourceType)
		} else {
			fmt.Printf("    (%s)\n", r.SourceType)
		}
	}

	return nil
}
