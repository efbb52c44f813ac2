// Package categorize handles expense categorization commands
package categorize

import (
	"fmt"
	"strings"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/internal/categorizer"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"

	"github.com/spf13/cobra"
)

var (
	explain    bool
	addKeyword string
)

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:     "classify [text...]",
	Aliases: []string{"categorize"},
	Short:   "Classify expense text into a spending category",
	Long: `Classify expense text using the keyword table first, then the configured model.

Use --explain to see what each strategy returned, and --add-keyword to teach the
keyword table a new word (format "Category:keyword").`,
	RunE: categorizeFunc,
}

// Result is the rendered classification.
type Result struct {
	Text       string                       `json:"text" yaml:"text"`
	Category   string                       `json:"category" yaml:"category"`
	Model      string                       `json:"model" yaml:"model"`
	Strategies []categorizer.StrategyResult `json:"strategies,omitempty" yaml:"strategies,omitempty"`
	Attempts   string                       `json:"attempts,omitempty" yaml:"attempts,omitempty"`
	Matched    string                       `json:"matched,omitempty" yaml:"matched,omitempty"`
	Errors     []string                     `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// NewResult builds the rendered classification. With explain set, the strategy
// attempts and their errors are included.
func NewResult(text string, category models.Category, model string, results categorizer.StrategyResults, explain bool) Result {
	result := Result{Text: text, Category: category.Name, Model: model}
	if !explain {
		return result
	}
	result.Strategies = results.Results
	result.Attempts = results.Summary()
	if best, ok := results.GetBestResult(); ok {
		result.Matched = best.Name
	}
	for _, err := range results.GetErrors() {
		result.Errors = append(result.Errors, err.Error())
	}
	return result
}

// KeywordAdded is rendered after --add-keyword.
type KeywordAdded struct {
	Category string `json:"category" yaml:"category"`
	Keyword  string `json:"keyword" yaml:"keyword"`
}

func init() {
	Cmd.Flags().BoolVarP(&explain, "explain", "e", false, "Show the result of every strategy")
	Cmd.Flags().StringVarP(&addKeyword, "add-keyword", "k", "", "Add a keyword to a category (Category:keyword)")
}

// ParseKeywordFlag splits "Category:keyword".
func ParseKeywordFlag(value string) (string, string, error) {
	name, keyword, ok := strings.Cut(value, ":")
	name = strings.TrimSpace(name)
	keyword = strings.TrimSpace(keyword)
	if !ok || name == "" || keyword == "" {
		return "", "", fmt.Errorf("invalid keyword %q, expected Category:keyword", value)
	}
	return name, keyword, nil
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	if addKeyword != "" {
		name, keyword, err := ParseKeywordFlag(addKeyword)
		if err != nil {
			return err
		}
		if err := c.GetStore().AddKeyword(name, keyword); err != nil {
			return err
		}
		root.Log.Info("Keyword added", logging.Field{Key: logging.FieldCategory, Value: name})
		return root.Render(cmd, KeywordAdded{Category: name, Keyword: strings.ToLower(keyword)})
	}

	text := common.JoinArgs(args)
	if text == "" {
		return fmt.Errorf("text is required")
	}

	category, results := c.GetClassifier().Explain(cmd.Context(), text)
	return root.Render(cmd, NewResult(text, category, c.CategoryModelName(), results, explain))
}
