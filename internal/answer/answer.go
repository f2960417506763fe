// Package answer renders query results back into a conversational reply,
// via a second model call when available and a tabular fallback otherwise.
package answer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/stockpilot/stockpilot/internal/llm"
	"github.com/stockpilot/stockpilot/internal/store"
)

// NoResultsMessage is returned whenever a query matches zero rows. The
// formatter never produces a blank answer.
const NoResultsMessage = "I couldn't find any matching results for your question."

const maxSummaryRows = 10

const summaryPrompt = `Based on this database query result, provide a natural, conversational response to the original question.

Original question: %s
Query results:
%s

Make the response:
1. Conversational and helpful.
2. If the results include a min_qty greater than 1, explain that the discount applies only from that quantity up.
3. Summarize the results clearly; use bullet points for lists of items.
4. Use correct grammar, punctuation, and spacing between sentences.
5. Use proper currency formatting ($XX.XX).

Response:`

type Summarizer interface {
	Summarize(ctx context.Context, question string, result store.Result) (string, error)
}

// GeneratorSummarizer asks the model for a conversational summary.
type GeneratorSummarizer struct {
	generator llm.Generator
}

func NewGeneratorSummarizer(generator llm.Generator) (*GeneratorSummarizer, error) {
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	return &GeneratorSummarizer{generator: generator}, nil
}

func (s *GeneratorSummarizer) Summarize(ctx context.Context, question string, result store.Result) (string, error) {
	prompt := fmt.Sprintf(summaryPrompt, strings.TrimSpace(question), renderRows(result, maxSummaryRows))
	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("summarize result: %w", err)
	}
	return CleanText(strings.TrimSpace(text)), nil
}

// Format produces the final answer text. A nil summarizer or a summarizer
// error degrades to the tabular rendering; zero rows short-circuit to the
// no-results message. The returned bool reports whether the fallback ran.
func Format(ctx context.Context, summarizer Summarizer, question string, result store.Result) (string, bool) {
	if len(result.Rows) == 0 {
		return NoResultsMessage, false
	}
	if summarizer == nil {
		return Tabular(result), true
	}
	summary, err := summarizer.Summarize(ctx, question, result)
	if err != nil || strings.TrimSpace(summary) == "" {
		return Tabular(result), true
	}
	return summary, false
}

// Tabular is the deterministic fallback rendering.
func Tabular(result store.Result) string {
	if len(result.Rows) == 0 {
		return NoResultsMessage
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d result(s):\n\n", len(result.Rows))
	for _, row := range result.Rows {
		pairs := make([]string, 0, len(result.Columns))
		for i, column := range result.Columns {
			if i < len(row) {
				pairs = append(pairs, fmt.Sprintf("%s: %v", column, row[i]))
			}
		}
		b.WriteString(strings.Join(pairs, " | "))
		b.WriteString("\n")
	}
	if result.Truncated {
		b.WriteString("\n(result truncated)\n")
	}
	return b.String()
}

func renderRows(result store.Result, limit int) string {
	var b strings.Builder
	b.WriteString(strings.Join(result.Columns, " | "))
	b.WriteString("\n")
	for i, row := range result.Rows {
		if i >= limit {
			fmt.Fprintf(&b, "... and %d more row(s)\n", len(result.Rows)-limit)
			break
		}
		values := make([]string, len(row))
		for j, value := range row {
			values[j] = fmt.Sprintf("%v", value)
		}
		b.WriteString(strings.Join(values, " | "))
		b.WriteString("\n")
	}
	return b.String()
}

var (
	missingSpaceAfterPeriod = regexp.MustCompile(`\.([A-Z])`)
	missingSpaceCamel       = regexp.MustCompile(`([a-z])([A-Z])`)
	missingSpaceDigitLetter = regexp.MustCompile(`(\d)([a-zA-Z])`)
)

// CleanText repairs spacing glitches that show up in model output, such
// as sentences glued together after a period.
func CleanText(text string) string {
	text = missingSpaceAfterPeriod.ReplaceAllString(text, ". $1")
	text = missingSpaceCamel.ReplaceAllString(text, "$1 $2")
	text = missingSpaceDigitLetter.ReplaceAllString(text, "$1 $2")
	return text
}
