package nl2sql

import (
	"fmt"
	"strings"
	"time"

	"github.com/stockpilot/stockpilot/internal/schema"
)

const promptHeader = `You are a SQL expert for a t-shirt store database. Convert the natural language question into a single, accurate SQL query.

DATABASE SCHEMA:
%s

Current date for all queries is: %s

RULES:
1. Output ONLY the SQL query - no explanations, no markdown code blocks, no comments.
2. Use only SELECT or WITH (CTE) statements - never INSERT, UPDATE, DELETE, DROP, or any other modifying statement.
3. If the question mentions discounts, sales, or deals, JOIN inventory (aliased i) with discounts (aliased d) ON d.item_ref = i.id.
4. A question about a single item implies quantity 1; do NOT filter on min_qty unless the question states a quantity. The goal is to show a discount exists even when it has conditions.
5. Wrap text columns such as brand and color in LOWER() for comparisons.
6. Add a LIMIT clause for potentially large result sets (default 100) unless the question asks otherwise.

EXAMPLES:
%s
Question: %s
SQL Query:`

// BuildPrompt assembles the translation prompt. The output always
// contains the schema reference and the literal question.
func BuildPrompt(question string) string {
	return buildPromptAt(question, time.Now())
}

func buildPromptAt(question string, now time.Time) string {
	var examples strings.Builder
	for _, example := range schema.Examples {
		fmt.Fprintf(&examples, "Question: %s\n%s\n\n", example.Question, example.SQL)
	}
	return fmt.Sprintf(promptHeader,
		schema.Reference,
		now.Format("2006-01-02"),
		examples.String(),
		strings.TrimSpace(question),
	)
}
