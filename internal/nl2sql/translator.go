// Package nl2sql turns a natural-language question about the store into
// a single SQL statement via a generative model.
package nl2sql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stockpilot/stockpilot/internal/llm"
)

// ErrEmptySQL is returned when the model produced no usable statement.
var ErrEmptySQL = errors.New("model returned empty SQL")

type Result struct {
	SQL      string `json:"sql"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

type Translator interface {
	Translate(ctx context.Context, question string) (Result, error)
}

// GeneratorTranslator adapts any llm.Generator into a Translator.
type GeneratorTranslator struct {
	generator llm.Generator
}

func NewGeneratorTranslator(generator llm.Generator) (*GeneratorTranslator, error) {
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	return &GeneratorTranslator{generator: generator}, nil
}

func (t *GeneratorTranslator) Translate(ctx context.Context, question string) (Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Result{}, fmt.Errorf("question is required")
	}

	raw, err := t.generator.GenerateText(ctx, BuildPrompt(question))
	if err != nil {
		return Result{}, fmt.Errorf("translate question: %w", err)
	}

	sql := StripMarkdownSQL(raw)
	if strings.TrimSpace(sql) == "" {
		return Result{}, ErrEmptySQL
	}
	return Result{
		SQL:      sql,
		Provider: "gemini",
		Model:    t.generator.ModelName(),
	}, nil
}

// StripMarkdownSQL removes the ```sql fences models wrap statements in
// despite being told not to.
func StripMarkdownSQL(value string) string {
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```sql")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(trimmed, "```")
		return strings.TrimSpace(trimmed)
	}
	return trimmed
}
