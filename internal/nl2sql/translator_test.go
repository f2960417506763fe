package nl2sql

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stockpilot/stockpilot/internal/schema"
)

func TestBuildPromptContainsSchemaAndQuestion(t *testing.T) {
	prompt := buildPromptAt("Do we have Nike shirts in large?", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if !strings.Contains(prompt, schema.Reference) {
		t.Fatal("prompt should embed the schema reference")
	}
	if !strings.Contains(prompt, "Do we have Nike shirts in large?") {
		t.Fatal("prompt should embed the literal question")
	}
	if !strings.Contains(prompt, "2026-03-01") {
		t.Fatal("prompt should embed the current date")
	}
	for _, example := range schema.Examples {
		if !strings.Contains(prompt, example.SQL) {
			t.Fatalf("prompt missing few-shot example %q", example.Question)
		}
	}
}

func TestTranslateStripsMarkdownFences(t *testing.T) {
	translator, err := NewGeneratorTranslator(&fakeGenerator{text: "```sql\nSELECT * FROM inventory\n```"})
	if err != nil {
		t.Fatalf("NewGeneratorTranslator() error = %v", err)
	}
	result, err := translator.Translate(context.Background(), "show everything")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if result.SQL != "SELECT * FROM inventory" {
		t.Fatalf("SQL = %q", result.SQL)
	}
	if result.Provider != "gemini" || result.Model != "fake-model" {
		t.Fatalf("Provider/Model = %q/%q", result.Provider, result.Model)
	}
}

func TestTranslatePropagatesGeneratorError(t *testing.T) {
	wantErr := errors.New("rate limited")
	translator, _ := NewGeneratorTranslator(&fakeGenerator{err: wantErr})
	if _, err := translator.Translate(context.Background(), "anything"); !errors.Is(err, wantErr) {
		t.Fatalf("Translate() error = %v, want wrapped %v", err, wantErr)
	}
}

func TestTranslateRejectsEmptyModelOutput(t *testing.T) {
	translator, _ := NewGeneratorTranslator(&fakeGenerator{text: "```sql\n```"})
	if _, err := translator.Translate(context.Background(), "anything"); !errors.Is(err, ErrEmptySQL) {
		t.Fatalf("Translate() error = %v, want ErrEmptySQL", err)
	}
}

func TestTranslateRejectsEmptyQuestion(t *testing.T) {
	translator, _ := NewGeneratorTranslator(&fakeGenerator{text: "SELECT 1"})
	if _, err := translator.Translate(context.Background(), "   "); err == nil {
		t.Fatal("Translate() should reject blank question")
	}
}

func TestStripMarkdownSQL(t *testing.T) {
	got := StripMarkdownSQL("```sql\nSELECT 1;\n```")
	if got != "SELECT 1;" {
		t.Fatalf("StripMarkdownSQL() = %q", got)
	}
	if got := StripMarkdownSQL("  SELECT 2  "); got != "SELECT 2" {
		t.Fatalf("StripMarkdownSQL() = %q", got)
	}
}

type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) GenerateText(_ context.Context, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeGenerator) ModelName() string { return "fake-model" }
