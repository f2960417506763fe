package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stockpilot/stockpilot/internal/store"
)

func sampleResult() store.Result {
	return store.Result{
		Columns: []string{"brand", "color", "price"},
		Rows: [][]any{
			{"nike", "black", "19.99"},
			{"adidas", "white", "24.50"},
		},
	}
}

func TestFormatZeroRowsYieldsNoResultsMessage(t *testing.T) {
	got, fellBack := Format(context.Background(), &fakeSummarizer{text: "should not run"}, "anything", store.Result{Columns: []string{"brand"}})
	if got != NoResultsMessage {
		t.Fatalf("Format() = %q", got)
	}
	if fellBack {
		t.Fatal("zero rows is not a fallback")
	}
}

func TestFormatUsesSummarizer(t *testing.T) {
	got, fellBack := Format(context.Background(), &fakeSummarizer{text: "We stock two shirts."}, "what do we stock?", sampleResult())
	if got != "We stock two shirts." {
		t.Fatalf("Format() = %q", got)
	}
	if fellBack {
		t.Fatal("summarizer success should not be a fallback")
	}
}

func TestFormatFallsBackOnSummarizerError(t *testing.T) {
	got, fellBack := Format(context.Background(), &fakeSummarizer{err: errors.New("unavailable")}, "what do we stock?", sampleResult())
	if !fellBack {
		t.Fatal("expected tabular fallback")
	}
	if !strings.Contains(got, "Found 2 result(s)") {
		t.Fatalf("Format() = %q", got)
	}
	if !strings.Contains(got, "brand: nike") {
		t.Fatalf("Format() = %q", got)
	}
}

func TestFormatWithoutSummarizerIsTabular(t *testing.T) {
	got, fellBack := Format(context.Background(), nil, "q", sampleResult())
	if !fellBack || !strings.Contains(got, "color: white") {
		t.Fatalf("Format() = %q, fellBack = %v", got, fellBack)
	}
}

func TestTabularMarksTruncation(t *testing.T) {
	result := sampleResult()
	result.Truncated = true
	if got := Tabular(result); !strings.Contains(got, "(result truncated)") {
		t.Fatalf("Tabular() = %q", got)
	}
}

func TestCleanTextFixesSpacing(t *testing.T) {
	got := CleanText("We have shirts.Prices start at 19dollars")
	if got != "We have shirts. Prices start at 19 dollars" {
		t.Fatalf("CleanText() = %q", got)
	}
}

type fakeSummarizer struct {
	text string
	err  error
}

func (f *fakeSummarizer) Summarize(_ context.Context, _ string, _ store.Result) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}
