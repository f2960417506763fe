package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/stockpilot/stockpilot/internal/answer"
	"github.com/stockpilot/stockpilot/internal/archive"
	"github.com/stockpilot/stockpilot/internal/observability"
	"github.com/stockpilot/stockpilot/internal/sqlguard"
)

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	InteractionID string   `json:"interaction_id"`
	Answer        string   `json:"answer"`
	Fallback      bool     `json:"fallback"`
	SQL           string   `json:"sql"`
	Provider      string   `json:"provider"`
	Model         string   `json:"model"`
	Columns       []string `json:"columns"`
	Rows          [][]any  `json:"rows"`
	Truncated     bool     `json:"truncated"`
	RowCount      int      `json:"row_count"`
	DurationMs    int64    `json:"duration_ms"`
}

// handleAsk runs the full pipeline: translate, guard, execute, summarize.
// Each stage fails with its own error code so problems are attributable.
func handleAsk(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Translator == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "TRANSLATE_NOT_CONFIGURED", "sql translation is not configured", false, nil)
		return
	}
	if deps.Store == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "STORE_NOT_CONFIGURED", "store dependency is not configured", false, nil)
		return
	}

	var request askRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_JSON", "invalid ask request body", false, map[string]any{"details": err.Error()})
		return
	}
	question := strings.TrimSpace(request.Question)
	if question == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "QUESTION_REQUIRED", "question is required", false, nil)
		return
	}

	start := time.Now()
	interactionID := deps.NewInteractionID()

	translation, err := deps.Translator.Translate(r.Context(), question)
	observability.ObserveTranslation(err)
	if err != nil {
		writeError(r.Context(), w, http.StatusBadGateway, "TRANSLATE_FAILED", "failed to translate question", true, map[string]any{"details": err.Error()})
		return
	}

	safeSQL, err := sqlguard.Check(translation.SQL)
	if err != nil {
		observability.IncrementGuardRejection()
		writeError(r.Context(), w, http.StatusBadRequest, "SQL_NOT_ALLOWED", "generated statement was rejected by the read-only guard", false, map[string]any{
			"details": err.Error(),
			"sql":     translation.SQL,
		})
		return
	}

	result, err := deps.Store.Execute(r.Context(), safeSQL)
	if err != nil {
		observability.IncrementQueryFailure()
		writeError(r.Context(), w, http.StatusBadRequest, "QUERY_EXECUTION_FAILED", "query execution failed", false, map[string]any{
			"details": err.Error(),
			"sql":     safeSQL,
		})
		return
	}

	answerText, fellBack := answer.Format(r.Context(), deps.Summarizer, question, result)
	if fellBack {
		observability.IncrementSummaryFallback()
	}

	elapsed := time.Since(start)
	observability.ObserveAsk(elapsed)

	writeJSON(w, http.StatusOK, askResponse{
		InteractionID: interactionID,
		Answer:        answerText,
		Fallback:      fellBack,
		SQL:           safeSQL,
		Provider:      translation.Provider,
		Model:         translation.Model,
		Columns:       result.Columns,
		Rows:          result.Rows,
		Truncated:     result.Truncated,
		RowCount:      len(result.Rows),
		DurationMs:    elapsed.Milliseconds(),
	})

	archiveAsk(deps, r, archive.Record{
		InteractionID:   interactionID,
		Question:        question,
		SQL:             safeSQL,
		Answer:          answerText,
		RowCount:        int64(len(result.Rows)),
		DurationMs:      elapsed.Milliseconds(),
		CreatedAtUnixMs: start.UnixMilli(),
	})
}

// archiveAsk runs after the response is written; the record survives
// client disconnects but never delays or fails the interaction.
func archiveAsk(deps Dependencies, r *http.Request, record archive.Record) {
	if deps.Archiver == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 10*time.Second)
	defer cancel()
	if err := deps.Archiver.SaveAsk(ctx, record); err != nil && deps.Logger != nil {
		deps.Logger.WarnContext(ctx, "ask_archive_failed",
			slog.String("interaction_id", record.InteractionID),
			slog.Any("error", err),
		)
	}
}
