// Package archive keeps an append-only trail of completed ask
// interactions in S3-compatible object storage, one parquet object per
// interaction. The service never reads the archive back; failures are
// logged and must not affect the user-facing response.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/parquet-go/parquet-go"
)

type Record struct {
	InteractionID   string `parquet:"interaction_id"`
	Question        string `parquet:"question"`
	SQL             string `parquet:"sql"`
	Answer          string `parquet:"answer"`
	RowCount        int64  `parquet:"row_count"`
	DurationMs      int64  `parquet:"duration_ms"`
	CreatedAtUnixMs int64  `parquet:"created_at_unix_ms"`
}

// Uploader stores one object. Implemented by the minio-backed client.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
}

type Archiver struct {
	uploader Uploader
	logger   *slog.Logger
}

func New(uploader Uploader, logger *slog.Logger) (*Archiver, error) {
	if uploader == nil {
		return nil, fmt.Errorf("uploader is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Archiver{uploader: uploader, logger: logger}, nil
}

// SaveAsk encodes and uploads one record. Errors are returned for the
// caller to log; they are never user-facing.
func (a *Archiver) SaveAsk(ctx context.Context, record Record) error {
	if record.InteractionID == "" {
		return fmt.Errorf("interaction id is required")
	}
	if record.CreatedAtUnixMs == 0 {
		record.CreatedAtUnixMs = time.Now().UnixMilli()
	}

	data, err := EncodeRecord(record)
	if err != nil {
		return err
	}

	createdAt := time.UnixMilli(record.CreatedAtUnixMs).UTC()
	key := fmt.Sprintf("asks/%s/%s.parquet", createdAt.Format("2006-01-02"), record.InteractionID)
	if err := a.uploader.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), "application/vnd.apache.parquet"); err != nil {
		return fmt.Errorf("upload ask record %q: %w", key, err)
	}
	a.logger.DebugContext(ctx, "ask_archived", slog.String("key", key), slog.Int("bytes", len(data)))
	return nil
}

func EncodeRecord(record Record) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	writer := parquet.NewGenericWriter[Record](buf)
	if _, err := writer.Write([]Record{record}); err != nil {
		return nil, fmt.Errorf("write parquet record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close parquet writer: %w", err)
	}
	return buf.Bytes(), nil
}

func DecodeRecords(data []byte) ([]Record, error) {
	records, err := parquet.Read[Record](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("read parquet records: %w", err)
	}
	return records, nil
}
