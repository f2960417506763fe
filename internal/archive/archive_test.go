package archive

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func TestRecordRoundTripsThroughParquet(t *testing.T) {
	want := Record{
		InteractionID:   "9f1c2a3b",
		Question:        "any discounts on adidas?",
		SQL:             "SELECT * FROM discounts",
		Answer:          "Yes, 15% off.",
		RowCount:        1,
		DurationMs:      842,
		CreatedAtUnixMs: time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC).UnixMilli(),
	}

	data, err := EncodeRecord(want)
	if err != nil {
		t.Fatalf("EncodeRecord() error = %v", err)
	}
	records, err := DecodeRecords(data)
	if err != nil {
		t.Fatalf("DecodeRecords() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0] != want {
		t.Fatalf("record = %+v, want %+v", records[0], want)
	}
}

func TestSaveAskUploadsDatedKey(t *testing.T) {
	uploader := &fakeUploader{}
	archiver, err := New(uploader, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	record := Record{
		InteractionID:   "abc-123",
		Question:        "q",
		SQL:             "SELECT 1",
		Answer:          "one",
		RowCount:        1,
		DurationMs:      10,
		CreatedAtUnixMs: time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC).UnixMilli(),
	}
	if err := archiver.SaveAsk(context.Background(), record); err != nil {
		t.Fatalf("SaveAsk() error = %v", err)
	}
	if uploader.key != "asks/2026-04-02/abc-123.parquet" {
		t.Fatalf("key = %q", uploader.key)
	}
	if uploader.contentType != "application/vnd.apache.parquet" {
		t.Fatalf("contentType = %q", uploader.contentType)
	}
	records, err := DecodeRecords(uploader.body)
	if err != nil {
		t.Fatalf("DecodeRecords() error = %v", err)
	}
	if records[0].Question != "q" {
		t.Fatalf("uploaded record = %+v", records[0])
	}
}

func TestSaveAskRequiresInteractionID(t *testing.T) {
	archiver, _ := New(&fakeUploader{}, nil)
	if err := archiver.SaveAsk(context.Background(), Record{}); err == nil {
		t.Fatal("SaveAsk() should reject a record without an interaction id")
	}
}

func TestNormalizeKeyRejectsTraversal(t *testing.T) {
	uploader := &S3Uploader{bucket: "b", prefix: "team"}
	if _, err := uploader.normalizeKey("../secrets"); err == nil {
		t.Fatal("normalizeKey should reject traversal")
	}
	key, err := uploader.normalizeKey("asks/x.parquet")
	if err != nil {
		t.Fatalf("normalizeKey error = %v", err)
	}
	if key != "team/asks/x.parquet" {
		t.Fatalf("key = %q", key)
	}
}

type fakeUploader struct {
	key         string
	body        []byte
	contentType string
}

func (f *fakeUploader) Upload(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return io.ErrUnexpectedEOF
	}
	f.key = key
	f.body = data
	f.contentType = contentType
	return nil
}
