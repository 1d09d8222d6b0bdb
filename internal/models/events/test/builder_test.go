package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-admin/internal/models/events"
	"github.com/bionicotaku/lingo-services-admin/internal/models/po"
	"github.com/google/uuid"
)

func TestNewVideoSnapshot(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	thumb := "thumb-abc.png"
	video := &po.Video{
		VideoID:      uuid.New(),
		Title:        "Test",
		Description:  "A test video",
		YearLaunched: 2024,
		Opened:       true,
		Rating:       po.Rating12,
		Duration:     95,
		ThumbFile:    &thumb,
	}
	eventID := uuid.New()
	categories := []uuid.UUID{uuid.New()}

	raw, err := events.NewVideoSnapshot(events.TypeVideoCreated, video, categories, nil, nil, eventID, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload events.VideoPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.EventType != events.TypeVideoCreated {
		t.Fatalf("unexpected event type: %s", payload.EventType)
	}
	if payload.VideoID != video.VideoID || payload.EventID != eventID {
		t.Fatalf("identifier mismatch: %+v", payload)
	}
	if payload.SchemaVersion != events.SchemaVersion {
		t.Fatalf("unexpected schema version: %d", payload.SchemaVersion)
	}
	if payload.Title == nil || *payload.Title != "Test" {
		t.Fatalf("title mismatch: %+v", payload.Title)
	}
	if payload.Rating == nil || *payload.Rating != "12" {
		t.Fatalf("rating mismatch: %+v", payload.Rating)
	}
	if payload.ThumbFile == nil || *payload.ThumbFile != thumb {
		t.Fatalf("thumb mismatch: %+v", payload.ThumbFile)
	}
	if len(payload.CategoryIDs) != 1 || payload.CategoryIDs[0] != categories[0] {
		t.Fatalf("categories mismatch: %v", payload.CategoryIDs)
	}
	if !payload.OccurredAt.Equal(now) {
		t.Fatalf("occurred_at mismatch: got %s want %s", payload.OccurredAt, now)
	}
}

func TestNewVideoSnapshotNilVideo(t *testing.T) {
	if _, err := events.NewVideoSnapshot(events.TypeVideoCreated, nil, nil, nil, nil, uuid.New(), time.Now()); err == nil {
		t.Fatal("expected error for nil video")
	}
}

func TestNewVideoTombstone(t *testing.T) {
	now := time.Now()
	videoID := uuid.New()
	reason := "cleanup"

	raw, err := events.NewVideoTombstone(events.TypeVideoDeleted, videoID, uuid.New(), now, &reason)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload events.VideoPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.VideoID != videoID {
		t.Fatalf("video id mismatch")
	}
	if payload.Title != nil || payload.Rating != nil {
		t.Fatalf("tombstone must not carry snapshot fields: %+v", payload)
	}
	if payload.Reason == nil || *payload.Reason != reason {
		t.Fatalf("reason mismatch: %+v", payload.Reason)
	}

	if _, err := events.NewVideoTombstone(events.TypeVideoDeleted, uuid.Nil, uuid.New(), now, nil); err == nil {
		t.Fatal("expected error for nil video id")
	}
}

func TestAttributes(t *testing.T) {
	eventID := uuid.New()
	videoID := uuid.New()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	attrs := events.Attributes(eventID, events.TypeVideoUpdated, videoID, now)
	if attrs["event_id"] != eventID.String() {
		t.Fatalf("event_id mismatch: %s", attrs["event_id"])
	}
	if attrs["event_type"] != events.TypeVideoUpdated {
		t.Fatalf("event_type mismatch: %s", attrs["event_type"])
	}
	if attrs["aggregate_type"] != events.AggregateVideo || attrs["aggregate_id"] != videoID.String() {
		t.Fatalf("aggregate attrs mismatch: %v", attrs)
	}
	if attrs["occurred_at"] != "2026-03-14T12:00:00Z" {
		t.Fatalf("occurred_at mismatch: %s", attrs["occurred_at"])
	}
}
