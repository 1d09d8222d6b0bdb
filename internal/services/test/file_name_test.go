package services_test

import (
	"strings"
	"testing"

	"github.com/bionicotaku/lingo-services-admin/internal/services"
	"github.com/google/uuid"
)

func TestGenerateFileNameLowercasesExtension(t *testing.T) {
	name := services.GenerateFileName("Trailer.MP4")
	if !strings.HasSuffix(name, ".mp4") {
		t.Fatalf("expected lowercased extension, got %s", name)
	}
	if _, err := uuid.Parse(strings.TrimSuffix(name, ".mp4")); err != nil {
		t.Fatalf("expected uuid prefix, got %s", name)
	}
}

func TestGenerateFileNameWithoutExtension(t *testing.T) {
	name := services.GenerateFileName("raw")
	if strings.Contains(name, ".") {
		t.Fatalf("expected bare uuid, got %s", name)
	}
}

func TestGenerateFileNameUnique(t *testing.T) {
	if services.GenerateFileName("a.png") == services.GenerateFileName("a.png") {
		t.Fatal("expected collision-resistant names")
	}
}
