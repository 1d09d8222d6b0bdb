package controllers

import (
	"bytes"
	"mime/multipart"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/bionicotaku/lingo-services-admin/internal/models/po"
)

type formFile struct {
	field    string
	filename string
	content  string
}

func multipartRequest(t *testing.T, values map[string][]string, files []formFile) *stdhttp.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, vs := range values {
		for _, v := range vs {
			if err := w.WriteField(key, v); err != nil {
				t.Fatalf("write field %s: %v", key, err)
			}
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.filename)
		if err != nil {
			t.Fatalf("create file part %s: %v", f.field, err)
		}
		if _, err := part.Write([]byte(f.content)); err != nil {
			t.Fatalf("write file part %s: %v", f.field, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/v1/videos", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestParseCreateVideoForm(t *testing.T) {
	req, err := parseCreateVideoForm(multipartRequest(t, map[string][]string{
		"title":         {"Demo"},
		"description":   {"A demo video"},
		"year_launched": {"2024"},
		"opened":        {"true"},
		"rating":        {"12"},
		"duration":      {"95"},
		"categories_id": {"0d3545d8-0b05-4f54-b8a3-0f24b4a19e5a", "7a0b0dd5-55b5-4bb5-9d3f-3a2d23d2a1ce"},
	}, []formFile{
		{field: "thumb_file", filename: "poster.png", content: "poster-bytes"},
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Title != "Demo" || req.YearLaunched != 2024 || !req.Opened || req.Duration != 95 {
		t.Fatalf("scalar fields mismatch: %+v", req)
	}
	if len(req.CategoriesID) != 2 {
		t.Fatalf("expected 2 categories, got %v", req.CategoriesID)
	}
	input, ok := req.Files[po.FileFieldThumb]
	if !ok || input.Upload == nil {
		t.Fatalf("expected thumb upload, got %+v", req.Files)
	}
	if input.Upload.OriginalName != "poster.png" || string(input.Upload.Payload) != "poster-bytes" {
		t.Fatalf("unexpected upload: %+v", input.Upload)
	}
}

func TestParseCreateVideoFormStoredName(t *testing.T) {
	req, err := parseCreateVideoForm(multipartRequest(t, map[string][]string{
		"title":           {"Demo"},
		"description":     {"d"},
		"rating":          {"L"},
		"duration":        {"10"},
		"trailer_file_name": {"existing-trailer.mp4"},
	}, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	input, ok := req.Files[po.FileFieldTrailer]
	if !ok || input.StoredName != "existing-trailer.mp4" {
		t.Fatalf("expected stored trailer name, got %+v", req.Files)
	}
}

func TestParseCreateVideoFormFilePartWinsOverName(t *testing.T) {
	req, err := parseCreateVideoForm(multipartRequest(t, map[string][]string{
		"title":           {"Demo"},
		"description":     {"d"},
		"rating":          {"L"},
		"duration":        {"10"},
		"thumb_file_name": {"stale-name.png"},
	}, []formFile{
		{field: "thumb_file", filename: "fresh.png", content: "fresh"},
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	input := req.Files[po.FileFieldThumb]
	if input.Upload == nil || input.StoredName != "" {
		t.Fatalf("file part must win over the text value: %+v", input)
	}
}

func TestParseCreateVideoFormInvalidNumber(t *testing.T) {
	_, err := parseCreateVideoForm(multipartRequest(t, map[string][]string{
		"title":         {"Demo"},
		"year_launched": {"twenty"},
	}, nil))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestParseUpdateVideoFormAbsentKeysStayNil(t *testing.T) {
	req, err := parseUpdateVideoForm(multipartRequest(t, map[string][]string{
		"title": {"Renamed"},
	}, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Title == nil || *req.Title != "Renamed" {
		t.Fatalf("expected title set, got %+v", req)
	}
	if req.Description != nil || req.Duration != nil || req.Opened != nil {
		t.Fatalf("absent keys must stay nil: %+v", req)
	}
	if req.CategoriesSet || req.GenresSet || req.CastMembersSet {
		t.Fatalf("absent relation keys must not mark the set flag: %+v", req)
	}
	if req.Files != nil {
		t.Fatalf("expected no files, got %+v", req.Files)
	}
}

func TestParseUpdateVideoFormEmptyRelationClears(t *testing.T) {
	req, err := parseUpdateVideoForm(multipartRequest(t, map[string][]string{
		"genres_id": {""},
	}, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !req.GenresSet {
		t.Fatal("present key must mark the set flag")
	}
	if len(req.GenresID) != 0 {
		t.Fatalf("blank values must be dropped, got %v", req.GenresID)
	}
	if req.CategoriesSet {
		t.Fatal("absent categories key must not be marked")
	}
}
