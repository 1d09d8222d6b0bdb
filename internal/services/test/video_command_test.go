package services_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-admin/internal/models/po"
	"github.com/bionicotaku/lingo-services-admin/internal/services"
	"github.com/bionicotaku/lingo-utils/txmanager"
	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var fixedTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newVideoUsecase(repo *videoRepoStub, outbox *outboxRepoStub, blobs *blobStoreStub) *services.VideoUsecase {
	logger := log.NewStdLogger(io.Discard)
	return services.NewVideoUsecase(repo, outbox, blobs, noopTxManager{}, logger).
		WithClock(func() time.Time { return fixedTime }).
		WithFileNamer(func(original string) string { return "gen-" + original })
}

func TestCreateVideoPersistsRelationsAndUploads(t *testing.T) {
	repo := &videoRepoStub{}
	outbox := &outboxRepoStub{}
	blobs := newBlobStoreStub()
	videoID := uuid.New()
	uc := newVideoUsecase(repo, outbox, blobs).WithIDGenerator(func() uuid.UUID { return videoID })

	categories := []uuid.UUID{uuid.New()}
	genres := []uuid.UUID{uuid.New(), uuid.New()}
	cast := []uuid.UUID{uuid.New()}

	detail, err := uc.Create(context.Background(), services.CreateVideoInput{
		Title:         "demo",
		Description:   "demo description",
		YearLaunched:  2024,
		Opened:        true,
		Rating:        "12",
		Duration:      120,
		CategoryIDs:   categories,
		GenreIDs:      genres,
		CastMemberIDs: cast,
		Files: map[po.FileField]services.FileInput{
			po.FileFieldThumb: {Upload: &services.FileUpload{
				OriginalName: "poster.JPG",
				ContentType:  "image/jpeg",
				Payload:      []byte("thumb-bytes"),
			}},
			po.FileFieldTrailer: {StoredName: "existing-trailer.mp4"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail == nil || detail.VideoID != videoID {
		t.Fatalf("unexpected detail: %+v", detail)
	}

	if len(outbox.messages) != 1 {
		t.Fatalf("expected 1 outbox message, got %d", len(outbox.messages))
	}
	if outbox.messages[0].EventType != "video.created" {
		t.Fatalf("unexpected event type: %s", outbox.messages[0].EventType)
	}
	if outbox.messages[0].AggregateID != videoID {
		t.Fatalf("unexpected aggregate id: %s", outbox.messages[0].AggregateID)
	}

	if len(repo.categories) != 1 || len(repo.genres) != 1 || len(repo.castMembers) != 1 {
		t.Fatalf("expected all relation sets synced once: %d/%d/%d", len(repo.categories), len(repo.genres), len(repo.castMembers))
	}
	if len(repo.genres[0]) != 2 {
		t.Fatalf("expected 2 genres, got %d", len(repo.genres[0]))
	}

	// 仅原始载荷产生上传；StoredName 字段幂等透传
	wantPath := videoID.String() + "/gen-poster.JPG"
	if got := len(blobs.puts); got != 1 {
		t.Fatalf("expected 1 upload, got %d", got)
	}
	if string(blobs.puts[wantPath]) != "thumb-bytes" {
		t.Fatalf("upload missing at %s", wantPath)
	}
	if repo.createdRow == nil || repo.createdRow.TrailerFile == nil || *repo.createdRow.TrailerFile != "existing-trailer.mp4" {
		t.Fatalf("stored trailer name not persisted: %+v", repo.createdRow)
	}
	if len(blobs.deletes) != 0 {
		t.Fatalf("no deletes expected, got %v", blobs.deletes)
	}
}

func TestCreateVideoRepoErrorSkipsBlobStore(t *testing.T) {
	repo := &videoRepoStub{createErr: errors.New("db down")}
	outbox := &outboxRepoStub{}
	blobs := newBlobStoreStub()
	uc := newVideoUsecase(repo, outbox, blobs)

	_, err := uc.Create(context.Background(), services.CreateVideoInput{
		Title:    "demo",
		Rating:   "L",
		Duration: 10,
		Files: map[po.FileField]services.FileInput{
			po.FileFieldThumb: {Upload: &services.FileUpload{OriginalName: "a.png", Payload: []byte("x")}},
		},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(outbox.messages) != 0 {
		t.Fatal("outbox should not be called on repo error")
	}
	if len(blobs.puts) != 0 || len(blobs.deletes) != 0 {
		t.Fatal("blob store must stay untouched when the transaction fails")
	}
}

func TestCreateVideoUnknownGenre(t *testing.T) {
	repo := &videoRepoStub{relationErr: services.ErrGenreNotFound}
	outbox := &outboxRepoStub{}
	blobs := newBlobStoreStub()
	uc := newVideoUsecase(repo, outbox, blobs)

	_, err := uc.Create(context.Background(), services.CreateVideoInput{
		Title:    "demo",
		Rating:   "L",
		Duration: 10,
		GenreIDs: []uuid.UUID{uuid.New()},
	})
	if !kerrors.Is(err, services.ErrGenreNotFound) {
		t.Fatalf("expected genre not found, got %v", err)
	}
	if len(blobs.puts) != 0 {
		t.Fatal("no uploads expected when relation sync fails")
	}
}

func TestCreateVideoUploadFailureCompensates(t *testing.T) {
	repo := &videoRepoStub{}
	outbox := &outboxRepoStub{}
	blobs := newBlobStoreStub()
	videoID := uuid.New()
	uc := newVideoUsecase(repo, outbox, blobs).WithIDGenerator(func() uuid.UUID { return videoID })

	blobs.failPaths[videoID.String()+"/gen-banner.png"] = true

	_, err := uc.Create(context.Background(), services.CreateVideoInput{
		Title:    "demo",
		Rating:   "L",
		Duration: 10,
		Files: map[po.FileField]services.FileInput{
			po.FileFieldThumb:  {Upload: &services.FileUpload{OriginalName: "thumb.png", Payload: []byte("a")}},
			po.FileFieldBanner: {Upload: &services.FileUpload{OriginalName: "banner.png", Payload: []byte("b")}},
		},
	})
	if err == nil {
		t.Fatal("expected upload error")
	}
	if kerrors.Reason(err) != "VIDEO_UPLOAD_FAILED" {
		t.Fatalf("unexpected reason: %s", kerrors.Reason(err))
	}

	// 已上传的兄弟对象被补偿删除；数据库行保留
	thumbPath := videoID.String() + "/gen-thumb.png"
	if len(blobs.deletes) != 1 || blobs.deletes[0] != thumbPath {
		t.Fatalf("expected compensating delete of %s, got %v", thumbPath, blobs.deletes)
	}
	if len(repo.hardDeleted) != 0 {
		t.Fatal("row must be kept after upload failure")
	}
	if len(outbox.messages) != 1 {
		t.Fatalf("committed outbox message must remain, got %d", len(outbox.messages))
	}
}

func TestCreateVideoValidation(t *testing.T) {
	repo := &videoRepoStub{}
	outbox := &outboxRepoStub{}
	blobs := newBlobStoreStub()
	uc := newVideoUsecase(repo, outbox, blobs)

	cases := []struct {
		name  string
		input services.CreateVideoInput
	}{
		{"invalid rating", services.CreateVideoInput{Title: "t", Rating: "PG-13", Duration: 10}},
		{"zero duration", services.CreateVideoInput{Title: "t", Rating: "L", Duration: 0}},
		{"oversized thumb", services.CreateVideoInput{
			Title: "t", Rating: "L", Duration: 10,
			Files: map[po.FileField]services.FileInput{
				po.FileFieldThumb: {Upload: &services.FileUpload{
					OriginalName: "big.png",
					Payload:      make([]byte, po.ThumbFileMaxSize+1),
				}},
			},
		}},
		{"empty file input", services.CreateVideoInput{
			Title: "t", Rating: "L", Duration: 10,
			Files: map[po.FileField]services.FileInput{po.FileFieldThumb: {}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tc.input)
			if !kerrors.IsBadRequest(err) {
				t.Fatalf("expected bad request, got %v", err)
			}
		})
	}
	if len(outbox.messages) != 0 || len(blobs.puts) != 0 {
		t.Fatal("invalid input must not reach repo or blob store")
	}
}

func TestCreateVideoNilRelationsUntouched(t *testing.T) {
	repo := &videoRepoStub{}
	outbox := &outboxRepoStub{}
	blobs := newBlobStoreStub()
	uc := newVideoUsecase(repo, outbox, blobs)

	_, err := uc.Create(context.Background(), services.CreateVideoInput{
		Title:       "demo",
		Rating:      "L",
		Duration:    10,
		CategoryIDs: []uuid.UUID{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 空切片显式清空，nil 切片不触碰
	if len(repo.categories) != 1 || len(repo.categories[0]) != 0 {
		t.Fatalf("expected explicit empty category sync, got %v", repo.categories)
	}
	if len(repo.genres) != 0 || len(repo.castMembers) != 0 {
		t.Fatal("nil relation slices must not be synced")
	}
}

func TestUpdateVideoReplacesOldBlobAfterUpload(t *testing.T) {
	oldName := "old-thumb.png"
	current := &po.Video{
		VideoID:   uuid.New(),
		Title:     "demo",
		Rating:    po.RatingFree,
		Duration:  10,
		ThumbFile: &oldName,
		UpdatedAt: fixedTime,
	}
	repo := &videoRepoStub{current: current}
	outbox := &outboxRepoStub{}
	blobs := newBlobStoreStub()
	uc := newVideoUsecase(repo, outbox, blobs)

	newTitle := "renamed"
	detail, err := uc.Update(context.Background(), services.UpdateVideoInput{
		VideoID: current.VideoID,
		Title:   &newTitle,
		Files: map[po.FileField]services.FileInput{
			po.FileFieldThumb: {Upload: &services.FileUpload{
				OriginalName: "fresh.png",
				ContentType:  "image/png",
				Payload:      []byte("fresh-bytes"),
			}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail == nil {
		t.Fatal("expected detail")
	}

	newPath := current.VideoID.String() + "/gen-fresh.png"
	oldPath := current.VideoID.String() + "/" + oldName
	if string(blobs.puts[newPath]) != "fresh-bytes" {
		t.Fatalf("new blob missing at %s", newPath)
	}
	if len(blobs.deletes) != 1 || blobs.deletes[0] != oldPath {
		t.Fatalf("expected old blob deleted after success, got %v", blobs.deletes)
	}
	if len(outbox.messages) != 1 || outbox.messages[0].EventType != "video.updated" {
		t.Fatalf("expected video.updated event, got %+v", outbox.messages)
	}
}

func TestUpdateVideoTxFailureLeavesBlobsUntouched(t *testing.T) {
	oldName := "old-thumb.png"
	current := &po.Video{VideoID: uuid.New(), Rating: po.RatingFree, Duration: 10, ThumbFile: &oldName}
	repo := &videoRepoStub{current: current, updateErr: errors.New("deadlock")}
	outbox := &outboxRepoStub{}
	blobs := newBlobStoreStub()
	uc := newVideoUsecase(repo, outbox, blobs)

	_, err := uc.Update(context.Background(), services.UpdateVideoInput{
		VideoID: current.VideoID,
		Files: map[po.FileField]services.FileInput{
			po.FileFieldThumb: {Upload: &services.FileUpload{OriginalName: "fresh.png", Payload: []byte("x")}},
		},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(blobs.puts) != 0 || len(blobs.deletes) != 0 {
		t.Fatal("blob store must stay untouched when the transaction fails")
	}
}

func TestUpdateVideoUploadFailureKeepsOldBlob(t *testing.T) {
	oldName := "old-thumb.png"
	current := &po.Video{VideoID: uuid.New(), Rating: po.RatingFree, Duration: 10, ThumbFile: &oldName}
	repo := &videoRepoStub{current: current}
	outbox := &outboxRepoStub{}
	blobs := newBlobStoreStub()
	uc := newVideoUsecase(repo, outbox, blobs)

	blobs.failPaths[current.VideoID.String()+"/gen-fresh.png"] = true

	_, err := uc.Update(context.Background(), services.UpdateVideoInput{
		VideoID: current.VideoID,
		Files: map[po.FileField]services.FileInput{
			po.FileFieldThumb: {Upload: &services.FileUpload{OriginalName: "fresh.png", Payload: []byte("x")}},
		},
	})
	if kerrors.Reason(err) != "VIDEO_UPLOAD_FAILED" {
		t.Fatalf("expected upload failure, got %v", err)
	}
	for _, deleted := range blobs.deletes {
		if strings.HasSuffix(deleted, oldName) {
			t.Fatalf("old blob must survive a failed upload: %v", blobs.deletes)
		}
	}
}

func TestUpdateVideoStoredNameIdempotent(t *testing.T) {
	name := "stable-thumb.png"
	current := &po.Video{VideoID: uuid.New(), Rating: po.RatingFree, Duration: 10, ThumbFile: &name}
	repo := &videoRepoStub{current: current}
	outbox := &outboxRepoStub{}
	blobs := newBlobStoreStub()
	uc := newVideoUsecase(repo, outbox, blobs)

	_, err := uc.Update(context.Background(), services.UpdateVideoInput{
		VideoID: current.VideoID,
		Files: map[po.FileField]services.FileInput{
			po.FileFieldThumb: {StoredName: name},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blobs.puts) != 0 || len(blobs.deletes) != 0 {
		t.Fatalf("resubmitting the stored name must not touch the blob store: puts=%d deletes=%v", len(blobs.puts), blobs.deletes)
	}
}

func TestUpdateVideoNotFound(t *testing.T) {
	repo := &videoRepoStub{}
	outbox := &outboxRepoStub{}
	blobs := newBlobStoreStub()
	uc := newVideoUsecase(repo, outbox, blobs)

	_, err := uc.Update(context.Background(), services.UpdateVideoInput{VideoID: uuid.New()})
	if !kerrors.Is(err, services.ErrVideoNotFound) {
		t.Fatalf("expected video not found, got %v", err)
	}
	if len(outbox.messages) != 0 {
		t.Fatal("outbox must not be called for a missing video")
	}
}

func TestUpdateVideoClearsRelationsWithEmptySlice(t *testing.T) {
	current := &po.Video{VideoID: uuid.New(), Rating: po.RatingFree, Duration: 10}
	repo := &videoRepoStub{current: current}
	outbox := &outboxRepoStub{}
	blobs := newBlobStoreStub()
	uc := newVideoUsecase(repo, outbox, blobs)

	_, err := uc.Update(context.Background(), services.UpdateVideoInput{
		VideoID:  current.VideoID,
		GenreIDs: []uuid.UUID{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.genres) != 1 || len(repo.genres[0]) != 0 {
		t.Fatalf("expected explicit genre clear, got %v", repo.genres)
	}
	if len(repo.categories) != 0 || len(repo.castMembers) != 0 {
		t.Fatal("untouched relations must not be synced")
	}
}

func TestDeleteVideoEnqueuesTombstone(t *testing.T) {
	current := &po.Video{VideoID: uuid.New(), Rating: po.RatingFree, Duration: 10}
	repo := &videoRepoStub{current: current}
	outbox := &outboxRepoStub{}
	blobs := newBlobStoreStub()
	uc := newVideoUsecase(repo, outbox, blobs)

	reason := "cleanup"
	if err := uc.Delete(context.Background(), services.DeleteVideoInput{VideoID: current.VideoID, Reason: &reason}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.softDeleted) != 1 || repo.softDeleted[0] != current.VideoID {
		t.Fatalf("expected soft delete, got %v", repo.softDeleted)
	}
	if len(outbox.messages) != 1 || outbox.messages[0].EventType != "video.deleted" {
		t.Fatalf("expected video.deleted event, got %+v", outbox.messages)
	}
	if len(blobs.deletes) != 0 {
		t.Fatal("soft delete must not touch blobs")
	}
}

func TestRestoreVideoEnqueuesEvent(t *testing.T) {
	current := &po.Video{VideoID: uuid.New(), Rating: po.RatingFree, Duration: 10}
	repo := &videoRepoStub{current: current}
	outbox := &outboxRepoStub{}
	blobs := newBlobStoreStub()
	uc := newVideoUsecase(repo, outbox, blobs)

	if err := uc.Restore(context.Background(), current.VideoID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.restored) != 1 {
		t.Fatalf("expected restore call, got %v", repo.restored)
	}
	if len(outbox.messages) != 1 || outbox.messages[0].EventType != "video.restored" {
		t.Fatalf("expected video.restored event, got %+v", outbox.messages)
	}
}

func TestForceDeleteVideo(t *testing.T) {
	current := &po.Video{VideoID: uuid.New(), Rating: po.RatingFree, Duration: 10}
	repo := &videoRepoStub{current: current}
	outbox := &outboxRepoStub{}
	blobs := newBlobStoreStub()
	uc := newVideoUsecase(repo, outbox, blobs)

	if err := uc.ForceDelete(context.Background(), current.VideoID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.hardDeleted) != 1 {
		t.Fatalf("expected hard delete, got %v", repo.hardDeleted)
	}
	if len(outbox.messages) != 1 || outbox.messages[0].EventType != "video.deleted" {
		t.Fatalf("expected video.deleted event, got %+v", outbox.messages)
	}
}

func TestDeleteVideoNotFound(t *testing.T) {
	repo := &videoRepoStub{}
	outbox := &outboxRepoStub{}
	blobs := newBlobStoreStub()
	uc := newVideoUsecase(repo, outbox, blobs)

	err := uc.Delete(context.Background(), services.DeleteVideoInput{VideoID: uuid.New()})
	if !kerrors.Is(err, services.ErrVideoNotFound) {
		t.Fatalf("expected video not found, got %v", err)
	}
}

// ---- stubs ----

type videoRepoStub struct {
	current *po.Video

	createErr   error
	updateErr   error
	relationErr error

	createdRow *po.Video
	updatedRow *services.UpdateVideoRow

	categories  [][]uuid.UUID
	genres      [][]uuid.UUID
	castMembers [][]uuid.UUID

	softDeleted []uuid.UUID
	restored    []uuid.UUID
	hardDeleted []uuid.UUID
}

func (s *videoRepoStub) Create(_ context.Context, _ txmanager.Session, video *po.Video) (*po.Video, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	row := *video
	row.CreatedAt = fixedTime
	row.UpdatedAt = fixedTime
	s.createdRow = &row
	s.current = &row
	return &row, nil
}

func (s *videoRepoStub) Update(_ context.Context, _ txmanager.Session, input services.UpdateVideoRow) (*po.Video, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	if s.current == nil {
		return nil, services.ErrVideoNotFound
	}
	row := *s.current
	if input.Title != nil {
		row.Title = *input.Title
	}
	if input.ThumbFile != nil {
		row.ThumbFile = input.ThumbFile
	}
	if input.BannerFile != nil {
		row.BannerFile = input.BannerFile
	}
	if input.TrailerFile != nil {
		row.TrailerFile = input.TrailerFile
	}
	if input.VideoFile != nil {
		row.VideoFile = input.VideoFile
	}
	row.UpdatedAt = fixedTime
	s.updatedRow = &input
	s.current = &row
	return &row, nil
}

func (s *videoRepoStub) FindByID(_ context.Context, _ txmanager.Session, videoID uuid.UUID) (*po.Video, error) {
	if s.current == nil || s.current.VideoID != videoID {
		return nil, services.ErrVideoNotFound
	}
	return s.current, nil
}

func (s *videoRepoStub) FindDetail(_ context.Context, _ txmanager.Session, videoID uuid.UUID) (*services.VideoAggregate, error) {
	if s.current == nil || s.current.VideoID != videoID {
		return nil, services.ErrVideoNotFound
	}
	return &services.VideoAggregate{
		Video:         s.current,
		CategoryIDs:   lastSet(s.categories),
		GenreIDs:      lastSet(s.genres),
		CastMemberIDs: lastSet(s.castMembers),
	}, nil
}

func (s *videoRepoStub) SoftDelete(_ context.Context, _ txmanager.Session, videoID uuid.UUID) error {
	if s.current == nil || s.current.VideoID != videoID {
		return services.ErrVideoNotFound
	}
	s.softDeleted = append(s.softDeleted, videoID)
	return nil
}

func (s *videoRepoStub) Restore(_ context.Context, _ txmanager.Session, videoID uuid.UUID) error {
	if s.current == nil || s.current.VideoID != videoID {
		return services.ErrVideoNotFound
	}
	s.restored = append(s.restored, videoID)
	return nil
}

func (s *videoRepoStub) HardDelete(_ context.Context, _ txmanager.Session, videoID uuid.UUID) error {
	if s.current == nil || s.current.VideoID != videoID {
		return services.ErrVideoNotFound
	}
	s.hardDeleted = append(s.hardDeleted, videoID)
	return nil
}

func (s *videoRepoStub) ReplaceCategories(_ context.Context, _ txmanager.Session, _ uuid.UUID, ids []uuid.UUID) error {
	if s.relationErr != nil {
		return s.relationErr
	}
	s.categories = append(s.categories, ids)
	return nil
}

func (s *videoRepoStub) ReplaceGenres(_ context.Context, _ txmanager.Session, _ uuid.UUID, ids []uuid.UUID) error {
	if s.relationErr != nil {
		return s.relationErr
	}
	s.genres = append(s.genres, ids)
	return nil
}

func (s *videoRepoStub) ReplaceCastMembers(_ context.Context, _ txmanager.Session, _ uuid.UUID, ids []uuid.UUID) error {
	if s.relationErr != nil {
		return s.relationErr
	}
	s.castMembers = append(s.castMembers, ids)
	return nil
}

func lastSet(sets [][]uuid.UUID) []uuid.UUID {
	if len(sets) == 0 {
		return nil
	}
	return sets[len(sets)-1]
}

type outboxRepoStub struct {
	messages []services.OutboxMessage
	err      error
}

func (s *outboxRepoStub) Enqueue(_ context.Context, _ txmanager.Session, msg services.OutboxMessage) error {
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, msg)
	return nil
}

// blobStoreStub 记录 Put/Delete 调用；上传由 errgroup 并发驱动，需要加锁。
type blobStoreStub struct {
	mu        sync.Mutex
	puts      map[string][]byte
	deletes   []string
	failPaths map[string]bool
}

func newBlobStoreStub() *blobStoreStub {
	return &blobStoreStub{
		puts:      make(map[string][]byte),
		failPaths: make(map[string]bool),
	}
}

func (s *blobStoreStub) Put(_ context.Context, path string, data []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPaths[path] {
		return errors.New("storage unavailable")
	}
	s.puts[path] = append([]byte(nil), data...)
	return nil
}

func (s *blobStoreStub) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, path)
	delete(s.puts, path)
	return nil
}

func (s *blobStoreStub) Exists(_ context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.puts[path]
	return ok, nil
}

func (s *blobStoreStub) PublicURL(path string) string {
	return "https://storage.example.com/media/" + path
}

type noopTxManager struct{}

type noopSession struct{}

func (noopSession) Tx() pgx.Tx               { return nil }
func (noopSession) Context() context.Context { return context.Background() }

func (noopTxManager) WithinTx(ctx context.Context, _ txmanager.TxOptions, fn func(context.Context, txmanager.Session) error) error {
	return fn(ctx, noopSession{})
}

func (noopTxManager) WithinReadOnlyTx(ctx context.Context, _ txmanager.TxOptions, fn func(context.Context, txmanager.Session) error) error {
	return fn(ctx, noopSession{})
}
