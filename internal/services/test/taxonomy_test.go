package services_test

import (
	"context"
	"io"
	"testing"

	"github.com/bionicotaku/lingo-services-admin/internal/models/po"
	"github.com/bionicotaku/lingo-services-admin/internal/services"
	"github.com/bionicotaku/lingo-utils/txmanager"
	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

func newTaxonomyUsecase(categories *categoryRepoStub, genres *genreRepoStub, cast *castMemberRepoStub) *services.TaxonomyUsecase {
	logger := log.NewStdLogger(io.Discard)
	return services.NewTaxonomyUsecase(categories, genres, cast, noopTxManager{}, logger)
}

func TestCreateCategory(t *testing.T) {
	categories := &categoryRepoStub{}
	uc := newTaxonomyUsecase(categories, &genreRepoStub{}, &castMemberRepoStub{})

	desc := "feature films"
	created, err := uc.CreateCategory(context.Background(), "Movies", &desc, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || created.Name != "Movies" || !created.IsActive {
		t.Fatalf("unexpected category: %+v", created)
	}
	if categories.created == nil {
		t.Fatal("expected repo create call")
	}
}

func TestCreateCategoryEmptyName(t *testing.T) {
	uc := newTaxonomyUsecase(&categoryRepoStub{}, &genreRepoStub{}, &castMemberRepoStub{})

	_, err := uc.CreateCategory(context.Background(), "", nil, true)
	if !kerrors.IsBadRequest(err) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestUpdateCategoryNotFound(t *testing.T) {
	categories := &categoryRepoStub{updateErr: services.ErrCategoryNotFound}
	uc := newTaxonomyUsecase(categories, &genreRepoStub{}, &castMemberRepoStub{})

	name := "Series"
	_, err := uc.UpdateCategory(context.Background(), services.UpdateCategoryRow{CategoryID: uuid.New(), Name: &name})
	if !kerrors.Is(err, services.ErrCategoryNotFound) {
		t.Fatalf("expected category not found, got %v", err)
	}
}

func TestCreateGenreSyncsCategories(t *testing.T) {
	genres := &genreRepoStub{}
	uc := newTaxonomyUsecase(&categoryRepoStub{}, genres, &castMemberRepoStub{})

	categoryIDs := []uuid.UUID{uuid.New(), uuid.New()}
	created, err := uc.CreateGenre(context.Background(), services.CreateGenreInput{
		Name:        "Action",
		IsActive:    true,
		CategoryIDs: categoryIDs,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || created.Name != "Action" {
		t.Fatalf("unexpected genre: %+v", created)
	}
	if len(genres.categories) != 1 || len(genres.categories[0]) != 2 {
		t.Fatalf("expected category sync in the same transaction, got %v", genres.categories)
	}
}

func TestCreateGenreUnknownCategory(t *testing.T) {
	genres := &genreRepoStub{relationErr: services.ErrCategoryNotFound}
	uc := newTaxonomyUsecase(&categoryRepoStub{}, genres, &castMemberRepoStub{})

	_, err := uc.CreateGenre(context.Background(), services.CreateGenreInput{
		Name:        "Action",
		CategoryIDs: []uuid.UUID{uuid.New()},
	})
	if !kerrors.Is(err, services.ErrCategoryNotFound) {
		t.Fatalf("expected category not found, got %v", err)
	}
}

func TestCreateGenreWithoutCategoriesSkipsSync(t *testing.T) {
	genres := &genreRepoStub{}
	uc := newTaxonomyUsecase(&categoryRepoStub{}, genres, &castMemberRepoStub{})

	_, err := uc.CreateGenre(context.Background(), services.CreateGenreInput{Name: "Drama"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(genres.categories) != 0 {
		t.Fatalf("nil category slice must not be synced, got %v", genres.categories)
	}
}

func TestUpdateGenreReplacesCategories(t *testing.T) {
	genres := &genreRepoStub{current: &po.Genre{GenreID: uuid.New(), Name: "Action", IsActive: true}}
	uc := newTaxonomyUsecase(&categoryRepoStub{}, genres, &castMemberRepoStub{})

	updated, err := uc.UpdateGenre(context.Background(), services.UpdateGenreInput{
		GenreID:     genres.current.GenreID,
		CategoryIDs: []uuid.UUID{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated == nil {
		t.Fatal("expected genre")
	}
	if len(genres.categories) != 1 || len(genres.categories[0]) != 0 {
		t.Fatalf("expected explicit category clear, got %v", genres.categories)
	}
}

func TestCreateCastMemberValidatesType(t *testing.T) {
	uc := newTaxonomyUsecase(&categoryRepoStub{}, &genreRepoStub{}, &castMemberRepoStub{})

	_, err := uc.CreateCastMember(context.Background(), "Jane Doe", 9)
	if !kerrors.IsBadRequest(err) {
		t.Fatalf("expected bad request for unknown type, got %v", err)
	}

	created, err := uc.CreateCastMember(context.Background(), "Jane Doe", int16(po.CastMemberTypeDirector))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Type != po.CastMemberTypeDirector {
		t.Fatalf("unexpected type: %v", created.Type)
	}
}

func TestDeleteCastMemberNotFound(t *testing.T) {
	cast := &castMemberRepoStub{deleteErr: services.ErrCastMemberNotFound}
	uc := newTaxonomyUsecase(&categoryRepoStub{}, &genreRepoStub{}, cast)

	err := uc.DeleteCastMember(context.Background(), uuid.New())
	if !kerrors.Is(err, services.ErrCastMemberNotFound) {
		t.Fatalf("expected cast member not found, got %v", err)
	}
}

func TestDeleteGenre(t *testing.T) {
	genres := &genreRepoStub{current: &po.Genre{GenreID: uuid.New()}}
	uc := newTaxonomyUsecase(&categoryRepoStub{}, genres, &castMemberRepoStub{})

	if err := uc.DeleteGenre(context.Background(), genres.current.GenreID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(genres.softDeleted) != 1 {
		t.Fatalf("expected soft delete, got %v", genres.softDeleted)
	}
}

// ---- stubs ----

type categoryRepoStub struct {
	created   *po.Category
	updateErr error
	deleteErr error
}

func (s *categoryRepoStub) Create(_ context.Context, _ txmanager.Session, category *po.Category) (*po.Category, error) {
	s.created = category
	return category, nil
}

func (s *categoryRepoStub) Update(_ context.Context, _ txmanager.Session, input services.UpdateCategoryRow) (*po.Category, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &po.Category{CategoryID: input.CategoryID}, nil
}

func (s *categoryRepoStub) FindByID(_ context.Context, _ txmanager.Session, categoryID uuid.UUID) (*po.Category, error) {
	if s.created != nil && s.created.CategoryID == categoryID {
		return s.created, nil
	}
	return nil, services.ErrCategoryNotFound
}

func (s *categoryRepoStub) SoftDelete(_ context.Context, _ txmanager.Session, _ uuid.UUID) error {
	return s.deleteErr
}

type genreRepoStub struct {
	current     *po.Genre
	relationErr error

	categories  [][]uuid.UUID
	softDeleted []uuid.UUID
}

func (s *genreRepoStub) Create(_ context.Context, _ txmanager.Session, genre *po.Genre) (*po.Genre, error) {
	s.current = genre
	return genre, nil
}

func (s *genreRepoStub) Update(_ context.Context, _ txmanager.Session, input services.UpdateGenreRow) (*po.Genre, error) {
	if s.current == nil || s.current.GenreID != input.GenreID {
		return nil, services.ErrGenreNotFound
	}
	row := *s.current
	if input.Name != nil {
		row.Name = *input.Name
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
	s.current = &row
	return &row, nil
}

func (s *genreRepoStub) FindByID(_ context.Context, _ txmanager.Session, genreID uuid.UUID) (*po.Genre, error) {
	if s.current == nil || s.current.GenreID != genreID {
		return nil, services.ErrGenreNotFound
	}
	return s.current, nil
}

func (s *genreRepoStub) FindCategoryIDs(_ context.Context, _ txmanager.Session, _ uuid.UUID) ([]uuid.UUID, error) {
	return lastSet(s.categories), nil
}

func (s *genreRepoStub) SoftDelete(_ context.Context, _ txmanager.Session, genreID uuid.UUID) error {
	if s.current == nil || s.current.GenreID != genreID {
		return services.ErrGenreNotFound
	}
	s.softDeleted = append(s.softDeleted, genreID)
	return nil
}

func (s *genreRepoStub) ReplaceCategories(_ context.Context, _ txmanager.Session, _ uuid.UUID, ids []uuid.UUID) error {
	if s.relationErr != nil {
		return s.relationErr
	}
	s.categories = append(s.categories, ids)
	return nil
}

type castMemberRepoStub struct {
	created   *po.CastMember
	updateErr error
	deleteErr error
}

func (s *castMemberRepoStub) Create(_ context.Context, _ txmanager.Session, member *po.CastMember) (*po.CastMember, error) {
	s.created = member
	return member, nil
}

func (s *castMemberRepoStub) Update(_ context.Context, _ txmanager.Session, input services.UpdateCastMemberRow) (*po.CastMember, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &po.CastMember{CastMemberID: input.CastMemberID}, nil
}

func (s *castMemberRepoStub) FindByID(_ context.Context, _ txmanager.Session, memberID uuid.UUID) (*po.CastMember, error) {
	if s.created != nil && s.created.CastMemberID == memberID {
		return s.created, nil
	}
	return nil, services.ErrCastMemberNotFound
}

func (s *castMemberRepoStub) SoftDelete(_ context.Context, _ txmanager.Session, _ uuid.UUID) error {
	return s.deleteErr
}
