package dto_test

import (
	"testing"

	"github.com/bionicotaku/lingo-services-admin/internal/controllers/dto"
	"github.com/bionicotaku/lingo-services-admin/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVideoRequestToInput(t *testing.T) {
	t.Run("valid request with relations", func(t *testing.T) {
		categoryID := uuid.New()
		genreID := uuid.New()

		req := &dto.CreateVideoRequest{
			Title:        "Test Video",
			Description:  "Test description",
			YearLaunched: 2024,
			Opened:       true,
			Rating:       "12",
			Duration:     90,
			CategoriesID: []string{categoryID.String()},
			GenresID:     []string{genreID.String()},
		}

		input, err := req.ToInput()

		require.NoError(t, err)
		assert.Equal(t, "Test Video", input.Title)
		assert.Equal(t, int32(2024), input.YearLaunched)
		require.Len(t, input.CategoryIDs, 1)
		assert.Equal(t, categoryID, input.CategoryIDs[0])
		require.Len(t, input.GenreIDs, 1)
		assert.Equal(t, genreID, input.GenreIDs[0])
		assert.Nil(t, input.CastMemberIDs)
	})

	t.Run("missing required fields", func(t *testing.T) {
		req := &dto.CreateVideoRequest{Title: "Test Video"}

		input, err := req.ToInput()

		assert.Error(t, err)
		assert.Equal(t, services.CreateVideoInput{}, input)
	})

	t.Run("invalid relation uuid", func(t *testing.T) {
		req := &dto.CreateVideoRequest{
			Title:        "Test Video",
			Description:  "desc",
			YearLaunched: 2024,
			Rating:       "L",
			Duration:     90,
			CategoriesID: []string{"not-a-uuid"},
		}

		_, err := req.ToInput()

		assert.Error(t, err)
	})
}

func TestUpdateVideoRequestToInput(t *testing.T) {
	videoID := uuid.New()

	t.Run("absent relations stay nil", func(t *testing.T) {
		title := "Renamed"
		req := &dto.UpdateVideoRequest{Title: &title}

		input, err := req.ToInput(videoID)

		require.NoError(t, err)
		assert.Equal(t, videoID, input.VideoID)
		require.NotNil(t, input.Title)
		assert.Equal(t, "Renamed", *input.Title)
		assert.Nil(t, input.CategoryIDs)
		assert.Nil(t, input.GenreIDs)
		assert.Nil(t, input.CastMemberIDs)
	})

	t.Run("explicit empty slice clears", func(t *testing.T) {
		req := &dto.UpdateVideoRequest{GenresSet: true}

		input, err := req.ToInput(videoID)

		require.NoError(t, err)
		require.NotNil(t, input.GenreIDs)
		assert.Empty(t, input.GenreIDs)
		assert.Nil(t, input.CategoryIDs)
	})

	t.Run("non-empty relation slice", func(t *testing.T) {
		castID := uuid.New()
		req := &dto.UpdateVideoRequest{CastMembersID: []string{castID.String()}}

		input, err := req.ToInput(videoID)

		require.NoError(t, err)
		require.Len(t, input.CastMemberIDs, 1)
		assert.Equal(t, castID, input.CastMemberIDs[0])
	})

	t.Run("invalid duration rejected", func(t *testing.T) {
		bad := int32(-5)
		req := &dto.UpdateVideoRequest{Duration: &bad}

		_, err := req.ToInput(videoID)

		assert.Error(t, err)
	})
}
