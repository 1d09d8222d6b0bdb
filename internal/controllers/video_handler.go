package controllers

import (
	stdhttp "net/http"
	"strings"

	"github.com/bionicotaku/lingo-services-admin/internal/controllers/dto"
	"github.com/bionicotaku/lingo-services-admin/internal/services"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"
)

const (
	reasonInvalidArgument = "VIDEO_INVALID_ARGUMENT"
	reasonInvalidID       = "INVALID_IDENTIFIER"
)

// VideoHandler 暴露视频聚合的命令与查询 HTTP 接口。
type VideoHandler struct {
	*BaseHandler
	videos *services.VideoUsecase
	log    *log.Helper
}

// NewVideoHandler 构造 VideoHandler。
func NewVideoHandler(base *BaseHandler, videos *services.VideoUsecase, logger log.Logger) *VideoHandler {
	return &VideoHandler{
		BaseHandler: base,
		videos:      videos,
		log:         log.NewHelper(logger),
	}
}

// Register 挂载路由。multipart 客户端通常无法发送 PATCH，
// 因此更新同时接受 POST /videos/{video_id}。
func (h *VideoHandler) Register(r *khttp.Router) {
	r.POST("/videos", h.create)
	r.GET("/videos/{video_id}", h.get)
	r.PATCH("/videos/{video_id}", h.update)
	r.PUT("/videos/{video_id}", h.update)
	r.POST("/videos/{video_id}", h.update)
	r.DELETE("/videos/{video_id}", h.delete)
	r.POST("/videos/{video_id}/restore", h.restore)
	r.DELETE("/videos/{video_id}/force", h.forceDelete)
}

func (h *VideoHandler) create(ctx khttp.Context) error {
	req, err := h.decodeCreate(ctx)
	if err != nil {
		return errors.BadRequest(reasonInvalidArgument, err.Error())
	}
	input, err := req.ToInput()
	if err != nil {
		return errors.BadRequest(reasonInvalidArgument, err.Error())
	}

	opCtx, cancel := h.WithTimeout(ctx, HandlerTypeCommand)
	defer cancel()

	detail, err := h.videos.Create(opCtx, input)
	if err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusCreated, detail)
}

func (h *VideoHandler) get(ctx khttp.Context) error {
	videoID, err := pathUUID(ctx, "video_id")
	if err != nil {
		return err
	}

	opCtx, cancel := h.WithTimeout(ctx, HandlerTypeQuery)
	defer cancel()

	detail, err := h.videos.Get(opCtx, videoID)
	if err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusOK, detail)
}

func (h *VideoHandler) update(ctx khttp.Context) error {
	videoID, err := pathUUID(ctx, "video_id")
	if err != nil {
		return err
	}
	req, err := h.decodeUpdate(ctx)
	if err != nil {
		return errors.BadRequest(reasonInvalidArgument, err.Error())
	}
	input, err := req.ToInput(videoID)
	if err != nil {
		return errors.BadRequest(reasonInvalidArgument, err.Error())
	}

	opCtx, cancel := h.WithTimeout(ctx, HandlerTypeCommand)
	defer cancel()

	detail, err := h.videos.Update(opCtx, input)
	if err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusOK, detail)
}

func (h *VideoHandler) delete(ctx khttp.Context) error {
	videoID, err := pathUUID(ctx, "video_id")
	if err != nil {
		return err
	}
	input := services.DeleteVideoInput{VideoID: videoID}
	if reason := ctx.Query().Get("reason"); reason != "" {
		input.Reason = &reason
	}

	opCtx, cancel := h.WithTimeout(ctx, HandlerTypeCommand)
	defer cancel()

	if err := h.videos.Delete(opCtx, input); err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusNoContent, nil)
}

func (h *VideoHandler) restore(ctx khttp.Context) error {
	videoID, err := pathUUID(ctx, "video_id")
	if err != nil {
		return err
	}

	opCtx, cancel := h.WithTimeout(ctx, HandlerTypeCommand)
	defer cancel()

	if err := h.videos.Restore(opCtx, videoID); err != nil {
		return err
	}
	detail, err := h.videos.Get(opCtx, videoID)
	if err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusOK, detail)
}

func (h *VideoHandler) forceDelete(ctx khttp.Context) error {
	videoID, err := pathUUID(ctx, "video_id")
	if err != nil {
		return err
	}

	opCtx, cancel := h.WithTimeout(ctx, HandlerTypeCommand)
	defer cancel()

	if err := h.videos.ForceDelete(opCtx, videoID); err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusNoContent, nil)
}

func (h *VideoHandler) decodeCreate(ctx khttp.Context) (*dto.CreateVideoRequest, error) {
	if isMultipart(ctx.Request()) {
		return parseCreateVideoForm(ctx.Request())
	}
	var req dto.CreateVideoRequest
	if err := ctx.Bind(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *VideoHandler) decodeUpdate(ctx khttp.Context) (*dto.UpdateVideoRequest, error) {
	if isMultipart(ctx.Request()) {
		return parseUpdateVideoForm(ctx.Request())
	}
	var req dto.UpdateVideoRequest
	if err := ctx.Bind(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func isMultipart(r *stdhttp.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/")
}

func pathUUID(ctx khttp.Context, key string) (uuid.UUID, error) {
	raw := ctx.Vars().Get(key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.BadRequest(reasonInvalidID, key+" must be a valid uuid")
	}
	return id, nil
}
