package snap

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/zlog"

	"github.com/Nurash908/Selfie2Snap/internal/domain"
	"github.com/Nurash908/Selfie2Snap/internal/generation"
	"github.com/Nurash908/Selfie2Snap/internal/http-server/handler/snap/dto"
	snaprepo "github.com/Nurash908/Selfie2Snap/internal/repository/snap"
	snap_uc "github.com/Nurash908/Selfie2Snap/internal/usecase/snap"
	"github.com/Nurash908/Selfie2Snap/internal/usecase/studio"
)

const maxBodySize = 32 << 20

type SnapHandler struct {
	snaps    snapUsecase
	studio   studioUsecase
	validate *validator.Validate
	logger   *zlog.Zerolog
}

func NewSnapHandler(snaps snapUsecase, studioUC studioUsecase, logger *zlog.Zerolog) *SnapHandler {
	return &SnapHandler{
		snaps:    snaps,
		studio:   studioUC,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *SnapHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.GenerateRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	snaps, err := h.snaps.GenerateBatch(ctx, req.SourceA, req.SourceB, domain.StyleID(req.Style), req.Frames)
	if err != nil {
		h.handleGenerateError(w, err, req.Style)
		return
	}

	response := dto.GenerateResponse{Snaps: make([]dto.SnapResponse, 0, len(snaps))}
	for _, s := range snaps {
		response.Snaps = append(response.Snaps, toSnapResponse(s))
	}

	h.logger.Info().Int("frames", len(snaps)).Str("style", req.Style).Msg("Generation batch accepted")
	h.respondJSON(w, http.StatusAccepted, response)
}

func (h *SnapHandler) ListSnaps(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter := domain.SnapFilter{
		Style:        domain.StyleID(q.Get("style")),
		FavoriteOnly: q.Get("favorites") == "true",
		SortOldest:   q.Get("sort") == "oldest",
	}

	snaps, err := h.snaps.ListSnaps(ctx, filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list snaps")
		h.respondError(w, http.StatusInternalServerError, "Failed to list snaps", err)
		return
	}

	response := make([]dto.SnapResponse, 0, len(snaps))
	for _, s := range snaps {
		response = append(response, toSnapResponse(s))
	}

	h.respondJSON(w, http.StatusOK, response)
}

func (h *SnapHandler) GetSnap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := chi.URLParam(r, "id")
	if id == "" {
		h.respondError(w, http.StatusBadRequest, "Snap ID is required", nil)
		return
	}

	s, err := h.snaps.GetSnap(ctx, id)
	if err != nil {
		h.handleSnapError(w, err, id)
		return
	}

	h.respondJSON(w, http.StatusOK, toSnapResponse(*s))
}

func (h *SnapHandler) DeleteSnap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := chi.URLParam(r, "id")
	if id == "" {
		h.respondError(w, http.StatusBadRequest, "Snap ID is required", nil)
		return
	}

	if err := h.snaps.DeleteSnap(ctx, id); err != nil {
		h.handleSnapError(w, err, id)
		return
	}

	h.logger.Info().Str("snap_id", id).Msg("Snap deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *SnapHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := chi.URLParam(r, "id")
	if id == "" {
		h.respondError(w, http.StatusBadRequest, "Snap ID is required", nil)
		return
	}

	favorite, err := h.snaps.ToggleFavorite(ctx, id)
	if err != nil {
		h.handleSnapError(w, err, id)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.FavoriteResponse{ID: id, Favorite: favorite})
}

func (h *SnapHandler) Enhance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := chi.URLParam(r, "id")
	if id == "" {
		h.respondError(w, http.StatusBadRequest, "Snap ID is required", nil)
		return
	}

	var req dto.EnhanceRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	settings := domain.EnhancementSettings{
		Brightness: req.Brightness,
		Contrast:   req.Contrast,
		Saturation: req.Saturation,
		Warmth:     req.Warmth,
		Sharpness:  req.Sharpness,
		Vibrance:   req.Vibrance,
	}

	export, err := h.studio.Enhance(ctx, id, settings)
	if err != nil {
		h.handleStudioError(w, err, id)
		return
	}

	h.respondPNG(w, export)
}

func (h *SnapHandler) Watermark(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := chi.URLParam(r, "id")
	if id == "" {
		h.respondError(w, http.StatusBadRequest, "Snap ID is required", nil)
		return
	}

	var req dto.WatermarkRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	spec := domain.WatermarkSpec{
		Text:       req.Text,
		Anchor:     domain.WatermarkAnchor(req.Anchor),
		FontSize:   req.FontSize,
		Opacity:    req.Opacity,
		Color:      req.Color,
		FontFamily: domain.FontFamily(req.FontFamily),
		Rotation:   req.Rotation,
	}

	export, err := h.studio.Watermark(ctx, id, spec)
	if err != nil {
		h.handleStudioError(w, err, id)
		return
	}

	h.respondPNG(w, export)
}

func (h *SnapHandler) Archive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.ArchiveRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	export, err := h.studio.Archive(ctx, req.SnapIDs, req.Label)
	if err != nil {
		h.handleArchiveError(w, err)
		return
	}

	h.logger.Info().
		Int("succeeded", export.Succeeded).
		Int("total", export.Total).
		Str("filename", export.Filename).
		Msg("Archive built")

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.Header().Set("X-Archive-Succeeded", fmt.Sprintf("%d", export.Succeeded))
	w.Header().Set("X-Archive-Total", fmt.Sprintf("%d", export.Total))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(export.Data); err != nil {
		h.logger.Error().Err(err).Str("filename", export.Filename).Msg("Failed to stream archive")
	}
}

func (h *SnapHandler) ListStyles(w http.ResponseWriter, r *http.Request) {
	styles := generation.Styles()

	response := make([]dto.StyleResponse, 0, len(styles))
	for _, s := range styles {
		response = append(response, dto.StyleResponse{ID: string(s.ID), Name: s.Name})
	}

	h.respondJSON(w, http.StatusOK, response)
}

func (h *SnapHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to decode request body")
		h.respondError(w, http.StatusBadRequest, "Invalid request format", nil)
		return false
	}

	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return false
	}

	return true
}

func (h *SnapHandler) handleGenerateError(w http.ResponseWriter, err error, style string) {
	switch {
	case errors.Is(err, snap_uc.ErrUnknownStyle):
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("Unknown style %q", style), nil)
	case errors.Is(err, snap_uc.ErrMissingSource):
		h.respondError(w, http.StatusBadRequest, "Source image is required", nil)
	case errors.Is(err, snap_uc.ErrTooManyFrames):
		h.respondError(w, http.StatusBadRequest, "Too many frames requested", nil)
	case errors.Is(err, snap_uc.ErrNoFramesEnqueued):
		h.logger.Error().Err(err).Msg("No frames enqueued")
		h.respondError(w, http.StatusBadGateway, "Generation is unavailable", nil)
	default:
		h.logger.Error().Err(err).Msg("Generation failed")
		h.respondError(w, http.StatusInternalServerError, "Failed to start generation", err)
	}
}

func (h *SnapHandler) handleSnapError(w http.ResponseWriter, err error, id string) {
	switch {
	case errors.Is(err, snaprepo.ErrSnapNotFound):
		h.respondError(w, http.StatusNotFound, "Snap not found", nil)
	default:
		h.logger.Error().Err(err).Str("snap_id", id).Msg("Snap operation failed")
		h.respondError(w, http.StatusInternalServerError, "Snap operation failed", err)
	}
}

func (h *SnapHandler) handleStudioError(w http.ResponseWriter, err error, id string) {
	switch {
	case errors.Is(err, snaprepo.ErrSnapNotFound):
		h.respondError(w, http.StatusNotFound, "Snap not found", nil)
	case errors.Is(err, studio.ErrSnapNotReady):
		h.respondError(w, http.StatusConflict, "Snap has no generated frame yet", nil)
	case errors.Is(err, studio.ErrEmptyWatermarkText):
		h.respondError(w, http.StatusBadRequest, "Watermark text is required", nil)
	default:
		h.logger.Error().Err(err).Str("snap_id", id).Msg("Render failed")
		h.respondError(w, http.StatusInternalServerError, "Failed to render image", err)
	}
}

func (h *SnapHandler) handleArchiveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, studio.ErrNoSources):
		h.respondError(w, http.StatusBadRequest, "No snaps selected", nil)
	case errors.Is(err, studio.ErrAllSourcesFailed):
		h.respondError(w, http.StatusUnprocessableEntity, "No snap could be packaged", nil)
	default:
		h.logger.Error().Err(err).Msg("Archive failed")
		h.respondError(w, http.StatusInternalServerError, "Failed to build archive", err)
	}
}

func (h *SnapHandler) respondPNG(w http.ResponseWriter, export *studio.Export) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(export.Data); err != nil {
		h.logger.Error().Err(err).Str("filename", export.Filename).Msg("Failed to stream export")
	}
}

func (h *SnapHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *SnapHandler) respondError(w http.ResponseWriter, status int, message string, err error) {
	response := dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}

	if err != nil {
		response.Details = err.Error()
	}

	h.respondJSON(w, status, response)
}

func toSnapResponse(s domain.Snap) dto.SnapResponse {
	return dto.SnapResponse{
		ID:         s.ID,
		URL:        s.URL,
		Style:      string(s.Style),
		FrameIndex: s.FrameIndex,
		FrameCount: s.FrameCount,
		Favorite:   s.Favorite,
		Status:     string(s.Status),
		Error:      s.Error,
		CreatedAt:  s.CreatedAt,
	}
}
