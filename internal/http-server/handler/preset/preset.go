package preset

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/zlog"

	"github.com/Nurash908/Selfie2Snap/internal/domain"
	"github.com/Nurash908/Selfie2Snap/internal/http-server/handler/preset/dto"
	snaprepo "github.com/Nurash908/Selfie2Snap/internal/repository/snap"
	presets_uc "github.com/Nurash908/Selfie2Snap/internal/usecase/presets"
)

type PresetHandler struct {
	usecase  presetsUsecase
	validate *validator.Validate
	logger   *zlog.Zerolog
}

func NewPresetHandler(usecase presetsUsecase, logger *zlog.Zerolog) *PresetHandler {
	return &PresetHandler{
		usecase:  usecase,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *PresetHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := h.usecase.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list presets")
		h.respondError(w, http.StatusInternalServerError, "Failed to list presets", err)
		return
	}

	response := make([]dto.PresetResponse, 0, len(presets))
	for _, p := range presets {
		response = append(response, toPresetResponse(p))
	}

	h.respondJSON(w, http.StatusOK, response)
}

func (h *PresetHandler) CreatePreset(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePresetRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.usecase.Create(r.Context(), req.Name, toSpec(req.Spec))
	if err != nil {
		h.handleCreateError(w, err)
		return
	}

	h.logger.Info().Str("preset_id", created.ID).Str("name", created.Name).Msg("Preset created")
	h.respondJSON(w, http.StatusCreated, toPresetResponse(*created))
}

func (h *PresetHandler) DeletePreset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.respondError(w, http.StatusBadRequest, "Preset ID is required", nil)
		return
	}

	if err := h.usecase.Delete(r.Context(), id); err != nil {
		h.handlePresetError(w, err, id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ApplyPreset returns the preset's full spec so the client can overwrite
// its working settings in one step.
func (h *PresetHandler) ApplyPreset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.respondError(w, http.StatusBadRequest, "Preset ID is required", nil)
		return
	}

	spec, err := h.usecase.Apply(r.Context(), id)
	if err != nil {
		h.handlePresetError(w, err, id)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.PreferenceResponse{Spec: toSpecResponse(spec)})
}

func (h *PresetHandler) GetPreference(w http.ResponseWriter, r *http.Request) {
	spec, err := h.usecase.LastUsed(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load preference")
		h.respondError(w, http.StatusInternalServerError, "Failed to load preference", err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.PreferenceResponse{Spec: toSpecResponse(spec)})
}

func (h *PresetHandler) SavePreference(w http.ResponseWriter, r *http.Request) {
	var req dto.SavePreferenceRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.usecase.SaveLastUsed(r.Context(), toSpec(req.Spec)); err != nil {
		h.logger.Error().Err(err).Msg("Failed to save preference")
		h.respondError(w, http.StatusInternalServerError, "Failed to save preference", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PresetHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
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

func (h *PresetHandler) handleCreateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, presets_uc.ErrNameRequired):
		h.respondError(w, http.StatusBadRequest, "Preset name is required", nil)
	case errors.Is(err, presets_uc.ErrEmptyText):
		h.respondError(w, http.StatusBadRequest, "Preset text is required", nil)
	default:
		h.logger.Error().Err(err).Msg("Failed to create preset")
		h.respondError(w, http.StatusInternalServerError, "Failed to create preset", err)
	}
}

func (h *PresetHandler) handlePresetError(w http.ResponseWriter, err error, id string) {
	switch {
	case errors.Is(err, presets_uc.ErrBuiltInPreset):
		h.respondError(w, http.StatusForbidden, "Built-in presets cannot be deleted", nil)
	case errors.Is(err, snaprepo.ErrPresetNotFound):
		h.respondError(w, http.StatusNotFound, "Preset not found", nil)
	default:
		h.logger.Error().Err(err).Str("preset_id", id).Msg("Preset operation failed")
		h.respondError(w, http.StatusInternalServerError, "Preset operation failed", err)
	}
}

func (h *PresetHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *PresetHandler) respondError(w http.ResponseWriter, status int, message string, err error) {
	response := dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}

	if err != nil {
		response.Details = err.Error()
	}

	h.respondJSON(w, status, response)
}

func toSpec(p dto.SpecPayload) domain.WatermarkSpec {
	return domain.WatermarkSpec{
		Text:       p.Text,
		Anchor:     domain.WatermarkAnchor(p.Anchor),
		FontSize:   p.FontSize,
		Opacity:    p.Opacity,
		Color:      p.Color,
		FontFamily: domain.FontFamily(p.FontFamily),
		Rotation:   p.Rotation,
	}
}

func toSpecResponse(s domain.WatermarkSpec) dto.SpecResponse {
	return dto.SpecResponse{
		Text:       s.Text,
		Anchor:     string(s.Anchor),
		FontSize:   s.FontSize,
		Opacity:    s.Opacity,
		Color:      s.Color,
		FontFamily: string(s.FontFamily),
		Rotation:   s.Rotation,
	}
}

func toPresetResponse(p domain.WatermarkPreset) dto.PresetResponse {
	return dto.PresetResponse{
		ID:   p.ID,
		Name: p.Name,
		Kind: string(p.Kind),
		Spec: toSpecResponse(p.Spec),
	}
}
