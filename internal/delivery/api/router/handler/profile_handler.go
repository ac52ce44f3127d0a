package handler

import (
	"net/http"

	"tastebud/internal/delivery/api/response"
	"tastebud/internal/domain/entity"
	"tastebud/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler serves the profile and preference endpoints.
type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// GetProfile returns the caller's profile and liked tags per dimension.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	view, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProfileResponse(view))
}

// UpdateProfile edits the biometric fields and memo. Omitted fields are left unchanged.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if ok, err := bind(c, &req, "profile"); !ok {
		return err
	}

	input := &usecase.UpdateProfileInput{
		HeightCm: req.HeightCm,
		WeightKg: req.WeightKg,
		Age:      req.Age,
		Memo:     req.Memo,
	}
	if req.Gender != nil {
		gender := entity.Gender(*req.Gender)
		input.Gender = &gender
	}
	if req.ActivityLevel != nil {
		level := entity.ActivityLevel(*req.ActivityLevel)
		input.ActivityLevel = &level
	}

	view, err := h.uc.UpdateProfile(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProfileResponse(view))
}

// MutePreference forces one preference score to zero.
func (h *ProfileHandler) MutePreference(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req muteRequest
	if ok, err := bind(c, &req, "mute"); !ok {
		return err
	}

	if err := h.uc.MutePreference(c.Request().Context(), userID, &usecase.MutePreferenceInput{
		Dimension: entity.Dimension(req.Dimension),
		TagKey:    req.TagKey,
	}); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
