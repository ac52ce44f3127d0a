package handler

import (
	"context"
	"net/http"

	"tastebud/internal/delivery/api/response"
	"tastebud/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for account-related handlers.
type UserHandler struct {
	uc usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// RegisterCustomer handles customer registration.
func (h *UserHandler) RegisterCustomer(c echo.Context) error {
	return h.register(c, h.uc.RegisterCustomer)
}

// RegisterMerchant handles merchant registration.
func (h *UserHandler) RegisterMerchant(c echo.Context) error {
	return h.register(c, h.uc.RegisterMerchant)
}

type registerFunc func(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error)

func (h *UserHandler) register(c echo.Context, fn registerFunc) error {
	var req registerRequest
	if ok, err := bind(c, &req, "registration"); !ok {
		return err
	}

	output, err := fn(c.Request().Context(), &usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserResponse(output.User))
}

// Login handles the email login request.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if ok, err := bind(c, &req, "login"); !ok {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTokenResponse(output))
}

// RefreshToken exchanges a refresh token for a new token pair.
func (h *UserHandler) RefreshToken(c echo.Context) error {
	var req refreshRequest
	if ok, err := bind(c, &req, "refresh token"); !ok {
		return err
	}

	output, err := h.uc.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTokenResponse(output))
}

// Me returns the authenticated account.
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.uc.GetUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user))
}

func toTokenResponse(output *usecase.LoginOutput) *tokenResponse {
	return &tokenResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		User:         toUserResponse(output.User),
	}
}
