package handler

import (
	"github.com/labstack/echo/v4"

	"truthprevails/internal/adapter/api/middleware"
	"truthprevails/internal/domain/entity"
	"truthprevails/internal/usecase"
	"truthprevails/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
	userUseCase *usecase.UserUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase, userUseCase *usecase.UserUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
	}
}

type signupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type updateProfileRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type authResponse struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token,omitempty"`
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Signup(c.Request().Context(), usecase.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, authResponse{
		User:  result.User,
		Token: result.Token,
	})
}

// FederatedSignIn is called by clients right after signing in with an external provider.
func (h *AuthHandler) FederatedSignIn(c echo.Context) error {
	user, created, err := h.authUseCase.FederatedSignIn(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return response.Error(c, err)
	}

	body := map[string]interface{}{
		"user":    user,
		"created": created,
	}
	if created {
		return response.Created(c, body)
	}
	return response.Success(c, body)
}

func (h *AuthHandler) GetProfile(c echo.Context) error {
	user, err := h.userUseCase.GetProfile(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{"user": user})
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), middleware.UserID(c), usecase.UpdateProfileInput{
		Name: req.Name,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{"user": user})
}

func (h *AuthHandler) GetWallet(c echo.Context) error {
	address, err := h.userUseCase.GetWalletAddress(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"walletAddress": address})
}

func (h *AuthHandler) DeleteAccount(c echo.Context) error {
	if err := h.userUseCase.DeleteAccount(c.Request().Context(), middleware.UserID(c)); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Account deleted"})
}
