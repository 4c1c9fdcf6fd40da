package handler

import (
	"github.com/labstack/echo/v4"

	"truthprevails/internal/adapter/api/middleware"
	"truthprevails/internal/usecase"
	"truthprevails/pkg/response"
	"truthprevails/pkg/utils"
)

const (
	defaultRecentCount = 10
	maxRecentCount     = 100
)

type VerificationHandler struct {
	verificationUseCase *usecase.VerificationUseCase
	maxFileSize         int64
}

func NewVerificationHandler(verificationUseCase *usecase.VerificationUseCase, maxFileSize int64) *VerificationHandler {
	return &VerificationHandler{
		verificationUseCase: verificationUseCase,
		maxFileSize:         maxFileSize,
	}
}

type hashRequest struct {
	Hash string `json:"hash" validate:"required,sha256hex"`
}

// Items are validated one by one in the use case so a bad hash only fails its own entry.
type batchRequest struct {
	Hashes []string `json:"hashes" validate:"required,min=1,max=100"`
}

func (h *VerificationHandler) Verify(c echo.Context) error {
	var req hashRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.verificationUseCase.VerifyHash(c.Request().Context(), req.Hash)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{"verification": result})
}

func (h *VerificationHandler) VerifyBatch(c echo.Context) error {
	var req batchRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.verificationUseCase.VerifyBatch(c.Request().Context(), req.Hashes)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

func (h *VerificationHandler) VerifyFile(c echo.Context) error {
	file, err := readFormFile(c, "file", h.maxFileSize)
	if err != nil {
		return response.Error(c, err)
	}

	result, err := h.verificationUseCase.VerifyFile(c.Request().Context(), file.Data)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{
		"fileName":     file.FileName,
		"verification": result,
	})
}

func (h *VerificationHandler) Submit(c echo.Context) error {
	var req hashRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.verificationUseCase.SubmitHash(c.Request().Context(), middleware.UserID(c), req.Hash)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, result)
}

func (h *VerificationHandler) Recent(c echo.Context) error {
	count := utils.GetIntQuery(c, "count", defaultRecentCount, maxRecentCount)

	hashes, err := h.verificationUseCase.RecentHashes(c.Request().Context(), count)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{
		"hashes": hashes,
		"count":  len(hashes),
	})
}

func (h *VerificationHandler) BySubmitter(c echo.Context) error {
	result, err := h.verificationUseCase.HashesBySubmitter(c.Request().Context(), c.Param("address"), c.QueryParam("source"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

func (h *VerificationHandler) Stats(c echo.Context) error {
	stats, err := h.verificationUseCase.Stats(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, stats)
}
