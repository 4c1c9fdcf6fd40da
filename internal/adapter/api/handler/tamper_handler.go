package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"truthprevails/internal/usecase"
	"truthprevails/pkg/errors"
	"truthprevails/pkg/response"
)

type TamperHandler struct {
	tamperUseCase *usecase.TamperDetectionUseCase
	maxFileSize   int64
}

func NewTamperHandler(tamperUseCase *usecase.TamperDetectionUseCase, maxFileSize int64) *TamperHandler {
	return &TamperHandler{
		tamperUseCase: tamperUseCase,
		maxFileSize:   maxFileSize,
	}
}

func (h *TamperHandler) Analyze(c echo.Context) error {
	file, err := readFormFile(c, "file", h.maxFileSize)
	if err != nil {
		return response.Error(c, err)
	}

	analysis := h.tamperUseCase.Analyze(c.Request().Context(), usecase.TamperInput{
		FileName:    file.FileName,
		ContentType: file.ContentType,
		Data:        file.Data,
	})
	return response.Success(c, map[string]interface{}{"analysis": analysis})
}

func (h *TamperHandler) AnalyzeBatch(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid multipart form", err))
	}

	headers := form.File["files"]
	if len(headers) > usecase.MaxTamperBatch {
		return response.Error(c, errors.BadRequest(fmt.Sprintf("Maximum %d files allowed per batch", usecase.MaxTamperBatch), nil))
	}

	inputs := make([]usecase.TamperInput, 0, len(headers))
	for _, header := range headers {
		file, err := readFileHeader(header, h.maxFileSize)
		if err != nil {
			return response.Error(c, err)
		}
		inputs = append(inputs, usecase.TamperInput{
			FileName:    file.FileName,
			ContentType: file.ContentType,
			Data:        file.Data,
		})
	}

	result, err := h.tamperUseCase.AnalyzeBatch(c.Request().Context(), inputs)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}
