package handler

import (
	"github.com/labstack/echo/v4"

	"truthprevails/internal/adapter/api/middleware"
	"truthprevails/internal/domain/entity"
	"truthprevails/internal/usecase"
	"truthprevails/pkg/logger"
	"truthprevails/pkg/response"
	"truthprevails/pkg/utils"
)

type FileHandler struct {
	fileUseCase *usecase.FileUseCase
	maxFileSize int64
}

func NewFileHandler(fileUseCase *usecase.FileUseCase, maxFileSize int64) *FileHandler {
	return &FileHandler{
		fileUseCase: fileUseCase,
		maxFileSize: maxFileSize,
	}
}

func (h *FileHandler) Upload(c echo.Context) error {
	file, err := readFormFile(c, "file", h.maxFileSize)
	if err != nil {
		return response.Error(c, err)
	}

	userID := middleware.UserID(c)
	logger.Debug("Upload from %s: %s (%d bytes, %s)", userID, file.FileName, len(file.Data), file.ContentType)

	result, err := h.fileUseCase.Upload(c.Request().Context(), usecase.UploadInput{
		UserID:      userID,
		FileName:    file.FileName,
		ContentType: file.ContentType,
		Data:        file.Data,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

func (h *FileHandler) ListMyFiles(c echo.Context) error {
	params := utils.GetPageQuery(c)

	files, total, err := h.fileUseCase.ListUserFiles(c.Request().Context(), usecase.ListFilesInput{
		UserID: middleware.UserID(c),
		Status: entity.FileStatus(c.QueryParam("status")),
		Page:   params.Page,
		Limit:  params.Limit,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"files":      files,
		"pagination": response.NewPagination(total, params.Page, params.Limit),
	})
}

func (h *FileHandler) GetFile(c echo.Context) error {
	file, err := h.fileUseCase.GetFile(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{"file": file})
}

func (h *FileHandler) DeleteFile(c echo.Context) error {
	if err := h.fileUseCase.DeleteFile(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "File deleted"})
}
