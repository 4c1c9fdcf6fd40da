package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"truthprevails/pkg/errors"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	File         *FileHandler
	Verification *VerificationHandler
	Tamper       *TamperHandler
	Health       *HealthHandler
	WebSocket    *WebSocketHandler
}

type upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

func payloadTooLarge(maxSize int64) *errors.AppError {
	return errors.New(
		"PAYLOAD_TOO_LARGE",
		fmt.Sprintf("File size exceeds maximum allowed (%dMB)", maxSize/(1024*1024)),
		http.StatusRequestEntityTooLarge,
		nil,
	)
}

func readFormFile(c echo.Context, field string, maxSize int64) (*upload, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, errors.BadRequest("Missing or invalid file", err)
	}
	return readFileHeader(file, maxSize)
}

func readFileHeader(file *multipart.FileHeader, maxSize int64) (*upload, error) {
	if file.Size > maxSize {
		return nil, payloadTooLarge(maxSize)
	}

	src, err := file.Open()
	if err != nil {
		return nil, errors.Internal("Unable to read file", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, errors.Internal("Unable to read file", err)
	}
	if int64(len(data)) > maxSize {
		return nil, payloadTooLarge(maxSize)
	}

	return &upload{
		FileName:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
