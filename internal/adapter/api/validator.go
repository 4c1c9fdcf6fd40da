package api

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"truthprevails/pkg/hashing"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	err := v.RegisterValidation("sha256hex", func(fl validator.FieldLevel) bool {
		return hashing.IsValid(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("register sha256hex validation: %v", err))
	}

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
