// internal/validator/validator.go
package validator

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()

	// A report year must fall in [2000, current year + 1].
	_ = Validate.RegisterValidation("reportyear", func(fl validator.FieldLevel) bool {
		year := int(fl.Field().Int())
		return year >= 2000 && year <= time.Now().Year()+1
	})
}
