package handler

import (
	"sync"

	"taskdesk/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags used by the request
// models: notblank and taskstatus. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		_ = v.RegisterValidation("taskstatus", func(fl validator.FieldLevel) bool {
			return model.TaskStatus(fl.Field().String()).IsValid()
		})
	})
}
