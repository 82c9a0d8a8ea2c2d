// Package validation registers the custom binding rules used by request DTOs.
package validation

import (
	"sync"

	"art-showcase/internal/domain/analytics"
	"art-showcase/internal/domain/artworks"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var once sync.Once

// Register installs the "artworkid" and "eventtype" tags on gin's validator.
// Safe to call more than once.
func Register() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("artworkid", func(fl validator.FieldLevel) bool {
			return artworks.ValidID(fl.Field().String())
		})
		_ = v.RegisterValidation("eventtype", func(fl validator.FieldLevel) bool {
			t := fl.Field().String()
			for _, known := range analytics.Types {
				if t == known {
					return true
				}
			}
			return false
		})
	})
}
