package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"portfolio_backend/internal/models"
)

// registerCustomRules registers the domain tags. A registration failure is a
// startup bug, so it is fatal.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'image-type': one of the Image classification tags
	mustRegister("image-type", validateImageType)

	// 'owner-type': a registered attachable owner tag
	mustRegister("owner-type", validateOwnerType)

	mustRegister("contact-status", validateContactStatus)
}

func validateContactStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ContactMessageStatus(value).IsValid()
}

func validateImageType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // handled by 'required'
	}
	return models.ValidImageType(models.ImageType(value))
}

func validateOwnerType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, ok := models.NewAttachable(value)
	return ok
}
