package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type attachForm struct {
	OwnerType string `form:"owner_type" validate:"required,owner-type"`
	ImageType string `form:"image_type" validate:"image-type"`
	URL       string `json:"url" validate:"omitempty,url"`
	Order     *int   `json:"order" validate:"omitempty,min=0"`
}

func TestValidate_CustomTags(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&attachForm{OwnerType: "project", ImageType: "cover"}))
	assert.NoError(t, v.Validate(&attachForm{OwnerType: "blog_post"}), "empty image type is allowed")

	err := v.Validate(&attachForm{OwnerType: "spaceship", ImageType: "banner"})
	require.Error(t, err)
	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Unknown owner type", vErr.Errors["owner_type"])
	assert.Contains(t, vErr.Errors["image_type"], "cover, gallery")
}

func TestValidate_FieldNamesAndMessages(t *testing.T) {
	v := New()
	negative := -1

	err := v.Validate(&attachForm{URL: "nope", Order: &negative})
	require.Error(t, err)
	vErr := err.(*ValidationError)
	assert.Equal(t, "This field is required", vErr.Errors["owner_type"])
	assert.Equal(t, "Must be a valid URL", vErr.Errors["url"])
	assert.Equal(t, "Must be at least 0", vErr.Errors["order"])
	assert.Contains(t, err.Error(), "Validation failed")
}

type contactForm struct {
	Email  string `json:"email" validate:"required,email"`
	Status string `json:"status" validate:"contact-status"`
}

func TestValidate_ContactRules(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&contactForm{Email: "ada@example.com", Status: "replied"}))
	assert.NoError(t, v.Validate(&contactForm{Email: "ada@example.com"}))

	err := v.Validate(&contactForm{Email: "ada", Status: "spam"})
	require.Error(t, err)
	vErr := err.(*ValidationError)
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Contains(t, vErr.Errors["status"], "new, read, replied")
}
