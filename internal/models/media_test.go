package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMediaReference_SettersKeepOneChannel(t *testing.T) {
	ref := MediaReference{File: "projects/old.png", Filename: "old.png", Mime: "image/png"}

	released := ref.SetExternalURL("https://img.example.com/new.png")
	assert.Equal(t, "projects/old.png", released)
	assert.Equal(t, MediaReference{URL: "https://img.example.com/new.png"}, ref)

	released = ref.SetBlob([]byte{1, 2}, "a.jpg", "image/jpeg")
	assert.Empty(t, released)
	assert.Empty(t, ref.URL)
	assert.Equal(t, []byte{1, 2}, ref.Data)

	released = ref.SetFile("projects/new.jpg", "a.jpg", "image/jpeg")
	assert.Empty(t, released)
	assert.Nil(t, ref.Data)
	assert.Equal(t, "projects/new.jpg", ref.File)

	released = ref.SetFile("projects/newer.jpg", "b.jpg", "image/jpeg")
	assert.Equal(t, "projects/new.jpg", released)

	released = ref.Clear()
	assert.Equal(t, "projects/newer.jpg", released)
	assert.True(t, ref.IsEmpty())
}

func TestMediaReference_SetSameFileReleasesNothing(t *testing.T) {
	ref := MediaReference{File: "images/a.png"}
	assert.Empty(t, ref.SetFile("images/a.png", "a.png", "image/png"))
}

func TestMediaReference_Columns(t *testing.T) {
	cols := MediaReference{URL: "https://x.test/a.png"}.Columns("og_image_")

	assert.Equal(t, "https://x.test/a.png", cols["og_image_url"])
	assert.Equal(t, "", cols["og_image_file"])
	assert.Nil(t, cols["og_image_data"], "an unset blob is written as NULL")
	assert.Len(t, cols, 5)

	cols = MediaReference{Data: []byte("x")}.Columns("image_")
	assert.Equal(t, []byte("x"), cols["image_data"])
}

func TestRegistry(t *testing.T) {
	slot, ok := LookupSlot(OwnerBlogPost, "og_image")
	assert.True(t, ok)
	assert.Equal(t, "og_image_file", slot.Column("file"))
	assert.Equal(t, "blog_og", slot.Fallback)

	post := &BlogPost{}
	post.OGImage.URL = "https://x.test/og.png"
	assert.Equal(t, "https://x.test/og.png", slot.Ref(post).URL)

	_, ok = LookupSlot(OwnerBlogPost, "password")
	assert.False(t, ok)

	fields := []string{}
	for _, s := range SlotsFor(&Certificate{}) {
		fields = append(fields, s.Field)
	}
	assert.Equal(t, []string{"organization_logo", "certificate_image"}, fields)
	assert.Empty(t, SlotsFor(&Skill{}))

	owner, ok := NewAttachable(OwnerTestimonial)
	assert.True(t, ok)
	assert.IsType(t, &Testimonial{}, owner)
	_, ok = NewAttachable("user")
	assert.False(t, ok)
	assert.Contains(t, AttachableTypes(), OwnerWorkExperience)
}

func TestValidImageType(t *testing.T) {
	assert.True(t, ValidImageType(ImageTypeOG))
	assert.False(t, ValidImageType("banner"))
}

func TestOrderedCollectionsAreMembers(t *testing.T) {
	for name, factory := range OrderedCollections {
		member := factory()
		assert.NotNil(t, member.OrderCollection().Model, name)
	}
}
