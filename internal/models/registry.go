package models

import (
	"reflect"
	"sort"

	"portfolio_backend/internal/ordering"
)

// Owner tags stored in images.owner_type
const (
	OwnerProfile        = "profile"
	OwnerProject        = "project"
	OwnerBlogPost       = "blog_post"
	OwnerEducation      = "education"
	OwnerWorkExperience = "work_experience"
	OwnerCertificate    = "certificate"
	OwnerAchievement    = "achievement"
	OwnerTestimonial    = "testimonial"
)

// Attachable is any entity images can be attached to
type Attachable interface {
	AttachmentOwner() (ownerType string, ownerID uint)
}

var attachables = map[string]func() Attachable{
	OwnerProfile:        func() Attachable { return &Profile{} },
	OwnerProject:        func() Attachable { return &Project{} },
	OwnerBlogPost:       func() Attachable { return &BlogPost{} },
	OwnerEducation:      func() Attachable { return &Education{} },
	OwnerWorkExperience: func() Attachable { return &WorkExperience{} },
	OwnerCertificate:    func() Attachable { return &Certificate{} },
	OwnerAchievement:    func() Attachable { return &Achievement{} },
	OwnerTestimonial:    func() Attachable { return &Testimonial{} },
}

// NewAttachable returns an empty model for an owner tag
func NewAttachable(ownerType string) (Attachable, bool) {
	f, ok := attachables[ownerType]
	if !ok {
		return nil, false
	}
	return f(), true
}

func AttachableTypes() []string {
	tags := make([]string, 0, len(attachables))
	for tag := range attachables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// MediaSlot describes one MediaReference column group on a model
type MediaSlot struct {
	Entity   string // URL segment and owner tag, e.g. "project"
	Field    string // slot name and column prefix, e.g. "featured_image"
	Fallback string // filename stem used when a blob has no filename
	Dir      string // object key directory in the storage backend
	New      func() interface{}
	Ref      func(row interface{}) *MediaReference
}

// Column returns the column name of one channel ("url", "file", "data", "mime", "filename")
func (s MediaSlot) Column(channel string) string {
	return s.Field + "_" + channel
}

func (s MediaSlot) Prefix() string {
	return s.Field + "_"
}

// MediaSlots lists every media slot in the schema
var MediaSlots = []MediaSlot{
	{Entity: "image", Field: "image", Fallback: "image", Dir: "images",
		New: func() interface{} { return &Image{} },
		Ref: func(r interface{}) *MediaReference { return &r.(*Image).Image }},
	{Entity: OwnerProfile, Field: "profile_image", Fallback: "profile", Dir: "profile",
		New: func() interface{} { return &Profile{} },
		Ref: func(r interface{}) *MediaReference { return &r.(*Profile).ProfileImage }},
	{Entity: OwnerProfile, Field: "resume", Fallback: "resume", Dir: "resumes",
		New: func() interface{} { return &Profile{} },
		Ref: func(r interface{}) *MediaReference { return &r.(*Profile).Resume }},
	{Entity: OwnerEducation, Field: "logo", Fallback: "logo", Dir: "education",
		New: func() interface{} { return &Education{} },
		Ref: func(r interface{}) *MediaReference { return &r.(*Education).Logo }},
	{Entity: OwnerWorkExperience, Field: "company_logo", Fallback: "company_logo", Dir: "companies",
		New: func() interface{} { return &WorkExperience{} },
		Ref: func(r interface{}) *MediaReference { return &r.(*WorkExperience).CompanyLogo }},
	{Entity: OwnerProject, Field: "featured_image", Fallback: "project", Dir: "projects",
		New: func() interface{} { return &Project{} },
		Ref: func(r interface{}) *MediaReference { return &r.(*Project).FeaturedImage }},
	{Entity: OwnerCertificate, Field: "organization_logo", Fallback: "org_logo", Dir: "certificates",
		New: func() interface{} { return &Certificate{} },
		Ref: func(r interface{}) *MediaReference { return &r.(*Certificate).OrganizationLogo }},
	{Entity: OwnerCertificate, Field: "certificate_image", Fallback: "certificate", Dir: "certificates",
		New: func() interface{} { return &Certificate{} },
		Ref: func(r interface{}) *MediaReference { return &r.(*Certificate).CertificateImage }},
	{Entity: OwnerAchievement, Field: "image", Fallback: "achievement", Dir: "achievements",
		New: func() interface{} { return &Achievement{} },
		Ref: func(r interface{}) *MediaReference { return &r.(*Achievement).Image }},
	{Entity: OwnerBlogPost, Field: "featured_image", Fallback: "blog_featured", Dir: "blog",
		New: func() interface{} { return &BlogPost{} },
		Ref: func(r interface{}) *MediaReference { return &r.(*BlogPost).FeaturedImage }},
	{Entity: OwnerBlogPost, Field: "og_image", Fallback: "blog_og", Dir: "blog/og",
		New: func() interface{} { return &BlogPost{} },
		Ref: func(r interface{}) *MediaReference { return &r.(*BlogPost).OGImage }},
	{Entity: OwnerTestimonial, Field: "author_image", Fallback: "author", Dir: "testimonials",
		New: func() interface{} { return &Testimonial{} },
		Ref: func(r interface{}) *MediaReference { return &r.(*Testimonial).AuthorImage }},
}

// LookupSlot finds the slot for an entity tag and field name
func LookupSlot(entity, field string) (MediaSlot, bool) {
	for _, s := range MediaSlots {
		if s.Entity == entity && s.Field == field {
			return s, true
		}
	}
	return MediaSlot{}, false
}

// SlotsFor returns the slots declared by row's model type
func SlotsFor(row interface{}) []MediaSlot {
	rowType := reflect.TypeOf(row)
	var slots []MediaSlot
	for _, s := range MediaSlots {
		if reflect.TypeOf(s.New()) == rowType {
			slots = append(slots, s)
		}
	}
	return slots
}

// OrderedCollections maps the admin collection name to a model constructor
var OrderedCollections = map[string]func() ordering.Member{
	"skills":          func() ordering.Member { return &Skill{} },
	"social-links":    func() ordering.Member { return &SocialLink{} },
	"projects":        func() ordering.Member { return &Project{} },
	"certificates":    func() ordering.Member { return &Certificate{} },
	"achievements":    func() ordering.Member { return &Achievement{} },
	"testimonials":    func() ordering.Member { return &Testimonial{} },
	"blog-categories": func() ordering.Member { return &BlogCategory{} },
	"work-experience": func() ordering.Member { return &WorkExperience{} },
}

// AllModels is the AutoMigrate list
func AllModels() []interface{} {
	return []interface{}{
		&Profile{},
		&SiteConfiguration{},
		&SocialLink{},
		&Skill{},
		&Education{},
		&WorkExperience{},
		&Project{},
		&Certificate{},
		&Achievement{},
		&BlogCategory{},
		&BlogTag{},
		&BlogPost{},
		&Testimonial{},
		&Image{},
		&ContactMessage{},
	}
}
