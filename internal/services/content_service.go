package services

import (
	"context"

	"gorm.io/gorm"

	"portfolio_backend/internal/dto"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
)

// ContentService builds the read API. Every media slot goes through the resolver.
type ContentService interface {
	Profile(ctx context.Context, db *gorm.DB) (dto.Record, error)
	SiteConfiguration(ctx context.Context, db *gorm.DB) (*models.SiteConfiguration, error)

	Projects(ctx context.Context, db *gorm.DB, featuredOnly bool) ([]dto.Record, error)
	Project(ctx context.Context, db *gorm.DB, slug string) (dto.Record, error)

	Posts(ctx context.Context, db *gorm.DB, categorySlug, tagSlug string) ([]dto.Record, error)
	Post(ctx context.Context, db *gorm.DB, slug string) (dto.Record, error)
	Categories(ctx context.Context, db *gorm.DB) ([]dto.Record, error)
	Tags(ctx context.Context, db *gorm.DB) ([]dto.Record, error)

	Skills(ctx context.Context, db *gorm.DB) ([]dto.Record, error)
	SocialLinks(ctx context.Context, db *gorm.DB) ([]dto.Record, error)
	Certificates(ctx context.Context, db *gorm.DB) ([]dto.Record, error)
	Achievements(ctx context.Context, db *gorm.DB) ([]dto.Record, error)
	Testimonials(ctx context.Context, db *gorm.DB) ([]dto.Record, error)
	Education(ctx context.Context, db *gorm.DB) ([]dto.Record, error)
	Experience(ctx context.Context, db *gorm.DB) ([]dto.Record, error)

	Certificate(ctx context.Context, db *gorm.DB, slug string) (dto.Record, error)
	Achievement(ctx context.Context, db *gorm.DB, slug string) (dto.Record, error)
	Testimonial(ctx context.Context, db *gorm.DB, slug string) (dto.Record, error)
	EducationEntry(ctx context.Context, db *gorm.DB, slug string) (dto.Record, error)
}

type contentService struct {
	contentRepo  repositories.ContentRepository
	singletonSvc SingletonService
	imageSvc     ImageService
	mediaSvc     MediaService
}

func NewContentService(
	contentRepo repositories.ContentRepository,
	singletonSvc SingletonService,
	imageSvc ImageService,
	mediaSvc MediaService,
) ContentService {
	return &contentService{
		contentRepo:  contentRepo,
		singletonSvc: singletonSvc,
		imageSvc:     imageSvc,
		mediaSvc:     mediaSvc,
	}
}

// record resolves every slot declared by row's type. id is the row's primary key.
func (s *contentService) record(ctx context.Context, row interface{}, id uint) dto.Record {
	slots := models.SlotsFor(row)
	rec := dto.Record{Value: row}
	if len(slots) == 0 {
		return rec
	}
	rec.Media = make(map[string]*dto.Media, len(slots))
	for _, slot := range slots {
		rec.Media[slot.Field] = s.mediaSvc.Present(ctx, slot, id, *slot.Ref(row))
	}
	return rec
}

// withImages adds the owner's attachments to rec
func (s *contentService) withImages(ctx context.Context, db *gorm.DB, rec dto.Record, owner models.Attachable) (dto.Record, error) {
	ownerType, ownerID := owner.AttachmentOwner()
	images, err := s.imageSvc.ListFor(db, ownerType, ownerID)
	if err != nil {
		return rec, err
	}
	rec.Images = s.imageSvc.PresentAll(ctx, images)
	return rec, nil
}

func (s *contentService) Profile(ctx context.Context, db *gorm.DB) (dto.Record, error) {
	profile, err := s.singletonSvc.GetProfile(ctx, db)
	if err != nil {
		return dto.Record{}, err
	}
	return s.withImages(ctx, db, s.record(ctx, profile, profile.ID), profile)
}

func (s *contentService) SiteConfiguration(ctx context.Context, db *gorm.DB) (*models.SiteConfiguration, error) {
	return s.singletonSvc.GetSiteConfiguration(ctx, db)
}

func (s *contentService) Projects(ctx context.Context, db *gorm.DB, featuredOnly bool) ([]dto.Record, error) {
	projects, err := s.contentRepo.ListProjects(db, featuredOnly)
	if err != nil {
		return nil, handleRepoError(err, "project")
	}
	out := make([]dto.Record, 0, len(projects))
	for i := range projects {
		out = append(out, s.record(ctx, &projects[i], projects[i].ID))
	}
	return out, nil
}

func (s *contentService) Project(ctx context.Context, db *gorm.DB, slug string) (dto.Record, error) {
	project, err := s.contentRepo.FindProjectBySlug(db, slug)
	if err != nil {
		return dto.Record{}, handleRepoError(err, "project")
	}
	return s.withImages(ctx, db, s.record(ctx, project, project.ID), project)
}

func (s *contentService) Posts(ctx context.Context, db *gorm.DB, categorySlug, tagSlug string) ([]dto.Record, error) {
	posts, err := s.contentRepo.ListPublishedPosts(db, categorySlug, tagSlug)
	if err != nil {
		return nil, handleRepoError(err, "blog")
	}
	out := make([]dto.Record, 0, len(posts))
	for i := range posts {
		out = append(out, s.record(ctx, &posts[i], posts[i].ID))
	}
	return out, nil
}

// Post counts a view on every successful read
func (s *contentService) Post(ctx context.Context, db *gorm.DB, slug string) (dto.Record, error) {
	post, err := s.contentRepo.FindPublishedPostBySlug(db, slug)
	if err != nil {
		return dto.Record{}, handleRepoError(err, "blog")
	}
	if err := s.contentRepo.IncrementViews(db, post); err != nil {
		logger.CtxWarn(ctx, "failed to count blog view", "post_id", post.ID, "error", err.Error())
	}
	return s.withImages(ctx, db, s.record(ctx, post, post.ID), post)
}

func (s *contentService) Categories(ctx context.Context, db *gorm.DB) ([]dto.Record, error) {
	categories, err := s.contentRepo.ListBlogCategories(db)
	if err != nil {
		return nil, handleRepoError(err, "blog")
	}
	out := make([]dto.Record, 0, len(categories))
	for i := range categories {
		out = append(out, s.record(ctx, &categories[i], categories[i].ID))
	}
	return out, nil
}

func (s *contentService) Skills(ctx context.Context, db *gorm.DB) ([]dto.Record, error) {
	skills, err := s.contentRepo.ListSkills(db)
	if err != nil {
		return nil, handleRepoError(err, "skill")
	}
	out := make([]dto.Record, 0, len(skills))
	for i := range skills {
		out = append(out, s.record(ctx, &skills[i], skills[i].ID))
	}
	return out, nil
}

func (s *contentService) SocialLinks(ctx context.Context, db *gorm.DB) ([]dto.Record, error) {
	links, err := s.contentRepo.ListSocialLinks(db)
	if err != nil {
		return nil, handleRepoError(err, "social_link")
	}
	out := make([]dto.Record, 0, len(links))
	for i := range links {
		out = append(out, s.record(ctx, &links[i], links[i].ID))
	}
	return out, nil
}

func (s *contentService) Certificates(ctx context.Context, db *gorm.DB) ([]dto.Record, error) {
	certificates, err := s.contentRepo.ListCertificates(db)
	if err != nil {
		return nil, handleRepoError(err, "certificate")
	}
	out := make([]dto.Record, 0, len(certificates))
	for i := range certificates {
		out = append(out, s.record(ctx, &certificates[i], certificates[i].ID))
	}
	return out, nil
}

func (s *contentService) Achievements(ctx context.Context, db *gorm.DB) ([]dto.Record, error) {
	achievements, err := s.contentRepo.ListAchievements(db)
	if err != nil {
		return nil, handleRepoError(err, "achievement")
	}
	out := make([]dto.Record, 0, len(achievements))
	for i := range achievements {
		out = append(out, s.record(ctx, &achievements[i], achievements[i].ID))
	}
	return out, nil
}

func (s *contentService) Testimonials(ctx context.Context, db *gorm.DB) ([]dto.Record, error) {
	testimonials, err := s.contentRepo.ListTestimonials(db)
	if err != nil {
		return nil, handleRepoError(err, "testimonial")
	}
	out := make([]dto.Record, 0, len(testimonials))
	for i := range testimonials {
		out = append(out, s.record(ctx, &testimonials[i], testimonials[i].ID))
	}
	return out, nil
}

func (s *contentService) Education(ctx context.Context, db *gorm.DB) ([]dto.Record, error) {
	education, err := s.contentRepo.ListEducation(db)
	if err != nil {
		return nil, handleRepoError(err, "education")
	}
	out := make([]dto.Record, 0, len(education))
	for i := range education {
		out = append(out, s.record(ctx, &education[i], education[i].ID))
	}
	return out, nil
}

func (s *contentService) Experience(ctx context.Context, db *gorm.DB) ([]dto.Record, error) {
	experience, err := s.contentRepo.ListWorkExperience(db)
	if err != nil {
		return nil, handleRepoError(err, "work_experience")
	}
	out := make([]dto.Record, 0, len(experience))
	for i := range experience {
		out = append(out, s.record(ctx, &experience[i], experience[i].ID))
	}
	return out, nil
}

func (s *contentService) Tags(ctx context.Context, db *gorm.DB) ([]dto.Record, error) {
	tags, err := s.contentRepo.ListBlogTags(db)
	if err != nil {
		return nil, handleRepoError(err, "blog")
	}
	out := make([]dto.Record, 0, len(tags))
	for i := range tags {
		out = append(out, s.record(ctx, &tags[i], tags[i].ID))
	}
	return out, nil
}

func (s *contentService) Certificate(ctx context.Context, db *gorm.DB, slug string) (dto.Record, error) {
	certificate, err := s.contentRepo.FindCertificateBySlug(db, slug)
	if err != nil {
		return dto.Record{}, handleRepoError(err, "certificate")
	}
	return s.withImages(ctx, db, s.record(ctx, certificate, certificate.ID), certificate)
}

func (s *contentService) Achievement(ctx context.Context, db *gorm.DB, slug string) (dto.Record, error) {
	achievement, err := s.contentRepo.FindAchievementBySlug(db, slug)
	if err != nil {
		return dto.Record{}, handleRepoError(err, "achievement")
	}
	return s.withImages(ctx, db, s.record(ctx, achievement, achievement.ID), achievement)
}

func (s *contentService) Testimonial(ctx context.Context, db *gorm.DB, slug string) (dto.Record, error) {
	testimonial, err := s.contentRepo.FindTestimonialBySlug(db, slug)
	if err != nil {
		return dto.Record{}, handleRepoError(err, "testimonial")
	}
	return s.withImages(ctx, db, s.record(ctx, testimonial, testimonial.ID), testimonial)
}

func (s *contentService) EducationEntry(ctx context.Context, db *gorm.DB, slug string) (dto.Record, error) {
	education, err := s.contentRepo.FindEducationBySlug(db, slug)
	if err != nil {
		return dto.Record{}, handleRepoError(err, "education")
	}
	return s.withImages(ctx, db, s.record(ctx, education, education.ID), education)
}
