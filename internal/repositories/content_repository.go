package repositories

import (
	"gorm.io/gorm"

	"portfolio_backend/internal/models"
)

// ContentRepository serves the read API
type ContentRepository interface {
	ListProjects(db *gorm.DB, featuredOnly bool) ([]models.Project, error)
	FindProjectBySlug(db *gorm.DB, slug string) (*models.Project, error)

	ListPublishedPosts(db *gorm.DB, categorySlug, tagSlug string) ([]models.BlogPost, error)
	FindPublishedPostBySlug(db *gorm.DB, slug string) (*models.BlogPost, error)
	IncrementViews(db *gorm.DB, post *models.BlogPost) error
	ListBlogCategories(db *gorm.DB) ([]models.BlogCategory, error)
	ListBlogTags(db *gorm.DB) ([]models.BlogTag, error)

	ListSkills(db *gorm.DB) ([]models.Skill, error)
	ListSocialLinks(db *gorm.DB) ([]models.SocialLink, error)
	ListCertificates(db *gorm.DB) ([]models.Certificate, error)
	ListAchievements(db *gorm.DB) ([]models.Achievement, error)
	ListTestimonials(db *gorm.DB) ([]models.Testimonial, error)
	ListEducation(db *gorm.DB) ([]models.Education, error)
	ListWorkExperience(db *gorm.DB) ([]models.WorkExperience, error)

	FindCertificateBySlug(db *gorm.DB, slug string) (*models.Certificate, error)
	FindAchievementBySlug(db *gorm.DB, slug string) (*models.Achievement, error)
	FindTestimonialBySlug(db *gorm.DB, slug string) (*models.Testimonial, error)
	FindEducationBySlug(db *gorm.DB, slug string) (*models.Education, error)
}

type ContentRepositoryImpl struct{}

func NewContentRepository() ContentRepository {
	return &ContentRepositoryImpl{}
}

func ordered(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC").Order("created_at DESC")
}

func (r *ContentRepositoryImpl) ListProjects(db *gorm.DB, featuredOnly bool) ([]models.Project, error) {
	var projects []models.Project
	q := ordered(db.Where("is_visible = ?", true))
	if featuredOnly {
		q = q.Where("is_featured = ?", true)
	}
	err := q.Find(&projects).Error
	return projects, err
}

func (r *ContentRepositoryImpl) FindProjectBySlug(db *gorm.DB, slug string) (*models.Project, error) {
	var project models.Project
	if err := db.Where("slug = ? AND is_visible = ?", slug, true).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ContentRepositoryImpl) ListPublishedPosts(db *gorm.DB, categorySlug, tagSlug string) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	q := db.Model(&models.BlogPost{}).
		Preload("Category").Preload("Tags").
		Where("blog_posts.status = ?", models.BlogPostStatusPublished)

	if categorySlug != "" {
		q = q.Joins("JOIN blog_categories ON blog_categories.id = blog_posts.category_id").
			Where("blog_categories.slug = ?", categorySlug)
	}
	if tagSlug != "" {
		q = q.Joins("JOIN blog_post_tags ON blog_post_tags.blog_post_id = blog_posts.id").
			Joins("JOIN blog_tags ON blog_tags.id = blog_post_tags.blog_tag_id").
			Where("blog_tags.slug = ?", tagSlug)
	}

	err := q.Order("blog_posts.published_at DESC").Order("blog_posts.id DESC").Find(&posts).Error
	return posts, err
}

func (r *ContentRepositoryImpl) FindPublishedPostBySlug(db *gorm.DB, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := db.Preload("Category").Preload("Tags").
		Where("slug = ? AND status = ?", slug, models.BlogPostStatusPublished).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// IncrementViews bumps the counter in SQL so concurrent readers don't lose hits
func (r *ContentRepositoryImpl) IncrementViews(db *gorm.DB, post *models.BlogPost) error {
	err := db.Session(&gorm.Session{SkipHooks: true}).Model(&models.BlogPost{}).
		Where("id = ?", post.ID).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error
	if err == nil {
		post.ViewsCount++
	}
	return err
}

func (r *ContentRepositoryImpl) ListBlogCategories(db *gorm.DB) ([]models.BlogCategory, error) {
	var categories []models.BlogCategory
	err := ordered(db).Find(&categories).Error
	return categories, err
}

func (r *ContentRepositoryImpl) ListSkills(db *gorm.DB) ([]models.Skill, error) {
	var skills []models.Skill
	err := ordered(db).Where("profile_id = ?", models.SingletonID).Find(&skills).Error
	return skills, err
}

func (r *ContentRepositoryImpl) ListSocialLinks(db *gorm.DB) ([]models.SocialLink, error) {
	var links []models.SocialLink
	err := ordered(db).Where("profile_id = ?", models.SingletonID).Find(&links).Error
	return links, err
}

func (r *ContentRepositoryImpl) ListCertificates(db *gorm.DB) ([]models.Certificate, error) {
	var certificates []models.Certificate
	err := ordered(db).Where("profile_id = ?", models.SingletonID).Find(&certificates).Error
	return certificates, err
}

func (r *ContentRepositoryImpl) ListAchievements(db *gorm.DB) ([]models.Achievement, error) {
	var achievements []models.Achievement
	err := ordered(db).Where("profile_id = ?", models.SingletonID).Find(&achievements).Error
	return achievements, err
}

func (r *ContentRepositoryImpl) ListTestimonials(db *gorm.DB) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	err := ordered(db).Where("profile_id = ? AND is_visible = ?", models.SingletonID, true).Find(&testimonials).Error
	return testimonials, err
}

// ListEducation has no manual order; most recent first
func (r *ContentRepositoryImpl) ListEducation(db *gorm.DB) ([]models.Education, error) {
	var education []models.Education
	err := db.Where("profile_id = ?", models.SingletonID).
		Order("is_current DESC").Order("start_date DESC").Order("id DESC").
		Find(&education).Error
	return education, err
}

func (r *ContentRepositoryImpl) ListWorkExperience(db *gorm.DB) ([]models.WorkExperience, error) {
	var experience []models.WorkExperience
	err := ordered(db).Where("profile_id = ?", models.SingletonID).Find(&experience).Error
	return experience, err
}

func (r *ContentRepositoryImpl) ListBlogTags(db *gorm.DB) ([]models.BlogTag, error) {
	var tags []models.BlogTag
	err := db.Order("name ASC").Order("id ASC").Find(&tags).Error
	return tags, err
}

func findBySlug(db *gorm.DB, dest interface{}, slug string) error {
	return db.Where("slug = ?", slug).First(dest).Error
}

func (r *ContentRepositoryImpl) FindCertificateBySlug(db *gorm.DB, slug string) (*models.Certificate, error) {
	var certificate models.Certificate
	if err := findBySlug(db, &certificate, slug); err != nil {
		return nil, err
	}
	return &certificate, nil
}

func (r *ContentRepositoryImpl) FindAchievementBySlug(db *gorm.DB, slug string) (*models.Achievement, error) {
	var achievement models.Achievement
	if err := findBySlug(db, &achievement, slug); err != nil {
		return nil, err
	}
	return &achievement, nil
}

// FindTestimonialBySlug hides testimonials that are not visible, like the list
func (r *ContentRepositoryImpl) FindTestimonialBySlug(db *gorm.DB, slug string) (*models.Testimonial, error) {
	var testimonial models.Testimonial
	if err := findBySlug(db.Where("is_visible = ?", true), &testimonial, slug); err != nil {
		return nil, err
	}
	return &testimonial, nil
}

func (r *ContentRepositoryImpl) FindEducationBySlug(db *gorm.DB, slug string) (*models.Education, error) {
	var education models.Education
	if err := findBySlug(db, &education, slug); err != nil {
		return nil, err
	}
	return &education, nil
}
