package wiki

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"droneops/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ObjectStore is the subset of the S3 client the wiki needs.
type ObjectStore interface {
	GetObject(ctx context.Context, key string) (io.ReadCloser, string, error)
	PutObject(ctx context.Context, key, contentType string, body io.Reader) error
	DeleteObject(ctx context.Context, key string) error
}

type cachedFile struct {
	data        []byte
	contentType string
	cachedAt    time.Time
}

const cacheTTL = 30 * time.Minute

// Service manages topics, articles and their attachments. Attachment bytes
// are cached in memory for 30 minutes.
type Service struct {
	db    *gorm.DB
	store ObjectStore

	mu    sync.RWMutex
	cache map[string]cachedFile
}

func NewService(db *gorm.DB, store ObjectStore) *Service {
	return &Service{
		db:    db,
		store: store,
		cache: make(map[string]cachedFile),
	}
}

// Topics

func (s *Service) ListTopics() ([]Topic, error) {
	var topics []Topic
	err := s.db.Order("name ASC").Find(&topics).Error
	return topics, err
}

func (s *Service) CreateTopic(name, description string) (*Topic, error) {
	if name == "" {
		return nil, common.NewValidationError("topic name is required")
	}
	var count int64
	if err := s.db.Model(&Topic{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, common.NewValidationError("topic %q already exists", name)
	}
	topic := Topic{Name: name, Description: description}
	if err := s.db.Create(&topic).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}

func (s *Service) DeleteTopic(id uuid.UUID) error {
	var count int64
	if err := s.db.Model(&Article{}).Where("topic_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return common.NewValidationError("cannot delete a topic that still has articles")
	}
	res := s.db.Delete(&Topic{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.NewNotFoundError("topic")
	}
	return nil
}

// Articles

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title. Non-latin characters fall back to
// the article id.
func Slugify(title string, id uuid.UUID) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return id.String()
	}
	return slug
}

// ArticleInput carries the create/update parameters for an article.
type ArticleInput struct {
	TopicID   uuid.UUID
	Title     string
	Content   string
	Tags      string
	CreatedBy *uuid.UUID
}

func (s *Service) CreateArticle(in ArticleInput) (*Article, error) {
	if in.Title == "" {
		return nil, common.NewValidationError("article title is required")
	}
	var topicCount int64
	if err := s.db.Model(&Topic{}).Where("id = ?", in.TopicID).Count(&topicCount).Error; err != nil {
		return nil, err
	}
	if topicCount == 0 {
		return nil, common.NewValidationError("topic does not exist")
	}

	article := Article{
		TopicID:     in.TopicID,
		Title:       in.Title,
		Content:     in.Content,
		Tags:        in.Tags,
		CreatedByID: in.CreatedBy,
	}
	article.ID = uuid.New()
	article.Slug = s.uniqueSlug(Slugify(in.Title, article.ID))
	if err := s.db.Create(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// uniqueSlug appends a numeric suffix until the slug is free.
func (s *Service) uniqueSlug(base string) string {
	slug := base
	for i := 2; ; i++ {
		var count int64
		if err := s.db.Model(&Article{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return slug
		}
		if count == 0 {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *Service) UpdateArticle(id uuid.UUID, title, content, tags string) (*Article, error) {
	var article Article
	if err := s.db.First(&article, "id = ?", id).Error; err != nil {
		return nil, common.WrapNotFound(err, "article")
	}
	if title != "" && title != article.Title {
		article.Title = title
		article.Slug = s.uniqueSlug(Slugify(title, article.ID))
	}
	article.Content = content
	article.Tags = tags
	if err := s.db.Save(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (s *Service) GetArticleBySlug(slug string) (*Article, error) {
	var article Article
	err := s.db.Preload("Topic").Preload("Attachments").
		First(&article, "slug = ?", slug).Error
	if err != nil {
		return nil, common.WrapNotFound(err, "article")
	}
	return &article, nil
}

// ListArticles returns articles, optionally filtered by topic or a search
// term over title, content and tags.
func (s *Service) ListArticles(topicID *uuid.UUID, search string) ([]Article, error) {
	query := s.db.Preload("Topic").Order("title ASC")
	if topicID != nil {
		query = query.Where("topic_id = ?", *topicID)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR content LIKE ? OR tags LIKE ?", like, like, like)
	}
	var articles []Article
	err := query.Find(&articles).Error
	return articles, err
}

func (s *Service) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	var article Article
	if err := s.db.Preload("Attachments").First(&article, "id = ?", id).Error; err != nil {
		return common.WrapNotFound(err, "article")
	}
	for _, att := range article.Attachments {
		if s.store != nil {
			if err := s.store.DeleteObject(ctx, att.StorageKey); err != nil {
				return err
			}
		}
		s.invalidate(att.StorageKey)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&Attachment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&article).Error
	})
}

// Attachments

func (s *Service) AddAttachment(ctx context.Context, articleID uuid.UUID, filename, contentType string, body io.Reader, size int64, uploadedBy *uuid.UUID) (*Attachment, error) {
	if s.store == nil {
		return nil, common.NewValidationError("attachment storage is not configured")
	}
	var count int64
	if err := s.db.Model(&Article{}).Where("id = ?", articleID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, common.NewNotFoundError("article")
	}

	att := Attachment{
		ArticleID:    articleID,
		Filename:     filename,
		ContentType:  contentType,
		SizeBytes:    size,
		UploadedByID: uploadedBy,
	}
	att.ID = uuid.New()
	att.StorageKey = fmt.Sprintf("wiki/%s/%s", articleID, att.ID)

	if err := s.store.PutObject(ctx, att.StorageKey, contentType, body); err != nil {
		return nil, err
	}
	if err := s.db.Create(&att).Error; err != nil {
		return nil, err
	}
	return &att, nil
}

// GetAttachmentData downloads an attachment, serving from the cache when the
// entry is under 30 minutes old.
func (s *Service) GetAttachmentData(ctx context.Context, id uuid.UUID) ([]byte, string, string, error) {
	var att Attachment
	if err := s.db.First(&att, "id = ?", id).Error; err != nil {
		return nil, "", "", common.WrapNotFound(err, "attachment")
	}
	if s.store == nil {
		return nil, "", "", common.NewValidationError("attachment storage is not configured")
	}

	s.mu.RLock()
	cached, ok := s.cache[att.StorageKey]
	s.mu.RUnlock()
	if ok && time.Since(cached.cachedAt) < cacheTTL {
		return cached.data, cached.contentType, att.Filename, nil
	}

	body, contentType, err := s.store.GetObject(ctx, att.StorageKey)
	if err != nil {
		return nil, "", "", err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to read attachment data: %w", err)
	}

	s.mu.Lock()
	s.cache[att.StorageKey] = cachedFile{data: data, contentType: contentType, cachedAt: time.Now()}
	s.mu.Unlock()

	return data, contentType, att.Filename, nil
}

func (s *Service) DeleteAttachment(ctx context.Context, id uuid.UUID) error {
	var att Attachment
	if err := s.db.First(&att, "id = ?", id).Error; err != nil {
		return common.WrapNotFound(err, "attachment")
	}
	if s.store != nil {
		if err := s.store.DeleteObject(ctx, att.StorageKey); err != nil {
			return err
		}
	}
	s.invalidate(att.StorageKey)
	return s.db.Delete(&att).Error
}

func (s *Service) invalidate(key string) {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()
}

// CleanupCache drops expired cache entries.
func (s *Service) CleanupCache() {
	now := time.Now()
	s.mu.Lock()
	for key, cached := range s.cache {
		if now.Sub(cached.cachedAt) > cacheTTL {
			delete(s.cache, key)
		}
	}
	s.mu.Unlock()
}
