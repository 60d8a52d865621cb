package wiki

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"droneops/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeStore keeps objects in memory and counts downloads so cache behavior
// is observable.
type fakeStore struct {
	objects map[string][]byte
	types   map[string]string
	gets    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeStore) GetObject(_ context.Context, key string) (io.ReadCloser, string, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, "", fmt.Errorf("object %s not found", key)
	}
	f.gets++
	return io.NopCloser(bytes.NewReader(data)), f.types[key], nil
}

func (f *fakeStore) PutObject(_ context.Context, key, contentType string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = data
	f.types[key] = contentType
	return nil
}

func (f *fakeStore) DeleteObject(_ context.Context, key string) error {
	delete(f.objects, key)
	delete(f.types, key)
	return nil
}

func setupService(t *testing.T) (*Service, *fakeStore) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Topic{}, &Article{}, &Attachment{}))
	store := newFakeStore()
	return NewService(db, store), store
}

func TestSlugify(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, "motor-repair-guide", Slugify("Motor Repair  Guide!", id))
	assert.Equal(t, id.String(), Slugify("Ремонт мотора", id))
}

func TestTopicAndArticleLifecycle(t *testing.T) {
	service, _ := setupService(t)

	topic, err := service.CreateTopic("Repairs", "How to fix things")
	require.NoError(t, err)

	_, err = service.CreateTopic("Repairs", "")
	assert.True(t, common.IsValidation(err))

	article, err := service.CreateArticle(ArticleInput{
		TopicID: topic.ID,
		Title:   "Motor Replacement",
		Content: "Steps to swap a burned motor.",
		Tags:    "motor,repair",
	})
	require.NoError(t, err)
	assert.Equal(t, "motor-replacement", article.Slug)

	// Same title gets a suffixed slug.
	second, err := service.CreateArticle(ArticleInput{TopicID: topic.ID, Title: "Motor Replacement"})
	require.NoError(t, err)
	assert.Equal(t, "motor-replacement-2", second.Slug)

	// Topic with articles cannot go away.
	err = service.DeleteTopic(topic.ID)
	assert.True(t, common.IsValidation(err))

	found, err := service.GetArticleBySlug("motor-replacement")
	require.NoError(t, err)
	assert.Equal(t, article.ID, found.ID)

	listed, err := service.ListArticles(nil, "burned")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, article.ID, listed[0].ID)
}

func TestArticleUnknownTopic(t *testing.T) {
	service, _ := setupService(t)

	_, err := service.CreateArticle(ArticleInput{TopicID: uuid.New(), Title: "Orphan"})
	assert.True(t, common.IsValidation(err))
}

func TestAttachmentsRoundTripWithCache(t *testing.T) {
	service, store := setupService(t)
	ctx := context.Background()

	topic, err := service.CreateTopic("Repairs", "")
	require.NoError(t, err)
	article, err := service.CreateArticle(ArticleInput{TopicID: topic.ID, Title: "Wiring"})
	require.NoError(t, err)

	att, err := service.AddAttachment(ctx, article.ID, "diagram.png", "image/png",
		strings.NewReader("png-bytes"), 9, nil)
	require.NoError(t, err)

	data, contentType, filename, err := service.GetAttachmentData(ctx, att.ID)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, "diagram.png", filename)
	assert.Equal(t, 1, store.gets)

	// Second read is served from the cache.
	_, _, _, err = service.GetAttachmentData(ctx, att.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, store.gets)

	require.NoError(t, service.DeleteAttachment(ctx, att.ID))
	_, _, _, err = service.GetAttachmentData(ctx, att.ID)
	assert.True(t, common.IsNotFound(err))
	assert.Empty(t, store.objects)
}

func TestDeleteArticleRemovesAttachments(t *testing.T) {
	service, store := setupService(t)
	ctx := context.Background()

	topic, err := service.CreateTopic("Repairs", "")
	require.NoError(t, err)
	article, err := service.CreateArticle(ArticleInput{TopicID: topic.ID, Title: "Wiring"})
	require.NoError(t, err)
	_, err = service.AddAttachment(ctx, article.ID, "a.txt", "text/plain", strings.NewReader("x"), 1, nil)
	require.NoError(t, err)

	require.NoError(t, service.DeleteArticle(ctx, article.ID))
	assert.Empty(t, store.objects)

	_, err = service.GetArticleBySlug("wiring")
	assert.True(t, common.IsNotFound(err))

	// Topic is empty now and can be removed.
	require.NoError(t, service.DeleteTopic(topic.ID))
}
