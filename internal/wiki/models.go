package wiki

import (
	"droneops/internal/common"

	"github.com/google/uuid"
)

// Topic groups related articles.
type Topic struct {
	common.BaseModel
	Name        string `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Description string `json:"description" gorm:"type:text"`
}

func (Topic) TableName() string {
	return "wiki_topics"
}

// Article is one knowledge-base page.
type Article struct {
	common.BaseModel
	TopicID     uuid.UUID  `json:"topic_id" gorm:"type:uuid;not null;index"`
	Topic       *Topic     `json:"topic,omitempty" gorm:"foreignKey:TopicID;constraint:OnDelete:RESTRICT"`
	Title       string     `json:"title" gorm:"size:200;not null"`
	Slug        string     `json:"slug" gorm:"size:200;not null;uniqueIndex"`
	Content     string     `json:"content" gorm:"type:text"`
	Tags        string     `json:"tags" gorm:"size:255"` // comma separated
	CreatedByID *uuid.UUID `json:"created_by_id,omitempty" gorm:"type:uuid"`

	Attachments []Attachment `json:"attachments,omitempty" gorm:"foreignKey:ArticleID"`
}

func (Article) TableName() string {
	return "wiki_articles"
}

// Attachment is a file stored in the object store, referenced by key.
type Attachment struct {
	common.BaseModel
	ArticleID    uuid.UUID  `json:"article_id" gorm:"type:uuid;not null;index"`
	Filename     string     `json:"filename" gorm:"size:255;not null"`
	StorageKey   string     `json:"-" gorm:"size:255;not null;uniqueIndex"`
	ContentType  string     `json:"content_type" gorm:"size:100"`
	SizeBytes    int64      `json:"size_bytes"`
	UploadedByID *uuid.UUID `json:"uploaded_by_id,omitempty" gorm:"type:uuid"`
}

func (Attachment) TableName() string {
	return "wiki_attachments"
}
