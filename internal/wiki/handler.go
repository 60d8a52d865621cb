package wiki

import (
	"fmt"
	"net/http"

	"droneops/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for the knowledge base
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GET /api/v1/wiki/topics
func (h *Handler) ListTopics(c *gin.Context) {
	topics, err := h.service.ListTopics()
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

type topicRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// POST /api/v1/wiki/topics
func (h *Handler) CreateTopic(c *gin.Context) {
	var req topicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	topic, err := h.service.CreateTopic(req.Name, req.Description)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, topic)
}

// DELETE /api/v1/wiki/topics/:id
func (h *Handler) DeleteTopic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid topic ID"})
		return
	}
	if err := h.service.DeleteTopic(id); err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Topic deleted"})
}

// GET /api/v1/wiki/articles
func (h *Handler) ListArticles(c *gin.Context) {
	var topicID *uuid.UUID
	if raw := c.Query("topic_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			topicID = &id
		}
	}
	articles, err := h.service.ListArticles(topicID, c.Query("search"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

type articleRequest struct {
	TopicID uuid.UUID `json:"topic_id" binding:"required"`
	Title   string    `json:"title" binding:"required"`
	Content string    `json:"content"`
	Tags    string    `json:"tags"`
}

// POST /api/v1/wiki/articles
func (h *Handler) CreateArticle(c *gin.Context) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	article, err := h.service.CreateArticle(ArticleInput{
		TopicID:   req.TopicID,
		Title:     req.Title,
		Content:   req.Content,
		Tags:      req.Tags,
		CreatedBy: userID(c),
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// GET /api/v1/wiki/articles/:slug
func (h *Handler) GetArticle(c *gin.Context) {
	article, err := h.service.GetArticleBySlug(c.Param("slug"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

type updateArticleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Tags    string `json:"tags"`
}

// PUT /api/v1/wiki/articles/:id
func (h *Handler) UpdateArticle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}
	var req updateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	article, err := h.service.UpdateArticle(id, req.Title, req.Content, req.Tags)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// DELETE /api/v1/wiki/articles/:id
func (h *Handler) DeleteArticle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}
	if err := h.service.DeleteArticle(c.Request.Context(), id); err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article deleted"})
}

// POST /api/v1/wiki/articles/:id/attachments
// Multipart upload, field name "file".
func (h *Handler) UploadAttachment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	att, err := h.service.AddAttachment(c.Request.Context(), id, fileHeader.Filename, contentType, file, fileHeader.Size, userID(c))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, att)
}

// GET /api/v1/wiki/attachments/:id
func (h *Handler) DownloadAttachment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment ID"})
		return
	}
	data, contentType, filename, err := h.service.GetAttachmentData(c.Request.Context(), id)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

// DELETE /api/v1/wiki/attachments/:id
func (h *Handler) DeleteAttachment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment ID"})
		return
	}
	if err := h.service.DeleteAttachment(c.Request.Context(), id); err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attachment deleted"})
}

func userID(c *gin.Context) *uuid.UUID {
	raw, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	id, ok := raw.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}
