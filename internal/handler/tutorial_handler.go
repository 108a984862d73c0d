package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ourystd/kaherecode/internal/domain"
	"github.com/ourystd/kaherecode/internal/middleware"
	"github.com/ourystd/kaherecode/internal/service"
)

// TutorialHandler handles tutorial-related HTTP requests.
type TutorialHandler struct {
	tutorialService service.TutorialServiceInterface
}

// NewTutorialHandler creates a new TutorialHandler.
func NewTutorialHandler(tutorialService service.TutorialServiceInterface) *TutorialHandler {
	return &TutorialHandler{
		tutorialService: tutorialService,
	}
}

// TagResponse represents a tag in the API response.
type TagResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// TutorialResponse represents a tutorial in the API response.
type TutorialResponse struct {
	ID           string        `json:"id"`
	Slug         string        `json:"slug"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Content      string        `json:"content"`
	VideoLink    *string       `json:"video_link,omitempty"`
	PictureURL   string        `json:"picture_url"`
	ThumbnailURL string        `json:"thumbnail_url"`
	AuthorID     string        `json:"author_id"`
	Tags         []TagResponse `json:"tags"`
	IsPublished  bool          `json:"is_published"`
	PublishedAt  *string       `json:"published_at,omitempty"`
	CreatedAt    string        `json:"created_at"`
	UpdatedAt    string        `json:"updated_at"`
}

// AuthorResponse is the public view of a tutorial author.
type AuthorResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// TutorialDetailResponse is the full tutorial page payload.
type TutorialDetailResponse struct {
	Tutorial            TutorialResponse   `json:"tutorial"`
	Author              *AuthorResponse    `json:"author,omitempty"`
	Related             []TutorialResponse `json:"related"`
	AuthorLastPublished *TutorialResponse  `json:"author_last_published,omitempty"`
}

// toTutorialResponse converts a domain.Tutorial to a TutorialResponse.
func toTutorialResponse(t *domain.Tutorial) TutorialResponse {
	tags := make([]TagResponse, len(t.Tags))
	for i, tag := range t.Tags {
		tags[i] = TagResponse{ID: tag.ID, Label: tag.Label}
	}

	response := TutorialResponse{
		ID:           t.ID,
		Slug:         t.Slug,
		Title:        t.Title,
		Description:  t.Description,
		Content:      t.Content,
		VideoLink:    t.VideoLink,
		PictureURL:   t.PictureURL,
		ThumbnailURL: t.ThumbnailURL,
		AuthorID:     t.AuthorID,
		Tags:         tags,
		IsPublished:  t.IsPublished,
		CreatedAt:    t.CreatedAt.Format(TimeFormat),
		UpdatedAt:    t.UpdatedAt.Format(TimeFormat),
	}
	if t.PublishedAt != nil {
		publishedAt := t.PublishedAt.Format(TimeFormat)
		response.PublishedAt = &publishedAt
	}
	return response
}

func toTutorialResponses(tutorials []domain.Tutorial) []TutorialResponse {
	responses := make([]TutorialResponse, len(tutorials))
	for i := range tutorials {
		responses[i] = toTutorialResponse(&tutorials[i])
	}
	return responses
}

func toDetailResponse(detail *service.TutorialDetail) TutorialDetailResponse {
	response := TutorialDetailResponse{
		Tutorial: toTutorialResponse(detail.Tutorial),
		Related:  toTutorialResponses(detail.Related),
	}
	if detail.Author != nil {
		response.Author = &AuthorResponse{
			ID:       detail.Author.ID,
			Username: detail.Author.Username,
			FullName: detail.Author.FullName,
		}
	}
	if detail.AuthorLastPublished != nil {
		last := toTutorialResponse(detail.AuthorLastPublished)
		response.AuthorLastPublished = &last
	}
	return response
}

// tutorialInputFromForm reads the tutorial create and edit form fields.
func tutorialInputFromForm(c *gin.Context) (service.TutorialInput, *multipart.FileHeader, error) {
	in := service.TutorialInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Content:     c.PostForm("html_content"),
		Tags:        c.PostForm("tags"),
	}
	if videoLink := c.PostForm("video_link"); videoLink != "" {
		in.VideoLink = &videoLink
	}

	file, err := c.FormFile("picture")
	if err != nil && err != http.ErrMissingFile {
		return in, nil, err
	}
	return in, file, nil
}

// Index handles GET / - the latest published tutorials and all tags.
func (h *TutorialHandler) Index(c *gin.Context) {
	tutorials, tags, err := h.tutorialService.Home(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	tagResponses := make([]TagResponse, len(tags))
	for i, tag := range tags {
		tagResponses[i] = TagResponse{ID: tag.ID, Label: tag.Label}
	}

	c.JSON(http.StatusOK, gin.H{
		"tutorials": toTutorialResponses(tutorials),
		"tags":      tagResponses,
	})
}

// ByTag handles GET /tag/:label - published tutorials carrying a tag.
func (h *TutorialHandler) ByTag(c *gin.Context) {
	tutorials, err := h.tutorialService.ByTag(c.Request.Context(), c.Param("label"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tag":       c.Param("label"),
		"tutorials": toTutorialResponses(tutorials),
	})
}

// Show handles GET /tutorial/:slug - the public tutorial page.
func (h *TutorialHandler) Show(c *gin.Context) {
	detail, err := h.tutorialService.Show(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDetailResponse(detail))
}

// Videos handles GET /videos - published tutorials with a video link.
func (h *TutorialHandler) Videos(c *gin.Context) {
	tutorials, err := h.tutorialService.Videos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tutorials": toTutorialResponses(tutorials)})
}

// Create handles POST /tutorials/new
func (h *TutorialHandler) Create(c *gin.Context) {
	in, fileHeader, err := tutorialInputFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid picture upload"})
		return
	}

	if fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid picture upload"})
			return
		}
		defer file.Close()
		in.Picture = file
	}

	tutorial, err := h.tutorialService.Create(c.Request.Context(), middleware.GetUserID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTutorialResponse(tutorial))
}

// EditForm handles GET /tutorials/:uuid/edit - the tutorial behind the
// edit form.
func (h *TutorialHandler) EditForm(c *gin.Context) {
	id, ok := tutorialID(c)
	if !ok {
		return
	}

	tutorial, err := h.tutorialService.GetForEdit(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTutorialResponse(tutorial))
}

// Update handles POST /tutorials/:uuid/edit
func (h *TutorialHandler) Update(c *gin.Context) {
	id, ok := tutorialID(c)
	if !ok {
		return
	}

	in, fileHeader, err := tutorialInputFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid picture upload"})
		return
	}

	if fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid picture upload"})
			return
		}
		defer file.Close()
		in.Picture = file
	}

	tutorial, err := h.tutorialService.Update(c.Request.Context(), middleware.GetUserID(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTutorialResponse(tutorial))
}

// Preview handles GET /tutorials/:uuid/preview - the tutorial page as the
// author will see it once published.
func (h *TutorialHandler) Preview(c *gin.Context) {
	id, ok := tutorialID(c)
	if !ok {
		return
	}

	detail, err := h.tutorialService.Preview(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDetailResponse(detail))
}

// Publish handles POST /tutorials/:uuid/publish
func (h *TutorialHandler) Publish(c *gin.Context) {
	id, ok := tutorialID(c)
	if !ok {
		return
	}

	tutorial, err := h.tutorialService.Publish(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTutorialResponse(tutorial))
}

// Delete handles POST /tutorials/:uuid/delete
func (h *TutorialHandler) Delete(c *gin.Context) {
	id, ok := tutorialID(c)
	if !ok {
		return
	}

	if err := h.tutorialService.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func tutorialID(c *gin.Context) (string, bool) {
	id := c.Param("uuid")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uuid must be a valid UUID"})
		return "", false
	}
	return id, true
}
