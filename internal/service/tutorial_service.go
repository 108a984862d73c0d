package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/ourystd/kaherecode/internal/domain"
	"github.com/ourystd/kaherecode/internal/logger"
	"github.com/ourystd/kaherecode/internal/mailer"
	"github.com/ourystd/kaherecode/internal/media"
	"github.com/ourystd/kaherecode/internal/metrics"
	"github.com/ourystd/kaherecode/internal/repository"
	"github.com/ourystd/kaherecode/internal/validator"
)

const (
	// RelatedTutorialsLimit caps the related list on the tutorial page.
	RelatedTutorialsLimit = 3

	// NotifySendTimeout bounds a single publication email delivery.
	NotifySendTimeout = 30 * time.Second

	// NotifyQueueSendTimeout is the timeout for handing a notification to
	// the worker pool before giving up.
	NotifyQueueSendTimeout = 5 * time.Second
)

// TutorialService implements the tutorial workflows: drafting, editing,
// publishing, deletion and the public read queries. Publication emails are
// delivered by a small worker pool so the publish request never waits on
// the mail provider.
type TutorialService struct {
	tutorialRepo repository.TutorialRepository
	tagRepo      repository.TagRepository
	userRepo     repository.UserRepository
	media        media.Service
	mailer       mailer.Mailer
	validator    *validator.Validator

	homePageSize int

	jobQueue chan notifyTask
	stopChan chan struct{}
	wg       sync.WaitGroup
	closed   bool
	mu       sync.RWMutex
}

type notifyTask struct {
	tutorial *domain.Tutorial
	author   *domain.User
}

// NewTutorialService creates a new TutorialService with worker pool.
func NewTutorialService(
	tutorialRepo repository.TutorialRepository,
	tagRepo repository.TagRepository,
	userRepo repository.UserRepository,
	mediaService media.Service,
	m mailer.Mailer,
	v *validator.Validator,
	homePageSize int,
	workerCount int,
) *TutorialService {
	s := &TutorialService{
		tutorialRepo: tutorialRepo,
		tagRepo:      tagRepo,
		userRepo:     userRepo,
		media:        mediaService,
		mailer:       m,
		validator:    v,
		homePageSize: homePageSize,
		jobQueue:     make(chan notifyTask, workerCount*2),
		stopChan:     make(chan struct{}),
	}

	for i := 0; i < workerCount; i++ {
		s.wg.Add(1)
		go s.worker()
	}

	return s
}

func (s *TutorialService) worker() {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.jobQueue:
			if !ok {
				return
			}
			s.processNotify(task)
		case <-s.stopChan:
			return
		}
	}
}

// Close shuts down the notification worker pool immediately.
func (s *TutorialService) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	close(s.stopChan)
	close(s.jobQueue)
	s.wg.Wait()
}

func (s *TutorialService) processNotify(task notifyTask) {
	ctx, cancel := context.WithTimeout(context.Background(), NotifySendTimeout)
	defer cancel()

	if err := s.mailer.SendTutorialPublishedMessage(ctx, task.author, task.tutorial); err != nil {
		logger.WithTutorialID(task.tutorial.ID).Error("Failed to send publication email",
			"author_id", task.author.ID,
			"error", err)
	}
}

// Create persists a new draft from the create form. The slug is derived
// from the title with a short random suffix to keep it unique across
// identical titles.
func (s *TutorialService) Create(ctx context.Context, authorID string, in TutorialInput) (*domain.Tutorial, error) {
	now := time.Now()
	t := &domain.Tutorial{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		VideoLink:   in.VideoLink,
		AuthorID:    authorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	t.Slug = fmt.Sprintf("%s-%s", slug.Make(in.Title), t.ID[:8])

	if in.Picture != nil {
		asset, err := s.media.Upload(ctx, in.Picture)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMediaUpload, err)
		}
		t.PictureURL = asset.URL
		t.PicturePublicID = asset.PublicID
		t.ThumbnailURL = asset.ThumbnailURL
	}

	if err := s.validator.ValidateTutorial(t); err != nil {
		return nil, err
	}

	if err := s.tutorialRepo.Create(ctx, t, NormalizeTagLabels(in.Tags)); err != nil {
		return nil, fmt.Errorf("create tutorial: %w", err)
	}

	metrics.TutorialsCreatedTotal.Inc()
	logger.WithTutorialID(t.ID).Info("Tutorial draft created", "author_id", authorID)

	return t, nil
}

// Update applies the edit form to an existing tutorial. Only the author,
// editors and admins may edit. A newly uploaded picture replaces the old
// one, which is removed from media storage.
func (s *TutorialService) Update(ctx context.Context, userID, tutorialID string, in TutorialInput) (*domain.Tutorial, error) {
	t, user, err := s.getForUser(ctx, userID, tutorialID)
	if err != nil {
		return nil, err
	}
	if !user.CanEdit(t) {
		return nil, domain.ErrForbidden
	}

	t.Title = in.Title
	t.Description = in.Description
	t.Content = in.Content
	t.VideoLink = in.VideoLink
	t.UpdatedAt = time.Now()

	oldPublicID := ""
	if in.Picture != nil {
		asset, err := s.media.Upload(ctx, in.Picture)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMediaUpload, err)
		}
		oldPublicID = t.PicturePublicID
		t.PictureURL = asset.URL
		t.PicturePublicID = asset.PublicID
		t.ThumbnailURL = asset.ThumbnailURL
	}

	if err := s.validator.ValidateTutorial(t); err != nil {
		return nil, err
	}

	if err := s.tutorialRepo.Update(ctx, t, NormalizeTagLabels(in.Tags)); err != nil {
		return nil, fmt.Errorf("update tutorial: %w", err)
	}

	if oldPublicID != "" && oldPublicID != t.PicturePublicID {
		if err := s.media.Destroy(ctx, oldPublicID); err != nil {
			logger.WithTutorialID(t.ID).Warn("Failed to remove replaced picture",
				"public_id", oldPublicID,
				"error", err)
		}
	}

	logger.WithTutorialID(t.ID).Info("Tutorial updated", "user_id", userID)

	return t, nil
}

// Publish makes a tutorial public. All publishable fields must be filled;
// otherwise a PublishPreconditionError naming the missing ones is returned.
// Publishing an already published tutorial is a no-op. The author is
// notified by email asynchronously.
func (s *TutorialService) Publish(ctx context.Context, userID, tutorialID string) (*domain.Tutorial, error) {
	t, user, err := s.getForUser(ctx, userID, tutorialID)
	if err != nil {
		return nil, err
	}
	if !user.CanEdit(t) {
		return nil, domain.ErrForbidden
	}

	if t.IsPublished {
		return t, nil
	}

	if missing := t.MissingPublishFields(); len(missing) > 0 {
		metrics.ObservePublish(false)
		return nil, &domain.PublishPreconditionError{Missing: missing}
	}

	publishedAt := time.Now()
	if err := s.tutorialRepo.MarkPublished(ctx, t.ID, publishedAt); err != nil {
		return nil, fmt.Errorf("publish tutorial: %w", err)
	}
	t.IsPublished = true
	t.PublishedAt = &publishedAt

	metrics.ObservePublish(true)
	logger.WithTutorialID(t.ID).Info("Tutorial published", "user_id", userID)

	author := user
	if user.ID != t.AuthorID {
		author, err = s.userRepo.GetByID(ctx, t.AuthorID)
		if err != nil || author == nil {
			logger.WithTutorialID(t.ID).Warn("Could not load author for notification",
				"author_id", t.AuthorID,
				"error", err)
			return t, nil
		}
	}
	s.enqueueNotify(notifyTask{tutorial: t, author: author})

	return t, nil
}

func (s *TutorialService) enqueueNotify(task notifyTask) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return
	}
	s.mu.RUnlock()

	select {
	case s.jobQueue <- task:
	case <-time.After(NotifyQueueSendTimeout):
		logger.WithTutorialID(task.tutorial.ID).Warn("Notification queue full, dropping publication email")
	}
}

// Delete removes a draft. Published tutorials are never deleted. The cover
// image, if any, is removed from media storage.
func (s *TutorialService) Delete(ctx context.Context, userID, tutorialID string) error {
	t, user, err := s.getForUser(ctx, userID, tutorialID)
	if err != nil {
		return err
	}
	if !user.CanEdit(t) {
		return domain.ErrForbidden
	}

	if t.IsPublished {
		metrics.ObserveDelete(false)
		return domain.ErrPublishedTutorialDelete
	}

	if err := s.tutorialRepo.Delete(ctx, t.ID); err != nil {
		return fmt.Errorf("delete tutorial: %w", err)
	}

	if t.PicturePublicID != "" {
		if err := s.media.Destroy(ctx, t.PicturePublicID); err != nil {
			logger.WithTutorialID(t.ID).Warn("Failed to remove picture of deleted tutorial",
				"public_id", t.PicturePublicID,
				"error", err)
		}
	}

	metrics.ObserveDelete(true)
	logger.WithTutorialID(t.ID).Info("Tutorial deleted", "user_id", userID)

	return nil
}

// Preview returns the full tutorial page model regardless of publication
// state, for the author, editors and admins.
func (s *TutorialService) Preview(ctx context.Context, userID, tutorialID string) (*TutorialDetail, error) {
	t, user, err := s.getForUser(ctx, userID, tutorialID)
	if err != nil {
		return nil, err
	}
	if !user.CanEdit(t) {
		return nil, domain.ErrForbidden
	}

	return s.buildDetail(ctx, t)
}

// GetForEdit returns the tutorial for the edit form, for the author,
// editors and admins.
func (s *TutorialService) GetForEdit(ctx context.Context, userID, tutorialID string) (*domain.Tutorial, error) {
	t, user, err := s.getForUser(ctx, userID, tutorialID)
	if err != nil {
		return nil, err
	}
	if !user.CanEdit(t) {
		return nil, domain.ErrForbidden
	}
	return t, nil
}

// Home returns the landing page model: the latest published tutorials and
// all known tags.
func (s *TutorialService) Home(ctx context.Context) ([]domain.Tutorial, []domain.Tag, error) {
	tutorials, err := s.tutorialRepo.ListPublished(ctx, s.homePageSize, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("list published: %w", err)
	}

	tags, err := s.tagRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list tags: %w", err)
	}

	return tutorials, tags, nil
}

// ByTag returns the published tutorials carrying the tag. Unknown labels
// yield domain.ErrNotFound.
func (s *TutorialService) ByTag(ctx context.Context, label string) ([]domain.Tutorial, error) {
	tag, err := s.tagRepo.GetByLabel(ctx, label)
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	if tag == nil {
		return nil, domain.ErrNotFound
	}

	tutorials, err := s.tutorialRepo.FindAllPublishedByTag(ctx, tag.Label)
	if err != nil {
		return nil, fmt.Errorf("find by tag: %w", err)
	}

	return tutorials, nil
}

// Show returns the public tutorial page model. Drafts are not visible
// here; both an unknown slug and a draft yield domain.ErrNotFound.
func (s *TutorialService) Show(ctx context.Context, slugValue string) (*TutorialDetail, error) {
	t, err := s.tutorialRepo.GetBySlug(ctx, slugValue)
	if err != nil {
		return nil, fmt.Errorf("get tutorial: %w", err)
	}
	if t == nil || !t.IsPublished {
		return nil, domain.ErrNotFound
	}

	return s.buildDetail(ctx, t)
}

// Videos returns the published tutorials carrying a video link.
func (s *TutorialService) Videos(ctx context.Context) ([]domain.Tutorial, error) {
	tutorials, err := s.tutorialRepo.FindVideoTutorials(ctx)
	if err != nil {
		return nil, fmt.Errorf("find video tutorials: %w", err)
	}
	return tutorials, nil
}

func (s *TutorialService) buildDetail(ctx context.Context, t *domain.Tutorial) (*TutorialDetail, error) {
	author, err := s.userRepo.GetByID(ctx, t.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("get author: %w", err)
	}

	related, err := s.tutorialRepo.FindRelated(ctx, t, RelatedTutorialsLimit)
	if err != nil {
		return nil, fmt.Errorf("find related: %w", err)
	}

	last, err := s.tutorialRepo.GetAuthorLastPublished(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("get author last published: %w", err)
	}

	return &TutorialDetail{
		Tutorial:            t,
		Author:              author,
		Related:             related,
		AuthorLastPublished: last,
	}, nil
}

func (s *TutorialService) getForUser(ctx context.Context, userID, tutorialID string) (*domain.Tutorial, *domain.User, error) {
	t, err := s.tutorialRepo.GetByID(ctx, tutorialID)
	if err != nil {
		return nil, nil, fmt.Errorf("get tutorial: %w", err)
	}
	if t == nil {
		return nil, nil, domain.ErrNotFound
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, nil, domain.ErrForbidden
	}

	return t, user, nil
}
