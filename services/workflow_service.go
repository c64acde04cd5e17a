package services

import (
	"context"
	"fmt"
	"time"

	"aavm-dashboard/models"
	"aavm-dashboard/repositories"
)

// Articles need at least this much raw content before a summary can be
// generated.
const minContentLength = 100

// Generator is the text/image generation backend used by workflow
// operations.
type Generator interface {
	Complete(ctx context.Context, system, user string) (string, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// WorkflowService owns the article lifecycle: every legal transition, its
// preconditions and the field updates it persists. Transitions are
// compare-and-swapped on (id, expected status) so a lost race surfaces as
// models.ErrStatusConflict instead of a silent overwrite.
type WorkflowService interface {
	GenerateTitle(ctx context.Context, id uint) (*models.Article, error)
	ApproveTitle(id uint, title string) (*models.Article, error)
	Summarize(ctx context.Context, id uint) (*models.Article, error)
	ApproveSummary(id uint) (*models.Article, error)
	Translate(ctx context.Context, id uint, language string) (*models.Article, error)
	ApproveTranslation(id uint, language, approver string) (*models.Article, error)
	GenerateImagePrompt(ctx context.Context, id uint) (*models.Article, error)
	GenerateImage(ctx context.Context, id uint) (*models.Article, error)
	Publish(id uint) (*models.Article, error)
	Unpublish(id uint) (*models.Article, error)
	Discard(id uint) (*models.Article, error)
	Delete(id uint) (*models.Article, error)
	Restore(id uint) (*models.Article, error)
	StartOver(id uint) (*models.Article, error)
	UpdateStatus(id uint, status string) (*models.Article, error)
	PermanentDelete(id uint) error
}

type workflowService struct {
	articleRepo repositories.ArticleRepository
	generator   Generator
}

func NewWorkflowService(articleRepo repositories.ArticleRepository, generator Generator) WorkflowService {
	return &workflowService{
		articleRepo: articleRepo,
		generator:   generator,
	}
}

func (s *workflowService) load(id uint) (*models.Article, error) {
	if s.articleRepo == nil {
		return nil, models.ConfigurationError{Missing: "database"}
	}
	return s.articleRepo.GetByID(id)
}

// transition performs one legality-checked compare-and-swap from the
// article's loaded status.
func (s *workflowService) transition(article *models.Article, to models.ArticleStatus, updates map[string]interface{}) error {
	if !models.CanTransition(article.Status, to) {
		return models.IllegalTransitionError{From: article.Status, To: to}
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = to
	return s.articleRepo.UpdateWhereStatus(article.ID, article.Status, updates)
}

// rollback returns a generation state to its pre-attempt status,
// recording the failure in last_error rather than in a content field.
func (s *workflowService) rollback(id uint, from, to models.ArticleStatus, cause error) {
	msg := cause.Error()
	s.articleRepo.UpdateWhereStatus(id, from, map[string]interface{}{
		"status":     to,
		"last_error": msg,
	})
}

func (s *workflowService) GenerateTitle(ctx context.Context, id uint) (*models.Article, error) {
	article, err := s.load(id)
	if err != nil {
		return nil, err
	}

	if err := s.transition(article, models.StatusGeneratingTitle, nil); err != nil {
		return nil, err
	}

	title, err := s.generator.Complete(ctx, editorSystemPrompt, titlePrompt(article.OriginalTitle, article.ShortDescription))
	if err != nil {
		s.rollback(id, models.StatusGeneratingTitle, article.Status, err)
		return nil, err
	}

	err = s.articleRepo.UpdateWhereStatus(id, models.StatusGeneratingTitle, map[string]interface{}{
		"status":     models.StatusTitleReview,
		"ai_title":   title,
		"last_error": nil,
	})
	if err != nil {
		return nil, err
	}
	return s.articleRepo.GetByID(id)
}

func (s *workflowService) ApproveTitle(id uint, title string) (*models.Article, error) {
	article, err := s.load(id)
	if err != nil {
		return nil, err
	}

	if article.Status != models.StatusTitleReview {
		return nil, models.IllegalTransitionError{From: article.Status, To: models.StatusPendingSynthesis}
	}
	if title == "" {
		if article.AITitle == nil {
			return nil, models.ValidationError{Field: "title", Message: "no title to approve"}
		}
		title = *article.AITitle
	}

	err = s.transition(article, models.StatusPendingSynthesis, map[string]interface{}{
		"display_title": title,
	})
	if err != nil {
		return nil, err
	}
	return s.articleRepo.GetByID(id)
}

func (s *workflowService) Summarize(ctx context.Context, id uint) (*models.Article, error) {
	article, err := s.load(id)
	if err != nil {
		return nil, err
	}

	// Refused outright, no state change.
	if len(article.FullContent) < minContentLength {
		return nil, models.ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("article content is missing or under %d characters", minContentLength),
		}
	}
	if article.DisplayTitle == nil {
		return nil, models.ValidationError{Field: "display_title", Message: "approve a title before summarizing"}
	}
	if article.Status != models.StatusPendingSynthesis {
		return nil, models.IllegalTransitionError{From: article.Status, To: models.StatusGeneratingSummary}
	}

	if err := s.transition(article, models.StatusGeneratingSummary, nil); err != nil {
		return nil, err
	}

	summary, err := s.generator.Complete(ctx, journalistSystemPrompt, summarizePrompt(*article.DisplayTitle))
	if err != nil {
		s.rollback(id, models.StatusGeneratingSummary, models.StatusPendingSynthesis, err)
		return nil, err
	}

	err = s.articleRepo.UpdateWhereStatus(id, models.StatusGeneratingSummary, map[string]interface{}{
		"status":     models.StatusSummaryReview,
		"ai_summary": summary,
		"last_error": nil,
	})
	if err != nil {
		return nil, err
	}
	return s.articleRepo.GetByID(id)
}

func (s *workflowService) ApproveSummary(id uint) (*models.Article, error) {
	article, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if article.AISummary == nil {
		return nil, models.ValidationError{Field: "ai_summary", Message: "no summary to approve"}
	}

	if err := s.transition(article, models.StatusReadyForTranslation, nil); err != nil {
		return nil, err
	}
	return s.articleRepo.GetByID(id)
}

func (s *workflowService) Translate(ctx context.Context, id uint, language string) (*models.Article, error) {
	lang, err := models.ParseLanguage(language)
	if err != nil {
		return nil, err
	}

	article, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if article.AISummary == nil || *article.AISummary == "" {
		return nil, models.ValidationError{Field: "ai_summary", Message: "no summary available to translate"}
	}
	switch article.Status {
	case models.StatusReadyForTranslation, models.StatusInTranslation, models.StatusTranslationReview:
	default:
		return nil, models.IllegalTransitionError{From: article.Status, To: models.StatusInTranslation}
	}

	summary, err := s.generator.Complete(ctx,
		fmt.Sprintf(translatorSystemPromptFmt, lang),
		translatePrompt(string(lang), *article.AISummary))
	if err != nil {
		return nil, err
	}

	title := article.OriginalTitle
	if article.DisplayTitle != nil {
		title = *article.DisplayTitle
	}
	translatedTitle, err := s.generator.Complete(ctx,
		fmt.Sprintf(translatorSystemPromptFmt, lang),
		translatePrompt(string(lang), title))
	if err != nil {
		return nil, err
	}

	// Both languages translated means the article is ready for review.
	other := article.Korean
	if lang == models.LanguageKorean {
		other = article.Chinese
	}
	next := models.StatusInTranslation
	if other.Translated() {
		next = models.StatusTranslationReview
	}

	// New text invalidates any earlier approval of this language.
	prefix := string(lang)
	err = s.transition(article, next, map[string]interface{}{
		prefix + "_summary":     summary,
		prefix + "_title":       translatedTitle,
		prefix + "_approved":    false,
		prefix + "_approved_by": nil,
		prefix + "_approved_at": nil,
		"last_error":            nil,
	})
	if err != nil {
		return nil, err
	}
	return s.articleRepo.GetByID(id)
}

func (s *workflowService) ApproveTranslation(id uint, language, approver string) (*models.Article, error) {
	lang, err := models.ParseLanguage(language)
	if err != nil {
		return nil, err
	}
	if approver == "" {
		return nil, models.ValidationError{Field: "approver", Message: "approver is required"}
	}

	article, err := s.load(id)
	if err != nil {
		return nil, err
	}

	slot := article.Translation(lang)
	if !slot.Translated() {
		return nil, models.ValidationError{Field: "language", Message: fmt.Sprintf("no %s translation to approve", lang)}
	}
	switch article.Status {
	case models.StatusInTranslation, models.StatusTranslationReview:
	default:
		return nil, models.IllegalTransitionError{From: article.Status, To: models.StatusTranslationsApproved}
	}

	now := time.Now()
	prefix := string(lang)
	updates := map[string]interface{}{
		prefix + "_approved":    true,
		prefix + "_approved_by": approver,
		prefix + "_approved_at": now,
	}

	// Advance only when both languages are translated and approved;
	// approving one language alone never changes the status.
	other := article.Translation(otherLanguage(lang))
	next := article.Status
	if other.Translated() && other.Approved && article.Status == models.StatusTranslationReview {
		next = models.StatusTranslationsApproved
	}

	updates["status"] = next
	if err := s.articleRepo.UpdateWhereStatus(id, article.Status, updates); err != nil {
		return nil, err
	}
	return s.articleRepo.GetByID(id)
}

func otherLanguage(lang models.Language) models.Language {
	if lang == models.LanguageChinese {
		return models.LanguageKorean
	}
	return models.LanguageChinese
}

func (s *workflowService) GenerateImagePrompt(ctx context.Context, id uint) (*models.Article, error) {
	article, err := s.load(id)
	if err != nil {
		return nil, err
	}
	switch article.Status {
	case models.StatusTranslationsApproved, models.StatusReadyForImage:
	default:
		return nil, models.IllegalTransitionError{From: article.Status, To: models.StatusReadyForImage}
	}

	title := article.OriginalTitle
	if article.DisplayTitle != nil {
		title = *article.DisplayTitle
	}
	summary := ""
	if article.AISummary != nil {
		summary = *article.AISummary
	}

	prompt, err := s.generator.Complete(ctx, artDirectorSystemPrompt, imagePromptPrompt(title, summary))
	if err != nil {
		return nil, err
	}

	err = s.articleRepo.UpdateWhereStatus(id, article.Status, map[string]interface{}{
		"status":       models.StatusReadyForImage,
		"image_prompt": prompt,
		"last_error":   nil,
	})
	if err != nil {
		return nil, err
	}
	return s.articleRepo.GetByID(id)
}

func (s *workflowService) GenerateImage(ctx context.Context, id uint) (*models.Article, error) {
	article, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if article.ImagePrompt == nil {
		return nil, models.ValidationError{Field: "image_prompt", Message: "generate an image prompt first"}
	}

	if err := s.transition(article, models.StatusGeneratingImage, nil); err != nil {
		return nil, err
	}

	url, err := s.generator.GenerateImage(ctx, *article.ImagePrompt)
	if err != nil {
		s.rollback(id, models.StatusGeneratingImage, models.StatusReadyForImage, err)
		return nil, err
	}

	err = s.articleRepo.UpdateWhereStatus(id, models.StatusGeneratingImage, map[string]interface{}{
		"status":     models.StatusReadyForPublication,
		"image_url":  url,
		"last_error": nil,
	})
	if err != nil {
		return nil, err
	}
	return s.articleRepo.GetByID(id)
}

func (s *workflowService) Publish(id uint) (*models.Article, error) {
	return s.simpleTransition(id, models.StatusPublished, nil)
}

func (s *workflowService) Unpublish(id uint) (*models.Article, error) {
	return s.simpleTransition(id, models.StatusReadyForPublication, nil)
}

func (s *workflowService) Discard(id uint) (*models.Article, error) {
	return s.simpleTransition(id, models.StatusDiscarded, map[string]interface{}{
		"discarded_at": time.Now(),
	})
}

func (s *workflowService) Delete(id uint) (*models.Article, error) {
	return s.simpleTransition(id, models.StatusDeleted, map[string]interface{}{
		"deleted_at": time.Now(),
	})
}

func (s *workflowService) Restore(id uint) (*models.Article, error) {
	return s.simpleTransition(id, models.StatusPendingSynthesis, map[string]interface{}{
		"deleted_at":   nil,
		"discarded_at": nil,
	})
}

func (s *workflowService) simpleTransition(id uint, to models.ArticleStatus, updates map[string]interface{}) (*models.Article, error) {
	article, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if err := s.transition(article, to, updates); err != nil {
		return nil, err
	}
	return s.articleRepo.GetByID(id)
}

// StartOver clears every derived field and returns the article to the
// head of the pipeline. Reachable from any state with generated content,
// published included.
func (s *workflowService) StartOver(id uint) (*models.Article, error) {
	article, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !article.HasGeneratedContent() {
		return nil, models.ValidationError{Field: "id", Message: "article has no generated content to reset"}
	}

	err = s.articleRepo.UpdateWhereStatus(id, article.Status, map[string]interface{}{
		"status":              models.StatusPendingSynthesis,
		"ai_title":            nil,
		"ai_summary":          nil,
		"display_title":       nil,
		"image_url":           nil,
		"image_prompt":        nil,
		"chinese_title":       nil,
		"chinese_summary":     nil,
		"chinese_approved":    false,
		"chinese_approved_by": nil,
		"chinese_approved_at": nil,
		"korean_title":        nil,
		"korean_summary":      nil,
		"korean_approved":     false,
		"korean_approved_by":  nil,
		"korean_approved_at":  nil,
		"last_error":          nil,
		"deleted_at":          nil,
		"discarded_at":        nil,
	})
	if err != nil {
		return nil, err
	}
	return s.articleRepo.GetByID(id)
}

func (s *workflowService) UpdateStatus(id uint, status string) (*models.Article, error) {
	to, err := models.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	article, err := s.load(id)
	if err != nil {
		return nil, err
	}

	var updates map[string]interface{}
	switch to {
	case models.StatusDiscarded:
		updates = map[string]interface{}{"discarded_at": time.Now()}
	case models.StatusDeleted:
		updates = map[string]interface{}{"deleted_at": time.Now()}
	case models.StatusPendingSynthesis:
		if article.Status == models.StatusDiscarded || article.Status == models.StatusDeleted {
			updates = map[string]interface{}{"deleted_at": nil, "discarded_at": nil}
		}
	}

	if err := s.transition(article, to, updates); err != nil {
		return nil, err
	}
	return s.articleRepo.GetByID(id)
}

// PermanentDelete removes the record entirely. The only irreversible
// operation in the pipeline.
func (s *workflowService) PermanentDelete(id uint) error {
	if s.articleRepo == nil {
		return models.ConfigurationError{Missing: "database"}
	}
	return s.articleRepo.HardDelete(id)
}
