package models

import "fmt"

type ArticleStatus string

const (
	StatusPendingSynthesis     ArticleStatus = "pending_synthesis"
	StatusGeneratingTitle      ArticleStatus = "generating_title"
	StatusTitleReview          ArticleStatus = "title_review"
	StatusGeneratingSummary    ArticleStatus = "generating_summary"
	StatusSummaryReview        ArticleStatus = "summary_review"
	StatusReadyForTranslation  ArticleStatus = "ready_for_translation"
	StatusInTranslation        ArticleStatus = "in_translation"
	StatusTranslationReview    ArticleStatus = "translation_review"
	StatusTranslationsApproved ArticleStatus = "translations_approved"
	StatusReadyForImage        ArticleStatus = "ready_for_image"
	StatusGeneratingImage      ArticleStatus = "generating_image"
	StatusReadyForPublication  ArticleStatus = "ready_for_publication"
	StatusPublished            ArticleStatus = "published"
	StatusDiscarded            ArticleStatus = "discarded"
	StatusDeleted              ArticleStatus = "deleted"
)

// AllStatuses lists every lifecycle state in pipeline order.
var AllStatuses = []ArticleStatus{
	StatusPendingSynthesis,
	StatusGeneratingTitle,
	StatusTitleReview,
	StatusGeneratingSummary,
	StatusSummaryReview,
	StatusReadyForTranslation,
	StatusInTranslation,
	StatusTranslationReview,
	StatusTranslationsApproved,
	StatusReadyForImage,
	StatusGeneratingImage,
	StatusReadyForPublication,
	StatusPublished,
	StatusDiscarded,
	StatusDeleted,
}

// transitions is the authoritative legality table. Side branches
// (discard/delete from any pre-publication state, restore, unpublish)
// are included so update_status goes through the same check as the
// named operations.
var transitions = map[ArticleStatus][]ArticleStatus{
	StatusPendingSynthesis:     {StatusGeneratingTitle, StatusGeneratingSummary},
	StatusGeneratingTitle:      {StatusTitleReview, StatusPendingSynthesis},
	StatusTitleReview:          {StatusPendingSynthesis},
	StatusGeneratingSummary:    {StatusSummaryReview, StatusPendingSynthesis},
	StatusSummaryReview:        {StatusReadyForTranslation},
	StatusReadyForTranslation:  {StatusInTranslation, StatusTranslationReview},
	StatusInTranslation:        {StatusInTranslation, StatusTranslationReview},
	StatusTranslationReview:    {StatusInTranslation, StatusTranslationReview, StatusTranslationsApproved},
	StatusTranslationsApproved: {StatusReadyForImage},
	StatusReadyForImage:        {StatusGeneratingImage},
	StatusGeneratingImage:      {StatusReadyForPublication, StatusReadyForImage},
	StatusReadyForPublication:  {StatusPublished},
	StatusPublished:            {StatusReadyForPublication},
	StatusDiscarded:            {StatusPendingSynthesis},
	StatusDeleted:              {StatusPendingSynthesis},
}

// ParseStatus validates a raw status string against the closed enum.
func ParseStatus(raw string) (ArticleStatus, error) {
	s := ArticleStatus(raw)
	for _, known := range AllStatuses {
		if s == known {
			return s, nil
		}
	}
	return "", ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", raw)}
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to ArticleStatus) bool {
	if IsPrePublication(from) && (to == StatusDiscarded || to == StatusDeleted) {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsPrePublication reports whether the status belongs to the active
// pre-publication pipeline.
func IsPrePublication(s ArticleStatus) bool {
	switch s {
	case StatusPublished, StatusDiscarded, StatusDeleted:
		return false
	}
	return true
}

type Language string

const (
	LanguageChinese Language = "chinese"
	LanguageKorean  Language = "korean"
)

var SupportedLanguages = []Language{LanguageChinese, LanguageKorean}

// ParseLanguage normalizes and validates a translation language.
func ParseLanguage(raw string) (Language, error) {
	switch Language(raw) {
	case LanguageChinese:
		return LanguageChinese, nil
	case LanguageKorean:
		return LanguageKorean, nil
	}
	return "", ValidationError{
		Field:   "language",
		Message: fmt.Sprintf("unsupported language %q, supported: chinese, korean", raw),
	}
}
