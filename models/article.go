package models

import "time"

// Translation holds the generated text and approval state for one target
// language. Approval is independent per language.
type Translation struct {
	Title      *string    `json:"title"`
	Summary    *string    `json:"summary"`
	Approved   bool       `json:"approved" gorm:"default:false"`
	ApprovedBy *string    `json:"approved_by"`
	ApprovedAt *time.Time `json:"approved_at"`
}

func (t Translation) Translated() bool {
	return t.Summary != nil && *t.Summary != ""
}

type Article struct {
	ID uint `json:"id" gorm:"primarykey"`

	// Source fields, immutable after ingestion.
	OriginalTitle    string    `json:"original_title" gorm:"not null"`
	Source           string    `json:"source"`
	Author           string    `json:"author"`
	OriginalURL      string    `json:"original_url" gorm:"uniqueIndex"`
	ScrapedDate      time.Time `json:"scraped_date"`
	FullContent      string    `json:"full_content" gorm:"type:text"`
	ShortDescription string    `json:"short_description"`
	Topic            string    `json:"topic"`
	Priority         string    `json:"priority" gorm:"default:'medium'"`
	RelevanceScore   float64   `json:"relevance_score"`

	// Derived fields, produced by the AI gateway.
	AITitle      *string `json:"ai_title"`
	AISummary    *string `json:"ai_summary" gorm:"type:text"`
	DisplayTitle *string `json:"display_title"`
	ImageURL     *string `json:"image_url"`
	ImagePrompt  *string `json:"image_prompt"`

	Chinese Translation `json:"chinese" gorm:"embedded;embeddedPrefix:chinese_"`
	Korean  Translation `json:"korean" gorm:"embedded;embeddedPrefix:korean_"`

	// Workflow fields. Deleted/discarded rows stay queryable so restore
	// can bring them back; only permanent_delete removes the record.
	Status      ArticleStatus `json:"status" gorm:"default:'pending_synthesis';index"`
	LastError   *string       `json:"last_error"`
	DeletedAt   *time.Time    `json:"deleted_at"`
	DiscardedAt *time.Time    `json:"discarded_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Translation returns the translation slot for a supported language.
func (a *Article) Translation(lang Language) *Translation {
	if lang == LanguageKorean {
		return &a.Korean
	}
	return &a.Chinese
}

// HasGeneratedContent reports whether any derived field has been produced,
// which is the precondition for start_over.
func (a *Article) HasGeneratedContent() bool {
	return a.AITitle != nil || a.AISummary != nil || a.DisplayTitle != nil ||
		a.ImageURL != nil || a.ImagePrompt != nil ||
		a.Chinese.Translated() || a.Korean.Translated()
}

// Analytics is the aggregate block returned with the dashboard payload and
// mirrored into the flat-file snapshot.
type Analytics struct {
	TotalArticles      int `json:"total_articles"`
	TodayArticles      int `json:"today_articles"`
	PendingSynthesis   int `json:"pending_synthesis"`
	PendingTranslation int `json:"pending_translation"`
	PublishedArticles  int `json:"published_articles"`
}
