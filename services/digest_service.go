package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"aavm-dashboard/clients"
	"aavm-dashboard/models"
	"aavm-dashboard/repositories"
)

// DigestStats are the per-status pipeline counts reported by the digest.
type DigestStats struct {
	PendingSynthesis     int `json:"pending_synthesis"`
	TitleReview          int `json:"title_review"`
	SummaryReview        int `json:"summary_review"`
	ReadyForTranslation  int `json:"ready_for_translation"`
	InTranslation        int `json:"in_translation"`
	TranslationReview    int `json:"translation_review"`
	TranslationsApproved int `json:"translations_approved"`
	ReadyForImage        int `json:"ready_for_image"`
	ReadyForPublication  int `json:"ready_for_publication"`
	TotalActive          int `json:"total_active"`
	TotalPublished       int `json:"total_published"`
}

// NeedsAttention reports whether any stage has pending work.
func (s DigestStats) NeedsAttention() bool {
	return s.PendingSynthesis > 0 || s.TitleReview > 0 || s.SummaryReview > 0 ||
		s.ReadyForTranslation > 0 || s.InTranslation > 0 || s.TranslationReview > 0 ||
		s.TranslationsApproved > 0 || s.ReadyForImage > 0 || s.ReadyForPublication > 0
}

// DigestResult is the payload of GET|POST /daily-digest.
type DigestResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Sent    bool        `json:"sent"`
	EmailID string      `json:"email_id,omitempty"`
	Stats   DigestStats `json:"stats"`
}

// DigestService aggregates pipeline state and conditionally emails a
// summary. Missing mailer configuration disables sending, it does not
// fail the request.
type DigestService interface {
	Run(ctx context.Context) (*DigestResult, error)
}

type digestService struct {
	articleRepo repositories.ArticleRepository
	mailer      *clients.ResendClient
	from        string
	to          string
	siteURL     string
}

func NewDigestService(articleRepo repositories.ArticleRepository, mailer *clients.ResendClient, from, to, siteURL string) DigestService {
	return &digestService{
		articleRepo: articleRepo,
		mailer:      mailer,
		from:        from,
		to:          to,
		siteURL:     siteURL,
	}
}

func (s *digestService) Run(ctx context.Context) (*DigestResult, error) {
	if s.articleRepo == nil {
		return nil, models.ConfigurationError{Missing: "database"}
	}

	articles, err := s.articleRepo.GetAll()
	if err != nil {
		return nil, err
	}

	stats, highPriority := computeDigest(articles)
	result := &DigestResult{Success: true, Stats: stats}

	if !stats.NeedsAttention() {
		result.Message = "No articles need attention, digest not sent"
		return result, nil
	}

	if !s.mailer.Configured() {
		log.Println("No Resend API key configured, digest computed but not sent")
		result.Message = "Email sending disabled, digest not sent"
		return result, nil
	}

	html, err := renderDigestEmail(stats, highPriority, s.siteURL)
	if err != nil {
		return nil, err
	}

	pending := stats.PendingSynthesis + stats.TitleReview + stats.SummaryReview +
		stats.ReadyForTranslation + stats.InTranslation + stats.TranslationReview +
		stats.TranslationsApproved + stats.ReadyForImage + stats.ReadyForPublication
	subject := fmt.Sprintf("AAVM Daily Digest - %d articles need attention", pending)

	id, err := s.mailer.Send(ctx, s.from, []string{s.to}, subject, html)
	if err != nil {
		return nil, err
	}

	result.Sent = true
	result.EmailID = id
	result.Message = "Daily digest sent successfully"
	return result, nil
}

func computeDigest(articles []models.Article) (DigestStats, []models.Article) {
	var stats DigestStats
	var highPriority []models.Article

	for _, a := range articles {
		switch a.Status {
		case models.StatusDeleted, models.StatusDiscarded:
			continue
		}
		stats.TotalActive++

		switch a.Status {
		case models.StatusPendingSynthesis:
			stats.PendingSynthesis++
		case models.StatusTitleReview:
			stats.TitleReview++
		case models.StatusSummaryReview:
			stats.SummaryReview++
		case models.StatusReadyForTranslation:
			stats.ReadyForTranslation++
		case models.StatusInTranslation:
			stats.InTranslation++
		case models.StatusTranslationReview:
			stats.TranslationReview++
		case models.StatusTranslationsApproved:
			stats.TranslationsApproved++
		case models.StatusReadyForImage:
			stats.ReadyForImage++
		case models.StatusReadyForPublication:
			stats.ReadyForPublication++
		case models.StatusPublished:
			stats.TotalPublished++
		}

		if a.Priority == "high" && a.Status != models.StatusPublished {
			highPriority = append(highPriority, a)
		}
	}

	if len(highPriority) > 5 {
		highPriority = highPriority[:5]
	}
	return stats, highPriority
}

var digestEmailTmpl = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>AAVM Dashboard Daily Digest</h2>
  <p>{{.Date}}</p>
  <h3>Pipeline Status</h3>
  <ul>
    <li>Pending synthesis: {{.Stats.PendingSynthesis}}</li>
    <li>Title review: {{.Stats.TitleReview}}</li>
    <li>Summary review: {{.Stats.SummaryReview}}</li>
    <li>Ready for translation: {{.Stats.ReadyForTranslation}}</li>
    <li>In translation: {{.Stats.InTranslation}}</li>
    <li>Translation review: {{.Stats.TranslationReview}}</li>
    <li>Translations approved: {{.Stats.TranslationsApproved}}</li>
    <li>Ready for images: {{.Stats.ReadyForImage}}</li>
    <li>Ready to publish: {{.Stats.ReadyForPublication}}</li>
  </ul>
  <p><strong>Total active:</strong> {{.Stats.TotalActive}} &middot; <strong>Published:</strong> {{.Stats.TotalPublished}}</p>
  {{if .HighPriority}}
  <h3>High Priority Articles Needing Attention</h3>
  <ul>
  {{range .HighPriority}}
    <li>{{.OriginalTitle}} ({{.Source}} &middot; {{.Status}} &middot; score {{.RelevanceScore}})</li>
  {{end}}
  </ul>
  {{end}}
  <p><a href="{{.SiteURL}}">Open Dashboard</a></p>
</body>
</html>`))

func renderDigestEmail(stats DigestStats, highPriority []models.Article, siteURL string) (string, error) {
	var buf bytes.Buffer
	err := digestEmailTmpl.Execute(&buf, struct {
		Date         string
		Stats        DigestStats
		HighPriority []models.Article
		SiteURL      string
	}{
		Date:         time.Now().Format("Monday, January 2, 2006"),
		Stats:        stats,
		HighPriority: highPriority,
		SiteURL:      siteURL,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
