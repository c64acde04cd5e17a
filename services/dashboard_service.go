package services

import (
	"log"
	"time"

	"aavm-dashboard/models"
	"aavm-dashboard/repositories"
)

// DashboardService assembles the article list and aggregate analytics.
// Reads fall back to the flat-file snapshot when the durable store is
// unreachable; successful reads refresh the snapshot.
type DashboardService interface {
	Dashboard() (*models.DashboardResponse, error)
	ListArticles(params models.ArticleListParams) ([]models.Article, int64, error)
	CreateArticle(article *models.Article) (*models.Article, error)
	GetArticle(id uint) (*models.Article, error)
}

type dashboardService struct {
	articleRepo repositories.ArticleRepository
	fileStore   *repositories.FileArticleStore
	now         func() time.Time
}

func NewDashboardService(articleRepo repositories.ArticleRepository, fileStore *repositories.FileArticleStore) DashboardService {
	return &dashboardService{
		articleRepo: articleRepo,
		fileStore:   fileStore,
		now:         time.Now,
	}
}

func (s *dashboardService) Dashboard() (*models.DashboardResponse, error) {
	if s.articleRepo == nil {
		return s.fileStore.Read()
	}

	articles, err := s.articleRepo.GetAll()
	if err != nil {
		log.Printf("Store read failed, serving file snapshot: %v", err)
		return s.fileStore.Read()
	}

	snapshot := &models.DashboardResponse{
		Articles:    articles,
		Analytics:   computeAnalytics(articles, s.now()),
		LastUpdated: s.now(),
	}

	if err := s.fileStore.Write(snapshot); err != nil {
		log.Printf("Snapshot write failed: %v", err)
	}
	return snapshot, nil
}

func (s *dashboardService) ListArticles(params models.ArticleListParams) ([]models.Article, int64, error) {
	if s.articleRepo == nil {
		return nil, 0, models.ConfigurationError{Missing: "database"}
	}
	return s.articleRepo.GetList(params)
}

func (s *dashboardService) CreateArticle(article *models.Article) (*models.Article, error) {
	if s.articleRepo == nil {
		return nil, models.ConfigurationError{Missing: "database"}
	}
	if article.Status == "" {
		article.Status = models.StatusPendingSynthesis
	}
	if article.ScrapedDate.IsZero() {
		article.ScrapedDate = s.now()
	}
	if err := s.articleRepo.Create(article); err != nil {
		return nil, err
	}
	return s.articleRepo.GetByID(article.ID)
}

func (s *dashboardService) GetArticle(id uint) (*models.Article, error) {
	if s.articleRepo == nil {
		return nil, models.ConfigurationError{Missing: "database"}
	}
	return s.articleRepo.GetByID(id)
}

func computeAnalytics(articles []models.Article, now time.Time) models.Analytics {
	analytics := models.Analytics{}
	today := now.Format("2006-01-02")

	for _, a := range articles {
		switch a.Status {
		case models.StatusDeleted, models.StatusDiscarded:
			continue
		}
		analytics.TotalArticles++
		if a.ScrapedDate.Format("2006-01-02") == today {
			analytics.TodayArticles++
		}
		switch a.Status {
		case models.StatusPendingSynthesis:
			analytics.PendingSynthesis++
		case models.StatusReadyForTranslation, models.StatusInTranslation, models.StatusTranslationReview:
			analytics.PendingTranslation++
		case models.StatusPublished:
			analytics.PublishedArticles++
		}
	}
	return analytics
}
