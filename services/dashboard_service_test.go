package services

import (
	"path/filepath"
	"testing"
	"time"

	"aavm-dashboard/models"
	"aavm-dashboard/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardFallsBackToFileWithoutDatabase(t *testing.T) {
	fileStore := repositories.NewFileArticleStore(filepath.Join(t.TempDir(), "articles.json"))
	svc := NewDashboardService(nil, fileStore)

	snapshot, err := svc.Dashboard()
	require.NoError(t, err)
	assert.Empty(t, snapshot.Articles)
	assert.Zero(t, snapshot.Analytics.TotalArticles)
}

func TestDashboardWritesSnapshotReadableOffline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.json")
	fileStore := repositories.NewFileArticleStore(path)

	repo := newFakeArticleRepo(&models.Article{
		ID:            1,
		OriginalTitle: "Snapshot Article",
		Status:        models.StatusPendingSynthesis,
		ScrapedDate:   time.Now(),
	})
	svc := NewDashboardService(repo, fileStore)

	snapshot, err := svc.Dashboard()
	require.NoError(t, err)
	require.Len(t, snapshot.Articles, 1)
	assert.Equal(t, 1, snapshot.Analytics.TotalArticles)
	assert.Equal(t, 1, snapshot.Analytics.TodayArticles)

	// Same snapshot file, no database this time.
	offline := NewDashboardService(nil, repositories.NewFileArticleStore(path))
	restored, err := offline.Dashboard()
	require.NoError(t, err)
	require.Len(t, restored.Articles, 1)
	assert.Equal(t, "Snapshot Article", restored.Articles[0].OriginalTitle)
}

func TestCreateArticleDefaults(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewDashboardService(repo, repositories.NewFileArticleStore(filepath.Join(t.TempDir(), "a.json")))

	created, err := svc.CreateArticle(&models.Article{OriginalTitle: "Fresh"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingSynthesis, created.Status)
	assert.False(t, created.ScrapedDate.IsZero())
}

func TestCreateArticleWithoutDatabase(t *testing.T) {
	svc := NewDashboardService(nil, repositories.NewFileArticleStore(filepath.Join(t.TempDir(), "a.json")))

	_, err := svc.CreateArticle(&models.Article{OriginalTitle: "Fresh"})
	var cerr models.ConfigurationError
	require.ErrorAs(t, err, &cerr)
}

func TestComputeAnalyticsSkipsRemovedArticles(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	articles := []models.Article{
		{Status: models.StatusPendingSynthesis, ScrapedDate: now},
		{Status: models.StatusInTranslation, ScrapedDate: now.AddDate(0, 0, -2)},
		{Status: models.StatusTranslationReview, ScrapedDate: now.AddDate(0, 0, -2)},
		{Status: models.StatusPublished, ScrapedDate: now.AddDate(0, 0, -5)},
		{Status: models.StatusDeleted, ScrapedDate: now},
		{Status: models.StatusDiscarded, ScrapedDate: now},
	}

	analytics := computeAnalytics(articles, now)
	assert.Equal(t, 4, analytics.TotalArticles)
	assert.Equal(t, 1, analytics.TodayArticles)
	assert.Equal(t, 1, analytics.PendingSynthesis)
	assert.Equal(t, 2, analytics.PendingTranslation)
	assert.Equal(t, 1, analytics.PublishedArticles)
}
