package repositories

import (
	"errors"
	"time"

	"aavm-dashboard/models"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(article *models.Article) error
	GetByID(id uint) (*models.Article, error)
	GetList(params models.ArticleListParams) ([]models.Article, int64, error)
	GetAll() ([]models.Article, error)
	// UpdateWhereStatus applies the field updates only if the article still
	// has the expected status. Returns models.ErrStatusConflict when the
	// row was changed concurrently.
	UpdateWhereStatus(id uint, expected models.ArticleStatus, updates map[string]interface{}) error
	HardDelete(id uint) error
	CountByStatus() (map[models.ArticleStatus]int, error)
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

func (r *articleRepository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.First(&article, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFoundError{Resource: "article", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetList(params models.ArticleListParams) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	query := r.db.Model(&models.Article{})

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Topic != "" {
		query = query.Where("topic = ?", params.Topic)
	}
	if params.Priority != "" {
		query = query.Where("priority = ?", params.Priority)
	}

	query.Count(&total)

	offset := (params.Page - 1) * params.Limit
	err := query.Order("scraped_date desc").Offset(offset).Limit(params.Limit).Find(&articles).Error

	return articles, total, err
}

func (r *articleRepository) GetAll() ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Order("scraped_date desc").Find(&articles).Error
	return articles, err
}

func (r *articleRepository) UpdateWhereStatus(id uint, expected models.ArticleStatus, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.Article{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a lost race from a missing row.
		var count int64
		r.db.Model(&models.Article{}).Where("id = ?", id).Count(&count)
		if count == 0 {
			return models.NotFoundError{Resource: "article", ID: id}
		}
		return models.ErrStatusConflict
	}
	return nil
}

func (r *articleRepository) HardDelete(id uint) error {
	result := r.db.Delete(&models.Article{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NotFoundError{Resource: "article", ID: id}
	}
	return nil
}

func (r *articleRepository) CountByStatus() (map[models.ArticleStatus]int, error) {
	var results []struct {
		Status models.ArticleStatus
		Count  int
	}

	err := r.db.Model(&models.Article{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.ArticleStatus]int)
	for _, result := range results {
		counts[result.Status] = result.Count
	}
	return counts, nil
}
