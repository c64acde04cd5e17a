package models

import "time"

type RegisterRequest struct {
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6"`
	Role     UserRole `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// AIActionRequest is the body of POST /ai. Action selects the workflow
// operation; the remaining fields are action-specific.
type AIActionRequest struct {
	Action   string `json:"action" binding:"required"`
	ID       uint   `json:"id"`
	Language string `json:"language,omitempty"`
	Title    string `json:"title,omitempty"`
	Status   string `json:"status,omitempty"`
	Approver string `json:"approver,omitempty"`
}

type ScrapeRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// ScrapeResult is the extraction payload of POST /scrape-article.
type ScrapeResult struct {
	Title          string  `json:"title"`
	Author         string  `json:"author"`
	Content        string  `json:"content"`
	Description    string  `json:"description"`
	Source         string  `json:"source"`
	Dateline       string  `json:"dateline"`
	RelevanceScore float64 `json:"relevanceScore"`
	Priority       string  `json:"priority"`
	Topic          string  `json:"topic"`
	ContentQuality string  `json:"contentQuality"`
	WordCount      int     `json:"wordCount"`
	Success        bool    `json:"success"`
}

// DashboardResponse is the payload of GET /ai?type=dashboard and the
// schema of the flat-file fallback snapshot.
type DashboardResponse struct {
	Articles    []Article `json:"articles"`
	Analytics   Analytics `json:"analytics"`
	LastUpdated time.Time `json:"last_updated"`
}

// UserWebhookRequest mirrors the data-store change notification posted to
// /webhooks/user-approval.
type UserWebhookRequest struct {
	Type   string `json:"type" binding:"required"`
	Table  string `json:"table" binding:"required"`
	Record User   `json:"record"`
}

type ArticleListParams struct {
	Status   string `form:"status"`
	Topic    string `form:"topic"`
	Priority string `form:"priority"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=50"`
}
