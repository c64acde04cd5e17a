package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"

	"aavm-dashboard/clients"
	"aavm-dashboard/models"
	"aavm-dashboard/repositories"
)

// ApprovalService handles the pending-user flow: the data-store webhook
// that requests approval and the link click that grants a role.
type ApprovalService interface {
	// HandleUserInsert reacts to a users-table INSERT notification. Only
	// role=pending_approval triggers an approval-request email.
	HandleUserInsert(ctx context.Context, user models.User) error
	// ApproveUser consumes the token and updates the user's role. The
	// token is spent even if the role update fails afterwards.
	ApproveUser(token, role string) (*models.ApprovalToken, error)
}

type approvalService struct {
	tokens   TokenService
	userRepo repositories.UserRepository
	mailer   *clients.ResendClient
	from     string
	adminTo  string
	siteURL  string
}

func NewApprovalService(tokens TokenService, userRepo repositories.UserRepository, mailer *clients.ResendClient, from, adminTo, siteURL string) ApprovalService {
	return &approvalService{
		tokens:   tokens,
		userRepo: userRepo,
		mailer:   mailer,
		from:     from,
		adminTo:  adminTo,
		siteURL:  siteURL,
	}
}

func (s *approvalService) HandleUserInsert(ctx context.Context, user models.User) error {
	if user.Role != models.RolePendingApproval {
		return nil
	}

	// One token per grantable role; each link in the email carries its own.
	links := make([]approvalLink, 0, len(models.AssignableRoles))
	for _, role := range models.AssignableRoles {
		token, err := s.tokens.Issue(user.ID, user.Email, role)
		if err != nil {
			return err
		}
		links = append(links, approvalLink{
			Role: string(role),
			URL:  fmt.Sprintf("%s/approve-user?token=%s&role=%s", s.siteURL, token.Token, role),
		})
	}

	if !s.mailer.Configured() {
		log.Println("No Resend API key configured, skipping approval email")
		return nil
	}

	html, err := renderApprovalEmail(user, links, s.siteURL)
	if err != nil {
		return err
	}

	subject := "New User Approval Request - AAVM Dashboard"
	id, err := s.mailer.Send(ctx, s.from, []string{s.adminTo}, subject, html)
	if err != nil {
		return err
	}
	log.Printf("Approval email sent: %s", id)
	return nil
}

func (s *approvalService) ApproveUser(token, role string) (*models.ApprovalToken, error) {
	requested, err := models.ParseAssignableRole(role)
	if err != nil {
		return nil, err
	}

	if s.userRepo == nil {
		return nil, models.ConfigurationError{Missing: "database"}
	}

	payload, err := s.tokens.Consume(token)
	if err != nil {
		return nil, err
	}
	if payload.Role != requested {
		return nil, models.ErrTokenInvalid
	}

	// The token is already spent; a failed role update here is surfaced
	// but not rolled back.
	if err := s.userRepo.UpdateRole(payload.UserID, requested); err != nil {
		return nil, err
	}

	log.Printf("User approved: %s as %s", payload.Email, requested)
	return payload, nil
}

type approvalLink struct {
	Role string
	URL  string
}

var approvalEmailTmpl = template.Must(template.New("approval").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>New User Approval Request</h2>
  <p>A new user signed up for the AAVM Dashboard and is waiting for approval:</p>
  <ul>
    <li><strong>Email:</strong> {{.User.Email}}</li>
    <li><strong>User ID:</strong> {{.User.ID}}</li>
    <li><strong>Signed up:</strong> {{.User.CreatedAt.Format "Jan 2, 2006 15:04 MST"}}</li>
  </ul>
  <p>Approve with one of the links below. Each link works once and expires in 24 hours.</p>
  <ul>
  {{range .Links}}
    <li><a href="{{.URL}}">Approve as {{.Role}}</a></li>
  {{end}}
  </ul>
  <p><a href="{{.SiteURL}}">Open Dashboard</a></p>
</body>
</html>`))

func renderApprovalEmail(user models.User, links []approvalLink, siteURL string) (string, error) {
	var buf bytes.Buffer
	err := approvalEmailTmpl.Execute(&buf, struct {
		User    models.User
		Links   []approvalLink
		SiteURL string
	}{user, links, siteURL})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
