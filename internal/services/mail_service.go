package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"watog/internal/config"
	"watog/internal/logger"

	"gopkg.in/gomail.v2"
)

const verifyEmailSubject = "Please confirm your email address in Watog"

//go:embed templates/*.html
var mailTemplates embed.FS

// EmailSender delivers the verification email.
type EmailSender interface {
	SendVerificationEmail(ctx context.Context, to, link string) error
}

type MailService struct {
	cfg       config.EmailConfig
	templates *template.Template
	dialer    *gomail.Dialer
	send      func(d *gomail.Dialer, m *gomail.Message) error
}

func NewMailService(cfg config.EmailConfig) *MailService {
	if !cfg.MailEnabled() {
		logger.Log.Warn("mail service disabled: missing SMTP configuration")
	}

	return &MailService{
		cfg:       cfg,
		templates: template.Must(template.ParseFS(mailTemplates, "templates/*.html")),
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		send: func(d *gomail.Dialer, m *gomail.Message) error {
			return d.DialAndSend(m)
		},
	}
}

// RenderVerificationEmail 渲染验证邮件正文
func (s *MailService) RenderVerificationEmail(link string) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "verify_email.html", map[string]string{"Link": link}); err != nil {
		return "", fmt.Errorf("render verify email: %w", err)
	}
	return buf.String(), nil
}

func (s *MailService) SendVerificationEmail(ctx context.Context, to, link string) error {
	if !s.cfg.MailEnabled() {
		logger.Log.Warnw("email config missing, skip verification email", "to", to)
		return nil
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("empty recipient")
	}

	body, err := s.RenderVerificationEmail(link)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", verifyEmailSubject)
	m.SetBody("text/html", body)

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.send(s.dialer, m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	logger.Log.Infow("verification email sent", "to", to)
	return nil
}
