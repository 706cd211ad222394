package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"

	"github.com/sefazor/ourphotos-accounts/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
}

func NewEmailService(apiKey, from, fromName string, log *zap.Logger) *EmailService {
	return &EmailService{
		client:   resend.NewClient(apiKey),
		from:     from,
		fromName: fromName,
		logger:   logger.OrNop(log).Named("email"),
	}
}

func (s *EmailService) SendWelcomeEmail(email, name string) error {
	html, err := renderTemplate("welcome.html", map[string]interface{}{
		"Name":  name,
		"Email": email,
		"Year":  time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(email, "Welcome to OurPhotos!", html, "welcome")
}

// SendPasswordResetCode mails a reset code valid for ttl.
func (s *EmailService) SendPasswordResetCode(email, code string, ttl time.Duration) error {
	html, err := renderTemplate("reset-code.html", map[string]interface{}{
		"Email":        email,
		"Code":         code,
		"ValidMinutes": int(ttl.Minutes()),
		"Year":         time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(email, "Your password reset code - OurPhotos", html, "reset_code")
}

func (s *EmailService) send(to, subject, html, kind string) error {
	log := s.logger.With(zap.String("to", to), zap.String("kind", kind))
	log.Debug("sending email")

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		log.Error("failed to send email", zap.Error(err))
		return fmt.Errorf("send %s email: %w", kind, err)
	}

	log.Info("email sent", zap.String("id", resp.Id))
	return nil
}

func renderTemplate(name string, data interface{}) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return body.String(), nil
}
