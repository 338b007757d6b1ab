// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/elite1357/store-backend/internal/config"
	"github.com/elite1357/store-backend/internal/models"
)

type NotificationService struct {
	db     *gorm.DB
	config *config.Config
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: config,
	}
}

// SendCartSummary emails the cart contents to the address the buyer supplied
// at checkout. Callers decide whether a failure is fatal; the checkout flow
// logs it and proceeds.
func (s *NotificationService) SendCartSummary(to string, order *models.Order) error {
	body, err := RenderCartSummary(order)
	if err != nil {
		return fmt.Errorf("failed to render cart summary: %w", err)
	}

	subject := "Your 1357 ELITE order"
	return s.sendEmail(to, subject, body)
}

// Broadcast sends a plain-text announcement to every mailing-list
// subscriber. Per-recipient failures are logged and counted, never fatal.
func (s *NotificationService) Broadcast(subject, text string) (sent int, failed int, err error) {
	var subscriptions []models.MailSubscription
	if err := s.db.Find(&subscriptions).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to load mailing list: %w", err)
	}

	for _, sub := range subscriptions {
		if err := s.sendEmail(sub.Email, subject, template.HTMLEscapeString(text)); err != nil {
			failed++
			logrus.WithError(err).WithField("email", sub.Email).Error("Broadcast email failed")
			continue
		}
		sent++
	}

	return sent, failed, nil
}

// RenderCartSummary renders the checkout summary email body from the order's
// preloaded items. Pure.
func RenderCartSummary(order *models.Order) (string, error) {
	const cartSummaryTemplate = `
<!DOCTYPE html>
<html>
<body>
	<h2>Your order summary</h2>
	<table>
		{{range .Items}}
		<tr>
			<td>{{.ProductTitle}}</td>
			<td>x{{.Quantity}}</td>
			<td>{{.LineTotal}}</td>
			<td>{{.AddedAt.Format "2006-01-02 15:04"}}</td>
		</tr>
		{{end}}
	</table>
	<p>Total: {{.TotalPrice}} ({{.TotalQuantity}} items)</p>
	<p>Thank you for shopping at 1357 ELITE.</p>
</body>
</html>
`

	tmpl, err := template.New("cart_summary").Parse(cartSummaryTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, order); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		// Email not configured, just log
		logrus.WithField("to", to).Infof("Email would be sent: %s", subject)
		return nil
	}

	// Setup authentication
	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	// Compose message
	msg := []byte(fmt.Sprintf("To: %s\r\nFrom: %s <%s>\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		to, s.config.Email.FromName, s.config.Email.FromEmail, subject, body))

	// Send email
	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}
