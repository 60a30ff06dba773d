package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/reporthub/reporthub-api/models"
	templates "github.com/reporthub/reporthub-api/templates/html"
)

const senderName = "Report Hub"

type mailClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGrid delivers notifications through the SendGrid v3 mail API
type SendGrid struct {
	client       mailClient
	from         *mail.Email
	clientDomain string
}

// NewSendGrid returns a notifier sending from the given address. Links in the
// emails point at clientDomain.
func NewSendGrid(apiKey, from, clientDomain string) *SendGrid {
	return &SendGrid{
		client:       sendgrid.NewSendClient(apiKey),
		from:         mail.NewEmail(senderName, from),
		clientDomain: strings.TrimRight(clientDomain, "/"),
	}
}

// Assigned tells the staff member about a newly assigned report
func (s *SendGrid) Assigned(ctx context.Context, a Assignment) error {
	subject := "A new issue has been assigned to you"
	body := fmt.Sprintf("Hello %s,\n\nAn issue has just been assigned to you on Report Hub.\nPlease review it and update its status as work progresses.",
		greetingName(a.Staff))
	link := s.clientDomain + "/issue-details/" + a.ReportID
	return s.send(ctx, a.Staff, subject, body+"\n\n"+link, templates.RenderActionEmail(subject, body, "Open issue", link))
}

// Reminder lists the reports that have been waiting on the staff member
func (s *SendGrid) Reminder(ctx context.Context, staff models.AssignedStaff, reports []models.Report) error {
	if len(reports) == 0 {
		return nil
	}
	subject := fmt.Sprintf("%d assigned issue(s) are still pending", len(reports))

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nThe following issues assigned to you are still pending:\n", greetingName(staff))
	for _, r := range reports {
		fmt.Fprintf(&b, "\n- %s (%s)", r.Title, r.Location)
	}
	body := b.String()
	link := s.clientDomain + "/dashboard/assigned-issues"
	return s.send(ctx, staff, subject, body+"\n\n"+link, templates.RenderActionEmail(subject, body, "View assigned issues", link))
}

func (s *SendGrid) send(ctx context.Context, staff models.AssignedStaff, subject, plain, html string) error {
	to := mail.NewEmail(staff.Name, staff.Email)
	message := mail.NewSingleEmail(s.from, subject, to, plain, html)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		zap.S().Errorw("failed to send email", "error", err, "to", staff.Email)
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body, "to", staff.Email)
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}
	zap.S().Infow("email sent successfully", "to", staff.Email, "subject", subject)
	return nil
}

func greetingName(staff models.AssignedStaff) string {
	if staff.Name != "" {
		return staff.Name
	}
	return staff.Email
}
