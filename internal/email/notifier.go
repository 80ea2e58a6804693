package email

import (
	"fmt"

	"github.com/enshire/job-board/internal/applicant"
)

// ApplicationNotifier emails the admin address when a new application
// arrives. Delivery is best-effort: the caller logs failures instead of
// failing the submission.
type ApplicationNotifier struct {
	client     Client
	adminEmail string
}

func NewApplicationNotifier(client Client, adminEmail string) *ApplicationNotifier {
	return &ApplicationNotifier{client: client, adminEmail: adminEmail}
}

func (n *ApplicationNotifier) NotifyNewApplication(a applicant.Application) error {
	return n.client.SendHTMLEmail(
		Address{Name: n.client.DefaultSenderName(), Email: n.client.NoReplySenderAddress()},
		Address{Email: n.adminEmail},
		Address{Email: n.client.SupportSenderAddress()},
		fmt.Sprintf("New application from %s", a.FullName),
		fmt.Sprintf(
			"<p>%s (%s) applied to listing %s.</p><p>Location: %s<br>Willing to relocate: %t<br>Visa status: %s<br>Resume key: %s</p>",
			a.FullName, a.Email, a.JobListingID, a.CurrentLocation, a.WillingToRelocate, a.VisaStatus, a.ResumeKey,
		),
	)
}
