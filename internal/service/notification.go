package service

import (
	"fmt"
	"time"

	"github.com/MurugaBoopathi/WS-LAB-INVENTORY-MANAGEMENT/internal/models"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// MailSettings configures outgoing notification mail.
type MailSettings struct {
	// Enabled turns sending on. A disabled notifier drops every event.
	Enabled bool

	Server   string
	Port     int
	UseTLS   bool
	Username string
	Password string

	// Sender is the From address.
	Sender string
	// AdminEmail and ManagerEmail receive a copy of every notification.
	AdminEmail   string
	ManagerEmail string
	// Domain is appended to the actor's NT ID to form their address.
	Domain string
}

// EmailNotifier announces borrow/return events by mail. Sends run on
// their own goroutine; failures are logged and never reach the caller,
// because the inventory mutation has already completed by the time a
// notification fires.
type EmailNotifier struct {
	settings MailSettings
	log      *zap.Logger

	now func() time.Time
}

// NewEmailNotifier constructs an EmailNotifier with the given settings.
func NewEmailNotifier(settings MailSettings, log *zap.Logger) *EmailNotifier {
	return &EmailNotifier{settings: settings, log: log, now: time.Now}
}

// Notify sends a notification for one borrow/return event. It returns
// immediately; the SMTP exchange happens in the background.
func (n *EmailNotifier) Notify(action models.Action, itemName, cupboardName, ntID string) {
	if !n.settings.Enabled {
		return
	}

	subject, body := buildNotification(action, itemName, cupboardName, ntID, n.now())
	go func() {
		if err := n.send(subject, body, ntID); err != nil {
			n.log.Error("notification send failed",
				zap.String("subject", subject), zap.Error(err))
			return
		}
		n.log.Info("notification sent", zap.String("subject", subject))
	}()
}

// send performs one SMTP exchange.
func (n *EmailNotifier) send(subject, body, ntID string) error {
	s := n.settings

	msg := mail.NewMsg()
	if err := msg.From(s.Sender); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	recipients := []string{s.AdminEmail, s.ManagerEmail, ntID + s.Domain}
	if err := msg.To(recipients...); err != nil {
		return fmt.Errorf("set recipients: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	opts := []mail.Option{mail.WithPort(s.Port)}
	if s.UseTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}
	if s.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.Username),
			mail.WithPassword(s.Password),
		)
	}

	client, err := mail.NewClient(s.Server, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	return client.DialAndSend(msg)
}

// buildNotification renders the subject line and HTML body for one
// event.
func buildNotification(action models.Action, itemName, cupboardName, ntID string, now time.Time) (subject, body string) {
	var actionLabel, actionColor, personLabel string
	if action == models.ActionUnlocked {
		subject = fmt.Sprintf("[Lab Inventory] Item Borrowed: %s", itemName)
		actionLabel = "Item Borrowed (Unlocked)"
		actionColor = "#e20015"
		personLabel = "Borrowed By (NT ID)"
	} else {
		subject = fmt.Sprintf("[Lab Inventory] Item Returned: %s", itemName)
		actionLabel = "Item Returned (Locked)"
		actionColor = "#00884b"
		personLabel = "Returned By (NT ID)"
	}

	rows := [][2]string{
		{"Action", actionLabel},
		{"Item", itemName},
		{"Location", cupboardName},
		{personLabel, ntID},
		{"Date & Time", now.Format(models.TimeLayout)},
	}

	body = fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px;">
<div style="max-width: 600px; margin: 0 auto;">
<div style="background-color: %s; color: white; padding: 15px 20px; border-radius: 5px 5px 0 0;">
<h2 style="margin: 0;">Lab Inventory Management</h2>
</div>
<div style="border: 1px solid #ddd; border-top: none; padding: 20px; border-radius: 0 0 5px 5px;">
<h3 style="color: %s; margin-top: 0;">%s</h3>
<table style="border-collapse: collapse; width: 100%%;">`,
		actionColor, actionColor, actionLabel)
	for i, row := range rows {
		style := ""
		if i%2 == 0 {
			style = ` style="background-color: #f8f9fa;"`
		}
		body += fmt.Sprintf(`
<tr%s><td style="padding: 10px; border: 1px solid #ddd; width: 40%%;"><strong>%s</strong></td>
<td style="padding: 10px; border: 1px solid #ddd;">%s</td></tr>`,
			style, row[0], row[1])
	}
	body += `
</table>
<br>
<p style="color: #888; font-size: 12px;">This is an automated notification from Lab Inventory Management Tool.</p>
</div>
</div>
</body>
</html>`

	return subject, body
}
