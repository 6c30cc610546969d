package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendPasswordChangedNotice(toEmail string) error
	SendMiniNoteAlert(toEmail, senderName string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

// SendPasswordChangedNotice informs the account holder after a successful
// security-question reset. If the holder did not do it, this mail is the
// only signal they get.
func (s *emailService) SendPasswordChangedNotice(toEmail string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your SyncPad password was changed")

	body := `
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Password changed</h2>
			<p>The password for your SyncPad account was just reset via the security question flow.</p>
			<p>If this was you, no further action is needed.</p>
			<p>If this was not you, contact support immediately.</p>
		</div>
	`
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send password notice to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Password change notice sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendMiniNoteAlert(toEmail, senderName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "New mini note on SyncPad")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>You have a new mini note</h2>
			<p><strong>%s</strong> sent you a mini note. Log in to SyncPad to read it.</p>
		</div>
	`, senderName)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send mini note alert to %s: %v\n", toEmail, err)
		return err
	}

	return nil
}
