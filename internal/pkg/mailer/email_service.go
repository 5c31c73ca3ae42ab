package mailer

import (
	"fmt"

	"propscore-webapp-be/internal/entity"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendContactMessage(msg *entity.ContactMessage) error
}

type emailService struct {
	dialer       *gomail.Dialer
	senderEmail  string
	senderName   string
	contactInbox string
}

func NewEmailService(host string, port int, username, password, senderName, contactInbox string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:       d,
		senderEmail:  username,
		senderName:   senderName,
		contactInbox: contactInbox,
	}
}

// SendContactMessage forwards a marketing-site contact submission to the
// team inbox, with reply-to pointing at the visitor.
func (s *emailService) SendContactMessage(msg *entity.ContactMessage) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", s.contactInbox)
	m.SetAddressHeader("Reply-To", msg.Email, msg.Name)
	m.SetHeader("Subject", fmt.Sprintf("[Contact] %s", msg.Subject))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New contact message</h2>
			<p><b>From:</b> %s &lt;%s&gt;</p>
			<p><b>Subject:</b> %s</p>
			<hr/>
			<p>%s</p>
		</div>
	`, msg.Name, msg.Email, msg.Subject, msg.Message)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to forward contact message from %s: %v\n", msg.Email, err)
		return err
	}

	return nil
}
