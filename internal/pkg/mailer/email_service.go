package mailer

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

// HoldCallAlert is what the call-back team needs to phone the customer.
type HoldCallAlert struct {
	CaseId     string
	CaseNumber string
	Reason     string
	Ratio      string
	Experience string
	Notes      string
}

type IEmailService interface {
	SendHoldAndCallAlert(toEmail string, alert HoldCallAlert) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: username,
		senderName:  senderName,
	}
}

func (s *emailService) SendHoldAndCallAlert(toEmail string, alert HoldCallAlert) error {
	m := BuildHoldAndCallMessage(s.senderEmail, s.senderName, toEmail, alert)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send hold & call alert for case %s: %w", alert.CaseNumber, err)
	}
	return nil
}

// BuildHoldAndCallMessage renders the alert without sending it.
func BuildHoldAndCallMessage(from, fromName, to string, alert HoldCallAlert) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", from, fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Hold & Call: case %s", alert.CaseNumber))

	notes := alert.Notes
	if notes == "" {
		notes = "-"
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2 style="color: #E8A317;">Refund on hold, customer call required</h2>
			<p><strong>Case:</strong> %s</p>
			<p><strong>Reason:</strong> %s</p>
			<p><strong>Refund ratio:</strong> %s (%s)</p>
			<p><strong>Agent notes:</strong> %s</p>
		</div>
	`,
		html.EscapeString(alert.CaseNumber),
		html.EscapeString(alert.Reason),
		html.EscapeString(alert.Ratio),
		html.EscapeString(alert.Experience),
		html.EscapeString(notes),
	)

	m.SetBody("text/html", body)
	return m
}
