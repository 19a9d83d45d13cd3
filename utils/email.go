package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendEmail sends an HTML email using the SMTP settings from the environment
func SendEmail(to, subject, body string) error {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// SendReturnStatusEmail notifies a customer that their return changed status.
// Send failures are reported to the caller but never block the workflow.
func SendReturnStatusEmail(to, customerName string, returnID uint, status, detail string) error {
	subject := fmt.Sprintf("Update on your return #%d", returnID)
	body := fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>Your return request #%d is now <b>%s</b>.</p>
		<p>%s</p>
		<p>If you have any questions, reply to this email or visit the store.</p>
	`, customerName, returnID, status, detail)

	return SendEmail(to, subject, body)
}
