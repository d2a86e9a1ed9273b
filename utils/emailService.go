package utils

import (
	"fmt"
	"log"

	"edublog/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers a transactional email through SendGrid. When no API key
// is configured the send is skipped so local development works offline.
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("Email skipped (no SendGrid key): %s -> %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail("EduBlog", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// SendOTPEmail sends a verification code
func SendOTPEmail(toName, toEmail, otp string) error {
	body := fmt.Sprintf(`
	<div style="font-family: Helvetica, Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2>Verify your email</h2>
		<p>Hi %s,</p>
		<p>Your verification code is:</p>
		<p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">%s</p>
		<p>The code expires in 10 minutes.</p>
	</div>`, toName, otp)
	return SendEmail(toName, toEmail, "Your EduBlog verification code", body)
}

// SendCourseCompletionEmail congratulates a user on finishing a course
func SendCourseCompletionEmail(toName, toEmail, courseTitle string) error {
	body := fmt.Sprintf(`
	<div style="font-family: Helvetica, Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2>Congratulations, %s!</h2>
		<p>You have completed <strong>%s</strong>.</p>
		<p>Head back to your dashboard to pick your next course.</p>
	</div>`, toName, courseTitle)
	return SendEmail(toName, toEmail, "Course completed: "+courseTitle, body)
}
