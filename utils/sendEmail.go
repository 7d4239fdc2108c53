package utils

import (
	"fmt"
	"os"
	"strconv"

	"workforce-analyzer-backend/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Initialize the SMTP mailer once and store it in a global variable
var mailer *gomail.Dialer

// InitializeMailer sets up the mailer using environment variables
func InitializeMailer() {
	mailHost := os.Getenv("SMTP_HOST")
	mailPort := os.Getenv("SMTP_PORT")
	mailUser := os.Getenv("SMTP_USER")
	mailPassword := os.Getenv("SMTP_PASSWORD")

	port, err := strconv.Atoi(mailPort)
	if err != nil {
		config.Logger.Error("Invalid SMTP_PORT value, defaulting to port 25",
			zap.String("provided_port", mailPort),
			zap.Error(err),
		)
		port = 25
	}

	mailer = gomail.NewDialer(mailHost, port, mailUser, mailPassword)
	config.Logger.Info("Mailer initialized successfully")
}

// GetMailer returns the initialized mailer
func GetMailer() *gomail.Dialer {
	return mailer
}

// SendEmail sends a report notification with an optional attachment link in
// the body, returning an error if dispatch fails.
func SendEmail(email string, message string, subject string, downloadLink string) error {
	if mailer == nil {
		err := fmt.Errorf("mailer is not initialized")
		config.Logger.Error("Email send failed: mailer is not initialized",
			zap.String("to_email", email),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", email)
	m.SetHeader("Subject", subject)

	if downloadLink != "" {
		m.SetBody("text/html", fmt.Sprintf(`
			<html>
				<body>
					<p>%s</p>
					<p><a href="%s" target="_blank">Download the report</a></p>
				</body>
			</html>
		`, message, downloadLink))
	} else {
		m.SetBody("text/plain", message)
	}

	if err := mailer.DialAndSend(m); err != nil {
		config.Logger.Error("Email send failed",
			zap.String("to_email", email),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return err
	}

	config.Logger.Info("Email sent",
		zap.String("to_email", email),
		zap.String("subject", subject),
		zap.Bool("has_attachment", downloadLink != ""),
	)
	return nil
}
