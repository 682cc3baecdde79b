package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/iSuccessHUB/assetshield-app-sub000/config"
)

type EmailData struct {
	Subject   string
	To        []string
	Template  string
	Data      interface{}
	Year      int
	FromName  string
	FromEmail string
}

// Embedded email templates
var emailTemplates = map[string]string{
	"welcome": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Welcome to AssetShield</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { color: #1a365d; border-bottom: 1px solid #eee; padding-bottom: 10px; }
        .content { margin: 20px 0; }
        .credentials { background: #f7fafc; border: 1px solid #e2e8f0; border-radius: 4px; padding: 15px; margin: 20px 0; }
        .button { display: inline-block; padding: 10px 20px; background-color: #1a365d; color: white; text-decoration: none; border-radius: 4px; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <h2>Welcome to AssetShield, {{.FirmName}}</h2>
    </div>

    <div class="content">
        <p>Hello {{.LawyerName}},</p>
        <p>Your white-label asset protection platform is ready. Your {{.Tier}} trial runs until <strong>{{.TrialEndsAt}}</strong>.</p>

        <div class="credentials">
            <p><strong>Dashboard:</strong> <a href="{{.DashboardURL}}">{{.DashboardURL}}</a></p>
            <p><strong>Email:</strong> {{.Email}}</p>
            <p><strong>Temporary password:</strong> {{.TempPassword}}</p>
        </div>

        <p style="text-align: center;">
            <a href="{{.DashboardURL}}" class="button">Open Your Dashboard</a>
        </p>

        <p>Please change your password after your first sign-in.</p>
    </div>

    <div class="footer">
        <p>© {{.Year}} AssetShield. All rights reserved.</p>
    </div>
</body>
</html>`,

	"lead_notification": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Risk Assessment Lead</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { color: #1a365d; border-bottom: 1px solid #eee; padding-bottom: 10px; }
        .content { margin: 20px 0; }
        .risk { font-size: 20px; font-weight: bold; margin: 20px 0; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <h2>New Risk Assessment Lead</h2>
    </div>

    <div class="content">
        <p><strong>{{.LeadName}}</strong> ({{.LeadEmail}}) completed the assessment on your site.</p>
        <div class="risk">Risk level: {{.RiskLevel}} ({{.RiskScore}}/100)</div>
        <p>Follow up from your dashboard to schedule a consultation.</p>
    </div>

    <div class="footer">
        <p>© {{.Year}} AssetShield. All rights reserved.</p>
    </div>
</body>
</html>`,
}

// RenderEmailTemplate executes an embedded template with the given data.
func RenderEmailTemplate(name string, data interface{}) (string, error) {
	tmplContent, ok := emailTemplates[name]
	if !ok {
		return "", fmt.Errorf("template '%s' not found", name)
	}

	tmpl, err := template.New("email").Parse(tmplContent)
	if err != nil {
		return "", fmt.Errorf("error parsing template: %v", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("error executing template: %v", err)
	}
	return body.String(), nil
}

func SendEmail(data EmailData) error {
	if data.FromEmail == "" {
		data.FromEmail = config.AppConfig.FromEmail
	}
	if data.FromName == "" {
		data.FromName = config.AppConfig.FromName
	}

	body, err := RenderEmailTemplate(data.Template, data.Data)
	if err != nil {
		return err
	}

	smtpPort, err := strconv.Atoi(config.AppConfig.SMTPPort)
	if err != nil {
		return fmt.Errorf("invalid SMTP_PORT: %v", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", data.FromName, data.FromEmail))
	m.SetHeader("To", data.To...)
	m.SetHeader("Subject", data.Subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		config.AppConfig.SMTPHost,
		smtpPort,
		config.AppConfig.SMTPUsername,
		config.AppConfig.SMTPPassword,
	)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}

	return nil
}

// WelcomeEmailData feeds the welcome template.
type WelcomeEmailData struct {
	FirmName     string
	LawyerName   string
	Tier         string
	Email        string
	TempPassword string
	DashboardURL string
	TrialEndsAt  string
	Year         int
}

func SendWelcomeEmail(data WelcomeEmailData) error {
	data.Year = time.Now().Year()
	return SendEmail(EmailData{
		Subject:  "Welcome to AssetShield: your platform is ready",
		To:       []string{data.Email},
		Template: "welcome",
		Data:     data,
	})
}

// LeadNotificationData feeds the lead notification template.
type LeadNotificationData struct {
	LeadName  string
	LeadEmail string
	RiskLevel string
	RiskScore int
	Year      int
}

func SendLeadNotificationEmail(to []string, data LeadNotificationData) error {
	data.Year = time.Now().Year()
	return SendEmail(EmailData{
		Subject:  "New risk assessment lead",
		To:       to,
		Template: "lead_notification",
		Data:     data,
	})
}
