package mail

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background-color: #4CAF50; color: white; padding: 20px; text-align: center; }
    .content { padding: 20px; background-color: #f9f9f9; }
    .footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Welcome!</h1>
    </div>
    <div class="content">
      <h2>Hello {{.Name}},</h2>
      <p>Thank you for joining with us! We are excited to have you as part of our community.</p>
      <p>We look forward to serving you and helping you with all your business needs.</p>
      <p>If you have any questions, feel free to reach out to us.</p>
      <p>Best regards,<br>The Team</p>
    </div>
    <div class="footer">
      <p>&copy; {{.Year}}. All rights reserved.</p>
    </div>
  </div>
</body>
</html>`))

var thankYouTmpl = template.Must(template.New("thankyou").Parse(`<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background-color: #2196F3; color: white; padding: 20px; text-align: center; }
    .content { padding: 20px; background-color: #f9f9f9; }
    .footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Thank You!</h1>
    </div>
    <div class="content">
      <h2>Hello {{.Name}},</h2>
      <p>Thank you for reaching out to us. We have received your message and our team will reach out to you soon.</p>
      <p>We appreciate your interest and look forward to assisting you.</p>
      <p>Best regards,<br>The Team</p>
    </div>
    <div class="footer">
      <p>&copy; {{.Year}}. All rights reserved.</p>
    </div>
  </div>
</body>
</html>`))

type greetingData struct {
	Name string
	Year int
}

// WelcomeMessage builds the signup welcome email.
func WelcomeMessage(name, email string) (Message, error) {
	var body strings.Builder
	if err := welcomeTmpl.Execute(&body, greetingData{Name: name, Year: time.Now().Year()}); err != nil {
		return Message{}, err
	}
	return Message{
		To:      email,
		Subject: "Thank you for joining with us!",
		HTML:    body.String(),
	}, nil
}

// ThankYouMessage builds the form submission acknowledgement email.
func ThankYouMessage(name, email string) (Message, error) {
	var body strings.Builder
	if err := thankYouTmpl.Execute(&body, greetingData{Name: name, Year: time.Now().Year()}); err != nil {
		return Message{}, err
	}
	return Message{
		To:      email,
		Subject: "Thank you for contacting us!",
		HTML:    body.String(),
	}, nil
}

// AdminSummaryField is one labeled value in the admin notification.
type AdminSummaryField struct {
	Label string
	Value string
}

// AdminSummaryMessage builds the admin-facing submission summary. Only
// provided fields appear.
func AdminSummaryMessage(adminEmail, formType string, fields []AdminSummaryField) Message {
	var body strings.Builder
	body.WriteString("<h2>New Form Submission</h2>\n")
	for _, f := range fields {
		body.WriteString(fmt.Sprintf("<p><strong>%s:</strong> %s</p>\n",
			template.HTMLEscapeString(f.Label), template.HTMLEscapeString(f.Value)))
	}
	body.WriteString(fmt.Sprintf("<p><strong>Submitted At:</strong> %s</p>\n",
		time.Now().Format(time.RFC1123)))

	return Message{
		To:      adminEmail,
		Subject: fmt.Sprintf("New %s Form Submission", formType),
		HTML:    body.String(),
	}
}
