package templates

import (
	"fmt"
	"html"
	"strings"
)

// RenderGenericEmail generates branded HTML for a plain text email.
// The subject is shown in the header banner and the body is HTML-escaped
// with newlines turned into <br> tags.
func RenderGenericEmail(subject, bodyContent string) string {
	return renderEmail(subject, textToHTML(bodyContent), "")
}

// RenderActionEmail is RenderGenericEmail with a call-to-action button below the body
func RenderActionEmail(subject, bodyContent, actionLabel, actionURL string) string {
	button := ""
	if actionURL != "" {
		button = fmt.Sprintf(`<p style="text-align:center;margin-top:30px;"><a class="button" href="%s">%s</a></p>`,
			html.EscapeString(actionURL), html.EscapeString(actionLabel))
	}
	return renderEmail(subject, textToHTML(bodyContent), button)
}

func textToHTML(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}

func renderEmail(subject, htmlBody, action string) string {
	safeSubject := html.EscapeString(subject)

	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>%s</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f3f4f6; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background: linear-gradient(135deg, #0f766e 0%%, #14b8a6 100%%); padding: 40px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 24px; font-weight: 700; }
    .content { padding: 40px 30px; color: #1f2937; line-height: 1.6; font-size: 15px; }
    .button { background-color: #0f766e; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none; font-weight: 600; }
    .footer { padding: 30px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid #e5e7eb; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>%s</h1>
    </div>
    <div class="content">
      %s
      %s
    </div>
    <div class="footer">
      <p>&copy; Report Hub | Keeping our city in good repair</p>
    </div>
  </div>
</body>
</html>`, safeSubject, safeSubject, htmlBody, action)
}
