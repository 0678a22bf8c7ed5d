package mailer

import "html/template"

// codeEmail is the shared layout for every one-time-code message. The three
// mail kinds differ only in heading, intro line, expiry window, and the
// closing warning.
type codeEmail struct {
	Title   string
	Heading string
	Intro   string
	Name    string
	Code    string
	Expiry  string
	Warning string
}

var codeEmailTemplate = template.Must(template.New("code-email").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
  </head>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
      <h1 style="color: white; margin: 0;">Investment Tracker</h1>
    </div>
    <div style="background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; border: 1px solid #e0e0e0;">
      <h2 style="color: #333; margin-top: 0;">{{.Heading}}</h2>
      <p>Hello {{.Name}},</p>
      <p>{{.Intro}}</p>
      <div style="background: white; border: 2px dashed #667eea; border-radius: 8px; padding: 20px; text-align: center; margin: 20px 0;">
        <h1 style="color: #667eea; font-size: 36px; letter-spacing: 8px; margin: 0; font-family: 'Courier New', monospace;">{{.Code}}</h1>
      </div>
      <p style="color: #666; font-size: 14px;">This code will expire in {{.Expiry}}.</p>
      <p style="color: #666; font-size: 14px;">{{.Warning}}</p>
    </div>
    <div style="text-align: center; margin-top: 20px; color: #999; font-size: 12px;">
      <p>This is an automated message. Please do not reply to this email.</p>
    </div>
  </body>
</html>
`))
