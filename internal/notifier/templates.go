package notifier

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template names used by the auth flows.
const (
	TemplateWelcome          = "welcome"
	TemplateSigninChallenged = "signin_challenged"
)

var templates = map[string]*template.Template{
	TemplateWelcome: template.Must(template.New(TemplateWelcome).Parse(
		`<p>Hi {{.FullName}},</p>
<p>Your account is ready. Sign-ins from unrecognized locations or devices will
ask for a code from your authenticator app.</p>`)),

	TemplateSigninChallenged: template.Must(template.New(TemplateSigninChallenged).Parse(
		`<p>Hi,</p>
<p>A sign-in to your account from {{.Location}} looked unusual, so we asked for
a code from your authenticator app. If this was not you, change your password
now.</p>`)),
}

func renderTemplate(name string, data any) (string, error) {
	tmpl, ok := templates[name]
	if !ok {
		return "", fmt.Errorf("unknown notification template %q", name)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to render notification template %q: %w", name, err)
	}
	return body.String(), nil
}
