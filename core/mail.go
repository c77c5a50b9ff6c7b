package core

import (
	"bytes"
	htmltmpl "html/template"
	"net/mail"
	texttmpl "text/template"

	"github.com/pkg/errors"
)

type (
	Attachment struct {
		Content     *bytes.Buffer
		ContentType string
		Filename    string
	}

	EmailMessage struct {
		To          []mail.Address
		Cc          []mail.Address
		Bcc         []mail.Address
		Subject     string
		BodyStr     string // simple text/plain, non-templated content
		Attachments []Attachment

		// templated contents
		TemplateName string
		TemplateData interface{}
		TextContent  string
		HTMLContent  string
	}

	ContextData struct {
		FrontendBaseURL string
		Data            interface{}
	}

	// EmailService sends email messages; implementations decide transport.
	EmailService interface {
		SendMessages(messages ...*EmailMessage)
	}

	emailTemplate struct {
		text *texttmpl.Template
		html *htmltmpl.Template
	}
)

// in-code template registry; keyed by EmailMessage.TemplateName
var emailTemplates = make(map[string]emailTemplate)

// RegisterEmailTemplate parses and registers text and html templates under name.
// The html template may be empty.
func RegisterEmailTemplate(name, text, html string) {
	tmpl := emailTemplate{text: texttmpl.Must(texttmpl.New(name).Parse(text))}
	if html != "" {
		tmpl.html = htmltmpl.Must(htmltmpl.New(name).Parse(html))
	}
	emailTemplates[name] = tmpl
}

// Render resolves TextContent and HTMLContent from BodyStr or the registered template.
func (m *EmailMessage) Render() error {
	if m.BodyStr != "" {
		m.TextContent = m.BodyStr
		return nil
	}
	if m.TemplateName == "" {
		return nil
	}
	tmpl, ok := emailTemplates[m.TemplateName]
	if !ok {
		return errors.Errorf("email template %q not registered", m.TemplateName)
	}

	data := ContextData{FrontendBaseURL: Conf.FrontendBaseURL, Data: m.TemplateData}

	var txt bytes.Buffer
	if err := tmpl.text.Execute(&txt, data); err != nil {
		return errors.Wrap(err, "executing text template")
	}
	m.TextContent = txt.String()

	if tmpl.html != nil {
		var html bytes.Buffer
		if err := tmpl.html.Execute(&html, data); err != nil {
			return errors.Wrap(err, "executing html template")
		}
		m.HTMLContent = html.String()
	}
	return nil
}

func (m *EmailMessage) HasRecipients() bool {
	return len(m.To) > 0 || len(m.Cc) > 0 || len(m.Bcc) > 0
}

func (m *EmailMessage) HasContent() bool {
	return m.BodyStr != "" || m.TextContent != "" || m.HTMLContent != "" || m.TemplateName != ""
}

func (m *EmailMessage) HasAttachments() bool {
	return len(m.Attachments) > 0
}
