package core

import (
	"bytes"
	"net/mail"
	"path"
	"sync"
	"text/template"

	"github.com/pkg/errors"

	appfs "github.com/trezcool/hagwon/fs"
)

var (
	templates map[string]*template.Template
	tmplErr   error
	tmplInit  sync.Once
)

type (
	EmailMessage struct {
		To      []mail.Address
		Subject string
		BodyStr string // simple text/plain, non-templated content

		// templated content (templates/email/<TemplateName>.txt)
		TemplateName string
		TemplateData interface{}
		TextContent  string
	}

	ContextData struct {
		AppName string
		Data    interface{}
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

// Render fills TextContent from BodyStr or from the named template.
func (m *EmailMessage) Render(appName string) error {
	if m.BodyStr != "" {
		m.TextContent = m.BodyStr
		return nil
	} else if m.TemplateName == "" {
		return nil
	}

	tmplInit.Do(parseTemplates) // only parse once
	if tmplErr != nil {
		return tmplErr
	}
	tmpl, ok := templates[m.TemplateName]
	if !ok {
		return errors.Errorf("unknown email template %q", m.TemplateName)
	}

	var buff bytes.Buffer
	if err := tmpl.Execute(&buff, ContextData{AppName: appName, Data: m.TemplateData}); err != nil {
		return errors.Wrap(err, "executing email template")
	}
	m.TextContent = buff.String()
	return nil
}

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return m.TextContent != "" }

func parseTemplates() {
	templates = make(map[string]*template.Template)

	fps, err := appfs.FS.ReadDir("templates/email")
	if err != nil {
		tmplErr = errors.Wrap(err, "listing email templates")
		return
	}
	for _, fp := range fps {
		name := fp.Name()
		if fp.IsDir() || path.Ext(name) != ".txt" {
			continue
		}
		tmpl, err := template.ParseFS(appfs.FS, path.Join("templates/email", name))
		if err != nil {
			tmplErr = errors.Wrapf(err, "parsing email template %s", name)
			return
		}
		templates[name[:len(name)-len(".txt")]] = tmpl.Option("missingkey=error")
	}
}
