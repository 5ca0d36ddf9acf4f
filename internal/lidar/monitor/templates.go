package monitor

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
)

// TemplateProvider abstracts template loading and execution.
// Production uses EmbeddedTemplateProvider; tests use MockTemplateProvider.
type TemplateProvider interface {
	ExecuteTemplate(w io.Writer, name string, data interface{}) error
}

// EmbeddedTemplateProvider loads templates from an embedded filesystem and
// caches them after the first parse.
type EmbeddedTemplateProvider struct {
	fs    embed.FS
	cache map[string]*template.Template
}

// NewEmbeddedTemplateProvider creates a provider over embedFS.
func NewEmbeddedTemplateProvider(embedFS embed.FS) *EmbeddedTemplateProvider {
	return &EmbeddedTemplateProvider{fs: embedFS, cache: make(map[string]*template.Template)}
}

func (p *EmbeddedTemplateProvider) get(name string) (*template.Template, error) {
	if t, ok := p.cache[name]; ok {
		return t, nil
	}
	t, err := template.ParseFS(p.fs, name)
	if err != nil {
		return nil, err
	}
	p.cache[name] = t
	return t, nil
}

// ExecuteTemplate loads and executes a template.
func (p *EmbeddedTemplateProvider) ExecuteTemplate(w io.Writer, name string, data interface{}) error {
	t, err := p.get(name)
	if err != nil {
		return err
	}
	return t.Execute(w, data)
}

// MockTemplateProvider serves templates from an in-memory map and records
// every execution.
type MockTemplateProvider struct {
	Templates    map[string]string
	ExecuteError error
	ExecuteCalls []string
}

// ExecuteTemplate records the call and executes the template.
func (m *MockTemplateProvider) ExecuteTemplate(w io.Writer, name string, data interface{}) error {
	m.ExecuteCalls = append(m.ExecuteCalls, name)
	if m.ExecuteError != nil {
		return m.ExecuteError
	}
	content, ok := m.Templates[name]
	if !ok {
		return fs.ErrNotExist
	}
	t, err := template.New(name).Parse(content)
	if err != nil {
		return err
	}
	return t.Execute(w, data)
}
