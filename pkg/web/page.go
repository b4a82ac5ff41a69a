package web

import (
	"embed"
	"html/template"
	"sort"

	"github.com/coolbeans/keiho/pkg/render"
	"github.com/coolbeans/keiho/pkg/view"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// hiddenField carries a state parameter through the search form.
type hiddenField struct {
	Name  string
	Value string
}

// page is the template data for the explorer page.
type page struct {
	Labels  render.Labels
	View    view.Derived
	Warning string

	defaults view.State
}

// URL returns the page link for s.
func (p page) URL(s view.State) string {
	encoded := queryFromState(s, p.defaults).Encode()
	if encoded == "" {
		return "/"
	}
	return "/?" + encoded
}

// SelectURL links to the current view with id selected.
func (p page) SelectURL(id int) string {
	return p.URL(view.Apply(p.View.State, view.SelectStatute{ID: id}))
}

// ToggleSortURL links to the current view with the sort direction flipped.
func (p page) ToggleSortURL() string {
	return p.URL(view.Apply(p.View.State, view.ToggleSort{}))
}

// ToggleAttemptURL links to the current view with attempt mode flipped.
func (p page) ToggleAttemptURL() string {
	return p.URL(view.Apply(p.View.State, view.ToggleAttemptMode{}))
}

// HiddenFields is every state parameter except the search term, which the
// form's text input supplies.
func (p page) HiddenFields() []hiddenField {
	values := queryFromState(p.View.State, p.defaults)
	values.Del(paramSearch)

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]hiddenField, 0, len(names))
	for _, name := range names {
		fields = append(fields, hiddenField{Name: name, Value: values.Get(name)})
	}
	return fields
}
