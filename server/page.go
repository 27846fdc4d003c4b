package server

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/spektr-org/launchdash/dashboard"
)

// PageTitle is the dashboard heading.
const PageTitle = "SpaceX Launch Records Dashboard"

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type pageData struct {
	Title    string
	Controls dashboard.Controls
	State    dashboard.State
	Panels   []dashboard.PanelID
}

func renderPage(w io.Writer, controls dashboard.Controls, st dashboard.State, panels []dashboard.PanelID) error {
	data := pageData{
		Title:    PageTitle,
		Controls: controls,
		State:    st,
		Panels:   panels,
	}
	if err := indexTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("execute index template: %w", err)
	}
	return nil
}
