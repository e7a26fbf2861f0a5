package api

import (
	"embed"
	"html/template"
	"io"

	"recordboard/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

const pageTitle = "AXIOS CRUD OPERATION"

type row struct {
	Index  int
	Record model.Record
}

type pageData struct {
	Title       string
	State       model.State
	SubmitLabel string
	Updating    bool
	Rows        []row
}

func renderPage(w io.Writer, st model.State) error {
	data := pageData{
		Title:       pageTitle,
		State:       st,
		SubmitLabel: model.SubmitLabel(st.Mode),
		Updating:    st.Mode == model.Updating,
		Rows:        make([]row, 0, len(st.Records)),
	}
	for i, rec := range st.Records {
		data.Rows = append(data.Rows, row{Index: i + 1, Record: rec})
	}
	return pageTemplate.ExecuteTemplate(w, "index.html", data)
}
