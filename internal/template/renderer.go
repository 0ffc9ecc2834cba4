package template

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	templateDir string = "tmpl"
)

//go:embed tmpl/*.html
var files embed.FS

type Data struct {
	PageTitle string
	Email     string
	Error     string
	Flash     string
	Page      any
}

var funcs = template.FuncMap{
	"money": func(f float64) string {
		return humanize.FormatFloat("#,###.##", f)
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("January 2, 2006")
	},
	"ago":   humanize.Time,
	"comma": func(i int) string { return humanize.Comma(int64(i)) },
}

func Render(w http.ResponseWriter, r *http.Request, tmpl string, td any) error {
	t, err := template.New(tmpl).Funcs(funcs).ParseFS(files,
		templateDir+"/"+tmpl,
		templateDir+"/"+"base.html",
	)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}

	err = t.Execute(buf, td)
	if err != nil {
		return err
	}

	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	_, err = buf.WriteTo(w)
	return err
}
