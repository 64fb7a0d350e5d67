package cmd

import (
	"bytes"
	"text/template"

	units "github.com/docker/go-units"
)

var templateFuncs = template.FuncMap{
	"humanSize": func(sz int64) string {
		return units.HumanSize(float64(sz))
	},
}

// lineTemplate yields the template printing one listed object: the
// --format override when given, the conventional line otherwise.
func lineTemplate(opts flagsT, defaultLine string) *template.Template {
	if opts.core.Template != "" {
		t, err := template.New("list line").Funcs(templateFuncs).Parse(opts.core.Template)
		if err != nil {
			wrapFatalln("invalid template", err)
		}
		return t
	}
	return template.Must(template.New("list line").Funcs(templateFuncs).Parse(defaultLine))
}

func printTemplate(t *template.Template, data interface{}) error {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return err
	}
	infoLogger.Println(buf.String())
	return nil
}

const (
	subjectLineTemplateString = `{{.Name}}`
	dateLineTemplateString    = `{{.Subject}} , {{.Date}}`
	sessionLineTemplateString = `{{.Subject}} , {{.Date}} , session {{.Number}}`
	datasetLineTemplateString = `{{.Name}} , {{.Definition}} , {{humanSize .Size}} , {{.Fingerprint}}`
	describeTemplateString    = `{{.Path}} [{{.Level}}]` +
		`{{if .Description}} {{.Description}}{{end}}` +
		`{{if .Subject}} subject={{.Subject}}{{end}}` +
		`{{if .Date}} date={{.Date}}{{end}}` +
		`{{if .Session}} session={{.Session}}{{end}}` +
		`{{if .Domain}} domain={{.Domain}}{{end}}` +
		` children={{.Children}} datasets={{.Datasets}}`
)
