package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/asset-atlas/pkg/models/domain"
)

type TableConfig struct {
	NameWidth  int
	ValueWidth int
	DescWidth  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:  36,
		ValueWidth: 24,
		DescWidth:  60,
	}
}

// Reporter renders audit report documents as formatted terminal tables.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(report *domain.ReportDocument) error {
	funcMap := template.FuncMap{
		"formatRow": func(name string, value interface{}, desc string) string {
			return fmt.Sprintf("| %-*s | %-*v | %-*s |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value,
				c.config.DescWidth, desc)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.DescWidth+2))
		},
	}

	tmpl := `
{{.Title}}
Generated: {{.GeneratedAt.Format "2006-01-02 15:04"}}

{{range $key, $value := .Summary}}{{$key}}: {{$value}}
{{end}}
{{range .Sections}}
=== {{.Title}} ===
{{separator}}
{{formatRow "Name" "Value" "Description"}}
{{separator}}
{{range .Details}}{{formatRow .Name .Value .Description}}
{{end}}{{separator}}
{{end}}
`
	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

// HandleScan renders a scan result as plain text.
func (c *Reporter) HandleScan(result *domain.ScanResult) error {
	tmpl := `
Compliance Scan ({{.Timestamp.Format "2006-01-02 15:04"}})
Score: {{.ComplianceScore}}/100

License Violations: {{len .LicenseViolations}}
{{range .LicenseViolations}}  - [{{.Severity}}] {{.Description}}
{{end}}Warranty Alerts: {{len .WarrantyAlerts}}
{{range .WarrantyAlerts}}  - {{.Title}}: {{.Message}}
{{end}}Policy Violations: {{len .PolicyViolations}}
{{range .PolicyViolations}}  - [{{.Severity}}] {{.Description}}
{{end}}`
	t, err := template.New("scan").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, result)
}
