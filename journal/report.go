package journal

import (
	"bytes"
	"fmt"
	"os"
	"text/template"
	"time"
)

// RunReport summarizes one scripted simulation run.
type RunReport struct {
	RunID   string
	Created time.Time
	Preset  string

	StartUT float64
	EndUT   float64

	StartFunds float64
	EndFunds   float64

	Originated   int
	Retired      int
	PaidOff      int
	Rejected     int
	Installments int
	ShortPays    int

	Borrowed      float64
	Repaid        float64
	ShortfallLost float64

	ActiveLoans    int
	OutstandingDue float64

	Notes []string
}

var reportOrgFuncs = template.FuncMap{
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

var reportTemplate = template.Must(template.New("report").Funcs(reportOrgFuncs).Parse(RunReportOrgTemplate))

// Org renders the report as an Org-mode document.
func (r *RunReport) Org() (string, error) {
	buf := new(bytes.Buffer)
	if err := reportTemplate.Execute(buf, r); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

// WriteOrg writes the rendered report to path.
func (r *RunReport) WriteOrg(path string) error {
	s, err := r.Org()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(s), 0644)
}

const RunReportOrgTemplate = `* LOAN RUN: {{if .Preset}}{{.Preset}}{{else}}(preset?){{end}}
:PROPERTIES:
:RUN_ID:      {{if .RunID}}{{.RunID}}{{else}}(run-id?){{end}}
:START_UT:    {{printf "%.0f" .StartUT}}
:END_UT:      {{printf "%.0f" .EndUT}}
:START_FUNDS: {{printf "%.2f" .StartFunds}}
:END_FUNDS:   {{printf "%.2f" .EndFunds}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Loans
| Outcome     | Count |
|-------------+-------|
| Originated  | {{.Originated}} |
| Retired     | {{.Retired}} |
| Paid off    | {{.PaidOff}} |
| Rejected    | {{.Rejected}} |
| Still open  | {{.ActiveLoans}} |

** Cash
- Borrowed:        *{{printf "%.2f" .Borrowed}}*
- Repaid:          *{{printf "%.2f" .Repaid}}*
- Installments:    *{{.Installments}}* ({{.ShortPays}} short)
- Shortfall lost:  *{{printf "%.2f" .ShortfallLost}}*
- Outstanding:     *{{printf "%.2f" .OutstandingDue}}*
{{- if .Notes }}

** Notes
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}
`
