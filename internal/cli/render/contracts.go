package render

import (
	"fmt"
	"io"

	"github.com/defihorse/horse-deploy/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
)

// ContractsRenderer renders the compiled contracts
type ContractsRenderer struct {
	out    io.Writer
	asJSON bool
}

// NewContractsRenderer creates a new contracts renderer
func NewContractsRenderer(out io.Writer, asJSON bool) *ContractsRenderer {
	return &ContractsRenderer{
		out:    out,
		asJSON: asJSON,
	}
}

type contractJSON struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	Constructor string `json:"constructor,omitempty"`
	Deployable  bool   `json:"deployable"`
	Error       string `json:"error,omitempty"`
}

// Render renders the contract list
func (r *ContractsRenderer) Render(result *usecase.ListContractsResult) error {
	if r.asJSON {
		contracts := make([]contractJSON, 0, len(result.Contracts))
		for _, summary := range result.Contracts {
			entry := contractJSON{
				Name:        summary.Contract.Name,
				Source:      summary.Contract.SourceName,
				Constructor: summary.Signature,
				Deployable:  summary.Deployable,
			}
			if summary.Error != nil {
				entry.Error = summary.Error.Error()
			}
			contracts = append(contracts, entry)
		}
		return writeJSON(r.out, contracts)
	}

	if len(result.Contracts) == 0 {
		fmt.Fprintln(r.out, "No contracts found, compile the project first")
		return nil
	}

	rows := make([]table.Row, 0, len(result.Contracts))
	for _, summary := range result.Contracts {
		constructor := summary.Signature
		if summary.Error != nil {
			constructor = errorStyle.Sprint(summary.Error.Error())
		}
		name := summary.Contract.Name
		if !summary.Deployable {
			name = faintStyle.Sprint(name + " (abstract)")
		}
		rows = append(rows, table.Row{name, summary.Contract.SourceName, constructor})
	}

	fmt.Fprintln(r.out, renderTable(table.Row{"Contract", "Source", "Constructor"}, rows))
	return nil
}

var _ Renderer[*usecase.ListContractsResult] = (*ContractsRenderer)(nil)
