package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/defihorse/horse-deploy/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out    io.Writer
	asJSON bool
	title  cases.Caser
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, asJSON bool) *NetworksRenderer {
	return &NetworksRenderer{
		out:    out,
		asJSON: asJSON,
		title:  cases.Title(language.English),
	}
}

type networkJSON struct {
	Name      string   `json:"name"`
	URL       string   `json:"url,omitempty"`
	ChainID   uint64   `json:"chainId,omitempty"`
	Source    string   `json:"source,omitempty"`
	SameChain []string `json:"sameChain,omitempty"`
	Active    bool     `json:"active"`
	Accounts  int      `json:"accounts"`
	Error     string   `json:"error,omitempty"`
}

// Render renders the configured networks
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if r.asJSON {
		networks := make([]networkJSON, 0, len(result.Networks))
		for _, status := range result.Networks {
			entry := networkJSON{
				Name:      status.Profile.Name,
				URL:       status.Profile.URL,
				ChainID:   status.ChainID,
				Source:    chainIDSource(status),
				SameChain: status.SameChain,
				Active:    status.Active,
				Accounts:  len(status.Profile.Accounts),
			}
			if status.Error != nil {
				entry.Error = status.Error.Error()
			}
			networks = append(networks, entry)
		}
		return writeJSON(r.out, networks)
	}

	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	rows := make([]table.Row, 0, len(result.Networks))
	for _, status := range result.Networks {
		marker := " "
		if status.Active {
			marker = successStyle.Sprint("*")
		}

		url := status.Profile.URL
		if status.Profile.IsInProcess() {
			url = faintStyle.Sprint("in-process")
		}

		chainID := "-"
		if status.ChainID != 0 {
			chainID = strconv.FormatUint(status.ChainID, 10)
		}
		if source := chainIDSource(status); source != "" {
			chainID += faintStyle.Sprintf(" (%s)", r.title.String(source))
		}

		state := ""
		switch {
		case status.Error != nil:
			state = errorStyle.Sprintf("✗ %v", status.Error)
		case status.Probed:
			state = successStyle.Sprint("✓ reachable")
		}

		sameChain := strings.Join(status.SameChain, ", ")

		rows = append(rows, table.Row{marker, status.Profile.Name, chainID, sameChain, url, len(status.Profile.Accounts), state})
	}

	fmt.Fprintln(r.out, headerStyle.Sprint("Networks:"))
	fmt.Fprintln(r.out, renderTable(table.Row{"", "Network", "Chain ID", "Same Chain", "RPC", "Accounts", "Status"}, rows))
	return nil
}

func chainIDSource(status usecase.NetworkStatus) string {
	switch {
	case status.Probed:
		return "probed"
	case status.Cached:
		return "cached"
	case status.ChainID != 0:
		return "configured"
	}
	return ""
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)
