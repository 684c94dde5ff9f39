package render

import (
	"fmt"
	"io"

	"github.com/defihorse/horse-deploy/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
)

// AccountsRenderer renders the signers of a network
type AccountsRenderer struct {
	out    io.Writer
	asJSON bool
}

// NewAccountsRenderer creates a new accounts renderer
func NewAccountsRenderer(out io.Writer, asJSON bool) *AccountsRenderer {
	return &AccountsRenderer{
		out:    out,
		asJSON: asJSON,
	}
}

// Render renders the accounts
func (r *AccountsRenderer) Render(result *usecase.ListAccountsResult) error {
	if r.asJSON {
		return writeJSON(r.out, result.Accounts)
	}

	rows := make([]table.Row, 0, len(result.Accounts))
	for _, account := range result.Accounts {
		if account.Error != "" {
			rows = append(rows, table.Row{account.Address.Hex(), errorStyle.Sprint(account.Error), ""})
			continue
		}
		rows = append(rows, table.Row{account.Address.Hex(), formatEther(account.Balance), account.Nonce})
	}

	fmt.Fprintln(r.out, headerStyle.Sprintf("Accounts on %s:", result.Network.Name))
	fmt.Fprintln(r.out, renderTable(table.Row{"Address", "Balance", "Nonce"}, rows))
	return nil
}

var _ Renderer[*usecase.ListAccountsResult] = (*AccountsRenderer)(nil)
