package render

import (
	"encoding/json"
	"io"
	"math/big"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/params"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var (
	successStyle = color.New(color.FgGreen)
	errorStyle   = color.New(color.FgRed)
	warningStyle = color.New(color.FgYellow)
	headerStyle  = color.New(color.Bold, color.FgHiWhite)
	faintStyle   = color.New(color.Faint)
)

// relativePath returns path relative to the current directory when possible
func relativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	return relPath
}

// formatEther renders a decimal wei amount in ether with four decimals
func formatEther(wei string) string {
	amount, ok := new(big.Int).SetString(wei, 10)
	if !ok {
		return wei
	}
	ether := new(big.Float).Quo(new(big.Float).SetInt(amount), big.NewFloat(params.Ether))
	return ether.Text('f', 4)
}

// renderTable renders rows as a borderless, left-aligned table
func renderTable(header table.Row, rows []table.Row) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}
	t.Style().Format.Header = text.FormatUpper

	colConfigs := make([]table.ColumnConfig, len(header))
	for i := range header {
		colConfigs[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignLeft}
	}
	t.SetColumnConfigs(colConfigs)

	t.AppendHeader(header)
	t.AppendRows(rows)
	return t.Render()
}

// writeJSON writes v as indented JSON
func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
