package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/born-ml/tabae/internal/train"
)

func formatLoss(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// printHistory renders one row per epoch.
func printHistory(w io.Writer, h *train.History) {
	loss := h.Loss()
	valLoss := h.ValLoss()

	header := []string{"EPOCH", "LOSS"}
	if h.HasValidation() {
		header = append(header, "VAL LOSS")
	}

	var data [][]string
	for i, l := range loss {
		row := []string{strconv.Itoa(i + 1), formatLoss(l)}
		if h.HasValidation() {
			row = append(row, formatLoss(valLoss[i]))
		}
		data = append(data, row)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	fmt.Fprintf(w, "\nrun %s: final loss %s", h.RunID(), formatLoss(h.FinalLoss()))
	if h.HasValidation() {
		fmt.Fprintf(w, ", final val loss %s", formatLoss(h.FinalValLoss()))
	}
	fmt.Fprintln(w)
}
