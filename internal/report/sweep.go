package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/alexshd/dofbench"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// SweepSummary renders a sweep analysis: one row per sample, then the
// floor and any monotonicity violations.
func SweepSummary(w io.Writer, a dofbench.SweepAnalysis) error {
	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true).Padding(0, 1)
	number := r.NewStyle().Padding(0, 1).Align(lipgloss.Right)

	rows := make([][]string, 0, len(a.Points))
	for _, p := range a.Points {
		rows = append(rows, []string{
			strconv.FormatFloat(p.Config.Smear, 'f', 2, 64),
			strconv.FormatFloat(p.Config.Load, 'f', 2, 64),
			formatFloat(p.DoFFraction),
			formatFloat(p.GammaStd),
			formatFloat(p.GammaDoF),
		})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle()).
		Headers("smear", "load", "N", "Γ_std", "Γ_DoF").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return number
		})

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s sweep over %s (fixed %g)\n", a.MechanismID, a.Axis, a.Fixed)
	buf.WriteString(tbl.String())
	buf.WriteString("\n")
	fmt.Fprintf(&buf, "floor: N=%s at %s=%g (bounded away from zero: %t)\n",
		formatFloat(a.Floor), a.Axis, a.FloorAt, a.BoundedAway)
	fmt.Fprintf(&buf, "max |Γ_DoF-Γ_std|: %s\n", formatFloat(a.GammaDivergence))
	if a.Monotone {
		buf.WriteString("monotone: yes\n")
	} else {
		fmt.Fprintf(&buf, "monotone: no (%d violations)\n", len(a.Violations))
		for _, v := range a.Violations {
			fmt.Fprintf(&buf, "  N rises %s → %s between %+v and %+v\n",
				formatFloat(v.From.DoFFraction), formatFloat(v.To.DoFFraction), v.From.Config, v.To.Config)
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}
