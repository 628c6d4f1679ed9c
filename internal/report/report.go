// Package report renders a ranking table as a summary table and a YAML
// records file, and writes both under seed- and config-named paths.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexshd/dofbench"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Run identifies one evaluation run. The same seed and config hash always
// produce the same run id and file names.
type Run struct {
	Seed       uint64
	ConfigHash string
}

// ID returns the name-based run id.
func (r Run) ID() string {
	name := fmt.Sprintf("dofbench/seed=%d/config=%s", r.Seed, r.ConfigHash)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// BaseName is the artifact file name without extension.
func (r Run) BaseName() string {
	return fmt.Sprintf("dofbench-seed%d-%s", r.Seed, r.ConfigHash)
}

// Meta is the run metadata block of the records file.
type Meta struct {
	ID         string   `yaml:"id"`
	Seed       uint64   `yaml:"seed"`
	ConfigHash string   `yaml:"config_hash"`
	Benchmark  string   `yaml:"benchmark"`
	Forms      []string `yaml:"forms"`
	Best       string   `yaml:"best,omitempty"`
	Warnings   []string `yaml:"warnings,omitempty"`
}

// FailureRecord is a form that produced no fit.
type FailureRecord struct {
	Form   string `yaml:"form"`
	Reason string `yaml:"reason"`
}

// MechanismRecord holds one mechanism's fits in ranking order.
type MechanismRecord struct {
	ID         string               `yaml:"id"`
	Best       string               `yaml:"best,omitempty"`
	Fits       []dofbench.FitResult `yaml:"fits"`
	Failures   []FailureRecord      `yaml:"failures,omitempty"`
	Exclusions []dofbench.Exclusion `yaml:"exclusions,omitempty"`
	Warnings   []string             `yaml:"warnings,omitempty"`
}

// Document is the machine-readable records file.
type Document struct {
	Run        Meta              `yaml:"run"`
	Mechanisms []MechanismRecord `yaml:"mechanisms"`
	Failures   []string          `yaml:"failures,omitempty"`
}

// Records builds the records document. failed is the error returned by the
// evaluator; each joined failure becomes one entry.
func Records(run Run, t dofbench.RankingTable, failed error) Document {
	doc := Document{
		Run: Meta{
			ID:         run.ID(),
			Seed:       run.Seed,
			ConfigHash: run.ConfigHash,
			Benchmark:  t.Benchmark,
			Forms:      t.Forms,
		},
		Mechanisms: make([]MechanismRecord, 0, len(t.Groups)),
		Failures:   errorList(failed),
	}
	if best, ok := t.Best(); ok {
		doc.Run.Best = best.MechanismID + "/" + best.FormID
	}

	for _, g := range t.Groups {
		rec := MechanismRecord{
			ID:         g.MechanismID,
			Fits:       g.Results,
			Exclusions: g.Exclusions,
			Warnings:   g.Warnings,
		}
		if best, ok := g.Best(); ok {
			rec.Best = best.FormID
		}
		for _, f := range g.Failures {
			rec.Failures = append(rec.Failures, FailureRecord{Form: f.FormID, Reason: f.Err.Error()})
		}
		doc.Run.Warnings = append(doc.Run.Warnings, g.Warnings...)
		doc.Mechanisms = append(doc.Mechanisms, rec)
	}
	return doc
}

func errorList(err error) []string {
	if err == nil {
		return nil
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range j.Unwrap() {
			out = append(out, errorList(e)...)
		}
		return out
	}
	return []string{err.Error()}
}

// Summary renders the human-readable ranking to w.
func Summary(w io.Writer, t dofbench.RankingTable, failed error) error {
	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)
	number := cell.Align(lipgloss.Right)

	rows := make([][]string, 0, len(t.Groups)*len(t.Forms))
	for i, g := range t.Groups {
		for j, res := range g.Results {
			rank := ""
			if j == 0 {
				rank = strconv.Itoa(i + 1)
			}
			rows = append(rows, []string{
				rank,
				res.MechanismID,
				res.FormID,
				strconv.Itoa(res.ParamCount),
				formatFloat(res.MSE),
				formatCriteria(res.Criteria, true),
				formatCriteria(res.Criteria, false),
				formatCV(res.CV),
				strconv.Itoa(len(res.Exclusions)),
			})
		}
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle()).
		Headers("#", "mechanism", "form", "k", "mse", "aic", "bic", "cv mse", "excl").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 0 || col >= 3:
				return number
			default:
				return cell
			}
		})

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "DoF fits vs %s\n", t.Benchmark)
	buf.WriteString(tbl.String())
	buf.WriteString("\n")

	for _, g := range t.Groups {
		for _, x := range g.Exclusions {
			fmt.Fprintf(&buf, "excluded %s/%s: %s\n", g.MechanismID, x.Scenario, x.Reason)
		}
		for _, f := range g.Failures {
			fmt.Fprintf(&buf, "failed %s/%s: %v\n", g.MechanismID, f.FormID, f.Err)
		}
		for _, warn := range g.Warnings {
			fmt.Fprintf(&buf, "warning: %s\n", warn)
		}
	}
	for _, f := range errorList(failed) {
		fmt.Fprintf(&buf, "error: %s\n", f)
	}
	if best, ok := t.Best(); ok {
		fmt.Fprintf(&buf, "best: %s/%s (mse %s)\n", best.MechanismID, best.FormID, formatFloat(best.MSE))
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func formatFloat(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strconv.FormatFloat(x, 'g', 6, 64)
}

func formatCriteria(c *dofbench.Criteria, aic bool) string {
	if c == nil {
		return "-"
	}
	if aic {
		return strconv.FormatFloat(c.AIC, 'f', 4, 64)
	}
	return strconv.FormatFloat(c.BIC, 'f', 4, 64)
}

func formatCV(cv *dofbench.CrossValidation) string {
	if cv == nil {
		return "-"
	}
	return formatFloat(cv.Mean) + " ± " + formatFloat(cv.StdDev)
}

// Paths are the files written for one run.
type Paths struct {
	Summary string
	Records string
}

// Save writes the summary text and records document under dir. Failures
// wrap dofbench.ErrIOFailure; the caller's in-memory table is untouched.
func Save(dir string, run Run, t dofbench.RankingTable, failed error) (Paths, error) {
	var summary bytes.Buffer
	if err := Summary(&summary, t, failed); err != nil {
		return Paths{}, fmt.Errorf("render summary: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, ioFailure("create", dir, err)
	}

	p := Paths{
		Summary: filepath.Join(dir, run.BaseName()+".txt"),
		Records: filepath.Join(dir, run.BaseName()+".yaml"),
	}
	if err := writeFile(p.Summary, func(w io.Writer) error {
		_, err := w.Write(summary.Bytes())
		return err
	}); err != nil {
		return Paths{}, err
	}
	if err := SaveYAML(p.Records, Records(run, t, failed)); err != nil {
		return Paths{}, err
	}
	return p, nil
}

// SaveYAML writes v as a YAML document to path.
func SaveYAML(path string, v any) error {
	return writeFile(path, func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	})
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return ioFailure("create", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, ioFailure("close", path, cerr))
		}
	}()

	if err := write(f); err != nil {
		return ioFailure("write", path, err)
	}
	return nil
}

func ioFailure(op, path string, err error) error {
	return fmt.Errorf("%s %s: %w: %w", op, path, dofbench.ErrIOFailure, err)
}
