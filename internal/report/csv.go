package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"epigrid/internal/sims/epidemic"
)

var csvHeader = []string{
	"step",
	"susceptible", "infectious", "recovered", "dead", "vaccinated",
	"susceptible_pct", "infectious_pct", "recovered_pct", "dead_pct", "vaccinated_pct",
}

// WriteCSV writes one row per recorded step: the raw counts followed by
// their share of the population in percent.
func WriteCSV(w io.Writer, h *epidemic.History) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	n := h.Population()
	row := make([]string, len(csvHeader))
	for step, c := range h.Series() {
		row[0] = strconv.Itoa(step)
		for i, s := range epidemic.States {
			row[1+i] = strconv.Itoa(c.Get(s))
			row[1+len(epidemic.States)+i] = strconv.FormatFloat(c.Percent(s, n), 'f', 4, 64)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", step, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the history to path, replacing any existing file.
func SaveCSV(path string, h *epidemic.History) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, h); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
