package results

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{"Student Name", "Student ID", "Total Marks", "Percentage", "Status"}

// WriteCSV writes rows in the order given, one line per participant.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.DisplayName(),
			r.DisplayID(),
			strconv.Itoa(r.Marks),
			strconv.FormatFloat(r.Percentage, 'f', -1, 64) + "%",
			r.Status.Label(),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
