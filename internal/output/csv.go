package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// csvHeader - Column order of the CSV rendition.
var csvHeader = []string{"run_id", "scenario", "region", "variable", "sector", "unit", "period", "year", "value"}

// WriteCSV - Writes the records to a CSV file at path, overwriting any
// existing file.
//
// It returns:
//   - err is a standard error if the file can not be written
func WriteCSV(path string, records []Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		err = fmt.Errorf("create csv file: %w", err)
		return
	}
	defer func(f *os.File) { _ = f.Close() }(f)

	w := csv.NewWriter(f)
	if err = w.Write(csvHeader); err != nil {
		err = fmt.Errorf("write csv header: %w", err)
		return
	}

	for _, record := range records {
		row := []string{
			record.RunID,
			record.Scenario,
			record.Region,
			record.Variable,
			record.Sector,
			record.Unit,
			strconv.Itoa(record.Period),
			strconv.Itoa(record.Year),
			strconv.FormatFloat(record.Value, 'g', -1, 64),
		}
		if err = w.Write(row); err != nil {
			err = fmt.Errorf("write csv row: %w", err)
			return
		}
	}

	w.Flush()
	err = w.Error()
	return
}
