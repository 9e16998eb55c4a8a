package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dermalyze/ratioplot/pkg/models"
)

// Load reads a ratio file: comma-delimited, no header, one
// `identifier,ratio` record per line. Parsing is strict: a row with the
// wrong column count or a non-numeric ratio fails the load with an error
// naming the file and line.
func Load(path string) (models.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ratio file: %w", err)
	}
	defer f.Close()

	ds, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Parse reads `identifier,ratio` records from r until EOF.
func Parse(r io.Reader) (models.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2

	var ds models.Dataset
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return ds, nil
		}
		line++
		if err != nil {
			// csv.ParseError already names the offending line.
			return nil, err
		}

		ratio, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid ratio %q: %w", line, record[1], err)
		}

		ds = append(ds, models.RatioRecord{Image: record[0], Ratio: ratio})
	}
}
