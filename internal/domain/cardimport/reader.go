package cardimport

import (
	"encoding/csv"
	"io"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// Expected CSV column headers. Names must match exactly; a missing column
// defaults every row's value for it to the empty string rather than failing
// the run.
const (
	ColPlayerName = "Player Name"
	ColTeamName   = "Team Name"
	ColCardType   = "Card Type"
	ColReason     = "Reason"
	ColGameDate   = "Game Date"
	ColSeason     = "Season"
	ColDivision   = "Division"
	ColComments   = "Additional Comments"
	ColOfficial   = "Official Name"
)

// Row is the raw column-name to value mapping for one incident.
type Row map[string]string

// ReadRows decodes the full incident CSV into memory. A header line is
// required; any malformed CSV record is a structural error that aborts the
// run before planning starts.
func ReadRows(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, crerr.New("csv file is empty")
	}
	if err != nil {
		return nil, crerr.Wrap(err, "read csv header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, crerr.Wrapf(err, "read csv line %d", line)
		}

		row := make(Row, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Get returns the value for a column, defaulting missing columns to "".
func (r Row) Get(column string) string {
	return r[column]
}
