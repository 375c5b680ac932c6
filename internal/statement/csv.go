package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minibank-dev/minibank/internal/model"
)

// Header is the CSV header written by WriteCSV.
const Header = "event_id,timestamp,kind,amount"

const (
	numFields    = 4
	colEventID   = 0
	colTimestamp = 1
	colKind      = 2
	colAmount    = 3
)

// WriteCSV writes events as CSV, including the header.
func WriteCSV(w io.Writer, events []model.Event) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, ev := range events {
		if err := cw.Write(MarshalEvent(ev)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalEvent converts an Event to a CSV row.
func MarshalEvent(ev model.Event) []string {
	row := make([]string, numFields)
	row[colEventID] = ev.ID.String()
	row[colTimestamp] = ev.Time.Format(time.RFC3339)
	row[colKind] = string(ev.Kind)
	row[colAmount] = ev.Amount.StringFixed(2)
	return row
}
