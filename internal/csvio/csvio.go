// Package csvio implements the agenda's CSV interchange format.
//
// The format is kept exactly as external files expect it: the header
// names seven columns (Date and Time separately) while data rows carry
// six fields, with date and time combined into one quoted field. The
// mismatch is deliberate and must not be "fixed".
package csvio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ArseniiKunilovskii/reminder/internal/models"
)

const (
	// Header is written verbatim on export and discarded unvalidated
	// on import.
	Header = "Title,Description,Date,Time,Location,Category,Priority"

	timeLayout = "2006-01-02 15:04"
	minFields  = 6
)

// Codec encodes and decodes event lists. Import is lenient: a bad line
// is logged and skipped, never aborting the batch.
type Codec struct {
	log zerolog.Logger
}

// New creates a codec logging per-line import warnings to log.
func New(log zerolog.Logger) *Codec {
	return &Codec{log: log}
}

// Export writes the header and one row per event. Title, description and
// the combined date-time field are quoted with internal quotes doubled;
// location, category and priority are written bare.
func (c *Codec) Export(w io.Writer, events []models.Event) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, Header); err != nil {
		return err
	}
	for _, event := range events {
		_, err := fmt.Fprintf(bw, "\"%s\",\"%s\",\"%s\",%s,%s,%d\n",
			escape(event.Title),
			escape(event.Description),
			event.StartTime.Format(timeLayout),
			event.Location,
			event.Category,
			event.Priority,
		)
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Import parses the stream into event requests. The first line is read
// and thrown away regardless of its contents. Returns the parsed
// requests and the number of lines skipped; the error is non-nil only
// for stream-level failures.
func (c *Codec) Import(r io.Reader) ([]models.EventRequest, int, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return nil, 0, scanner.Err()
	}

	var requests []models.EventRequest
	skipped := 0
	lineNo := 1
	for scanner.Scan() {
		lineNo++
		fields := splitLine(scanner.Text())
		if len(fields) < minFields {
			c.log.Warn().Int("line", lineNo).Int("fields", len(fields)).
				Msg("Skipping CSV line with too few fields")
			skipped++
			continue
		}

		startTime, err := time.ParseInLocation(timeLayout, fields[2], time.Local)
		if err != nil {
			c.log.Warn().Int("line", lineNo).Err(err).Msg("Skipping CSV line with bad date")
			skipped++
			continue
		}

		priority, err := strconv.Atoi(strings.TrimSpace(fields[5]))
		if err != nil {
			c.log.Warn().Int("line", lineNo).Err(err).Msg("Skipping CSV line with bad priority")
			skipped++
			continue
		}
		if priority < 1 || priority > 10 {
			c.log.Warn().Int("line", lineNo).Int("priority", priority).
				Msg("Skipping CSV line with priority out of range")
			skipped++
			continue
		}

		requests = append(requests, models.EventRequest{
			Title:       fields[0],
			Description: fields[1],
			StartTime:   startTime,
			Location:    fields[3],
			Category:    fields[4],
			Priority:    priority,
		})
	}
	if err := scanner.Err(); err != nil {
		return requests, skipped, err
	}
	return requests, skipped, nil
}

func escape(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}

// splitLine tokenizes one CSV line, honoring commas inside quotes and
// doubled-quote escapes. A naive split on comma would break any quoted
// title.
func splitLine(line string) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if i+1 < len(line) && line[i+1] == '"' {
				field.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(ch)
		}
	}
	fields = append(fields, field.String())
	return fields
}
