// package formatter provides functions to export event search results to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"gigcal/internal/models"
)

// ExportToCSV converts search results to CSV format with columns: Name, Start, End, Venue, City, URL
func ExportToCSV(events []models.Event) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Name", "Start", "End", "Venue", "City", "URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, event := range events {
		record := []string{
			event.Name,
			event.StartDate,
			event.EndDate,
			event.Venue,
			event.City,
			event.URL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts search results to a Markdown listing for the keyword
func ExportToMarkdown(keyword string, events []models.Event) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Events matching %q\n\n", keyword))
	buf.WriteString(fmt.Sprintf("**Results**: %d\n\n", len(events)))

	for i, event := range events {
		buf.WriteString(fmt.Sprintf("%d. **%s** - %s", i+1, event.Name, event.StartDate))
		if event.EndDate != "" && event.EndDate != event.StartDate {
			buf.WriteString(fmt.Sprintf(" to %s", event.EndDate))
		}
		if event.Venue != "" {
			buf.WriteString(fmt.Sprintf(" @ %s", event.Venue))
			if event.City != "" {
				buf.WriteString(fmt.Sprintf(", %s", event.City))
			}
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

// ExportToText converts search results to plain text format
func ExportToText(keyword string, events []models.Event) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Found %d events for %q:\n\n", len(events), keyword))

	for i, event := range events {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, event.Name))
		buf.WriteString(fmt.Sprintf("   Dates: %s", event.StartDate))
		if event.EndDate != "" {
			buf.WriteString(fmt.Sprintf(" - %s", event.EndDate))
		}
		buf.WriteString("\n")
		if event.Venue != "" {
			buf.WriteString(fmt.Sprintf("   Venue: %s\n", event.Venue))
		}
		if event.City != "" {
			buf.WriteString(fmt.Sprintf("   City: %s\n", event.City))
		}
	}

	return buf.Bytes()
}
