// Package contactcsv reads contact lists exported from spreadsheets and
// mailing tools.
package contactcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ErrNoValidContacts is returned when no row carries a usable email
var ErrNoValidContacts = errors.New("No valid contacts found in CSV")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Row is one accepted contact
type Row struct {
	Name  string
	Email string
}

// Stats describes what happened to the data rows of a file
type Stats struct {
	Rows       int
	Accepted   int
	Invalid    int
	Duplicates int
}

// Result is a parsed contact list
type Result struct {
	Contacts []Row
	Stats    Stats
}

// Parse reads a header row followed by data rows. Only the "email" and
// "name" columns are used; column names are matched case-insensitively.
// Blank lines and rows without a valid email are skipped, emails are
// lowercased and the first occurrence of an email wins.
func Parse(r io.Reader) (*Result, error) {
	reader := csv.NewReader(stripBOM(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoValidContacts
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	emailIdx, nameIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "email":
			emailIdx = i
		case "name":
			nameIdx = i
		}
	}
	if emailIdx < 0 {
		return nil, ErrNoValidContacts
	}

	result := &Result{}
	seen := make(map[string]struct{})

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if isBlank(record) {
			continue
		}

		result.Stats.Rows++

		email := strings.ToLower(cell(record, emailIdx))
		if !emailPattern.MatchString(email) {
			result.Stats.Invalid++
			continue
		}
		if _, dup := seen[email]; dup {
			result.Stats.Duplicates++
			continue
		}
		seen[email] = struct{}{}

		result.Contacts = append(result.Contacts, Row{
			Name:  cell(record, nameIdx),
			Email: email,
		})
	}

	result.Stats.Accepted = len(result.Contacts)
	if result.Stats.Accepted == 0 {
		return nil, ErrNoValidContacts
	}

	return result, nil
}

// Batches splits rows into chunks of at most size rows
func Batches(rows []Row, size int) [][]Row {
	if size <= 0 {
		size = len(rows)
	}
	var batches [][]Row
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		batches = append(batches, rows[start:end])
	}
	return batches
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// stripBOM drops a UTF-8 byte order mark, which Excel writes in front of
// the header
func stripBOM(r io.Reader) io.Reader {
	buf := make([]byte, 3)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		return io.MultiReader(strings.NewReader(string(buf[:n])), r)
	}
	if buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF {
		return r
	}
	return io.MultiReader(strings.NewReader(string(buf)), r)
}
