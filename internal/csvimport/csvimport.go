// Package csvimport turns a CSV of receipt rows into create parameters.
// Files exported from banking or spreadsheet tools arrive in assorted
// encodings, so the input is decoded to UTF-8 before parsing.
package csvimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var ErrMissingHeader = errors.New("missing required header")

// Row is one parsed receipt line. Vendor is optional; the other fields
// are required.
type Row struct {
	Line          int
	Date          time.Time
	Description   string
	Amount        decimal.Decimal
	Category      string
	PaymentMethod string
	Vendor        string
}

// RowError reports a line that could not be parsed.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

var requiredColumns = []string{"date", "description", "amount", "category", "payment_method"}

// Parse reads the whole input, decodes it to UTF-8 and returns the
// parseable rows plus per-line errors for the rest. Only an unreadable
// input or a broken header fails the call as a whole.
func Parse(r io.Reader) ([]Row, []RowError, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading input: %w", err)
	}

	decoded, err := decodeToUTF8(raw)
	if err != nil {
		return nil, nil, err
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingHeader, col)
		}
	}

	var (
		rows    []Row
		rowErrs []RowError
	)

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}

		row, err := parseRecord(line, record, index)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}

		rows = append(rows, row)
	}

	return rows, rowErrs, nil
}

func parseRecord(line int, record []string, index map[string]int) (Row, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}

		return strings.TrimSpace(record[i])
	}

	date, err := time.Parse(time.DateOnly, field("date"))
	if err != nil {
		return Row{}, fmt.Errorf("bad date %q", field("date"))
	}

	// Spreadsheets in some locales export a decimal comma.
	amountStr := strings.ReplaceAll(field("amount"), ",", ".")

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return Row{}, fmt.Errorf("bad amount %q", field("amount"))
	}

	if amount.IsNegative() {
		return Row{}, fmt.Errorf("negative amount %q", field("amount"))
	}

	description := field("description")
	if description == "" {
		return Row{}, errors.New("empty description")
	}

	category := field("category")
	if category == "" {
		return Row{}, errors.New("empty category")
	}

	paymentMethod := field("payment_method")
	if paymentMethod == "" {
		return Row{}, errors.New("empty payment_method")
	}

	return Row{
		Line:          line,
		Date:          date,
		Description:   description,
		Amount:        amount,
		Category:      category,
		PaymentMethod: paymentMethod,
		Vendor:        field("vendor"),
	}, nil
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeToUTF8 normalizes the byte stream: BOM first, then a UTF-8
// validity check, then a chardet guess, then Windows-1252 as the last
// resort for single-byte legacy exports.
func decodeToUTF8(raw []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return raw[len(bomUTF8):], nil
	case bytes.HasPrefix(raw, bomUTF16LE):
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(raw)
	case bytes.HasPrefix(raw, bomUTF16BE):
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Bytes(raw)
	}

	if utf8.Valid(raw) {
		return raw, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(raw); err == nil {
		if cm := charmapFor(result.Charset); cm != nil {
			return cm.NewDecoder().Bytes(raw)
		}
	}

	return charmap.Windows1252.NewDecoder().Bytes(raw)
}

func charmapFor(charset string) *charmap.Charmap {
	switch charset {
	case "ISO-8859-1":
		return charmap.ISO8859_1
	case "ISO-8859-15":
		return charmap.ISO8859_15
	case "windows-1252":
		return charmap.Windows1252
	default:
		return nil
	}
}
