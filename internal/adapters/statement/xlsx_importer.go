// Package statement reads bank statements uploaded as spreadsheets.
package statement

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/voucher_ledger/internal/apperrors"
	"github.com/SscSPs/voucher_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/voucher_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Column headers recognised on the first row. Matching ignores case and spaces.
const (
	colDate        = "date"
	colDescription = "description"
	colAmount      = "amount"
	colType        = "type"
	colReference   = "reference"
)

// defaultColumns is used when the sheet has no recognisable header row.
var defaultColumns = map[string]int{
	colDate: 0, colDescription: 1, colAmount: 2, colType: 3, colReference: 4,
}

// dateLayouts covers dates typed as text, read day-first. Cells formatted as
// dates are read raw and arrive as Excel serial numbers instead.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"2006/01/02",
	"02-Jan-2006",
	time.RFC3339,
}

// XLSXImporter parses the first sheet of an .xlsx workbook.
type XLSXImporter struct{}

var _ portsrepo.StatementParser = (*XLSXImporter)(nil)

func NewXLSXImporter() *XLSXImporter {
	return &XLSXImporter{}
}

// ParseStatement reads one statement line per non-empty row. Every line
// starts out unmatched; matching happens during reconciliation.
func (p *XLSXImporter) ParseStatement(ctx context.Context, r io.Reader) ([]domain.StatementLine, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: not a readable xlsx workbook: %v", apperrors.ErrValidation, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", apperrors.ErrValidation)
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}

	columns := defaultColumns
	start := 0
	if len(rows) > 0 {
		if header, ok := headerColumns(rows[0]); ok {
			columns = header
			start = 1
		}
	}

	lines := make([]domain.StatementLine, 0, len(rows)-start)
	for i := start; i < len(rows); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := rows[i]
		if isBlank(row) {
			continue
		}
		line, err := parseRow(row, columns)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", apperrors.ErrValidation, i+1, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func headerColumns(row []string) (map[string]int, bool) {
	cols := make(map[string]int)
	for i, cell := range row {
		name := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(cell), " ", ""))
		name = strings.TrimPrefix(name, "statement")
		switch name {
		case colDate, colDescription, colAmount, colType, colReference:
			cols[name] = i
		}
	}
	_, hasDate := cols[colDate]
	_, hasAmount := cols[colAmount]
	return cols, hasDate && hasAmount
}

func parseRow(row []string, columns map[string]int) (domain.StatementLine, error) {
	date, err := parseDate(cell(row, columns, colDate))
	if err != nil {
		return domain.StatementLine{}, err
	}
	amount, err := parseAmount(cell(row, columns, colAmount))
	if err != nil {
		return domain.StatementLine{}, err
	}
	return domain.StatementLine{
		StatementDate:        date,
		StatementDescription: cell(row, columns, colDescription),
		StatementAmount:      amount,
		StatementType:        strings.ToLower(cell(row, columns, colType)),
		StatementReference:   cell(row, columns, colReference),
		Status:               domain.LineUnmatched,
	}, nil
}

func cell(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	// unformatted date cells come back as the Excel serial number
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		return excelize.ExcelDateToTime(serial, false)
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", raw)
}

func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	negative := strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")")
	cleaned = strings.Trim(cleaned, "()")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("missing amount")
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
