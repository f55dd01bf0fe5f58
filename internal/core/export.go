package core

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ledgerColumns is the tabular export layout: one row per ledger record.
var ledgerColumns = []string{
	"id", "item", "quantity", "unitPrice", "total",
	"kind", "category", "status", "counterparty", "timestamp", "provenance",
}

const exportTimeLayout = "02 Jan 2006 15:04"

func ledgerRow(r TransactionRecord) []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.Item,
		strconv.FormatInt(r.Quantity, 10),
		r.UnitPrice.StringFixed(2),
		r.Total().StringFixed(2),
		string(r.Kind),
		string(r.Category),
		string(r.Status),
		r.Counterparty,
		r.CreatedAt.Local().Format(exportTimeLayout),
		r.Provenance.CaptureRef,
	}
}

// WriteLedgerCSV writes the ledger as CSV: a header row followed by one row
// per record, in the order given.
func WriteLedgerCSV(w io.Writer, records []TransactionRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ledgerColumns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(ledgerRow(r)); err != nil {
			return fmt.Errorf("write csv row %d: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLedgerXLSX writes the ledger as an Excel workbook with a single
// "Ledger" sheet, same columns as the CSV export.
func WriteLedgerXLSX(w io.Writer, records []TransactionRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Ledger"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, name := range ledgerColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("write header cell %s: %w", cell, err)
		}
	}

	for i, r := range records {
		for col, v := range ledgerRow(r) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
