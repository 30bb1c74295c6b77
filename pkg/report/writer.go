/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/carverauto/portaudit/pkg/models"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// Layout selects the optional report columns.
type Layout struct {
	// MediaSummary adds the "Active Port Types" column.
	MediaSummary bool
	// MediaColumns adds one count column per configured media label.
	MediaColumns []string
}

// Header returns the column titles for the layout.
func (l Layout) Header() []string {
	h := []string{"Hostname", "Total Ports", "Active Ports", "Port Utilization %"}

	if l.MediaSummary {
		h = append(h, "Active Port Types")
	}

	return append(h, l.MediaColumns...)
}

// Cells returns one row as typed values: strings, ints and the float percentage.
func (l Layout) Cells(row *models.UtilizationRow) []interface{} {
	cells := []interface{}{row.Hostname, row.TotalPorts, row.ActivePorts, row.UtilizationPercent}

	if l.MediaSummary {
		cells = append(cells, row.MediaSummary)
	}

	for _, col := range l.MediaColumns {
		cells = append(cells, row.MediaColumns[col])
	}

	return cells
}

// Strings renders one row as text.
func (l Layout) Strings(row *models.UtilizationRow) []string {
	return cellStrings(l.Cells(row))
}

func cellStrings(cells []interface{}) []string {
	out := make([]string, len(cells))

	for i, c := range cells {
		switch v := c.(type) {
		case string:
			out[i] = v
		case int:
			out[i] = strconv.Itoa(v)
		case float64:
			out[i] = strconv.FormatFloat(v, 'f', 2, 64)
		}
	}

	return out
}

// Write saves the report rows to path, as xlsx or csv by extension.
func Write(path string, report *models.Report, layout Layout) error {
	rows := make([][]interface{}, len(report.Rows))
	for i := range report.Rows {
		rows[i] = layout.Cells(&report.Rows[i])
	}

	return save(path, layout.Header(), rows)
}

func save(path string, header []string, rows [][]interface{}) error {
	if isWorkbook(path) {
		return writeWorkbook(path, header, rows)
	}

	return writeCSV(path, header, rows)
}

func writeCSV(path string, header []string, rows [][]interface{}) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	w := csv.NewWriter(f)

	if err = w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range rows {
		if err = w.Write(cellStrings(row)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()

	return w.Error()
}

func writeWorkbook(path string, header []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	cells := make([]interface{}, len(header))

	for i, h := range header {
		cells[i] = h
	}

	if err := f.SetSheetRow(sheetName, "A1", &cells); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(sheetName, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}

	return nil
}
