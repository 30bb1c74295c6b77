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

// Package report reads the device list and writes utilization reports as
// spreadsheets and console tables.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// HostnameColumn is the required header of the device list.
const HostnameColumn = "hostname"

func isWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	default:
		return false
	}
}

// ReadHostnames returns the trimmed, non-empty values of the hostname column
// in file order. The first sheet is used for workbooks.
func ReadHostnames(path string) ([]string, error) {
	var (
		rows [][]string
		err  error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); {
	case isWorkbook(path):
		rows, err = readWorkbook(path)
	case ext == ".csv":
		rows, err = readCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	if err != nil {
		return nil, err
	}

	return hostnames(rows)
}

func hostnames(rows [][]string) ([]string, error) {
	if len(rows) == 0 {
		return nil, ErrMissingHostnameColumn
	}

	col := -1

	for i, name := range rows[0] {
		if strings.TrimSpace(name) == HostnameColumn {
			col = i

			break
		}
	}

	if col < 0 {
		return nil, ErrMissingHostnameColumn
	}

	out := make([]string, 0, len(rows)-1)

	for _, row := range rows[1:] {
		if col >= len(row) {
			continue
		}

		if h := strings.TrimSpace(row[col]); h != "" {
			out = append(out, h)
		}
	}

	return out, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open device list: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read device list: %w", err)
		}

		rows = append(rows, rec)
	}
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open device list: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoSheets
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return rows, nil
}
