package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/HenriqueBragaMoreira/gesture-pro/internal/apperr"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/model"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/repository"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/storage/db"
	"github.com/HenriqueBragaMoreira/gesture-pro/pkg/money"
	"github.com/HenriqueBragaMoreira/gesture-pro/pkg/ptr"
)

// importColumns is the fixed CSV schema: id (ignored), name, description,
// price, category_id, brand.
const importColumns = 6

// RowError reports a failure attributable to one input row. Row is the
// 1-based data row index; 0 marks a batch-level error that rolled back
// the whole insert set.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"error"`
}

// ImportReport accounts for every data row of an upload: each row ends up
// either in Created or in exactly one error entry, except after a
// batch-level rollback where a single entry covers the whole batch.
type ImportReport struct {
	Created     []model.Product `json:"created"`
	ParseErrors []RowError      `json:"parse_errors"`
	DBErrors    []RowError      `json:"db_errors"`
}

type importRow struct {
	index  int
	params repository.CreateProductParams
}

// ImportCSV runs the two-phase bulk import. Phase 1 parses and validates
// every row independently; phase 2 checks category references and inserts
// all remaining rows in one transaction, all-or-nothing.
func (s *productService) ImportCSV(ctx context.Context, r io.Reader) (ImportReport, error) {
	report := ImportReport{
		Created:     []model.Product{},
		ParseErrors: []RowError{},
		DBErrors:    []RowError{},
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil || len(header) < importColumns {
		return ImportReport{}, apperr.ErrInvalidCSVFormat.WrapParent(err)
	}

	var rows []importRow
	for i := 1; ; i++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			report.ParseErrors = append(report.ParseErrors, RowError{
				Row:     i,
				Message: fmt.Sprintf("malformed row: %v", err),
			})
			continue
		}

		params, perr := parseImportRow(record)
		if perr != nil {
			report.ParseErrors = append(report.ParseErrors, RowError{Row: i, Message: perr.Error()})
			continue
		}

		rows = append(rows, importRow{index: i, params: params})
	}

	if len(rows) == 0 {
		return report, nil
	}

	var (
		catErrors  []RowError
		insertRows []importRow
		ids        []int64
	)
	txErr := s.db.WithTx(ctx, func(tx db.DB) error {
		categoryRepo := s.categoryRepo.WithDB(tx)
		productRepo := s.productRepo.WithDB(tx)

		known := make(map[int64]bool)
		for _, row := range rows {
			exists, checked := known[row.params.CategoryID]
			if !checked {
				var err error
				exists, err = categoryRepo.Exists(ctx, row.params.CategoryID)
				if err != nil {
					return fmt.Errorf("check category %d: %w", row.params.CategoryID, err)
				}
				known[row.params.CategoryID] = exists
			}
			if !exists {
				catErrors = append(catErrors, RowError{
					Row:     row.index,
					Message: fmt.Sprintf("category with id %d not found", row.params.CategoryID),
				})
				continue
			}
			insertRows = append(insertRows, row)
		}

		if len(insertRows) == 0 {
			return nil
		}

		params := make([]repository.CreateProductParams, len(insertRows))
		for i, row := range insertRows {
			params[i] = row.params
		}

		var err error
		if ids, err = productRepo.CreateBatch(ctx, params); err != nil {
			return fmt.Errorf("batch insert: %w", err)
		}

		return nil
	})
	// Rows excluded for a missing category are reported either way; the
	// rollback only concerns the rows that reached the insert.
	report.DBErrors = append(report.DBErrors, catErrors...)

	if txErr != nil {
		// The transaction rolled back, so nothing from this upload was
		// persisted. A single entry covers the whole batch.
		report.DBErrors = append(report.DBErrors, RowError{
			Row:     0,
			Message: fmt.Sprintf("batch insert failed, no rows persisted: %v", txErr),
		})
		return report, nil
	}

	// The commit stands; a row that cannot be confirmed stays persisted
	// and is only reported.
	for i, id := range ids {
		product, err := s.productRepo.GetByID(ctx, id)
		if err != nil {
			report.DBErrors = append(report.DBErrors, RowError{
				Row:     insertRows[i].index,
				Message: fmt.Sprintf("product %d created but could not be confirmed: %v", id, err),
			})
			continue
		}
		report.Created = append(report.Created, product)
	}

	return report, nil
}

func parseImportRow(record []string) (repository.CreateProductParams, error) {
	if len(record) < importColumns {
		return repository.CreateProductParams{},
			fmt.Errorf("invalid number of columns (expected %d, got %d)", importColumns, len(record))
	}

	name := strings.TrimSpace(record[1])
	if name == "" {
		return repository.CreateProductParams{}, errors.New("name is required")
	}

	price, err := money.Parse(record[3])
	if err != nil {
		return repository.CreateProductParams{}, fmt.Errorf("invalid price %q: %v", record[3], err)
	}

	categoryID, err := strconv.ParseInt(strings.TrimSpace(record[4]), 10, 64)
	if err != nil || categoryID <= 0 {
		return repository.CreateProductParams{}, fmt.Errorf("invalid category_id %q", record[4])
	}

	params := repository.CreateProductParams{
		Name:       name,
		Price:      price,
		CategoryID: categoryID,
	}
	if desc := strings.TrimSpace(record[2]); desc != "" {
		params.Description = ptr.New(desc)
	}
	if brand := strings.TrimSpace(record[5]); brand != "" {
		params.Brand = ptr.New(brand)
	}

	return params, nil
}
