package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"crispybid/internal/apperrors"
	"crispybid/internal/models"
	"crispybid/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Required catalog columns. Header matching is case-insensitive and trimmed;
// "desc" must be present as a column even though its values are optional.
var requiredProductHeaders = []string{"type", "model", "sn", "desc", "st_price"}

// ProductImportResult aggregates the outcome of one catalog import.
type ProductImportResult struct {
	Processed int      `json:"processed"`
	Created   int      `json:"created"`
	Updated   int      `json:"updated"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors"`
}

// ProductImportService imports a product catalog from a tabular file,
// upserting products by serial number and auto-creating product types.
type ProductImportService struct {
	tx repositories.TxManager
}

// NewProductImportService creates a new ProductImportService.
func NewProductImportService(tx repositories.TxManager) *ProductImportService {
	return &ProductImportService{
		tx: tx,
	}
}

// ImportProducts parses the uploaded file (CSV, or XLSX when the filename
// says so) and upserts one product per row. The header is validated before
// any row is touched: a missing column fails the whole operation with zero
// rows processed. Row failures are recorded and never abort the rest of the
// file; all surviving row writes commit in a single transaction.
func (s *ProductImportService) ImportProducts(file io.Reader, filename string) (*ProductImportResult, error) {
	header, rows, err := readTable(file, filename)
	if err != nil {
		return nil, err
	}

	columns, err := mapProductHeaders(header)
	if err != nil {
		return nil, err
	}

	result := &ProductImportResult{Errors: []string{}}
	err = s.tx.InTransaction(func(repos *repositories.RepoSet) error {
		for i, row := range rows {
			rowNumber := i + 1
			result.Processed++
			created, rowErr := s.upsertRow(repos, columns, row)
			if rowErr != nil {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNumber, rowErr.Error()))
				continue
			}
			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Internal("failed to commit product import", err)
	}

	return result, nil
}

// upsertRow imports one row, reporting whether a new product was created.
func (s *ProductImportService) upsertRow(repos *repositories.RepoSet, columns map[string]int, row []string) (bool, error) {
	serial, err := requiredField(columns, row, "sn")
	if err != nil {
		return false, err
	}
	model, err := requiredField(columns, row, "model")
	if err != nil {
		return false, err
	}
	typeName, err := requiredField(columns, row, "type")
	if err != nil {
		return false, err
	}
	description := optionalField(columns, row, "desc")
	rawPrice, err := requiredField(columns, row, "st_price")
	if err != nil {
		return false, err
	}
	startingPrice, err := decimal.NewFromString(rawPrice)
	if err != nil {
		return false, apperrors.Validationf("field 'st_price' must be a valid decimal number")
	}

	productType, err := s.resolveProductType(repos, typeName)
	if err != nil {
		return false, err
	}

	isNew := false
	product, err := repos.Products.GetBySerial(serial)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return false, err
		}
		isNew = true
		product = &models.Product{Serial: serial}
	}

	// Re-importing never reopens an auction: closed flips once, by an admin.
	product.Model = model
	product.Description = description
	product.ProductTypeID = productType.ID
	product.ProductType = productType
	product.StartingPrice = decimal.NewNullDecimal(startingPrice)

	now := time.Now()
	product.UpdatedAt = now
	if isNew {
		product.CreatedAt = now
		return true, repos.Products.Create(product)
	}
	return false, repos.Products.Update(product)
}

// resolveProductType finds a type by case-insensitive name, creating it on
// first encounter.
func (s *ProductImportService) resolveProductType(repos *repositories.RepoSet, name string) (*models.ProductType, error) {
	productType, err := repos.ProductTypes.GetByNameIgnoreCase(name)
	if err == nil {
		return productType, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}
	productType = &models.ProductType{Name: name}
	if err := repos.ProductTypes.Create(productType); err != nil {
		// A racing import may have committed the type first.
		if apperrors.KindOf(err) == apperrors.KindConflict {
			return repos.ProductTypes.GetByNameIgnoreCase(name)
		}
		return nil, err
	}
	return productType, nil
}

func mapProductHeaders(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredProductHeaders {
		if _, ok := columns[name]; !ok {
			return nil, apperrors.Validationf("missing required CSV header: %s", name)
		}
	}
	return columns, nil
}

func requiredField(columns map[string]int, row []string, name string) (string, error) {
	value := optionalField(columns, row, name)
	if value == "" {
		return "", apperrors.Validationf("field '%s' is required", name)
	}
	return value, nil
}

func optionalField(columns map[string]int, row []string, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// readTable splits the uploaded file into a header row and data rows. XLSX
// workbooks are read from their first sheet; everything else is parsed as
// CSV.
func readTable(file io.Reader, filename string) ([]string, [][]string, error) {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return readXLSX(file)
	}
	return readCSV(file)
}

func readCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // ragged rows become row-level failures, not a dead file

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, apperrors.Internal("failed to read CSV file", err)
	}
	if len(records) == 0 {
		return nil, nil, apperrors.Validationf("CSV file is empty")
	}
	return records[0], records[1:], nil
}

func readXLSX(file io.Reader) ([]string, [][]string, error) {
	workbook, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, apperrors.Internal("failed to read XLSX file", err)
	}
	defer workbook.Close()

	rows, err := workbook.GetRows(workbook.GetSheetName(0))
	if err != nil {
		return nil, nil, apperrors.Internal("failed to read XLSX sheet", err)
	}
	if len(rows) == 0 {
		return nil, nil, apperrors.Validationf("XLSX file is empty")
	}
	return rows[0], rows[1:], nil
}
