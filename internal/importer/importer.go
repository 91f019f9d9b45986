package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type CategoryWriter interface {
	Upsert(ctx context.Context, category domain.Category) (*domain.Category, error)
}

// CSVImporter reads a catalog CSV and inserts/updates products, creating
// categories by name as they are first seen.
//
// Columns: id, name, description, price, image_url, category, stock_quantity,
// rating, is_active. Only name and price are required; price is a currency
// amount such as 19.99.
type CSVImporter struct {
	reader       *csv.Reader
	productRepo  ProductWriter
	categoryRepo CategoryWriter
	categories   map[string]string
}

func NewCSVImporter(r io.Reader, products ProductWriter, categories CategoryWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:       csvr,
		productRepo:  products,
		categoryRepo: categories,
		categories:   map[string]string{},
	}
}

type csvRow struct {
	Line     int
	ID       string
	Name     string
	Desc     string
	Price    string
	ImageURL string
	Category string
	Stock    string
	Rating   string
	IsActive string
}

// Run parses CSV rows and upserts one product per row. It stops at the first
// invalid row and reports how many products were imported before it.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("missing required column \"name\"")
	}
	if _, ok := index["price"]; !ok {
		return 0, errors.New("missing required column \"price\"")
	}

	var imported int
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		row := parseRow(record, index)
		if row == nil {
			continue
		}
		row.Line = line
		if err := i.save(ctx, row); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	p, err := row.toProduct()
	if err != nil {
		return fmt.Errorf("line %d: %w", row.Line, err)
	}
	if row.Category != "" {
		categoryID, err := i.ensureCategory(ctx, row.Category)
		if err != nil {
			return fmt.Errorf("line %d: category %q: %w", row.Line, row.Category, err)
		}
		p.CategoryID = &categoryID
	}

	if _, err := i.productRepo.Upsert(ctx, p); err != nil {
		return fmt.Errorf("line %d: upsert product %q: %w", row.Line, row.Name, err)
	}
	return nil
}

func (i *CSVImporter) ensureCategory(ctx context.Context, name string) (string, error) {
	key := strings.ToLower(name)
	if id, ok := i.categories[key]; ok {
		return id, nil
	}
	c, err := i.categoryRepo.Upsert(ctx, domain.Category{ID: domain.StableID("category", name), Name: name})
	if err != nil {
		return "", err
	}
	i.categories[key] = c.ID
	return c.ID, nil
}

func (r *csvRow) toProduct() (domain.Product, error) {
	if r.Name == "" {
		return domain.Product{}, errors.New("name is required")
	}
	price, err := decimal.NewFromString(r.Price)
	if err != nil || price.IsNegative() {
		return domain.Product{}, fmt.Errorf("invalid price %q", r.Price)
	}

	id := r.ID
	if id == "" {
		id = domain.StableID("product", r.Name)
	} else if _, err := uuid.Parse(id); err != nil {
		return domain.Product{}, fmt.Errorf("invalid id %q", r.ID)
	}

	p := domain.Product{
		ID:          id,
		Name:        r.Name,
		Description: r.Desc,
		PriceCents:  price.Shift(2).Round(0).IntPart(),
		ImageURL:    r.ImageURL,
		IsActive:    true,
	}
	if r.Stock != "" {
		if p.StockQuantity, err = strconv.Atoi(r.Stock); err != nil || p.StockQuantity < 0 {
			return domain.Product{}, fmt.Errorf("invalid stock_quantity %q", r.Stock)
		}
	}
	if r.Rating != "" {
		if p.Rating, err = strconv.ParseFloat(r.Rating, 64); err != nil || p.Rating < 0 || p.Rating > 5 {
			return domain.Product{}, fmt.Errorf("invalid rating %q", r.Rating)
		}
	}
	if r.IsActive != "" {
		if p.IsActive, err = strconv.ParseBool(r.IsActive); err != nil {
			return domain.Product{}, fmt.Errorf("invalid is_active %q", r.IsActive)
		}
	}
	return p, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	row := &csvRow{
		ID:       pick(record, index, "id"),
		Name:     pick(record, index, "name"),
		Desc:     pick(record, index, "description"),
		Price:    pick(record, index, "price"),
		ImageURL: pick(record, index, "image_url"),
		Category: pick(record, index, "category"),
		Stock:    pick(record, index, "stock_quantity"),
		Rating:   pick(record, index, "rating"),
		IsActive: pick(record, index, "is_active"),
	}
	if row.Name == "" && row.Price == "" {
		return nil
	}
	return row
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
