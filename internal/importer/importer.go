// Package importer reconciles product spreadsheets against the
// catalog: it matches rows by barcode (or name), auto-creates missing
// categories and subcategories, and reports per-row errors without
// aborting the batch.
package importer

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/noespetshop/storefront/internal/domain"
	"github.com/noespetshop/storefront/internal/store"
)

// Report summarizes one import run. Row numbers are 1-based and count
// the header row, so the first data row is row 2.
type Report struct {
	Message              string     `json:"message"`
	TotalRows            int        `json:"totalRows"`
	Created              int        `json:"created"`
	Updated              int        `json:"updated"`
	CategoriesCreated    []string   `json:"categoriesCreated"`
	SubcategoriesCreated []string   `json:"subcategoriesCreated"`
	Errors               []RowError `json:"errors"`
}

type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (r *Report) addError(row int, msg string) {
	r.Errors = append(r.Errors, RowError{Row: row, Message: msg})
}

// Run applies the parsed rows to the catalog, strictly in order.
func Run(cat store.Catalog, rows []Row) (*Report, error) {
	report := &Report{
		Message:              "Importação concluída.",
		TotalRows:            len(rows),
		CategoriesCreated:    []string{},
		SubcategoriesCreated: []string{},
		Errors:               []RowError{},
	}

	products, err := cat.ListProducts(store.ProductFilter{})
	if err != nil {
		return nil, err
	}
	categories, err := cat.ListCategories()
	if err != nil {
		return nil, err
	}

	seenBarcodes := map[string]int{}

	for i, row := range rows {
		rowNumber := i + 2

		name := normalizeText(pickField(row,
			"Descrição", "Descricao", "DESCRIÇÃO", "Produto", "Nome"))
		salePrice := normalizeNumber(pickField(row,
			"Preço de Venda", "Preco de Venda", "PREÇO DE VENDA", "Preco Venda", "Preço", "Valor"))
		costPrice := normalizeNumber(pickField(row,
			"Preço de Custo", "Preco de Custo", "PREÇO DE CUSTO"))
		barcode := normalizeText(pickField(row,
			"CodBarras", "CODBARRAS", "Código de Barras", "Cod Barras", "codigo de barras"))
		categoryName := normalizeText(pickField(row, "Categoria", "CATEGORIA"))
		subcategoryName := normalizeText(pickField(row,
			"SubCategoria", "Subcategoria", "SUBCATEGORIA"))
		featured := parseFeatured(pickField(row, "Destaque", "DESTAQUE"))

		if name == "" || salePrice == nil {
			report.addError(rowNumber, "Descrição e Preço de Venda são obrigatórios.")
			continue
		}

		if subcategoryName != "" && categoryName == "" {
			report.addError(rowNumber, "Informe a Categoria para vincular a SubCategoria informada.")
			continue
		}

		resolvedCategory := categoryName
		var resolvedCategoryID *int64

		if categoryName != "" {
			existing := findTopCategory(categories, categoryName)
			if existing != nil {
				resolvedCategory = existing.Name
				id := existing.ID
				resolvedCategoryID = &id
			} else {
				created, err := cat.CreateCategory(domain.Category{Name: categoryName})
				if err != nil {
					report.addError(rowNumber, err.Error())
					continue
				}
				categories = append(categories, created)
				report.CategoriesCreated = append(report.CategoriesCreated, created.Name)
				resolvedCategory = created.Name
				id := created.ID
				resolvedCategoryID = &id
			}
		}

		resolvedSubcategory := ""
		if subcategoryName != "" {
			existing := findSubcategory(categories, subcategoryName, resolvedCategoryID)
			if existing != nil {
				resolvedSubcategory = existing.Name
			} else {
				if resolvedCategoryID == nil {
					report.addError(rowNumber, "Não foi possível vincular a SubCategoria à Categoria informada.")
					continue
				}
				created, err := cat.CreateCategory(domain.Category{
					Name:     subcategoryName,
					ParentID: resolvedCategoryID,
				})
				if err != nil {
					report.addError(rowNumber, err.Error())
					continue
				}
				categories = append(categories, created)
				report.SubcategoriesCreated = append(report.SubcategoriesCreated, created.Name)
				resolvedSubcategory = created.Name
			}
		}

		existingProduct := findProduct(products, barcode, name)

		if barcode != "" {
			if seenRow, ok := seenBarcodes[barcode]; ok {
				report.addError(rowNumber,
					fmt.Sprintf("Código de barras repetido (já informado na linha %d).", seenRow))
				continue
			}
			seenBarcodes[barcode] = rowNumber
		}

		description := normalizeText(pickField(row, "Descrição Detalhada", "Descricao Detalhada"))
		if description == "" {
			description = name
		}

		if existingProduct != nil {
			patch := store.ProductPatch{
				Name:        &name,
				Description: &description,
				Price:       salePrice,
				CostPrice:   costPrice,
				Category:    &resolvedCategory,
				Subcategory: &resolvedSubcategory,
				Barcode:     &barcode,
				Featured:    featured, // nil keeps the existing flag
			}
			updated, err := cat.UpdateProduct(existingProduct.ID, patch)
			if err != nil {
				report.addError(rowNumber, err.Error())
				continue
			}
			if updated == nil {
				report.addError(rowNumber, "Não foi possível atualizar o produto existente.")
				continue
			}
			report.Updated++
		} else {
			p := domain.Product{
				Name:        name,
				Description: description,
				Price:       *salePrice,
				CostPrice:   costPrice,
				Category:    resolvedCategory,
				Subcategory: resolvedSubcategory,
				Barcode:     barcode,
			}
			if featured != nil {
				p.Featured = *featured
			}
			created, err := cat.CreateProduct(p)
			if err != nil {
				report.addError(rowNumber, err.Error())
				continue
			}
			products = append(products, created)
			report.Created++
		}
	}

	return report, nil
}

func normalizeText(v string) string {
	return strings.TrimSpace(v)
}

// normalizeNumber parses decimal cells tolerantly: internal whitespace
// is stripped and a comma decimal separator is accepted. Unparseable
// or empty cells return nil.
func normalizeNumber(v string) *float64 {
	s := strings.Join(strings.Fields(v), "")
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	parsed, err := cast.ToFloat64E(s)
	if err != nil {
		return nil
	}
	return &parsed
}

// parseFeatured maps the Destaque cell onto a tri-state flag: nil for
// an empty cell, true for sim/s/true/1/yes, false otherwise.
func parseFeatured(v string) *bool {
	s := strings.ToLower(strings.TrimSpace(v))
	if s == "" {
		return nil
	}
	switch s {
	case "sim", "s", "true", "1", "yes":
		b := true
		return &b
	default:
		b := false
		return &b
	}
}

func findTopCategory(categories []domain.Category, name string) *domain.Category {
	for i := range categories {
		if categories[i].ParentID == nil && strings.EqualFold(categories[i].Name, name) {
			return &categories[i]
		}
	}
	return nil
}

func findSubcategory(categories []domain.Category, name string, parentID *int64) *domain.Category {
	if parentID == nil {
		return nil
	}
	for i := range categories {
		ct := &categories[i]
		if ct.ParentID != nil && *ct.ParentID == *parentID && strings.EqualFold(ct.Name, name) {
			return ct
		}
	}
	return nil
}

// findProduct matches by barcode when the row has one, by
// case-insensitive name otherwise.
func findProduct(products []domain.Product, barcode, name string) *domain.Product {
	for i := range products {
		p := &products[i]
		if barcode != "" {
			if strings.TrimSpace(p.Barcode) == barcode {
				return p
			}
			continue
		}
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return nil
}
