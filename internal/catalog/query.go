package catalog

import (
	"sort"
	"strings"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

// SortKey задаёт критерий сортировки каталога.
type SortKey string

const (
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortTitle     SortKey = "name"
	SortRating    SortKey = "rating"
)

// ParseSortKey валидирует строковый ключ сортировки из запроса.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortPriceAsc, SortPriceDesc, SortTitle, SortRating:
		return SortKey(s), true
	}
	return "", false
}

// FilterProducts — чистая фильтрация по подстроке (без учёта регистра,
// по названию ИЛИ описанию) и по точному совпадению категории; условия
// объединяются по И. Пустая строка — подстрока чего угодно, так что
// пустой запрос пропускает всё: это семантика вызывающей стороны,
// фильтр её не навязывает.
func FilterProducts(products []domain.Product, query, category string) []domain.Product {
	needle := strings.ToLower(query)

	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		matchesQuery := strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle)
		matchesCategory := category == "" || p.Category == category

		if matchesQuery && matchesCategory {
			result = append(result, p)
		}
	}
	return result
}

// SortProducts возвращает новый отсортированный срез; вход не мутируется.
// Сортировка стабильная.
func SortProducts(products []domain.Product, key SortKey) []domain.Product {
	sorted := make([]domain.Product, len(products))
	copy(sorted, products)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch key {
		case SortPriceAsc:
			return a.Price < b.Price
		case SortPriceDesc:
			return b.Price < a.Price
		case SortTitle:
			return a.Title < b.Title
		case SortRating:
			return b.Rating.Rate < a.Rating.Rate
		}
		return false
	})

	return sorted
}
