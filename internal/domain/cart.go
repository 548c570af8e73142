package domain

// LineItem — позиция корзины: денормализованный срез товара на момент
// первого добавления плюс количество. Поля, кроме количества, при
// повторных добавлениях не обновляются.
type LineItem struct {
	ProductID int64   `json:"id"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

// Totals — агрегаты корзины, производные от позиций.
type Totals struct {
	TotalItems int     `json:"total_items"`
	TotalPrice float64 `json:"total_price"`
}

// ComputeTotals пересчитывает агрегаты по списку позиций.
func ComputeTotals(items []LineItem) Totals {
	var totals Totals
	for _, item := range items {
		totals.TotalItems += item.Quantity
		totals.TotalPrice += item.Price * float64(item.Quantity)
	}
	return totals
}

// CartState — состояние корзины: позиции в порядке первого добавления
// и согласованные с ними агрегаты.
type CartState struct {
	Items []LineItem `json:"items"`
	Totals
}

// EmptyCart возвращает начальное пустое состояние.
func EmptyCart() CartState {
	return CartState{}
}

// find возвращает индекс позиции по товару или -1.
func (s CartState) find(productID int64) int {
	for i, item := range s.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// Contains сообщает, есть ли товар в корзине.
func (s CartState) Contains(productID int64) bool {
	return s.find(productID) >= 0
}

// Quantity возвращает количество по товару или 0 для отсутствующего.
func (s CartState) Quantity(productID int64) int {
	if i := s.find(productID); i >= 0 {
		return s.Items[i].Quantity
	}
	return 0
}

// Item возвращает позицию по товару и признак её наличия.
func (s CartState) Item(productID int64) (LineItem, bool) {
	if i := s.find(productID); i >= 0 {
		return s.Items[i], true
	}
	return LineItem{}, false
}

// Clone возвращает независимую копию состояния.
func (s CartState) Clone() CartState {
	return CartState{Items: cloneItems(s.Items), Totals: s.Totals}
}

func cloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	cloned := make([]LineItem, len(items))
	copy(cloned, items)
	return cloned
}
