package domain

// Action — переход состояния корзины. Закрытое множество: все
// реализации живут в этом пакете, Reduce разбирает их исчерпывающе.
type Action interface {
	isAction()
}

// LoadCart замещает позиции целиком; применяется при гидратации из
// снапшота.
type LoadCart struct {
	Items []LineItem
}

// AddItem добавляет одну единицу товара.
type AddItem struct {
	Product Product
}

// AddMultipleItems добавляет quantity единиц товара; quantity < 1 —
// no-op.
type AddMultipleItems struct {
	Product  Product
	Quantity int
}

// RemoveItem удаляет позицию; отсутствующая позиция — no-op.
type RemoveItem struct {
	ProductID int64
}

// UpdateQuantity выставляет количество позиции; значение <= 0
// эквивалентно RemoveItem.
type UpdateQuantity struct {
	ProductID int64
	Quantity  int
}

// ClearCart сбрасывает корзину в начальное состояние.
type ClearCart struct{}

func (LoadCart) isAction()         {}
func (AddItem) isAction()          {}
func (AddMultipleItems) isAction() {}
func (RemoveItem) isAction()       {}
func (UpdateQuantity) isAction()   {}
func (ClearCart) isAction()        {}

// Reduce — чистая функция перехода: возвращает новое состояние, не
// трогая входное. Агрегаты в результате всегда согласованы с позициями.
func Reduce(state CartState, action Action) CartState {
	switch a := action.(type) {
	case LoadCart:
		items := cloneItems(a.Items)
		return withTotals(items)

	case AddItem:
		return Reduce(state, AddMultipleItems{Product: a.Product, Quantity: 1})

	case AddMultipleItems:
		if a.Quantity < 1 {
			return state
		}
		items := cloneItems(state.Items)
		if i := state.find(a.Product.ID); i >= 0 {
			// Повторное добавление инкрементирует количество; срез
			// товара, снятый при первом добавлении, не обновляется.
			items[i].Quantity += a.Quantity
			return withTotals(items)
		}
		items = append(items, LineItem{
			ProductID: a.Product.ID,
			Title:     a.Product.Title,
			Quantity:  a.Quantity,
			Price:     a.Product.Price,
			Image:     a.Product.Image,
		})
		return withTotals(items)

	case RemoveItem:
		i := state.find(a.ProductID)
		if i < 0 {
			return state
		}
		items := make([]LineItem, 0, len(state.Items)-1)
		items = append(items, state.Items[:i]...)
		items = append(items, state.Items[i+1:]...)
		return withTotals(items)

	case UpdateQuantity:
		if a.Quantity <= 0 {
			return Reduce(state, RemoveItem{ProductID: a.ProductID})
		}
		i := state.find(a.ProductID)
		if i < 0 {
			return state
		}
		items := cloneItems(state.Items)
		items[i].Quantity = a.Quantity
		return withTotals(items)

	case ClearCart:
		return EmptyCart()
	}

	return state
}

func withTotals(items []LineItem) CartState {
	return CartState{Items: items, Totals: ComputeTotals(items)}
}
