package domain_test

import (
	"reflect"
	"testing"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

// assertTotalsConsistent проверяет инвариант агрегатов после перехода.
func assertTotalsConsistent(t *testing.T, state domain.CartState) {
	t.Helper()
	want := domain.ComputeTotals(state.Items)
	if state.Totals != want {
		t.Fatalf("inconsistent totals: state has %+v, recompute gives %+v", state.Totals, want)
	}
}

func TestReduce_AddItem_NewAndExisting(t *testing.T) {
	p := makeProduct(1, "shirt", 19.99)

	state := domain.Reduce(domain.EmptyCart(), domain.AddItem{Product: p})
	assertTotalsConsistent(t, state)
	if len(state.Items) != 1 || state.Items[0].Quantity != 1 {
		t.Fatalf("expected single item with quantity 1, got %+v", state.Items)
	}

	// Повторное добавление того же товара инкрементирует количество,
	// а не создаёт вторую позицию.
	state = domain.Reduce(state, domain.AddItem{Product: p})
	assertTotalsConsistent(t, state)
	if len(state.Items) != 1 || state.Items[0].Quantity != 2 {
		t.Fatalf("expected single item with quantity 2, got %+v", state.Items)
	}
}

func TestReduce_AddItem_DoesNotRefreshSnapshotFields(t *testing.T) {
	p := makeProduct(1, "shirt", 19.99)
	state := domain.Reduce(domain.EmptyCart(), domain.AddItem{Product: p})

	// Цена в каталоге изменилась между добавлениями.
	updated := p
	updated.Price = 29.99
	updated.Title = "shirt v2"

	state = domain.Reduce(state, domain.AddItem{Product: updated})
	if state.Items[0].Price != 19.99 || state.Items[0].Title != "shirt" {
		t.Fatalf("repeat add must not refresh denormalized fields, got %+v", state.Items[0])
	}
	if want := 2 * 19.99; state.TotalPrice != want {
		t.Fatalf("expected total price %v, got %v", want, state.TotalPrice)
	}
}

func TestReduce_AddItem_PreservesInsertionOrder(t *testing.T) {
	state := domain.EmptyCart()
	state = domain.Reduce(state, domain.AddItem{Product: makeProduct(3, "c", 1)})
	state = domain.Reduce(state, domain.AddItem{Product: makeProduct(1, "a", 1)})
	state = domain.Reduce(state, domain.AddItem{Product: makeProduct(2, "b", 1)})
	state = domain.Reduce(state, domain.UpdateQuantity{ProductID: 1, Quantity: 5})

	ids := []int64{state.Items[0].ProductID, state.Items[1].ProductID, state.Items[2].ProductID}
	if !reflect.DeepEqual(ids, []int64{3, 1, 2}) {
		t.Fatalf("insertion order not preserved: %v", ids)
	}
}

func TestReduce_AddMultipleItems(t *testing.T) {
	p := makeProduct(1, "shirt", 10.00)

	state := domain.Reduce(domain.EmptyCart(), domain.AddMultipleItems{Product: p, Quantity: 3})
	assertTotalsConsistent(t, state)
	if len(state.Items) != 1 || state.Items[0].Quantity != 3 {
		t.Fatalf("expected one item with quantity 3, got %+v", state.Items)
	}
	if want := 3 * p.Price; state.TotalPrice != want {
		t.Fatalf("expected total price %v, got %v", want, state.TotalPrice)
	}

	// Повтор над существующей позицией суммирует количества.
	state = domain.Reduce(state, domain.AddMultipleItems{Product: p, Quantity: 2})
	if state.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", state.Items[0].Quantity)
	}

	// Количество < 1 — no-op по предусловию редьюсера.
	before := state
	state = domain.Reduce(state, domain.AddMultipleItems{Product: p, Quantity: 0})
	if !reflect.DeepEqual(before, state) {
		t.Fatal("quantity < 1 must be a no-op")
	}
}

func TestReduce_RemoveItem(t *testing.T) {
	p := makeProduct(1, "shirt", 10.00)
	state := domain.Reduce(domain.EmptyCart(), domain.AddItem{Product: p})

	state = domain.Reduce(state, domain.RemoveItem{ProductID: 1})
	assertTotalsConsistent(t, state)
	if state.Contains(1) {
		t.Fatal("expected product 1 removed")
	}
	if state.TotalItems != 0 || state.TotalPrice != 0 {
		t.Fatalf("expected zero totals, got %+v", state.Totals)
	}

	// Удаление отсутствующей позиции — no-op, а не ошибка.
	before := state
	state = domain.Reduce(state, domain.RemoveItem{ProductID: 42})
	if !reflect.DeepEqual(before, state) {
		t.Fatal("removing absent item must not change state")
	}
}

func TestReduce_UpdateQuantity(t *testing.T) {
	p := makeProduct(1, "shirt", 10.00)

	cases := []struct {
		name     string
		quantity int
		wantLen  int
		wantQty  int
	}{
		{name: "set positive quantity", quantity: 4, wantLen: 1, wantQty: 4},
		{name: "zero removes item", quantity: 0, wantLen: 0},
		{name: "negative removes item", quantity: -3, wantLen: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := domain.Reduce(domain.EmptyCart(), domain.AddItem{Product: p})
			state = domain.Reduce(state, domain.UpdateQuantity{ProductID: 1, Quantity: tc.quantity})
			assertTotalsConsistent(t, state)
			if len(state.Items) != tc.wantLen {
				t.Fatalf("expected %d items, got %+v", tc.wantLen, state.Items)
			}
			if tc.wantLen > 0 && state.Items[0].Quantity != tc.wantQty {
				t.Fatalf("expected quantity %d, got %d", tc.wantQty, state.Items[0].Quantity)
			}
		})
	}
}

func TestReduce_UpdateQuantityZero_EquivalentToRemove(t *testing.T) {
	p1 := makeProduct(1, "shirt", 10.00)
	p2 := makeProduct(2, "mug", 3.50)

	base := domain.Reduce(domain.EmptyCart(), domain.AddItem{Product: p1})
	base = domain.Reduce(base, domain.AddMultipleItems{Product: p2, Quantity: 2})

	viaUpdate := domain.Reduce(base, domain.UpdateQuantity{ProductID: 1, Quantity: 0})
	viaRemove := domain.Reduce(base, domain.RemoveItem{ProductID: 1})

	if !reflect.DeepEqual(viaUpdate, viaRemove) {
		t.Fatalf("UpdateQuantity(id, 0) must equal RemoveItem(id): %+v vs %+v", viaUpdate, viaRemove)
	}
}

func TestReduce_UpdateQuantity_AbsentItemIsNoop(t *testing.T) {
	p := makeProduct(1, "shirt", 10.00)
	state := domain.Reduce(domain.EmptyCart(), domain.AddItem{Product: p})

	after := domain.Reduce(state, domain.UpdateQuantity{ProductID: 99, Quantity: 5})
	if !reflect.DeepEqual(state, after) {
		t.Fatal("updating absent item must leave state unchanged")
	}
}

func TestReduce_LoadCart_ReplacesWholesale(t *testing.T) {
	state := domain.Reduce(domain.EmptyCart(), domain.AddItem{Product: makeProduct(1, "old", 1.00)})

	loaded := []domain.LineItem{
		{ProductID: 5, Title: "restored", Quantity: 2, Price: 7.25, Image: "img"},
	}
	state = domain.Reduce(state, domain.LoadCart{Items: loaded})
	assertTotalsConsistent(t, state)

	if len(state.Items) != 1 || state.Items[0].ProductID != 5 {
		t.Fatalf("expected wholesale replacement, got %+v", state.Items)
	}
	if state.TotalItems != 2 || state.TotalPrice != 2*7.25 {
		t.Fatalf("expected recomputed totals, got %+v", state.Totals)
	}
}

func TestReduce_ClearCart(t *testing.T) {
	state := domain.Reduce(domain.EmptyCart(), domain.AddMultipleItems{Product: makeProduct(1, "shirt", 10), Quantity: 3})

	state = domain.Reduce(state, domain.ClearCart{})
	if len(state.Items) != 0 || state.TotalItems != 0 || state.TotalPrice != 0 {
		t.Fatalf("expected empty initial state, got %+v", state)
	}
}

func TestReduce_DoesNotMutateInputState(t *testing.T) {
	p := makeProduct(1, "shirt", 10.00)
	original := domain.Reduce(domain.EmptyCart(), domain.AddItem{Product: p})
	snapshot := original.Clone()

	_ = domain.Reduce(original, domain.AddItem{Product: p})
	_ = domain.Reduce(original, domain.UpdateQuantity{ProductID: 1, Quantity: 9})
	_ = domain.Reduce(original, domain.RemoveItem{ProductID: 1})

	if !reflect.DeepEqual(original, snapshot) {
		t.Fatalf("reducer mutated input state: %+v", original)
	}
}

// Инвариант из свойств системы: после каждого действия агрегаты равны
// суммам по текущим позициям.
func TestReduce_TotalsInvariantOverActionSequence(t *testing.T) {
	p1 := makeProduct(1, "shirt", 19.99)
	p2 := makeProduct(2, "mug", 3.50)
	p3 := makeProduct(3, "cap", 12.00)

	actions := []domain.Action{
		domain.AddItem{Product: p1},
		domain.AddMultipleItems{Product: p2, Quantity: 4},
		domain.AddItem{Product: p1},
		domain.UpdateQuantity{ProductID: 2, Quantity: 1},
		domain.AddItem{Product: p3},
		domain.RemoveItem{ProductID: 1},
		domain.UpdateQuantity{ProductID: 3, Quantity: 0},
		domain.AddMultipleItems{Product: p1, Quantity: 2},
		domain.ClearCart{},
		domain.AddItem{Product: p2},
	}

	state := domain.EmptyCart()
	for i, action := range actions {
		state = domain.Reduce(state, action)
		want := domain.ComputeTotals(state.Items)
		if state.Totals != want {
			t.Fatalf("after action %d (%T): totals %+v, recompute %+v", i, action, state.Totals, want)
		}
	}
}
