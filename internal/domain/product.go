package domain

// Rating — агрегированная оценка товара во внешнем каталоге.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product — товар каталога в том виде, в каком его отдаёт внешний API.
type Product struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`
}

// Valid сообщает, пригодна ли запись каталога к показу и добавлению в
// корзину. Записи без идентификатора, названия, изображения или с
// отрицательной ценой отбрасываются при декодировании.
func (p Product) Valid() bool {
	return p.ID > 0 && p.Title != "" && p.Price >= 0 && p.Image != ""
}
