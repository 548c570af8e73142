package catalog

import "fmt"

// Сообщения об ошибках каталога, видимые пользователю.
const (
	// NetworkErrorMessage возвращается при транспортных сбоях и открытом breaker.
	NetworkErrorMessage = "Network error. Please check your connection and try again."
)

// APIError — типизированная ошибка слоя каталога. Дальше границы слоя
// не уходит ничего, кроме значения ошибки с человекочитаемым сообщением.
type APIError struct {
	// StatusCode — HTTP-статус ответа; 0 для транспортных ошибок.
	StatusCode int
	Message    string
	err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.err
}

// newStatusError строит ошибку для не-2xx ответа каталога.
func newStatusError(statusCode int, statusText string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("API request failed: %s", statusText),
	}
}

// newTransportError строит ошибку для сетевого сбоя.
func newTransportError(err error) *APIError {
	return &APIError{
		Message: NetworkErrorMessage,
		err:     err,
	}
}
