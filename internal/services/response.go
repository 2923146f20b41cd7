package services

// Envelope is the uniform success wrapper returned by every operation that
// carries data. List operations that matched nothing still return an Envelope
// with Status "error" and an empty Data slice; that is a valid 200 outcome,
// distinct from the filtered-by entity not existing at all.
type Envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// StatusMessage is the data-less envelope returned by delete operations.
type StatusMessage struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

const (
	statusSuccess = "success"
	statusError   = "error"
)

func success[T any](message string, data T) *Envelope[T] {
	return &Envelope[T]{Status: statusSuccess, Message: message, Data: data}
}

func emptyResult[T any](message string, data T) *Envelope[T] {
	return &Envelope[T]{Status: statusError, Message: message, Data: data}
}
