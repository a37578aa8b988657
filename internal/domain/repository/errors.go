package repository

import (
	"errors"
	"net/http"
	"strings"
)

// TransportError tarmoq xatosi yoki o'qib bo'lmaydigan javobli muvaffaqiyatsiz status
type TransportError struct {
	Op      string
	Status  int // 0 bo'lsa javob umuman kelmagan
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Op + " failed"
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError server payloadni rad etdi, javobda "message" bor
type ValidationError struct {
	Status  int
	Message string
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + " (" + strings.Join(e.Details, "; ") + ")"
}

// IsNotFound 404 javobni tekshirish
func IsNotFound(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Status == http.StatusNotFound
}
