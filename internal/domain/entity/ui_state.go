package entity

import (
	"fmt"
	"time"
)

// SortColumn jadval ustuni
type SortColumn string

const (
	SortNone        SortColumn = ""
	SortID          SortColumn = "id"
	SortName        SortColumn = "name"
	SortDescription SortColumn = "description"
	SortPrice       SortColumn = "price"
)

// SortColumns barcha saralanadigan ustunlar (jadvaldagi tartibda)
var SortColumns = []SortColumn{SortID, SortName, SortDescription, SortPrice}

// ParseSortColumn matndan ustunni aniqlash
func ParseSortColumn(raw string) (SortColumn, error) {
	for _, c := range SortColumns {
		if string(c) == raw {
			return c, nil
		}
	}
	return SortNone, fmt.Errorf("unknown sort column %q", raw)
}

// SortDirection saralash yo'nalishi
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortState saralash holati (Column bo'sh bo'lsa saralanmaydi)
type SortState struct {
	Column    SortColumn
	Direction SortDirection
}

// PaginationState sahifalash holati
type PaginationState struct {
	CurrentPage  int
	ItemsPerPage int
}

// FormEditState forma rejimi: EditingID nil bo'lsa "create", aks holda "update"
type FormEditState struct {
	EditingID *int64
}

// Editing tahrirlash rejimidami
func (s FormEditState) Editing() bool {
	return s.EditingID != nil
}

// NotificationKind bildirishnoma turi
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification vaqtinchalik (toast) bildirishnoma
type Notification struct {
	Message   string
	Kind      NotificationKind
	CreatedAt time.Time
}

// Expired TTL o'tganini tekshirish
func (n Notification) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(n.CreatedAt) >= ttl
}
