// internal/core/domain/order.go
package domain

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidOrder  = errors.New("invalid order")
)

// OrderStatus is the picking state of one order line
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusCompleted OrderStatus = "Completed"
)

// DefaultClientName is used in exports when the order id carries no client part
const DefaultClientName = "업체명미지정"

// Order is one line of an imported purchase order
type Order struct {
	ID               uuid.UUID       `json:"id"`
	OrderID          string          `json:"order_id"`
	JANCode          string          `json:"jan_code"`
	ProductName      string          `json:"product_name"`
	Brand            string          `json:"brand"`
	Price            decimal.Decimal `json:"price"`
	LotQty           string          `json:"lot_qty"`
	OrderedQty       int             `json:"ordered_qty"`
	PriceType        string          `json:"price_type"`
	ClientRemark     string          `json:"client_remark"`
	Remark           string          `json:"remark"`
	Status           OrderStatus     `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	OriginalRowIndex int             `json:"original_row_index"`
	TotalGroupCount  int             `json:"total_group_count"`
	PickedQty        *int            `json:"picked_qty,omitempty"`
	CompletedAt      *time.Time      `json:"completed_at"`
	CompletedBy      *string         `json:"completed_by,omitempty"`

	// Downloaded is per user and not stored with the line
	Downloaded bool `json:"downloaded"`
}

// Validate performs domain validation on the order line
func (o *Order) Validate() error {
	if strings.TrimSpace(o.OrderID) == "" {
		return fmt.Errorf("%w: order_id is required", ErrInvalidOrder)
	}
	if o.OrderedQty < 0 {
		return fmt.Errorf("%w: ordered_qty cannot be negative", ErrInvalidOrder)
	}
	if o.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidOrder)
	}
	if o.PickedQty != nil && *o.PickedQty < 0 {
		return fmt.Errorf("%w: picked_qty cannot be negative", ErrInvalidOrder)
	}
	switch o.Status {
	case "":
		o.Status = StatusPending
	case StatusPending, StatusCompleted:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidOrder, o.Status)
	}
	return nil
}

// PrepareForStorage fills defaults before insert
func (o *Order) PrepareForStorage(now time.Time) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	if o.LotQty == "" {
		o.LotQty = "1"
	}
}

// IsCompleted reports whether the line has been picked
func (o *Order) IsCompleted() bool {
	return o.Status == StatusCompleted
}

// EffectivePickedQty falls back to the ordered quantity when nothing was recorded
func (o *Order) EffectivePickedQty() int {
	if o.PickedQty != nil {
		return *o.PickedQty
	}
	return o.OrderedQty
}

// ActivityDate is the day used by the completed-tab date filter
func (o *Order) ActivityDate() time.Time {
	if o.CompletedAt != nil {
		return *o.CompletedAt
	}
	return o.CreatedAt
}

// BuildOrderID composes the group key for a spreadsheet row
func BuildOrderID(date, clock, client string) string {
	return date + clock + "-" + client
}

// OrderNumber is the part of an order id before the first '-', or the whole id
func OrderNumber(orderID string) string {
	number, _, _ := strings.Cut(orderID, "-")
	if number == "" {
		return orderID
	}
	return number
}

// ExportClientName is everything after the first '-', defaulting when empty
func ExportClientName(orderID string) string {
	_, rest, _ := strings.Cut(orderID, "-")
	if rest == "" {
		return DefaultClientName
	}
	return rest
}

// NotifyClientName is the part after the last '-', as shown in picking notices
func NotifyClientName(orderID string) string {
	idx := strings.LastIndex(orderID, "-")
	if idx < 0 {
		return orderID
	}
	return orderID[idx+1:]
}

var unsafeFileChars = regexp.MustCompile(`[\\/:*?"<>|]`)

// ExportFileName builds {orderNumber}_{clientName}.xlsx with filesystem-hostile characters replaced
func ExportFileName(orderID string) string {
	name := fmt.Sprintf("%s_%s.xlsx", OrderNumber(orderID), ExportClientName(orderID))
	return unsafeFileChars.ReplaceAllString(name, "_")
}

// AssignGroupCounts sets TotalGroupCount on every line to the number of lines sharing its order id
func AssignGroupCounts(orders []Order) {
	counts := make(map[string]int, len(orders))
	for _, o := range orders {
		counts[o.OrderID]++
	}
	for i := range orders {
		orders[i].TotalGroupCount = counts[orders[i].OrderID]
	}
}

// OrderFilter narrows ListOrders
type OrderFilter struct {
	Status  OrderStatus
	OrderID string
	Search  string
	From    *time.Time // inclusive day
	To      *time.Time // inclusive day
}

// Matches applies the filter in memory. Repositories push the same rules into SQL.
func (f OrderFilter) Matches(o *Order) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.OrderID != "" && o.OrderID != f.OrderID {
		return false
	}
	if kw := strings.ToLower(strings.TrimSpace(f.Search)); kw != "" {
		if !strings.Contains(strings.ToLower(o.OrderID), kw) &&
			!strings.Contains(strings.ToLower(o.ProductName), kw) &&
			!strings.Contains(strings.ToLower(o.JANCode), kw) {
			return false
		}
	}
	day := truncateDay(o.ActivityDate())
	if f.From != nil && day.Before(truncateDay(*f.From)) {
		return false
	}
	if f.To != nil && day.After(truncateDay(*f.To)) {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SortByRowIndex orders lines as they appeared in the source spreadsheet
func SortByRowIndex(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OriginalRowIndex < orders[j].OriginalRowIndex
	})
}

// GroupByOrderID splits lines per order id, each group sorted by row index
func GroupByOrderID(orders []Order) map[string][]Order {
	groups := make(map[string][]Order)
	for _, o := range orders {
		groups[o.OrderID] = append(groups[o.OrderID], o)
	}
	for id := range groups {
		SortByRowIndex(groups[id])
	}
	return groups
}
