// internal/core/domain/item.go
package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Field candidates probed in priority order. Upstream schema versions disagree on naming.
var (
	QuantityKeys  = []string{"quantity", "stock", "total_quantity", "qty"}
	SafeStockKeys = []string{"safe_stock", "safeStock", "safe_quantity"}
	NameKeys      = []string{"name", "product_name"}
)

// Item is a catalog record exactly as the upstream returned it.
// The raw fields are kept so the record can be forwarded unchanged.
type Item map[string]any

// CatalogPage is one fetch of the upstream item listing
type CatalogPage struct {
	Items   []Item  `json:"items"`
	Cursor  *string `json:"cursor"`
	HasMore bool    `json:"has_more"`
}

// NextCursor returns the continuation token, empty when absent
func (p *CatalogPage) NextCursor() string {
	if p.Cursor == nil {
		return ""
	}
	return *p.Cursor
}

// Barcode returns the trimmed primary code, empty when unset
func (i Item) Barcode() string {
	v, ok := i["barcode"]
	if !ok || isFalsy(v) {
		return ""
	}
	return strings.TrimSpace(stringify(v))
}

// Barcodes returns the trimmed alternate codes
func (i Item) Barcodes() []string {
	var raw []any
	switch v := i["barcodes"].(type) {
	case []any:
		raw = v
	case []string:
		codes := make([]string, 0, len(v))
		for _, c := range v {
			codes = append(codes, strings.TrimSpace(c))
		}
		return codes
	default:
		return nil
	}
	codes := make([]string, 0, len(raw))
	for _, v := range raw {
		if v == nil {
			continue
		}
		codes = append(codes, strings.TrimSpace(stringify(v)))
	}
	return codes
}

// MatchesBarcode reports whether code equals the primary code or one of the alternates.
// code must already be trimmed.
func (i Item) MatchesBarcode(code string) bool {
	if code == "" {
		return false
	}
	if i.Barcode() == code {
		return true
	}
	for _, alt := range i.Barcodes() {
		if alt == code {
			return true
		}
	}
	return false
}

// Name returns the display name
func (i Item) Name() string {
	for _, key := range NameKeys {
		if v, ok := i[key]; ok && v != nil {
			return stringify(v)
		}
	}
	return ""
}

// Quantity returns the on-hand quantity, 0 when no candidate field is set
func (i Item) Quantity() float64 {
	return FirstDefined(i, QuantityKeys, 0)
}

// SafeStock returns the reorder threshold, 0 when no candidate field is set
func (i Item) SafeStock() float64 {
	return FirstDefined(i, SafeStockKeys, 0)
}

// Snapshot normalizes the item for display and caching
func (i Item) Snapshot(seenAt time.Time) StockSnapshot {
	return StockSnapshot{
		Name:    i.Name(),
		Qty:     i.Quantity(),
		SafeQty: i.SafeStock(),
		Barcode: i.Barcode(),
		SeenAt:  seenAt,
	}
}

// FirstDefined returns the numeric value of the first key present with a
// non-null value. A present value that is not numeric yields 0, it does not
// fall through to later keys. def is returned only when no key is present.
func FirstDefined(record map[string]any, keys []string, def float64) float64 {
	for _, key := range keys {
		v, ok := record[key]
		if !ok || v == nil {
			continue
		}
		return toNumber(v)
	}
	return def
}

// StockSnapshot is the normalized view of an item: {name, qty, safe_qty}
type StockSnapshot struct {
	Name    string    `json:"name"`
	Qty     float64   `json:"qty"`
	SafeQty float64   `json:"safe_qty"`
	Barcode string    `json:"barcode,omitempty"`
	SeenAt  time.Time `json:"seen_at,omitempty"`
}

// BelowSafeStock reports whether stock has fallen under the threshold
func (s StockSnapshot) BelowSafeStock() bool {
	return s.SafeQty > 0 && s.Qty < s.SafeQty
}

func toNumber(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	}
	return false
}
