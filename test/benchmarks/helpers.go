// test/benchmarks/helpers.go
package benchmarks

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/picking-be/internal/core/domain"
	"github.com/ammerola/picking-be/internal/core/ports"
)

// pagedCatalog serves a fixed catalog split into pages of pageSize items
type pagedCatalog struct {
	pages [][]domain.Item
}

func newPagedCatalog(items, pageSize int) *pagedCatalog {
	c := &pagedCatalog{}
	for start := 0; start < items; start += pageSize {
		end := min(start+pageSize, items)
		page := make([]domain.Item, 0, end-start)
		for i := start; i < end; i++ {
			page = append(page, domain.Item{
				"name":       fmt.Sprintf("Item %d", i),
				"barcode":    barcodeFor(i),
				"barcodes":   []any{barcodeFor(i) + "-ALT"},
				"quantity":   float64(i % 40),
				"safe_stock": float64(10),
			})
		}
		c.pages = append(c.pages, page)
	}
	return c
}

func (c *pagedCatalog) FetchPage(_ context.Context, req ports.PageRequest) (*domain.CatalogPage, error) {
	idx := 0
	if req.Cursor != "" {
		n, err := strconv.Atoi(req.Cursor)
		if err != nil {
			return nil, err
		}
		idx = n
	}
	page := &domain.CatalogPage{Items: c.pages[idx]}
	if idx+1 < len(c.pages) {
		next := strconv.Itoa(idx + 1)
		page.Cursor = &next
		page.HasMore = true
	}
	return page, nil
}

func barcodeFor(i int) string {
	return fmt.Sprintf("490%07d", i)
}

// orderWorkbook builds an order sheet with rows lines spread over groups of groupSize
func orderWorkbook(rows, groupSize int) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sheet1")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range []string{"날짜", "시간", "업체", "JAN", "브랜드", "상품명", "단가", "로트", "수량", "단가구분", "업체비고", "비고"} {
		header.AddCell().SetString(h)
	}
	for i := 0; i < rows; i++ {
		row := sheet.AddRow()
		for _, v := range []string{
			"20240501",
			"09:30",
			fmt.Sprintf("Client%d", i/groupSize),
			barcodeFor(i),
			"Ito En",
			fmt.Sprintf("Product %d", i),
			"120",
			"24",
			strconv.Itoa(1 + i%5),
			"",
			"",
			"",
		} {
			row.AddCell().SetString(v)
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
