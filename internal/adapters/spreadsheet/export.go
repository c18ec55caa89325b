// internal/adapters/spreadsheet/export.go
package spreadsheet

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/picking-be/internal/core/domain"
)

// SheetName is the worksheet name of every exported picking list
const SheetName = "출고리스트"

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeZip  = "application/zip"
)

var exportHeaders = []string{
	"발주번호", "업체명", "JAN코드", "브랜드", "상품명", "단가", "로트", "희망수량", "실재확보수량",
}

// BuildWorkbook renders the picking list of one order. Lines are written in
// sheet row order.
func BuildWorkbook(orderID string, lines []domain.Order) ([]byte, error) {
	sorted := append([]domain.Order(nil), lines...)
	domain.SortByRowIndex(sorted)

	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range exportHeaders {
		cell := header.AddCell()
		cell.SetString(h)
		cell.GetStyle().Font.Bold = true
	}

	number := domain.OrderNumber(orderID)
	client := domain.ExportClientName(orderID)
	for i := range sorted {
		line := &sorted[i]
		lot := line.LotQty
		if lot == "" {
			lot = "1"
		}

		row := sheet.AddRow()
		row.AddCell().SetString(number)
		row.AddCell().SetString(client)
		row.AddCell().SetString(line.JANCode)
		row.AddCell().SetString(line.Brand)
		row.AddCell().SetString(line.ProductName)
		row.AddCell().SetFloat(line.Price.InexactFloat64())
		row.AddCell().SetString(lot)
		row.AddCell().SetInt(line.OrderedQty)
		row.AddCell().SetInt(line.EffectivePickedQty())
	}

	for i := range exportHeaders {
		sheet.SetColWidth(i+1, i+1, 15)
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildArchive zips one workbook per order id. Entries are ordered by order
// id; colliding file names get a numeric suffix.
func BuildArchive(groups map[string][]domain.Order) ([]byte, error) {
	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	used := make(map[string]int, len(ids))

	for _, id := range ids {
		data, err := BuildWorkbook(id, groups[id])
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", id, err)
		}

		name := domain.ExportFileName(id)
		if n := used[name]; n > 0 {
			ext := path.Ext(name)
			name = fmt.Sprintf("%s (%d)%s", strings.TrimSuffix(name, ext), n+1, ext)
		}
		used[domain.ExportFileName(id)]++

		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close archive: %w", err)
	}
	return buf.Bytes(), nil
}
