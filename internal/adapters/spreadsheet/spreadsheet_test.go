package spreadsheet_test

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/picking-be/internal/adapters/spreadsheet"
	"github.com/ammerola/picking-be/internal/core/domain"
)

func workbook(t *testing.T, rows [][]string) []byte {
	t.Helper()

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sheet1")
	require.NoError(t, err)
	for _, values := range rows {
		row := sheet.AddRow()
		for _, v := range values {
			row.AddCell().SetString(v)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))
	return buf.Bytes()
}

func TestParseOrders(t *testing.T) {
	data := workbook(t, [][]string{
		{"날짜", "시간", "업체", "JAN", "브랜드", "상품명", "단가", "로트", "수량", "단가구분", "업체비고", "비고"},
		{" 20240501 ", "09:30", "Tokyo-Shinjuku", "4901234567894", "Ito En", "Green Tea", "1,200", "12/36", "3", "EXW", "fragile", "shelf 3"},
		{"20240501", "09:30", "Tokyo-Shinjuku", "4901234567900", "Ito En", "Barley Tea", "800", "", "2"},
		{"", "10:00", "Osaka", "4900000000000", "", "skipped", "1", "1", "1"},
		{"20240502", "10:00", "Osaka", "4909999999999", "Kao", "Soap", "abc", "6", "x"},
	})

	orders, err := spreadsheet.ParseOrders(data)
	require.NoError(t, err)
	require.Len(t, orders, 3)

	first := orders[0]
	assert.Equal(t, "2024050109:30-Tokyo-Shinjuku", first.OrderID)
	assert.Equal(t, "4901234567894", first.JANCode)
	assert.Equal(t, "Green Tea", first.ProductName)
	assert.True(t, decimal.NewFromInt(1200).Equal(first.Price))
	assert.Equal(t, "12/36", first.LotQty)
	assert.Equal(t, 3, first.OrderedQty)
	assert.Equal(t, "EXW", first.PriceType)
	assert.Equal(t, "fragile", first.ClientRemark)
	assert.Equal(t, "shelf 3", first.Remark)
	assert.Equal(t, domain.StatusPending, first.Status)
	assert.Equal(t, 1, first.OriginalRowIndex)
	assert.Equal(t, 2, first.TotalGroupCount)

	assert.Equal(t, "1", orders[1].LotQty)
	assert.Equal(t, 2, orders[1].OriginalRowIndex)

	last := orders[2]
	assert.Equal(t, "2024050210:00-Osaka", last.OrderID)
	assert.Equal(t, 4, last.OriginalRowIndex)
	assert.True(t, last.Price.IsZero())
	assert.Equal(t, 0, last.OrderedQty)
	assert.Equal(t, 1, last.TotalGroupCount)
}

func TestParseOrdersHeaderOnly(t *testing.T) {
	orders, err := spreadsheet.ParseOrders(workbook(t, [][]string{{"날짜", "시간"}}))
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestParseOrdersRejectsGarbage(t *testing.T) {
	_, err := spreadsheet.ParseOrders([]byte("not a workbook"))
	assert.Error(t, err)
}

func TestBuildWorkbook(t *testing.T) {
	picked := 1
	lines := []domain.Order{
		{OrderID: "2024050109:30-Tokyo-Shinjuku", JANCode: "B", ProductName: "second", Price: decimal.NewFromInt(50), LotQty: "6", OrderedQty: 4, PickedQty: &picked, OriginalRowIndex: 7},
		{OrderID: "2024050109:30-Tokyo-Shinjuku", JANCode: "A", ProductName: "first", Brand: "Ito En", Price: decimal.NewFromInt(120), OrderedQty: 2, OriginalRowIndex: 3},
	}

	data, err := spreadsheet.BuildWorkbook("2024050109:30-Tokyo-Shinjuku", lines)
	require.NoError(t, err)

	file, err := xlsx.OpenBinary(data)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	sheet := file.Sheets[0]
	assert.Equal(t, spreadsheet.SheetName, sheet.Name)

	cell := func(row, col int) string {
		c, err := sheet.Cell(row, col)
		require.NoError(t, err)
		return c.String()
	}

	assert.Equal(t, "발주번호", cell(0, 0))
	assert.Equal(t, "실재확보수량", cell(0, 8))

	assert.Equal(t, "2024050109:30", cell(1, 0))
	assert.Equal(t, "Tokyo-Shinjuku", cell(1, 1))
	assert.Equal(t, "A", cell(1, 2))
	assert.Equal(t, "Ito En", cell(1, 3))
	assert.Equal(t, "120", cell(1, 5))
	assert.Equal(t, "1", cell(1, 6))
	assert.Equal(t, "2", cell(1, 7))
	assert.Equal(t, "2", cell(1, 8))

	assert.Equal(t, "B", cell(2, 2))
	assert.Equal(t, "6", cell(2, 6))
	assert.Equal(t, "1", cell(2, 8))
}

func TestBuildArchive(t *testing.T) {
	groups := map[string][]domain.Order{
		"B-Osaka":      {{OrderID: "B-Osaka", OriginalRowIndex: 1}},
		"A-Tokyo/East": {{OrderID: "A-Tokyo/East", OriginalRowIndex: 1}},
		"A-Tokyo:East": {{OrderID: "A-Tokyo:East", OriginalRowIndex: 1}},
	}

	data, err := spreadsheet.BuildArchive(groups)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)

		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)

		_, err = xlsx.OpenBinary(body)
		assert.NoError(t, err, f.Name)
	}
	assert.Equal(t, []string{"A_Tokyo_East.xlsx", "A_Tokyo_East (2).xlsx", "B_Osaka.xlsx"}, names)
}
