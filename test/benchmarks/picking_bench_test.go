package benchmarks

import (
	"context"
	"testing"

	"github.com/ammerola/picking-be/internal/adapters/spreadsheet"
	"github.com/ammerola/picking-be/internal/core/domain"
	"github.com/ammerola/picking-be/internal/core/services"
	"github.com/ammerola/picking-be/internal/pkg/config"
	"github.com/ammerola/picking-be/test/helpers"
)

func BenchmarkStockResolver(b *testing.B) {
	catalog := newPagedCatalog(5000, 100)
	resolver := services.NewStockResolver(
		catalog,
		config.StaticCredentials{Token: "bench-token", TeamID: "bench-team"},
		services.ResolverConfig{PageLimit: 100, MaxPages: 50},
		helpers.TestLogger(),
	)
	ctx := context.Background()

	cases := []struct {
		name    string
		barcode string
	}{
		{name: "first_page", barcode: barcodeFor(10)},
		{name: "last_page_alternate_code", barcode: barcodeFor(4990) + "-ALT"},
		{name: "not_found_full_scan", barcode: "0000000000"},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = resolver.Resolve(ctx, tc.barcode)
			}
		})
	}
}

func BenchmarkParseOrders(b *testing.B) {
	data, err := orderWorkbook(1000, 8)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := spreadsheet.ParseOrders(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuildArchive(b *testing.B) {
	data, err := orderWorkbook(1000, 8)
	if err != nil {
		b.Fatal(err)
	}
	orders, err := spreadsheet.ParseOrders(data)
	if err != nil {
		b.Fatal(err)
	}
	groups := domain.GroupByOrderID(orders)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := spreadsheet.BuildArchive(groups); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFirstDefined(b *testing.B) {
	records := []map[string]any{
		{"quantity": float64(3)},
		{"stock": "12"},
		{"quantity": nil, "total_quantity": float64(7)},
		{"qty": "n/a"},
		{},
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = domain.FirstDefined(records[i%len(records)], domain.QuantityKeys, 0)
	}
}
