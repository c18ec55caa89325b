// cmd/stockcheck/main.go
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/ammerola/picking-be/internal/pkg/logger"
	"github.com/ammerola/picking-be/pkg/stockclient"
)

func main() {
	var (
		baseURL  = flag.String("url", getEnv("PICKING_API_URL", "http://localhost:8080"), "Picking API base URL")
		path     = flag.String("path", stockclient.DefaultPath, "Stock route")
		timeout  = flag.Duration("timeout", 60*time.Second, "Per-lookup timeout; a full catalog scan can take a while")
		asJSON   = flag.Bool("json", false, "Print one JSON object per barcode")
		logLevel = flag.String("log-level", "warn", "Log level (debug, info, warn, error)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [barcode ...]\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Barcodes are read from stdin, one per line, when none are given.")
		flag.PrintDefaults()
	}
	flag.Parse()

	slogger := logger.SetupLogger(*logLevel, "text")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := stockclient.New(*baseURL,
		stockclient.WithPath(*path),
		stockclient.WithHTTPClient(&http.Client{Timeout: *timeout}),
		stockclient.WithLogger(slogger.Logger),
	)

	barcodes := flag.Args()
	if len(barcodes) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if code := strings.TrimSpace(scanner.Text()); code != "" {
				barcodes = append(barcodes, code)
			}
		}
	}

	failed := false
	for _, code := range barcodes {
		stock, err := client.Lookup(ctx, code)
		if err != nil {
			slogger.Error("lookup failed", slog.String("barcode", code), slog.String("error", err.Error()))
			failed = true
			continue
		}
		printStock(code, stock, *asJSON)
	}

	if failed {
		os.Exit(1)
	}
}

func printStock(code string, stock *stockclient.Stock, asJSON bool) {
	if asJSON {
		out := struct {
			Barcode string             `json:"barcode"`
			Stock   *stockclient.Stock `json:"stock"`
		}{code, stock}
		data, _ := json.Marshal(out)
		fmt.Println(string(data))
		return
	}

	if stock == nil {
		fmt.Printf("%s\t-\tno data\n", code)
		return
	}
	note := ""
	if stock.SafeQty > 0 && stock.Qty < stock.SafeQty {
		note = "\t⚠️ below safe stock"
	}
	fmt.Printf("%s\t%s\t%g / %g%s\n", code, stock.Name, stock.Qty, stock.SafeQty, note)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
