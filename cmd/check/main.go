// Command check verifies connectivity to the upstream commerce API by
// fetching a page of the catalog with the configured credentials.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/sirupsen/logrus"

	"storefront-gateway/internal/commerce"
	"storefront-gateway/internal/config"
	"storefront-gateway/internal/pricing"
)

func main() {
	limit := flag.Int("limit", 5, "number of products to fetch")
	flag.Parse()

	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	var cfg config.Config
	help, err := conf.Parse("STOREFRONT", &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return
		}
		logger.Fatalf("parsing config: %v", err)
	}

	client := commerce.NewClient(commerce.Config{
		StoreDomain: cfg.Commerce.StoreDomain,
		APIVersion:  cfg.Commerce.APIVersion,
		AccessToken: cfg.Commerce.AccessToken,
		Timeout:     cfg.Commerce.Timeout,
	}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	products, err := client.Products(ctx, "", *limit)
	if err != nil {
		logger.Fatalf("fetch products: %v", err)
	}
	logger.Infof("commerce API reachable, %d product(s) fetched", len(products))
	for _, p := range products {
		fmt.Printf("%-40s %-24s %s\n", p.Title, p.Handle, pricing.FormatMoney(p.MinPrice))
	}

	collections, err := client.Collections(ctx, *limit)
	if err != nil {
		logger.Fatalf("fetch collections: %v", err)
	}
	logger.Infof("%d collection(s) fetched", len(collections))
	for _, col := range collections {
		fmt.Printf("%-40s %s\n", col.Title, col.Handle)
	}
}
