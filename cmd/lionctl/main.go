// Command lionctl is the admin console for Lion Hearts orders.
//
//	lionctl orders [-status S]
//	lionctl set-status <id> <status>
//	lionctl audit <id>
//	lionctl catalog
//
// LION_API_URL points at the service (default http://localhost:8080) and
// LION_ADMIN_CODE carries the admin credential.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"lionhearts/internal/pkg/adminclient"
)

const defaultAPIURL = "http://localhost:8080"

var errUsage = errors.New("usage")

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout)
	if errors.Is(err, errUsage) {
		usage(os.Stderr)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "lionctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	apiURL := os.Getenv("LION_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	client, err := adminclient.New(apiURL, os.Getenv("LION_ADMIN_CODE"), nil)
	if err != nil {
		return err
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "orders":
		fs := flag.NewFlagSet("orders", flag.ContinueOnError)
		status := fs.String("status", "", "only orders in this status")
		if err := fs.Parse(rest); err != nil {
			return errUsage
		}

		orders, err := client.ListOrders(ctx, *status)
		if err != nil {
			return err
		}
		return renderOrders(out, orders)

	case "set-status":
		if len(rest) != 2 {
			return errUsage
		}

		order, err := client.SetStatus(ctx, rest[0], rest[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s is now %s\n", order.OrderNumber, order.Status)
		return nil

	case "audit":
		if len(rest) != 1 {
			return errUsage
		}

		entries, err := client.Audit(ctx, rest[0])
		if err != nil {
			return err
		}
		return renderAudit(out, entries)

	case "catalog":
		catalog, err := client.Catalog(ctx)
		if err != nil {
			return err
		}
		return renderCatalog(out, catalog)

	default:
		return errUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `usage:
  lionctl orders [-status PLACED|OUT_FOR_DELIVERY|DELIVERED|CANCELLED]
  lionctl set-status <id> <status>
  lionctl audit <id>
  lionctl catalog
`)
}
