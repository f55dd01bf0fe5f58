package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"zuno-agent/internal/app"
)

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:] — the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string) {
	switch args[0] {
	case "submit", "sub", "s":
		if len(args) < 2 {
			log.Fatal("Usage: app submit \"<utterance>\"")
		}
		result, err := svc.SubmitUtterance(ctx, strings.Join(args[1:], " "))
		if err != nil {
			log.Fatalf("Submit failed: %v", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(result)

	case "tx", "transactions":
		q := app.TransactionQuery{}
		if len(args) > 1 {
			q.Kind = args[1]
		}
		result, err := svc.ListTransactions(ctx, q)
		if err != nil {
			log.Fatalf("Failed to list transactions: %v", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(result.Transactions)

	case "inv", "inventory":
		result, err := svc.ListInventory(ctx)
		if err != nil {
			log.Fatalf("Failed to list inventory: %v", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(result.Items)

	case "fin", "financials":
		result, err := svc.GetFinancialSnapshot(ctx)
		if err != nil {
			log.Fatalf("Failed to compute financials: %v", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(result.Snapshot)

	case "settle":
		if len(args) < 2 {
			log.Fatal("Usage: app settle <transaction id>")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			log.Fatalf("Invalid id %q", args[1])
		}
		if err := svc.SettleCredit(ctx, id); err != nil {
			log.Fatalf("Settle failed: %v", err)
		}
		fmt.Println("Settled.")

	case "export":
		if err := svc.ExportLedgerCSV(ctx, os.Stdout); err != nil {
			log.Fatalf("Export failed: %v", err)
		}

	default:
		log.Fatalf("Unknown command: %s\nAvailable: submit, tx, inv, fin, settle, export", args[0])
	}
}
