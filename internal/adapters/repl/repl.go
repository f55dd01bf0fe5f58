package repl

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"zuno-agent/internal/app"
)

// Run starts the interactive shop-floor loop. Free text is routed through the
// ingestion pipeline; slash commands query state deterministically.
func Run(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader) {
	fmt.Println("Zuno Ambient Bookkeeper")
	fmt.Println("Type what happened on the shop floor, or use /help for commands.")
	fmt.Println(strings.Repeat("-", 70))

	errExit := fmt.Errorf("exit")

	dispatchSlash := func(input string) error {
		tokens := strings.Fields(strings.TrimPrefix(input, "/"))
		if len(tokens) == 0 {
			return nil
		}
		cmd := strings.ToLower(tokens[0])
		args := tokens[1:]

		switch cmd {
		case "tx", "transactions":
			q := app.TransactionQuery{}
			if len(args) > 0 {
				q.Kind = kindFromArg(args[0])
			}
			result, err := svc.ListTransactions(ctx, q)
			if err != nil {
				return err
			}
			printTransactions(result)

		case "inv", "inventory":
			result, err := svc.ListInventory(ctx)
			if err != nil {
				return err
			}
			printInventory(result)

		case "fin", "financials", "score":
			result, err := svc.GetFinancialSnapshot(ctx)
			if err != nil {
				return err
			}
			printSnapshot(result)

		case "settle":
			if len(args) < 1 {
				return fmt.Errorf("usage: /settle <transaction id>")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			if err := svc.SettleCredit(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Transaction %d marked Paid.\n", id)

		case "export":
			path := "ledger.csv"
			if len(args) > 0 {
				path = args[0]
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()
			if strings.HasSuffix(path, ".xlsx") {
				err = svc.ExportLedgerXLSX(ctx, f)
			} else {
				err = svc.ExportLedgerCSV(ctx, f)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Ledger exported to %s.\n", path)

		case "help":
			printHelp()

		case "quit", "exit", "q":
			return errExit

		default:
			return fmt.Errorf("unknown command /%s — try /help", cmd)
		}
		return nil
	}

	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if err := dispatchSlash(input); err != nil {
				if err == errExit {
					return
				}
				fmt.Fprintln(os.Stderr, "Error:", err)
			}
			continue
		}

		result, err := svc.SubmitUtterance(ctx, input)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			continue
		}
		if !result.Accepted {
			fmt.Println("(no transaction detected)")
			continue
		}
		printAccepted(result)
	}
}

func kindFromArg(arg string) string {
	switch strings.ToLower(arg) {
	case "sale", "sales":
		return "Sale"
	case "purchase", "purchases":
		return "Purchase"
	case "credit", "udhaar":
		return "Credit"
	default:
		return arg
	}
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  /tx [sale|purchase|credit]   list ledger, newest first")
	fmt.Println("  /inv                         show stock levels")
	fmt.Println("  /fin                         financial snapshot and score")
	fmt.Println("  /settle <id>                 mark an udhaar entry as paid")
	fmt.Println("  /export [file.csv|file.xlsx] write the ledger export")
	fmt.Println("  /quit                        leave")
	fmt.Println("Anything else is treated as a shop-floor utterance.")
}
