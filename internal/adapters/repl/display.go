package repl

import (
	"fmt"
	"strings"

	"zuno-agent/internal/app"
)

func printAccepted(result *app.SubmitResult) {
	r := result.Record
	fmt.Printf("Recorded #%d: %s x%d @ %s = %s (%s, %s)\n",
		r.ID, r.Item, r.Quantity, r.UnitPrice.StringFixed(2),
		r.Total().StringFixed(2), r.Kind, r.Status)
	if r.Counterparty != "" {
		fmt.Printf("  Counterparty: %s\n", r.Counterparty)
	}
}

func printTransactions(result *app.TransactionListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 78))
	fmt.Printf("  %-4s %-20s %5s %10s %10s %-9s %-8s\n",
		"ID", "ITEM", "QTY", "PRICE", "TOTAL", "KIND", "STATUS")
	fmt.Println(strings.Repeat("-", 78))
	for _, r := range result.Transactions {
		fmt.Printf("  %-4d %-20s %5d %10s %10s %-9s %-8s\n",
			r.ID, truncate(r.Item, 20), r.Quantity,
			r.UnitPrice.StringFixed(2), r.Total().StringFixed(2),
			r.Kind, r.Status)
	}
	fmt.Println(strings.Repeat("=", 78))
}

func printInventory(result *app.InventoryResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 64))
	fmt.Printf("  %-24s %8s %8s %10s %s\n", "ITEM", "STOCK", "REORDER", "COST", "")
	fmt.Println(strings.Repeat("-", 64))
	for _, it := range result.Items {
		flag := ""
		if it.StockOnHand < 0 {
			flag = "OUT OF STOCK"
		} else if it.LowStock {
			flag = "LOW"
		}
		fmt.Printf("  %-24s %8d %8d %10s %s\n",
			truncate(it.Item, 24), it.StockOnHand, it.ReorderThreshold,
			it.UnitCost.StringFixed(2), flag)
	}
	fmt.Println(strings.Repeat("=", 64))
}

func printSnapshot(result *app.SnapshotResult) {
	s := result.Snapshot
	fmt.Println()
	fmt.Println(strings.Repeat("=", 44))
	fmt.Printf("  Zuno Score        %21d\n", s.Score)
	fmt.Println(strings.Repeat("-", 44))
	fmt.Printf("  Total Revenue     %21s\n", s.TotalRevenue.StringFixed(2))
	fmt.Printf("  Cost of Goods     %21s\n", s.CostOfGoodsSold.StringFixed(2))
	fmt.Printf("  Net Profit        %21s\n", s.NetProfit.StringFixed(2))
	fmt.Printf("  Trapped Capital   %21s\n", s.TrappedCapital.StringFixed(2))
	fmt.Printf("  Inventory Value   %21s\n", s.InventoryValue.StringFixed(2))
	fmt.Printf("  Disposable Income %21s\n", s.DisposableIncome.StringFixed(2))
	fmt.Printf("  Growth Rate       %20s%%\n", s.GrowthRate.StringFixed(1))
	fmt.Println(strings.Repeat("=", 44))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
