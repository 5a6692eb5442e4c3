package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/samir0607/InventoryMgmtSystem/pkg/proto/wire"
)

// inventoryctl products — print the product table.
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List all products",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := dial()
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		rows, err := c.Products()
		if err != nil {
			return err
		}
		return printTable([]string{"ID", "NAME", "CATEGORY", "SUPPLIER", "PRICE"}, rows)
	},
}

// inventoryctl categories — print the category table.
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List all categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := dial()
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		rows, err := c.Categories()
		if err != nil {
			return err
		}
		return printTable([]string{"ID", "NAME"}, rows)
	},
}

// inventoryctl suppliers — print the supplier table.
var suppliersCmd = &cobra.Command{
	Use:   "suppliers",
	Short: "List all suppliers",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := dial()
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		rows, err := c.Suppliers()
		if err != nil {
			return err
		}
		return printTable([]string{"ID", "NAME", "CONTACT"}, rows)
	},
}

func printTable(header []string, rows [][]wire.Value) error {
	if len(rows) == 0 {
		fmt.Println("No entries.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	for i, h := range header {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, h)
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, formatCell(cell))
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func formatCell(v wire.Value) string {
	switch v.Kind {
	case wire.KindInt:
		return fmt.Sprintf("%d", v.Int)
	case wire.KindFloat:
		return fmt.Sprintf("%.2f", v.Float)
	default:
		return v.Str
	}
}
