// Package main implements inventoryctl, a command line client for the
// inventory server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samir0607/InventoryMgmtSystem/pkg/client"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var addr string

var rootCmd = &cobra.Command{
	Use:   "inventoryctl",
	Short: "inventoryctl — client for the inventory command server",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&addr, "addr", "localhost:6090", "server address")

	// Mutations
	rootCmd.AddCommand(addCategoryCmd)
	rootCmd.AddCommand(addSupplierCmd)
	rootCmd.AddCommand(addProductCmd)

	// Views
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(suppliersCmd)
}

// dial opens one connection for the duration of a single command.
func dial() (*client.Client, error) {
	c, err := client.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("cannot reach inventory server at %s: %w", addr, err)
	}
	return c, nil
}
