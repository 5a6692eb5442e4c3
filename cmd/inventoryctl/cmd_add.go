package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// inventoryctl add-category <name>
var addCategoryCmd = &cobra.Command{
	Use:   "add-category <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := dial()
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		msg, err := c.AddCategory(args[0])
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil
	},
}

// inventoryctl add-supplier <name> <contact>
var addSupplierCmd = &cobra.Command{
	Use:   "add-supplier <name> <contact>",
	Short: "Create a supplier",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := dial()
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		msg, err := c.AddSupplier(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil
	},
}

// inventoryctl add-product <name> <category-id> <supplier-id> <price>
var addProductCmd = &cobra.Command{
	Use:   "add-product <name> <category-id> <supplier-id> <price>",
	Short: "Create a product referencing an existing category and supplier",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		categoryID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid category id %q: %w", args[1], err)
		}
		supplierID, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid supplier id %q: %w", args[2], err)
		}
		price, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", args[3], err)
		}

		c, err := dial()
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		msg, err := c.AddProduct(args[0], categoryID, supplierID, price)
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil
	},
}
