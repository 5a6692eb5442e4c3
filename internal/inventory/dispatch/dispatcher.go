// Package dispatch maps decoded wire commands to store operations and
// builds the response value for each one. Business-level failures (empty
// fields, invalid references, store errors) come back as ordinary text
// responses; only protocol faults are returned as errors.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	inverrors "github.com/samir0607/InventoryMgmtSystem/internal/inventory/errors"
	"github.com/samir0607/InventoryMgmtSystem/internal/inventory/store"
	"github.com/samir0607/InventoryMgmtSystem/pkg/proto/wire"
)

// Response messages. Clients match on these strings, so they are part of
// the protocol contract.
const (
	MsgUnknownRequest   = "Unknown request."
	MsgProductAdded     = "Product added successfully!"
	MsgInvalidReference = "Invalid category or supplier ID."
	MsgOperationFailed  = "Operation failed. Please try again."
	MsgEmptyCategory    = "Category name cannot be empty."
	MsgEmptySupplier    = "Supplier name and contact cannot be empty."
	MsgEmptyProduct     = "Product name cannot be empty."
)

// ErrBadArguments indicates the decoded arguments do not match the
// command's signature. This is a protocol fault, not a business error: the
// session terminates rather than answering.
var ErrBadArguments = errors.New("arguments do not match command signature")

// Dispatcher is a pure mapping from (command name, arguments) to a response
// value. All state lives behind the Store.
type Dispatcher struct {
	store    store.Store
	validate *validator.Validate
	logger   *slog.Logger
}

// NewDispatcher creates a Dispatcher backed by the given store.
func NewDispatcher(st store.Store, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		store:    st,
		validate: validator.New(),
		logger:   logger.With("component", "dispatch"),
	}
}

type handlerFunc func(d *Dispatcher, ctx context.Context, args []wire.Value) wire.Value

type command struct {
	signature []wire.Kind
	handle    handlerFunc
}

var commands = map[string]command{
	wire.CmdAddCategory: {
		signature: []wire.Kind{wire.KindString},
		handle:    (*Dispatcher).addCategory,
	},
	wire.CmdAddSupplier: {
		signature: []wire.Kind{wire.KindString, wire.KindString},
		handle:    (*Dispatcher).addSupplier,
	},
	wire.CmdAddProduct: {
		signature: []wire.Kind{wire.KindString, wire.KindInt, wire.KindInt, wire.KindFloat},
		handle:    (*Dispatcher).addProduct,
	},
	wire.CmdViewProducts: {
		signature: []wire.Kind{},
		handle:    (*Dispatcher).viewProducts,
	},
	wire.CmdViewCategories: {
		signature: []wire.Kind{},
		handle:    (*Dispatcher).viewCategories,
	},
	wire.CmdViewSuppliers: {
		signature: []wire.Kind{},
		handle:    (*Dispatcher).viewSuppliers,
	},
}

// Dispatch resolves the command and produces exactly one response value.
// An unknown name is a legal wire value and answers with MsgUnknownRequest;
// an arity or type mismatch returns ErrBadArguments and no response.
func (d *Dispatcher) Dispatch(ctx context.Context, req wire.Request) (wire.Value, error) {
	cmd, ok := commands[req.Name]
	if !ok {
		d.logger.Warn("unknown command", "command", req.Name)
		return wire.String(MsgUnknownRequest), nil
	}
	if err := checkSignature(cmd.signature, req.Args); err != nil {
		return wire.Value{}, fmt.Errorf("command %s: %w", req.Name, err)
	}
	return cmd.handle(d, ctx, req.Args), nil
}

func checkSignature(signature []wire.Kind, args []wire.Value) error {
	if len(args) != len(signature) {
		return fmt.Errorf("%w: want %d arguments, got %d", ErrBadArguments, len(signature), len(args))
	}
	for i, kind := range signature {
		if args[i].Kind != kind {
			return fmt.Errorf("%w: argument %d has kind 0x%02x, want 0x%02x",
				ErrBadArguments, i, byte(args[i].Kind), byte(kind))
		}
	}
	return nil
}

// categoryCreate carries the validated input of ADD_CATEGORY.
type categoryCreate struct {
	Name string `validate:"required"`
}

// supplierCreate carries the validated input of ADD_SUPPLIER.
type supplierCreate struct {
	Name    string `validate:"required"`
	Contact string `validate:"required"`
}

// productCreate carries the validated input of ADD_PRODUCT. The foreign ids
// are validated by the store, not here.
type productCreate struct {
	Name       string `validate:"required"`
	CategoryID int64
	SupplierID int64
	Price      float64
}

func (d *Dispatcher) addCategory(ctx context.Context, args []wire.Value) wire.Value {
	in := categoryCreate{Name: strings.TrimSpace(args[0].Str)}
	if err := d.validate.Struct(&in); err != nil {
		return wire.String(MsgEmptyCategory)
	}

	id, err := d.store.AddCategory(ctx, in.Name)
	if err != nil {
		d.logger.Error("store.AddCategory failed", "error", err)
		return wire.String(MsgOperationFailed)
	}
	return wire.String(fmt.Sprintf("Category Added with ID: %d", id))
}

func (d *Dispatcher) addSupplier(ctx context.Context, args []wire.Value) wire.Value {
	in := supplierCreate{
		Name:    strings.TrimSpace(args[0].Str),
		Contact: strings.TrimSpace(args[1].Str),
	}
	if err := d.validate.Struct(&in); err != nil {
		return wire.String(MsgEmptySupplier)
	}

	id, err := d.store.AddSupplier(ctx, in.Name, in.Contact)
	if err != nil {
		d.logger.Error("store.AddSupplier failed", "error", err)
		return wire.String(MsgOperationFailed)
	}
	return wire.String(fmt.Sprintf("Supplier Added with ID: %d", id))
}

func (d *Dispatcher) addProduct(ctx context.Context, args []wire.Value) wire.Value {
	in := productCreate{
		Name:       strings.TrimSpace(args[0].Str),
		CategoryID: args[1].Int,
		SupplierID: args[2].Int,
		Price:      args[3].Float,
	}
	if err := d.validate.Struct(&in); err != nil {
		return wire.String(MsgEmptyProduct)
	}

	_, err := d.store.AddProduct(ctx, in.Name, in.CategoryID, in.SupplierID, in.Price)
	if err != nil {
		if errors.Is(err, inverrors.ErrInvalidReference) {
			return wire.String(MsgInvalidReference)
		}
		d.logger.Error("store.AddProduct failed", "error", err)
		return wire.String(MsgOperationFailed)
	}
	return wire.String(MsgProductAdded)
}

// viewProducts returns rows of [id, name, categoryId, supplierId, price].
func (d *Dispatcher) viewProducts(ctx context.Context, _ []wire.Value) wire.Value {
	products, err := d.store.Products(ctx)
	if err != nil {
		d.logger.Error("store.Products failed", "error", err)
		return wire.String(MsgOperationFailed)
	}
	rows := make([][]wire.Value, 0, len(products))
	for _, p := range products {
		rows = append(rows, []wire.Value{
			wire.Int(p.ID),
			wire.String(p.Name),
			wire.Int(p.CategoryID),
			wire.Int(p.SupplierID),
			wire.Float(p.Price),
		})
	}
	return wire.Table(rows)
}

// viewCategories returns rows of [id, name].
func (d *Dispatcher) viewCategories(ctx context.Context, _ []wire.Value) wire.Value {
	categories, err := d.store.Categories(ctx)
	if err != nil {
		d.logger.Error("store.Categories failed", "error", err)
		return wire.String(MsgOperationFailed)
	}
	rows := make([][]wire.Value, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []wire.Value{
			wire.Int(c.ID),
			wire.String(c.Name),
		})
	}
	return wire.Table(rows)
}

// viewSuppliers returns rows of [id, name, contact].
func (d *Dispatcher) viewSuppliers(ctx context.Context, _ []wire.Value) wire.Value {
	suppliers, err := d.store.Suppliers(ctx)
	if err != nil {
		d.logger.Error("store.Suppliers failed", "error", err)
		return wire.String(MsgOperationFailed)
	}
	rows := make([][]wire.Value, 0, len(suppliers))
	for _, s := range suppliers {
		rows = append(rows, []wire.Value{
			wire.Int(s.ID),
			wire.String(s.Name),
			wire.String(s.Contact),
		})
	}
	return wire.Table(rows)
}
