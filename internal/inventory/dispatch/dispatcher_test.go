package dispatch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inverrors "github.com/samir0607/InventoryMgmtSystem/internal/inventory/errors"
	"github.com/samir0607/InventoryMgmtSystem/internal/inventory/store"
	"github.com/samir0607/InventoryMgmtSystem/pkg/proto/wire"
)

// mockStore is a configurable mock implementation of the Store interface.
type mockStore struct {
	nextID     int64
	categories []store.Category
	suppliers  []store.Supplier
	products   []store.Product
	err        error

	addCategoryCalls int
	addProductCalls  int
}

func (m *mockStore) AddCategory(_ context.Context, _ string) (int64, error) {
	m.addCategoryCalls++
	return m.nextID, m.err
}

func (m *mockStore) AddSupplier(_ context.Context, _, _ string) (int64, error) {
	return m.nextID, m.err
}

func (m *mockStore) AddProduct(_ context.Context, _ string, _, _ int64, _ float64) (int64, error) {
	m.addProductCalls++
	return m.nextID, m.err
}

func (m *mockStore) Categories(_ context.Context) ([]store.Category, error) {
	return m.categories, m.err
}

func (m *mockStore) Suppliers(_ context.Context) ([]store.Supplier, error) {
	return m.suppliers, m.err
}

func (m *mockStore) Products(_ context.Context) ([]store.Product, error) {
	return m.products, m.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Test_Dispatch_AddCategory(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockStore
		args        []wire.Value
		expected    string
		storeCalled bool
	}{
		{
			name:        "success",
			mockStore:   &mockStore{nextID: 1},
			args:        []wire.Value{wire.String("Electronics")},
			expected:    "Category Added with ID: 1",
			storeCalled: true,
		},
		{
			name:        "empty name",
			mockStore:   &mockStore{},
			args:        []wire.Value{wire.String("")},
			expected:    MsgEmptyCategory,
			storeCalled: false,
		},
		{
			name:        "whitespace-only name",
			mockStore:   &mockStore{},
			args:        []wire.Value{wire.String("   \t ")},
			expected:    MsgEmptyCategory,
			storeCalled: false,
		},
		{
			name:        "store failure",
			mockStore:   &mockStore{err: errors.New("storage unavailable")},
			args:        []wire.Value{wire.String("Electronics")},
			expected:    MsgOperationFailed,
			storeCalled: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			d := NewDispatcher(tc.mockStore, testLogger())
			// when
			resp, err := d.Dispatch(context.Background(), wire.Request{Name: wire.CmdAddCategory, Args: tc.args})
			// then
			require.NoError(t, err)
			assert.Equal(t, wire.KindString, resp.Kind)
			assert.Equal(t, tc.expected, resp.Str)
			assert.Equal(t, tc.storeCalled, tc.mockStore.addCategoryCalls > 0)
		})
	}
}

func Test_Dispatch_AddSupplier(t *testing.T) {
	testCases := []struct {
		name     string
		args     []wire.Value
		expected string
	}{
		{
			name:     "success",
			args:     []wire.Value{wire.String("Acme"), wire.String("a@x.com")},
			expected: "Supplier Added with ID: 1",
		},
		{
			name:     "empty name",
			args:     []wire.Value{wire.String(""), wire.String("a@x.com")},
			expected: MsgEmptySupplier,
		},
		{
			name:     "empty contact",
			args:     []wire.Value{wire.String("Acme"), wire.String(" ")},
			expected: MsgEmptySupplier,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDispatcher(&mockStore{nextID: 1}, testLogger())

			resp, err := d.Dispatch(context.Background(), wire.Request{Name: wire.CmdAddSupplier, Args: tc.args})

			require.NoError(t, err)
			assert.Equal(t, tc.expected, resp.Str)
		})
	}
}

func Test_Dispatch_AddProduct(t *testing.T) {
	validArgs := []wire.Value{wire.String("Phone"), wire.Int(1), wire.Int(1), wire.Float(499.99)}

	testCases := []struct {
		name      string
		mockStore *mockStore
		args      []wire.Value
		expected  string
	}{
		{
			name:      "success",
			mockStore: &mockStore{nextID: 1},
			args:      validArgs,
			expected:  MsgProductAdded,
		},
		{
			name:      "invalid reference",
			mockStore: &mockStore{err: inverrors.ErrInvalidReference},
			args:      []wire.Value{wire.String("Ghost"), wire.Int(99), wire.Int(1), wire.Float(10.0)},
			expected:  MsgInvalidReference,
		},
		{
			name:      "empty name",
			mockStore: &mockStore{},
			args:      []wire.Value{wire.String(""), wire.Int(1), wire.Int(1), wire.Float(1.0)},
			expected:  MsgEmptyProduct,
		},
		{
			name:      "store failure",
			mockStore: &mockStore{err: errors.New("storage unavailable")},
			args:      validArgs,
			expected:  MsgOperationFailed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			d := NewDispatcher(tc.mockStore, testLogger())
			// when
			resp, err := d.Dispatch(context.Background(), wire.Request{Name: wire.CmdAddProduct, Args: tc.args})
			// then
			require.NoError(t, err)
			assert.Equal(t, tc.expected, resp.Str)
		})
	}
}

func Test_Dispatch_ViewCommands(t *testing.T) {
	st := &mockStore{
		categories: []store.Category{{ID: 1, Name: "Electronics"}},
		suppliers:  []store.Supplier{{ID: 1, Name: "Acme", Contact: "a@x.com"}},
		products:   []store.Product{{ID: 1, Name: "Phone", CategoryID: 1, SupplierID: 1, Price: 499.99}},
	}
	d := NewDispatcher(st, testLogger())
	ctx := context.Background()

	t.Run("VIEW_PRODUCTS", func(t *testing.T) {
		resp, err := d.Dispatch(ctx, wire.Request{Name: wire.CmdViewProducts})
		require.NoError(t, err)
		require.Equal(t, wire.KindTable, resp.Kind)
		require.Len(t, resp.Table, 1)
		assert.Equal(t, []wire.Value{
			wire.Int(1), wire.String("Phone"), wire.Int(1), wire.Int(1), wire.Float(499.99),
		}, resp.Table[0])
	})

	t.Run("VIEW_CATEGORIES", func(t *testing.T) {
		resp, err := d.Dispatch(ctx, wire.Request{Name: wire.CmdViewCategories})
		require.NoError(t, err)
		require.Equal(t, wire.KindTable, resp.Kind)
		assert.Equal(t, [][]wire.Value{{wire.Int(1), wire.String("Electronics")}}, resp.Table)
	})

	t.Run("VIEW_SUPPLIERS", func(t *testing.T) {
		resp, err := d.Dispatch(ctx, wire.Request{Name: wire.CmdViewSuppliers})
		require.NoError(t, err)
		require.Equal(t, wire.KindTable, resp.Kind)
		assert.Equal(t, [][]wire.Value{{wire.Int(1), wire.String("Acme"), wire.String("a@x.com")}}, resp.Table)
	})

	t.Run("view command with store failure", func(t *testing.T) {
		failing := NewDispatcher(&mockStore{err: errors.New("storage unavailable")}, testLogger())
		resp, err := failing.Dispatch(ctx, wire.Request{Name: wire.CmdViewProducts})
		require.NoError(t, err)
		assert.Equal(t, MsgOperationFailed, resp.Str)
	})
}

func Test_Dispatch_UnknownCommand(t *testing.T) {
	// given
	st := &mockStore{}
	d := NewDispatcher(st, testLogger())

	// when
	resp, err := d.Dispatch(context.Background(), wire.Request{Name: "FOO"})

	// then
	require.NoError(t, err)
	assert.Equal(t, MsgUnknownRequest, resp.Str)
	assert.Zero(t, st.addCategoryCalls)
	assert.Zero(t, st.addProductCalls)
}

func Test_Dispatch_BadArguments(t *testing.T) {
	testCases := []struct {
		name string
		req  wire.Request
	}{
		{
			name: "missing argument",
			req:  wire.Request{Name: wire.CmdAddCategory},
		},
		{
			name: "too many arguments",
			req:  wire.Request{Name: wire.CmdViewProducts, Args: []wire.Value{wire.Int(1)}},
		},
		{
			name: "wrong kind",
			req:  wire.Request{Name: wire.CmdAddCategory, Args: []wire.Value{wire.Int(7)}},
		},
		{
			name: "int where float expected",
			req: wire.Request{
				Name: wire.CmdAddProduct,
				Args: []wire.Value{wire.String("Phone"), wire.Int(1), wire.Int(1), wire.Int(500)},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDispatcher(&mockStore{}, testLogger())

			_, err := d.Dispatch(context.Background(), tc.req)

			assert.ErrorIs(t, err, ErrBadArguments)
		})
	}
}
