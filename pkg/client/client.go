// Package client implements a Go client for the inventory wire protocol.
// It keeps one long-lived connection and issues strictly sequential
// request/response cycles over it.
package client

import (
	"fmt"
	"net"
	"sync"

	"github.com/samir0607/InventoryMgmtSystem/pkg/proto/wire"
)

// Client speaks the inventory command protocol over a single connection.
// It is safe for concurrent use; commands are serialized because the
// protocol allows only one outstanding command per connection.
type Client struct {
	mu   sync.Mutex
	conn net.Conn
	enc  *wire.Encoder
	dec  *wire.Decoder
}

// Dial connects to an inventory server at addr.
func Dial(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", addr, err)
	}
	return &Client{
		conn: conn,
		enc:  wire.NewEncoder(conn),
		dec:  wire.NewDecoder(conn),
	}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Do sends one request and reads its response.
func (c *Client) Do(req wire.Request) (wire.Value, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.enc.EncodeRequest(req); err != nil {
		return wire.Value{}, fmt.Errorf("failed to encode request: %w", err)
	}
	if err := c.enc.Flush(); err != nil {
		return wire.Value{}, fmt.Errorf("failed to send request: %w", err)
	}
	resp, err := c.dec.Decode()
	if err != nil {
		return wire.Value{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp, nil
}

// AddCategory creates a category and returns the server's text response.
func (c *Client) AddCategory(name string) (string, error) {
	return c.text(wire.Request{
		Name: wire.CmdAddCategory,
		Args: []wire.Value{wire.String(name)},
	})
}

// AddSupplier creates a supplier and returns the server's text response.
func (c *Client) AddSupplier(name, contact string) (string, error) {
	return c.text(wire.Request{
		Name: wire.CmdAddSupplier,
		Args: []wire.Value{wire.String(name), wire.String(contact)},
	})
}

// AddProduct creates a product and returns the server's text response.
func (c *Client) AddProduct(name string, categoryID, supplierID int64, price float64) (string, error) {
	return c.text(wire.Request{
		Name: wire.CmdAddProduct,
		Args: []wire.Value{wire.String(name), wire.Int(categoryID), wire.Int(supplierID), wire.Float(price)},
	})
}

// Products returns the product table: rows of [id, name, categoryId, supplierId, price].
func (c *Client) Products() ([][]wire.Value, error) {
	return c.table(wire.Request{Name: wire.CmdViewProducts, Args: []wire.Value{}})
}

// Categories returns the category table: rows of [id, name].
func (c *Client) Categories() ([][]wire.Value, error) {
	return c.table(wire.Request{Name: wire.CmdViewCategories, Args: []wire.Value{}})
}

// Suppliers returns the supplier table: rows of [id, name, contact].
func (c *Client) Suppliers() ([][]wire.Value, error) {
	return c.table(wire.Request{Name: wire.CmdViewSuppliers, Args: []wire.Value{}})
}

func (c *Client) text(req wire.Request) (string, error) {
	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	if resp.Kind != wire.KindString {
		return "", fmt.Errorf("unexpected response kind 0x%02x for %s", byte(resp.Kind), req.Name)
	}
	return resp.Str, nil
}

func (c *Client) table(req wire.Request) ([][]wire.Value, error) {
	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	switch resp.Kind {
	case wire.KindTable:
		return resp.Table, nil
	case wire.KindString:
		// The server reports backend failures as a text response.
		return nil, fmt.Errorf("server rejected %s: %s", req.Name, resp.Str)
	default:
		return nil, fmt.Errorf("unexpected response kind 0x%02x for %s", byte(resp.Kind), req.Name)
	}
}
