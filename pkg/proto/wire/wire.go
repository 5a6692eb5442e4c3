// Package wire defines the tagged-value encoding used between inventory
// clients and the server. Every value on the stream is a one-byte kind tag
// followed by a kind-specific payload, so the protocol can be implemented
// independently of the Go runtime on either side.
package wire

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Command names of the protocol vocabulary. Unrecognized names are still
// valid wire values; the server answers them with an error message.
const (
	CmdAddCategory    = "ADD_CATEGORY"
	CmdAddSupplier    = "ADD_SUPPLIER"
	CmdAddProduct     = "ADD_PRODUCT"
	CmdViewProducts   = "VIEW_PRODUCTS"
	CmdViewCategories = "VIEW_CATEGORIES"
	CmdViewSuppliers  = "VIEW_SUPPLIERS"
)

// Kind identifies the type of a wire value.
type Kind byte

const (
	KindString Kind = 0x01
	KindInt    Kind = 0x02
	KindFloat  Kind = 0x03
	KindTable  Kind = 0x04
)

// Limits on decoded sizes. Anything beyond these is treated as a broken or
// malicious peer and surfaces as a decode error.
const (
	maxStringLen = 1 << 20
	maxTableRows = 1 << 20
	maxTableCols = 64
	maxArgs      = 16
)

var (
	ErrUnknownKind = errors.New("wire: unknown value kind")
	ErrTooLarge    = errors.New("wire: value exceeds size limit")
	ErrNestedTable = errors.New("wire: table cells must be scalar")
)

// Value is a closed variant over the wire types: a string, an integer, a
// float, or a table of scalar cells. Exactly the fields implied by Kind are
// meaningful.
type Value struct {
	Kind  Kind
	Str   string
	Int   int64
	Float float64
	Table [][]Value
}

// String returns a string value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Int returns an integer value.
func Int(i int64) Value { return Value{Kind: KindInt, Int: i} }

// Float returns a floating point value. A whole-valued float stays a float
// on the wire; the codec never coerces between Int and Float.
func Float(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// Table returns a table value from rows of scalar cells.
func Table(rows [][]Value) Value { return Value{Kind: KindTable, Table: rows} }

// Request is one decoded command frame: a name from the command vocabulary
// and its ordered, typed arguments.
type Request struct {
	Name string
	Args []Value
}

// Encoder writes wire values to a buffered stream. Callers must Flush after
// each complete frame.
type Encoder struct {
	w *bufio.Writer
}

// NewEncoder creates an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Encode writes a single tagged value.
func (e *Encoder) Encode(v Value) error {
	switch v.Kind {
	case KindString:
		if err := e.w.WriteByte(byte(KindString)); err != nil {
			return err
		}
		return e.writeString(v.Str)
	case KindInt:
		if err := e.w.WriteByte(byte(KindInt)); err != nil {
			return err
		}
		return e.writeVarint(v.Int)
	case KindFloat:
		if err := e.w.WriteByte(byte(KindFloat)); err != nil {
			return err
		}
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(v.Float))
		_, err := e.w.Write(buf[:])
		return err
	case KindTable:
		if err := e.w.WriteByte(byte(KindTable)); err != nil {
			return err
		}
		if err := e.writeUvarint(uint64(len(v.Table))); err != nil {
			return err
		}
		for _, row := range v.Table {
			if err := e.writeUvarint(uint64(len(row))); err != nil {
				return err
			}
			for _, cell := range row {
				if cell.Kind == KindTable {
					return ErrNestedTable
				}
				if err := e.Encode(cell); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: 0x%02x", ErrUnknownKind, byte(v.Kind))
	}
}

// EncodeRequest writes a command frame: the name, the argument count, and
// the arguments in order.
func (e *Encoder) EncodeRequest(req Request) error {
	if len(req.Args) > maxArgs {
		return fmt.Errorf("%w: %d arguments", ErrTooLarge, len(req.Args))
	}
	if err := e.Encode(String(req.Name)); err != nil {
		return err
	}
	if err := e.writeUvarint(uint64(len(req.Args))); err != nil {
		return err
	}
	for _, arg := range req.Args {
		if arg.Kind == KindTable {
			return ErrNestedTable
		}
		if err := e.Encode(arg); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes any buffered data to the underlying stream.
func (e *Encoder) Flush() error {
	return e.w.Flush()
}

func (e *Encoder) writeString(s string) error {
	if len(s) > maxStringLen {
		return fmt.Errorf("%w: string of %d bytes", ErrTooLarge, len(s))
	}
	if err := e.writeUvarint(uint64(len(s))); err != nil {
		return err
	}
	_, err := e.w.WriteString(s)
	return err
}

func (e *Encoder) writeVarint(i int64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutVarint(buf[:], i)
	_, err := e.w.Write(buf[:n])
	return err
}

func (e *Encoder) writeUvarint(u uint64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], u)
	_, err := e.w.Write(buf[:n])
	return err
}

// Decoder reads wire values from a buffered stream.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Decode reads a single tagged value. It returns io.EOF only when the
// stream ends cleanly before the kind tag; a frame truncated mid-value
// yields io.ErrUnexpectedEOF.
func (d *Decoder) Decode() (Value, error) {
	tag, err := d.r.ReadByte()
	if err != nil {
		return Value{}, err
	}
	switch Kind(tag) {
	case KindString:
		s, err := d.readString()
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	case KindInt:
		i, err := binary.ReadVarint(d.r)
		if err != nil {
			return Value{}, noEOF(err)
		}
		return Int(i), nil
	case KindFloat:
		var buf [8]byte
		if _, err := io.ReadFull(d.r, buf[:]); err != nil {
			return Value{}, noEOF(err)
		}
		return Float(math.Float64frombits(binary.BigEndian.Uint64(buf[:]))), nil
	case KindTable:
		return d.readTable()
	default:
		return Value{}, fmt.Errorf("%w: 0x%02x", ErrUnknownKind, tag)
	}
}

// DecodeRequest reads one command frame. io.EOF before the first byte means
// the peer disconnected between commands.
func (d *Decoder) DecodeRequest() (Request, error) {
	name, err := d.Decode()
	if err != nil {
		return Request{}, err
	}
	if name.Kind != KindString {
		return Request{}, fmt.Errorf("wire: command name must be a string, got kind 0x%02x", byte(name.Kind))
	}
	argc, err := binary.ReadUvarint(d.r)
	if err != nil {
		return Request{}, noEOF(err)
	}
	if argc > maxArgs {
		return Request{}, fmt.Errorf("%w: %d arguments", ErrTooLarge, argc)
	}
	args := make([]Value, 0, argc)
	for range argc {
		arg, err := d.Decode()
		if err != nil {
			return Request{}, noEOF(err)
		}
		if arg.Kind == KindTable {
			return Request{}, ErrNestedTable
		}
		args = append(args, arg)
	}
	return Request{Name: name.Str, Args: args}, nil
}

func (d *Decoder) readString() (string, error) {
	n, err := binary.ReadUvarint(d.r)
	if err != nil {
		return "", noEOF(err)
	}
	if n > maxStringLen {
		return "", fmt.Errorf("%w: string of %d bytes", ErrTooLarge, n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return "", noEOF(err)
	}
	return string(buf), nil
}

func (d *Decoder) readTable() (Value, error) {
	rows, err := binary.ReadUvarint(d.r)
	if err != nil {
		return Value{}, noEOF(err)
	}
	if rows > maxTableRows {
		return Value{}, fmt.Errorf("%w: table of %d rows", ErrTooLarge, rows)
	}
	table := make([][]Value, 0, rows)
	for range rows {
		cols, err := binary.ReadUvarint(d.r)
		if err != nil {
			return Value{}, noEOF(err)
		}
		if cols > maxTableCols {
			return Value{}, fmt.Errorf("%w: row of %d cells", ErrTooLarge, cols)
		}
		row := make([]Value, 0, cols)
		for range cols {
			cell, err := d.Decode()
			if err != nil {
				return Value{}, noEOF(err)
			}
			if cell.Kind == KindTable {
				return Value{}, ErrNestedTable
			}
			row = append(row, cell)
		}
		table = append(table, row)
	}
	return Table(table), nil
}

// noEOF converts io.EOF inside a frame into io.ErrUnexpectedEOF so that a
// clean disconnect is distinguishable from a truncated frame.
func noEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
