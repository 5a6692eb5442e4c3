package wire

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, v Value) Value {
	t.Helper()
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	require.NoError(t, enc.Encode(v))
	require.NoError(t, enc.Flush())

	decoded, err := NewDecoder(&buf).Decode()
	require.NoError(t, err)
	return decoded
}

func Test_Value_RoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		value Value
	}{
		{name: "empty string", value: String("")},
		{name: "string", value: String("Electronics")},
		{name: "string with multibyte runes", value: String("catégorie ☕")},
		{name: "zero int", value: Int(0)},
		{name: "positive int", value: Int(42)},
		{name: "negative int", value: Int(-7)},
		{name: "float", value: Float(499.99)},
		{name: "whole-valued float stays float", value: Float(500)},
		{name: "empty table", value: Table([][]Value{})},
		{
			name: "product table",
			value: Table([][]Value{
				{Int(1), String("Phone"), Int(1), Int(1), Float(499.99)},
				{Int(2), String("Laptop"), Int(1), Int(2), Float(1299)},
			}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decoded := roundTrip(t, tc.value)
			assert.Equal(t, tc.value.Kind, decoded.Kind)
			switch tc.value.Kind {
			case KindTable:
				require.Len(t, decoded.Table, len(tc.value.Table))
				for i, row := range tc.value.Table {
					assert.Equal(t, row, decoded.Table[i])
				}
			default:
				assert.Equal(t, tc.value, decoded)
			}
		})
	}
}

func Test_Value_NoIntFloatCoercion(t *testing.T) {
	// A price of 500 encoded as a float must decode as a float, never as an int.
	decoded := roundTrip(t, Float(500))
	assert.Equal(t, KindFloat, decoded.Kind)
	assert.Equal(t, 500.0, decoded.Float)

	decoded = roundTrip(t, Int(500))
	assert.Equal(t, KindInt, decoded.Kind)
	assert.Equal(t, int64(500), decoded.Int)
}

func Test_Request_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		req  Request
	}{
		{name: "no args", req: Request{Name: "VIEW_PRODUCTS", Args: []Value{}}},
		{name: "one arg", req: Request{Name: "ADD_CATEGORY", Args: []Value{String("Electronics")}}},
		{
			name: "mixed args",
			req:  Request{Name: "ADD_PRODUCT", Args: []Value{String("Phone"), Int(1), Int(1), Float(499.99)}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			enc := NewEncoder(&buf)
			require.NoError(t, enc.EncodeRequest(tc.req))
			require.NoError(t, enc.Flush())

			decoded, err := NewDecoder(&buf).DecodeRequest()
			require.NoError(t, err)
			assert.Equal(t, tc.req, decoded)
		})
	}
}

func Test_Decode_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		input    []byte
		expected error
	}{
		{name: "unknown kind tag", input: []byte{0x7f}, expected: ErrUnknownKind},
		{name: "truncated string length", input: []byte{byte(KindString)}, expected: io.ErrUnexpectedEOF},
		{name: "truncated string body", input: []byte{byte(KindString), 0x05, 'a', 'b'}, expected: io.ErrUnexpectedEOF},
		{name: "truncated float", input: []byte{byte(KindFloat), 0x01, 0x02}, expected: io.ErrUnexpectedEOF},
		{name: "truncated int", input: []byte{byte(KindInt), 0x80}, expected: io.ErrUnexpectedEOF},
		{name: "oversized string", input: []byte{byte(KindString), 0xff, 0xff, 0xff, 0xff, 0x07}, expected: ErrTooLarge},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDecoder(bytes.NewReader(tc.input)).Decode()
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func Test_DecodeRequest_Errors(t *testing.T) {
	t.Run("clean EOF before command", func(t *testing.T) {
		_, err := NewDecoder(bytes.NewReader(nil)).DecodeRequest()
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("command name must be a string", func(t *testing.T) {
		var buf bytes.Buffer
		enc := NewEncoder(&buf)
		require.NoError(t, enc.Encode(Int(5)))
		require.NoError(t, enc.Flush())

		_, err := NewDecoder(&buf).DecodeRequest()
		assert.Error(t, err)
	})

	t.Run("truncated argument list", func(t *testing.T) {
		var buf bytes.Buffer
		enc := NewEncoder(&buf)
		require.NoError(t, enc.Encode(String("ADD_CATEGORY")))
		require.NoError(t, enc.Flush())
		// argument count says one, but no argument follows
		buf.WriteByte(0x01)

		_, err := NewDecoder(&buf).DecodeRequest()
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}

func Test_Encode_RejectsNestedTables(t *testing.T) {
	nested := Table([][]Value{{Table([][]Value{})}})
	enc := NewEncoder(&bytes.Buffer{})
	assert.ErrorIs(t, enc.Encode(nested), ErrNestedTable)
}
