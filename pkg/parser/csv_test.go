package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func TestParseTableWithWarnings(t *testing.T) {
	t.Run("well-formed table", func(t *testing.T) {
		data := []byte("emp_id,flag\nE001,Y\nE002,N\n")

		result, err := ParseTableWithWarnings(data)

		require.NoError(t, err)
		assert.Equal(t, []string{"emp_id", "flag"}, result.Headers)
		assert.Equal(t, "utf-8", result.Encoding)
		assert.Empty(t, result.Warnings)
		require.Len(t, result.Records, 2)
		assert.Equal(t, map[string]string{"emp_id": "E001", "flag": "Y"}, result.Records[0])
	})

	t.Run("headers are trimmed", func(t *testing.T) {
		data := []byte(" emp_id , flag \nE001,Y\n")

		result, err := ParseTableWithWarnings(data)

		require.NoError(t, err)
		assert.Equal(t, []string{"emp_id", "flag"}, result.Headers)
	})

	t.Run("short row is padded with a warning", func(t *testing.T) {
		data := []byte("emp_id,flag,status\nE001,Y\n")

		result, err := ParseTableWithWarnings(data)

		require.NoError(t, err)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, 2, result.Warnings[0].Row)
		assert.Equal(t, "", result.Records[0]["status"])
	})

	t.Run("long row is truncated with a warning", func(t *testing.T) {
		data := []byte("emp_id,flag\nE001,Y,extra\n")

		result, err := ParseTableWithWarnings(data)

		require.NoError(t, err)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, "Y", result.Records[0]["flag"])
	})

	t.Run("empty file is an error", func(t *testing.T) {
		_, err := ParseTableWithWarnings(nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no header row")
	})

	t.Run("header-only file is an error", func(t *testing.T) {
		_, err := ParseTableWithWarnings([]byte("emp_id,flag\n"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no data rows")
	})
}

func TestDetectAndDecode(t *testing.T) {
	t.Run("plain UTF-8 passes through", func(t *testing.T) {
		decoded, encoding, err := DetectAndDecode([]byte("emp_id\nE001\n"))

		require.NoError(t, err)
		assert.Equal(t, "utf-8", encoding)
		assert.Equal(t, "emp_id\nE001\n", string(decoded))
	})

	t.Run("UTF-8 BOM is stripped", func(t *testing.T) {
		data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("emp_id\nE001\n")...)

		decoded, encoding, err := DetectAndDecode(data)

		require.NoError(t, err)
		assert.Equal(t, "utf-8-bom", encoding)
		assert.Equal(t, "emp_id\nE001\n", string(decoded))
	})

	t.Run("UTF-16 LE with BOM decodes", func(t *testing.T) {
		enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
		data, err := enc.Bytes([]byte("emp_id,flag\nE001,Y\n"))
		require.NoError(t, err)

		decoded, encoding, err := DetectAndDecode(data)

		require.NoError(t, err)
		assert.Equal(t, "utf-16le", encoding)
		assert.Equal(t, "emp_id,flag\nE001,Y\n", string(decoded))
	})

	t.Run("UTF-16 BE with BOM decodes", func(t *testing.T) {
		enc := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
		data, err := enc.Bytes([]byte("emp_id\nE001\n"))
		require.NoError(t, err)

		decoded, encoding, err := DetectAndDecode(data)

		require.NoError(t, err)
		assert.Equal(t, "utf-16be", encoding)
		assert.Equal(t, "emp_id\nE001\n", string(decoded))
	})

	t.Run("invalid UTF-8 falls back to Latin-1", func(t *testing.T) {
		data := []byte("emp_id,dev_login\nE001,ren\xe9\n")

		decoded, encoding, err := DetectAndDecode(data)

		require.NoError(t, err)
		assert.Equal(t, "latin-1", encoding)
		assert.Contains(t, string(decoded), "rené")
	})

	t.Run("UTF-16 input parses end to end", func(t *testing.T) {
		enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
		data, err := enc.Bytes([]byte("emp_id,flag\nE001,Y\n"))
		require.NoError(t, err)

		result, err := ParseTableWithWarnings(data)

		require.NoError(t, err)
		assert.Equal(t, "utf-16le", result.Encoding)
		assert.Equal(t, "Y", result.Records[0]["flag"])
	})
}
