package core

import (
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeImport turns raw import bytes into text. A leading UTF-8 BOM is
// dropped. Input that is not valid UTF-8 is read as Windows-1252, the
// encoding spreadsheet programs on Windows use for "CSV" saves.
func DecodeImport(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return string(bytes.ToValidUTF8(data, []byte("�")))
	}
	return string(decoded)
}

// ReadCSV reads all of r, decodes it with DecodeImport and parses it with
// ParseCSV.
func ReadCSV(r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseCSV(DecodeImport(data)), nil
}
