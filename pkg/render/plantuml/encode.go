package plantuml

import (
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"strings"
)

// encodeTable is the 64-character alphabet PlantUML servers expect in
// diagram URLs. It differs from standard base64: digits sort first and the
// two extra characters are '-' and '_'.
const encodeTable = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_"

// Encode compresses diagram text with raw DEFLATE and packs it into the
// PlantUML URL alphabet. The result goes directly into a server URL path.
func Encode(text string) (string, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("deflate: %w", err)
	}
	if _, err := w.Write([]byte(text)); err != nil {
		return "", fmt.Errorf("deflate: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("deflate: %w", err)
	}
	return encode64(buf.Bytes()), nil
}

// Decode reverses [Encode]. Servers never send encoded text back; this
// exists for debugging and tests.
func Decode(encoded string) (string, error) {
	data, err := decode64(encoded)
	if err != nil {
		return "", err
	}
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	text, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("inflate: %w", err)
	}
	return string(text), nil
}

// encode64 packs bytes into the PlantUML alphabet, three bytes to four
// characters. Partial trailing groups are zero-padded, matching the
// reference encoder.
func encode64(data []byte) string {
	var sb strings.Builder
	sb.Grow((len(data) + 2) / 3 * 4)
	for i := 0; i < len(data); i += 3 {
		var b2, b3 byte
		b1 := data[i]
		if i+1 < len(data) {
			b2 = data[i+1]
		}
		if i+2 < len(data) {
			b3 = data[i+2]
		}
		sb.WriteByte(encodeTable[b1>>2])
		sb.WriteByte(encodeTable[((b1&0x03)<<4)|(b2>>4)])
		sb.WriteByte(encodeTable[((b2&0x0F)<<2)|(b3>>6)])
		sb.WriteByte(encodeTable[b3&0x3F])
	}
	return sb.String()
}

func decode64(s string) ([]byte, error) {
	if len(s)%4 != 0 {
		return nil, fmt.Errorf("encoded length %d is not a multiple of 4", len(s))
	}
	vals := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		v := strings.IndexByte(encodeTable, s[i])
		if v < 0 {
			return nil, fmt.Errorf("invalid character %q at offset %d", s[i], i)
		}
		vals[i] = byte(v)
	}

	out := make([]byte, 0, len(s)/4*3)
	for i := 0; i < len(vals); i += 4 {
		out = append(out,
			vals[i]<<2|vals[i+1]>>4,
			vals[i+1]<<4|vals[i+2]>>2,
			vals[i+2]<<6|vals[i+3])
	}
	return out, nil
}
