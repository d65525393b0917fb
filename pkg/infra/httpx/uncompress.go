package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// DefaultMaxDecodedSize bounds a decoded request body.
const DefaultMaxDecodedSize = 1 << 20

var ErrDecodedBodyTooLarge = errors.New("decoded body exceeds size limit")

// DecodeChain decodes a body according to a Content-Encoding header value.
// Chained encodings ("gzip, br") are undone right to left. Supported: br, gzip,
// zstd and deflate, both zlib wrapped and raw. Returns the decoded body and
// whether it changed.
func DecodeChain(contentEncoding string, body []byte, maxSize int64) ([]byte, bool, error) {
	if contentEncoding == "" {
		return body, false, nil
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxDecodedSize
	}
	encodings := strings.Split(contentEncoding, ",")
	changed := false
	for i := len(encodings) - 1; i >= 0; i-- {
		enc := strings.TrimSpace(strings.ToLower(encodings[i]))
		var (
			out []byte
			err error
		)
		switch enc {
		case "br":
			out, err = readLimited(brotli.NewReader(bytes.NewReader(body)), maxSize)
		case "gzip", "x-gzip":
			out, err = decodeGzip(body, maxSize)
		case "zstd":
			out, err = decodeZstd(body, maxSize)
		case "deflate":
			out, err = decodeDeflate(body, maxSize)
		case "identity", "":
			continue
		default:
			return nil, false, fmt.Errorf("unsupported content-encoding: %q", encodings[i])
		}
		if err != nil {
			return nil, false, fmt.Errorf("decode %s: %w", enc, err)
		}
		body = out
		changed = true
	}
	return body, changed, nil
}

func readLimited(r io.Reader, maxSize int64) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > maxSize {
		return nil, ErrDecodedBodyTooLarge
	}
	return out, nil
}

func decodeGzip(body []byte, maxSize int64) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer gr.Close()
	return readLimited(gr, maxSize)
}

func decodeZstd(body []byte, maxSize int64) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return readLimited(dec, maxSize)
}

// decodeDeflate tries the zlib wrapper first and falls back to raw DEFLATE.
func decodeDeflate(body []byte, maxSize int64) ([]byte, error) {
	if zr, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
		defer zr.Close()
		return readLimited(zr, maxSize)
	}
	fr := flate.NewReader(bytes.NewReader(body))
	defer fr.Close()
	return readLimited(fr, maxSize)
}
