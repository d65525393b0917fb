package httpx

import (
	"bytes"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipCompress(data []byte) []byte {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write(data)
	_ = gz.Close()
	return buf.Bytes()
}

func brCompress(data []byte) []byte {
	var buf bytes.Buffer
	br := brotli.NewWriter(&buf)
	_, _ = br.Write(data)
	_ = br.Close()
	return buf.Bytes()
}

func zstdCompress(data []byte) []byte {
	var buf bytes.Buffer
	zw, _ := zstd.NewWriter(&buf)
	_, _ = zw.Write(data)
	_ = zw.Close()
	return buf.Bytes()
}

func zlibCompress(data []byte) []byte {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, _ = zw.Write(data)
	_ = zw.Close()
	return buf.Bytes()
}

func rawDeflateCompress(data []byte) []byte {
	var buf bytes.Buffer
	dw, _ := flate.NewWriter(&buf, flate.DefaultCompression)
	_, _ = dw.Write(data)
	_ = dw.Close()
	return buf.Bytes()
}

func TestDecodeChain(t *testing.T) {
	plain := []byte(`{"post_id":"8c1d","author_id":"u1","caption":"what a match"}`)

	tests := []struct {
		name            string
		contentEncoding string
		body            []byte
		expectChanged   bool
	}{
		{name: "no encoding", contentEncoding: "", body: plain},
		{name: "identity", contentEncoding: "identity", body: plain},
		{name: "gzip", contentEncoding: "gzip", body: gzipCompress(plain), expectChanged: true},
		{name: "brotli", contentEncoding: "br", body: brCompress(plain), expectChanged: true},
		{name: "zstd", contentEncoding: "zstd", body: zstdCompress(plain), expectChanged: true},
		{name: "deflate zlib wrapped", contentEncoding: "deflate", body: zlibCompress(plain), expectChanged: true},
		{name: "deflate raw", contentEncoding: "deflate", body: rawDeflateCompress(plain), expectChanged: true},
		{name: "chained gzip then br", contentEncoding: "gzip, br", body: brCompress(gzipCompress(plain)), expectChanged: true},
		{name: "upper case", contentEncoding: "GZIP", body: gzipCompress(plain), expectChanged: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, changed, err := DecodeChain(tt.contentEncoding, tt.body, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.expectChanged, changed)
			assert.Equal(t, plain, decoded)
		})
	}
}

func TestDecodeChain_UnknownEncoding(t *testing.T) {
	_, _, err := DecodeChain("foo", []byte("abc"), 0)
	assert.ErrorContains(t, err, "unsupported content-encoding")
}

func TestDecodeChain_CorruptBody(t *testing.T) {
	_, _, err := DecodeChain("gzip", []byte("not gzip"), 0)
	assert.Error(t, err)
}

func TestDecodeChain_SizeLimit(t *testing.T) {
	large := bytes.Repeat([]byte("a"), 4096)

	_, _, err := DecodeChain("gzip", gzipCompress(large), 1024)
	assert.ErrorIs(t, err, ErrDecodedBodyTooLarge)

	decoded, _, err := DecodeChain("gzip", gzipCompress(large), 4096)
	require.NoError(t, err)
	assert.Len(t, decoded, 4096)
}
