package multipart

import (
	"bytes"
	"io"
	"mime"
	stdmultipart "mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_Text(t *testing.T) {
	got := Encode("B", TextPart("hello world"))

	want := "--B\r\n" +
		"Content-Type: text/plain\r\n" +
		"Content-Disposition: form-data; name=\"data\"; filename=\"text\"\r\n" +
		"\r\n" +
		"hello world\r\n" +
		"--B--"
	assert.Equal(t, want, string(got))
}

func TestEncode_File(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		wantHeader  string
	}{
		{
			name:       "default content type",
			filename:   "a.jpg",
			wantHeader: "Content-Type: application/octet-stream\r\nContent-Disposition: form-data; name=\"data\"; filename=\"a.jpg\"\r\n",
		},
		{
			name:        "explicit content type",
			filename:    "a.png",
			contentType: "image/png",
			wantHeader:  "Content-Type: image/png\r\nContent-Disposition: form-data; name=\"data\"; filename=\"a.png\"\r\n",
		},
		{
			name:       "quoted filename",
			filename:   `we"ird.bin`,
			wantHeader: "Content-Type: application/octet-stream\r\nContent-Disposition: form-data; name=\"data\"; filename=\"we\\\"ird.bin\"\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(Encode("B", FilePart(tt.filename, []byte{0, 1, 2}, tt.contentType)))
			assert.True(t, strings.HasPrefix(got, "--B\r\n"+tt.wantHeader+"\r\n"), got)
			assert.True(t, strings.HasSuffix(got, "\x00\x01\x02\r\n--B--"), got)
		})
	}
}

func TestEncode_Properties(t *testing.T) {
	contents := [][]byte{
		nil,
		[]byte("x"),
		[]byte("line1\r\nline2\n"),
		bytes.Repeat([]byte{0xff}, 4096),
	}

	for _, c := range contents {
		boundary := NewBoundary()
		got := Encode(boundary, FilePart("f.bin", c, ""))

		assert.True(t, bytes.HasPrefix(got, []byte("--"+boundary)))
		assert.True(t, bytes.HasSuffix(got, []byte("--"+boundary+"--")))
		assert.Equal(t, 1, bytes.Count(got, []byte(`Content-Disposition: form-data; name="data"`)))
	}
}

func TestEncode_ParsesAsMultipart(t *testing.T) {
	body := NewEncoder(nil).Encode(FilePart("photo.jpg", []byte("binary\r\n--data"), "image/jpeg"))

	mediaType, params, err := mime.ParseMediaType(body.ContentType())
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)
	assert.Equal(t, body.Boundary, params["boundary"])

	r := stdmultipart.NewReader(bytes.NewReader(body.Data), params["boundary"])
	part, err := r.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "data", part.FormName())
	assert.Equal(t, "photo.jpg", part.FileName())
	assert.Equal(t, "image/jpeg", part.Header.Get("Content-Type"))

	content, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, "binary\r\n--data", string(content))

	_, err = r.NextPart()
	assert.ErrorIs(t, err, io.EOF)
}

func TestNewBoundary(t *testing.T) {
	a := NewBoundary()
	b := NewBoundary()

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "qiniu"))
	assert.NotContains(t, a, "-")
	assert.Len(t, a, len("qiniu")+32)
}

func TestEncoder_RegeneratesCollidingBoundary(t *testing.T) {
	seq := []string{"AAA", "BBB"}
	calls := 0
	enc := NewEncoder(func() string {
		b := seq[calls%len(seq)]
		calls++
		return b
	})

	body := enc.Encode(TextPart("contains AAA inside"))

	assert.Equal(t, "BBB", body.Boundary)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "multipart/form-data; boundary=BBB", body.ContentType())
}
