package pushover

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxAttachmentSize is the largest attachment the API accepts.
const MaxAttachmentSize = 5 * 1024 * 1024

// sniffLen matches the header size mimetype inspects by default.
const sniffLen = 3072

type attachmentFile interface {
	io.ReadCloser
	Stat() (fs.FileInfo, error)
}

func openFile(name string) (attachmentFile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// openAttachment returns an open file only when it is a regular file small
// enough to send; the caller owns closing it.
func (c *Client) openAttachment(path string) (attachmentFile, error) {
	file, err := c.openFile(path)
	if err != nil {
		return nil, &AttachmentError{Path: path, Err: err}
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, &AttachmentError{Path: path, Err: err}
	}
	if info.IsDir() {
		file.Close()
		return nil, &AttachmentError{Path: path, Err: errIsDirectory}
	}
	if info.Size() > MaxAttachmentSize {
		file.Close()
		return nil, &AttachmentError{Path: path, Err: errAttachmentTooLarge}
	}

	return file, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeMultipart(values map[string][]string, path string, file io.Reader) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, key := range slices.Sorted(maps.Keys(values)) {
		for _, v := range values[key] {
			if err := w.WriteField(key, v); err != nil {
				return nil, "", err
			}
		}
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, "", &AttachmentError{Path: path, Err: err}
	}
	head = head[:n]

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="attachment"; filename="%s"`, quoteEscaper.Replace(filepath.Base(path))))
	header.Set("Content-Type", mimetype.Detect(head).String())

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, io.MultiReader(bytes.NewReader(head), file)); err != nil {
		return nil, "", &AttachmentError{Path: path, Err: err}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}
