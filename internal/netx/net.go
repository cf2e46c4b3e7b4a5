// Package netx builds request bodies the abstract server expects.
package netx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"
)

// FigureMeta is the JSON part sent next to an uploaded figure.
type FigureMeta struct {
	Caption string `json:"caption"`
}

// FigureForm encodes a figure upload as multipart/form-data with a "file"
// part holding the image and a "figure" part holding FigureMeta as JSON.
// It returns the body and its Content-Type.
func FigureForm(caption, fileName string, image io.Reader) (*bytes.Buffer, string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(fileName)))
	h.Set("Content-Type", ImageContentType(fileName))
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, "", fmt.Errorf("copy figure: %w", err)
	}

	meta, err := json.Marshal(FigureMeta{Caption: caption})
	if err != nil {
		return nil, "", err
	}
	if err := w.WriteField("figure", string(meta)); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &body, w.FormDataContentType(), nil
}

// ImageContentType guesses the MIME type from the file extension.
func ImageContentType(fileName string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), ".")) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif", "giff":
		return "image/gif"
	case "png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
