package report

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// imageMarkdown renders the Markdown reference for a chart. With
// embed set and the file readable, the image bytes are inlined as a
// base64 data URI; otherwise the reference is the bare filename, relative
// to the report's own directory.
func imageMarkdown(imagePath, altText string, embed bool) string {
	if embed {
		if uri, err := imageDataURI(imagePath); err == nil {
			return fmt.Sprintf("![%s](%s)", altText, uri)
		}
	}
	return fmt.Sprintf("![%s](%s)", altText, filepath.Base(imagePath))
}

func imageDataURI(imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", err
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(imagePath)), ".")
	mime := "image/" + ext
	if ext == "png" || ext == "" {
		mime = "image/png"
	}

	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data)), nil
}
