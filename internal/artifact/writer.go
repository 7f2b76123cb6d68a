// Package artifact persists review documents to disk. Writes never raise:
// every failure is folded into the returned WriteResult so callers handle
// the degraded path explicitly.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmuchai/my-code-review-agent/internal/models"
)

const documentType = "code-review"

// Writer writes markdown review artifacts with a generated front-matter
// header. Stateless.
type Writer struct{}

// NewWriter returns a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write assembles the document (front matter, optional title heading,
// content) and overwrites filePath with it, creating parent directories as
// needed. On success Size is the exact byte count written. On failure the
// result carries the OS error text; no error is returned and nothing
// panics.
func (w *Writer) Write(filePath, content, title string) models.WriteResult {
	res := models.WriteResult{FilePath: filePath}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		res.Error = fmt.Sprintf("create directory: %v", err)
		return res
	}

	doc := buildDocument(content, title, time.Now().UTC())
	if err := os.WriteFile(filePath, []byte(doc), 0644); err != nil {
		res.Error = fmt.Sprintf("write file: %v", err)
		return res
	}

	res.Success = true
	res.Size = len(doc)
	return res
}

func buildDocument(content, title string, now time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "generated: %s\n", now.Format(time.RFC3339))
	fmt.Fprintf(&b, "type: %s\n", documentType)
	b.WriteString("---\n\n")
	if title != "" {
		fmt.Fprintf(&b, "# %s\n\n", title)
	}
	b.WriteString(content)
	return b.String()
}
