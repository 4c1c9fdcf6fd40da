package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// objectNameFor builds folder/<uuid>-<timestamp><ext>. The extension comes from the original name,
// falling back to the content type.
func objectNameFor(folder, fileName, fileType string) string {
	name := fmt.Sprintf("%s/%s-%s", strings.Trim(folder, "/"), uuid.New().String(), time.Now().Format("20060102150405"))

	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" || len(ext) > 8 {
		ext = ".bin"
		if m := mimetype.Lookup(fileType); m != nil && m.Extension() != "" {
			ext = m.Extension()
		}
	}

	return name + ext
}
