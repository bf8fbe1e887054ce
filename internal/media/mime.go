package media

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// extensionByMime is the fixed table used when synthesizing filenames for blobs
var extensionByMime = map[string]string{
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"image/svg+xml":   ".svg",
	"application/pdf": ".pdf",
}

var mimeByExtension = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".bmp":  "image/bmp",
	".ico":  "image/x-icon",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// ExtensionForMime maps a MIME type to a file extension, ".bin" when unknown
func ExtensionForMime(mimeType string) string {
	mimeType = normalize(mimeType)
	if ext, ok := extensionByMime[mimeType]; ok {
		return ext
	}
	if mimeType != "" {
		if m := mimetype.Lookup(mimeType); m != nil && m.Extension() != "" {
			return m.Extension()
		}
		if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
			return exts[0]
		}
	}
	return ".bin"
}

// MimeFromFilename guesses a MIME type from the extension; "" when unknown
func MimeFromFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return ""
	}
	if m, ok := mimeByExtension[ext]; ok {
		return m
	}
	return normalize(mime.TypeByExtension(ext))
}

// DetectMime picks the MIME type of an upload: the explicit content-type header,
// then the filename extension, then fallback.
func DetectMime(header, filename, fallback string) string {
	if m := normalize(header); m != "" && m != DefaultMime {
		return m
	}
	if m := MimeFromFilename(filename); m != "" {
		return m
	}
	return fallback
}

// SniffMime inspects content; used when a payload reaches storage with no type
func SniffMime(data []byte) string {
	return normalize(mimetype.Detect(data).String())
}

func normalize(mimeType string) string {
	mimeType = strings.TrimSpace(strings.ToLower(mimeType))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return mimeType
}
