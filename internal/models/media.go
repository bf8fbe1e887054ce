package models

// MediaReference is one media slot as persisted on its owning row. Embedded with
// `gorm:"embedded;embeddedPrefix:<slot>_"` it yields the <slot>_url, <slot>_file,
// <slot>_data, <slot>_mime and <slot>_filename columns.
//
// At most one of URL, File and Data is meant to be populated; the setters enforce it.
type MediaReference struct {
	URL      string `gorm:"column:url;size:1024"`
	File     string `gorm:"column:file;size:512"`
	Data     []byte `gorm:"column:data"`
	Mime     string `gorm:"column:mime;size:100"`
	Filename string `gorm:"column:filename;size:255"`
}

func (m MediaReference) ExternalURL() string { return m.URL }
func (m MediaReference) FileHandle() string  { return m.File }
func (m MediaReference) Blob() []byte        { return m.Data }
func (m MediaReference) MimeType() string    { return m.Mime }
func (m MediaReference) FileName() string    { return m.Filename }

// IsEmpty reports whether no channel holds media
func (m MediaReference) IsEmpty() bool {
	return m.URL == "" && m.File == "" && len(m.Data) == 0
}

// SetExternalURL points the slot at a remote URL. The previous file handle is
// returned so the caller can release it.
func (m *MediaReference) SetExternalURL(url string) (released string) {
	released = m.File
	*m = MediaReference{URL: url}
	return released
}

// SetFile stores a managed-file handle and drops URL and blob
func (m *MediaReference) SetFile(handle, filename, mime string) (released string) {
	released = m.File
	if released == handle {
		released = ""
	}
	*m = MediaReference{File: handle, Filename: filename, Mime: mime}
	return released
}

// SetBlob stores raw bytes in the legacy channel and drops URL and file
func (m *MediaReference) SetBlob(data []byte, filename, mime string) (released string) {
	released = m.File
	*m = MediaReference{Data: data, Filename: filename, Mime: mime}
	return released
}

// Clear empties every channel
func (m *MediaReference) Clear() (released string) {
	released = m.File
	*m = MediaReference{}
	return released
}

// Columns returns the update map that persists m under prefix
func (m MediaReference) Columns(prefix string) map[string]interface{} {
	var data interface{}
	if m.Data != nil {
		data = m.Data
	}
	return map[string]interface{}{
		prefix + "url":      m.URL,
		prefix + "file":     m.File,
		prefix + "data":     data,
		prefix + "mime":     m.Mime,
		prefix + "filename": m.Filename,
	}
}
