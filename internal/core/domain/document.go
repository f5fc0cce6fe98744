package domain

// Metadata keys every loader sets on ExtraInfo where applicable.
const (
	MetaFilePath = "file_path"
	MetaFileName = "file_name"
	MetaURL      = "url"
)

// Document is the uniform output unit of a loader.
// Ownership passes to the caller; loaders never touch a document again
// after returning it.
type Document struct {
	// ID is a stable identifier derived from the document's origin.
	ID string `json:"id"`

	// Text is the decoded textual content.
	Text string `json:"text"`

	// ExtraInfo carries loader-specific metadata such as file_path.
	ExtraInfo map[string]any `json:"extra_info"`
}

// FilePath returns the file_path metadata value, or empty string.
func (d Document) FilePath() string {
	return d.metaString(MetaFilePath)
}

// FileName returns the file_name metadata value, or empty string.
func (d Document) FileName() string {
	return d.metaString(MetaFileName)
}

// URL returns the url metadata value, or empty string.
func (d Document) URL() string {
	return d.metaString(MetaURL)
}

func (d Document) metaString(key string) string {
	if d.ExtraInfo == nil {
		return ""
	}
	s, _ := d.ExtraInfo[key].(string)
	return s
}
