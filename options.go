package voevent

// WriteOptions controls how a Document is serialized.
type WriteOptions struct {
	// PrettyPrint re-indents the output with two spaces per level.
	// Existing whitespace-only text is discarded when set.
	PrettyPrint bool

	// XMLDeclaration emits a leading <?xml ...?> declaration naming
	// Encoding.
	XMLDeclaration bool

	// Encoding is an IANA character set name. Empty means UTF-8.
	Encoding string
}

// DefaultWriteOptions returns the options used by Document.Bytes: an XML
// declaration followed by the document as held, without re-indentation,
// in UTF-8.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		XMLDeclaration: true,
		Encoding:       "UTF-8",
	}
}

func (o WriteOptions) encoding() string {
	if o.Encoding == "" {
		return "UTF-8"
	}
	return o.Encoding
}

// ParseOptions controls how packets are read.
type ParseOptions struct {
	// SkipVersionCheck accepts documents whose version attribute is not
	// "2.0". Validation of such documents will fail, but they can still be
	// inspected.
	SkipVersionCheck bool
}
