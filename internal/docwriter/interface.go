package docwriter

// Writer persists one finished transcript to its output path.
type Writer interface {
	Write(path, title, text string) error
	// Ext is the output file extension, used for derived output names.
	Ext() string
}
