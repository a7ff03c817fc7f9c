package driven

// Normaliser extracts plain text from one input file format.
type Normaliser interface {
	// Name identifies the format, e.g. "markdown".
	Name() string

	// Extensions returns the lower-case file extensions handled, including the dot.
	Extensions() []string

	// Normalise converts the content stored under key to plain text.
	Normalise(key string, content []byte) (NormaliseResult, error)
}

// NormaliseResult is the output of normalisation.
type NormaliseResult struct {
	// Text is the document text passed to chunking.
	Text string

	// Metadata is recorded on the document row. Nil when the format has none.
	Metadata map[string]any
}

// NormaliserLookup selects the normaliser for an input key.
type NormaliserLookup interface {
	// For returns the normaliser registered for key's extension, or the fallback.
	For(key string) Normaliser
}
