package domain

// StorageType names a registered storage backend.
type StorageType string

// Built-in storage backends.
const (
	// StorageMemory keeps keys in process memory.
	StorageMemory StorageType = "memory"

	// StorageFile keeps keys as files under a root directory.
	StorageFile StorageType = "file"

	// StorageSQLite keeps keys as rows of a single-file SQLite database.
	StorageSQLite StorageType = "sqlite"
)

// String returns the string representation.
func (t StorageType) String() string {
	return string(t)
}

// CacheType names a registered cache implementation.
type CacheType string

// Built-in cache types.
const (
	CacheNone   CacheType = "none"
	CacheMemory CacheType = "memory"
	CacheFile   CacheType = "file"
	CacheSQLite CacheType = "sqlite"
)

// String returns the string representation.
func (t CacheType) String() string {
	return string(t)
}

// ChunkStrategy names a text-splitting strategy.
type ChunkStrategy string

// Built-in chunk strategies.
const (
	// ChunkStrategyTokens slides a fixed-size token window across each group's text.
	ChunkStrategyTokens ChunkStrategy = "tokens"

	// ChunkStrategyWords slides a window of whitespace-delimited words.
	ChunkStrategyWords ChunkStrategy = "words"

	// ChunkStrategySentence emits one chunk per sentence.
	ChunkStrategySentence ChunkStrategy = "sentence"
)

// String returns the string representation.
func (s ChunkStrategy) String() string {
	return string(s)
}

// Default configuration values.
const (
	DefaultChunkSize      = 1200
	DefaultChunkOverlap   = 100
	DefaultEncodingModel  = "cl100k_base"
	DefaultInputPattern   = `.*\.txt$`
	DefaultInputEncoding  = "utf-8"
	DefaultInputBaseDir   = "input"
	DefaultOutputBaseDir  = "output"
	DefaultCacheBaseDir   = "cache"
	DefaultIndexingMethod = "text"
)

// StorageConfig selects and configures one storage backend.
type StorageConfig struct {
	Type    StorageType `toml:"type" yaml:"type" json:"type"`
	BaseDir string      `toml:"base_dir" yaml:"base_dir" json:"base_dir"`
}

// Options returns the constructor options passed to the storage registry.
func (c StorageConfig) Options() map[string]any {
	return map[string]any{"base_dir": c.BaseDir}
}

// CacheConfig selects and configures the LLM response cache.
type CacheConfig struct {
	Type    CacheType `toml:"type" yaml:"type" json:"type"`
	BaseDir string    `toml:"base_dir" yaml:"base_dir" json:"base_dir"`
}

// InputConfig configures input document discovery.
type InputConfig struct {
	Storage StorageConfig `toml:"storage" yaml:"storage" json:"storage"`

	// FilePattern is a regular expression matched against input storage keys.
	FilePattern string `toml:"file_pattern" yaml:"file_pattern" json:"file_pattern"`

	// Encoding is the expected text encoding of input files.
	Encoding string `toml:"encoding" yaml:"encoding" json:"encoding"`
}

// ChunkingConfig configures the create_base_text_units workflow.
type ChunkingConfig struct {
	// Size is the maximum number of tokens per chunk.
	Size int `toml:"size" yaml:"size" json:"size"`

	// Overlap is the number of tokens shared by consecutive chunks.
	Overlap int `toml:"overlap" yaml:"overlap" json:"overlap"`

	// GroupByColumns lists the document columns whose values form a chunking group.
	// An empty list places all documents in a single group.
	GroupByColumns []string `toml:"group_by_columns" yaml:"group_by_columns" json:"group_by_columns"`

	// Strategy selects the text splitter.
	Strategy ChunkStrategy `toml:"strategy" yaml:"strategy" json:"strategy"`

	// EncodingModel names the tokenizer encoding.
	EncodingModel string `toml:"encoding_model" yaml:"encoding_model" json:"encoding_model"`

	// PrependMetadata prefixes every chunk with the group's metadata as "key: value" lines.
	PrependMetadata bool `toml:"prepend_metadata" yaml:"prepend_metadata" json:"prepend_metadata"`
}

// Config is the complete indexing configuration.
type Config struct {
	// RootDir anchors relative base directories.
	RootDir string `toml:"root_dir" yaml:"root_dir" json:"root_dir"`

	Input InputConfig `toml:"input" yaml:"input" json:"input"`

	// Output is where tables, run state and stats are written.
	Output StorageConfig `toml:"output" yaml:"output" json:"output"`

	// UpdateOutput is the previous-run storage used by incremental runs.
	// When its type is empty the output storage is reused for this role.
	UpdateOutput StorageConfig `toml:"update_output" yaml:"update_output" json:"update_output"`

	Cache CacheConfig `toml:"cache" yaml:"cache" json:"cache"`

	Chunks ChunkingConfig `toml:"chunks" yaml:"chunks" json:"chunks"`

	// Workflows overrides the pipeline's workflow list when non-empty.
	Workflows []string `toml:"workflows,omitempty" yaml:"workflows,omitempty" json:"workflows,omitempty"`
}
