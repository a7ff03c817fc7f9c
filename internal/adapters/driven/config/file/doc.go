// Package file loads and saves indexing configuration files.
//
// TOML (.toml) and YAML (.yaml, .yml) files are supported. Values absent from a
// file keep their defaults, and relative base directories are resolved against
// the configuration's root directory.
package file
