// Package html extracts readable text from HTML input.
package html
