// Package document reads and writes YAML and JSON documents as ordered
// mappings.
//
// Key order is kept in both directions. Problems that do not stop a document
// from loading, such as duplicate keys, are reported as diagnostics.
package document
