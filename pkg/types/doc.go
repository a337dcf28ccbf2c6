// Package types defines the shared data model for relation extraction:
// document text with sentence and mention annotations, directional relation
// records, features, and the tagged label codec.
package types
