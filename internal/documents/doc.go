// Package documents persists converted document trees to a relational
// database through bun. One conversion writes a document row, one section
// row per heading, the serialized JSON payload, and the validation outcome,
// all inside a single transaction. Converting the same filename again
// replaces every dependent row.
package documents
