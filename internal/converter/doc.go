// Package converter coordinates a full conversion run: load markdown, parse
// the heading tree, validate it, write the JSON payload next to the source
// (or into a configured output directory) and, when a store is attached,
// persist the result. Validation failures never abort a run; the outcome is
// carried on the result and recorded alongside the document.
package converter
