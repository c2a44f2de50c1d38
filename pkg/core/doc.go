// Package core defines the shared language of dump2tsv.
//
// This package contains:
//   - Statement variants produced by a statement source (CreateTable, Insert, Other)
//   - The closed Literal variant set rendered into TSV fields
//   - The Source contract consumed by the conversion engine
//   - ContractViolation, the panic value for input shapes the dump is assumed never to contain
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
