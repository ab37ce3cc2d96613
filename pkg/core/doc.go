// Package core defines the shared language of the leapddl system.
//
// This package contains:
//   - IR entities (Table, Column, Index, Type, Sequence, Domain, Schema, Property)
//   - Statement kinds produced by the classifier
//   - Pure-data dialect configuration (DialectConfig)
//   - Diagnostic severities
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
