// Package types contains the core data model and interfaces shared across the
// groups-assigner library.
//
// Keeping these definitions in a leaf package avoids import cycles: internal
// packages depend on types without depending on the root assigner package,
// which re-exports the public subset via type aliases.
package types
