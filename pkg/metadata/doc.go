// Package metadata defines the collected-metadata types that feed diagram
// generation.
//
// This package is the serialization boundary for the two JSON document kinds
// produced by build-time collectors:
//
//   - [Project]: one analyzed build unit with its modules, components, and
//     module-level dependencies (maven-metadata.json)
//   - [API]: the HTTP surface of one service, provided and consumed endpoints
//     (api-metadata.json)
//
// It also provides the derived, per-run structures the builders consume:
//
//   - [Index]: case-insensitive tag lookups built once per generation run
//   - [Grouping]: projects arranged by system and subsystem in first-seen order
//   - [CallDependency]: one observed service-to-service call, derived from API
//     metadata by the connector
//
// All types are read-only after construction. A generation run builds its
// Index and Grouping from the loaded collections, produces diagram text, and
// discards them; nothing here persists across runs.
package metadata
