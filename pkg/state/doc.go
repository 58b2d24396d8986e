// Package state loads and saves configuration snapshots.
//
// A Store only loads or saves a single snapshot for a single Ref. Resolver
// sits on top of a Store and owns the policies around it:
//
//   - ResolveWithDefaults creates missing documents from defaults, falls back
//     to defaults when a document cannot be decoded, and fills settings that
//     are missing from an older document before saving it back.
//   - Mutate applies a change under an ETag check and validates the result
//     before it is persisted.
//
// Meta.ETag is the hex sha256 of the encoded snapshot and Meta.SnapshotID a
// name-based uuid of the same bytes, so equal content always yields equal
// metadata regardless of the Store.
package state
