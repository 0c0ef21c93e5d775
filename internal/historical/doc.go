// Package historical is the out-of-scope input-loading collaborator: it
// fans out concurrent fetches of the independent input tables and caches
// them in SQLite so a caller can hand dispatch.Inputs to the core without
// the core ever touching a database or a historical file format (spec.md
// §1 Non-goals; the core only ever sees internal/model structs).
package historical
