// Package storage loads and saves the task file.
//
// The task file format (tasks.json) follows the schema embedded from
// schema/tasks.schema.json:
//
//	{
//	  "schema_version": 1,
//	  "next_id": 3,
//	  "tasks": [
//	    {
//	      "id": 1,
//	      "title": "Buy milk",
//	      "priority": "Low",
//	      "completed": true,
//	      "created_at": "2026-01-01T09:00:00.123456789Z",
//	      "completed_at": "2026-01-01T10:00:00Z"
//	    }
//	  ]
//	}
//
// next_id is the id the next added task receives. It is kept so that ids of
// removed tasks are not handed out again after a restart.
//
// # Validation
//
// Every load is validated against JSON Schema draft-2020-12 before any record
// is decoded, so a shape mismatch surfaces as a *CorruptError listing every
// problem rather than a half-filled store. Some problems are tolerated and
// only reported as warnings:
//
//   - missing or unknown priority (treated as Medium)
//   - a completed task without completed_at (left unset)
//   - completed_at on a pending task (dropped)
//
// # Legacy Files
//
// Legacy files are a bare JSON array using "description" instead of "title",
// lowercase priorities and local "YYYY-MM-DD HH:MM" timestamps.
// They are recognised by their top-level array, validated against
// schema/legacy.schema.json and converted on load. The next save writes the
// current format.
//
// # File Format
//
// When writing task files, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - RFC 3339 timestamps with nanoseconds, in UTC
//   - An atomic replace (temp file in the same directory, fsync, rename)
package storage
