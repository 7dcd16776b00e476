// Package utils provides loose-typed value helpers for the roster-manager.
//
// Bucket values are written by several browser flows that never agreed on a
// schema: ids are numbers in one bucket and strings in another, booleans show
// up as 1/"true"/true, and the same field has camelCase and snake_case
// spellings. The helpers here convert decoded JSON values (any) into plain Go
// values and pick the first non-blank alias of a field.
package utils
