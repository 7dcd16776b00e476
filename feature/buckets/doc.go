// Package buckets exposes the raw bucket store over HTTP.
//
// The browser flows that own the team, player and application data push
// their buckets here so the dataset reconciler can read them. Values are
// stored verbatim and must be valid JSON.
//
// # Endpoints
//
//   - GET /buckets?prefix=: list keys
//   - GET /buckets/:key: raw value
//   - PUT /buckets/:key: store the request body
//   - DELETE /buckets/:key: remove a key
//   - POST /buckets/import: load a {key: value} storage dump
//
// Every endpoint takes ?scope=session to address the session store instead
// of the local one.
package buckets
