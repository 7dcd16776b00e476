// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key gate (X-API-Key or Bearer token); disabled when no key
//     is configured.
//   - rayid: assigns every request a ray id, stored in the "ray_id" local
//     and echoed in the X-Ray-ID response header, so logger.WithRayID can
//     tag request logs.
package middleware
