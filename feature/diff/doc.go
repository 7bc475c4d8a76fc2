// Package diff exposes the symmetric difference engine over HTTP.
//
// # Endpoints
//
//   - POST /diff: compute the symmetric difference of two record collections.
//   - GET /diff/health: liveness of the feature.
//
// Each side of a request is either an inline JSON array of records or a source
// location read through core/source (s3://bucket/object or db://table). Local
// file paths are accepted by the CLI only.
//
// # Errors
//
// Malformed requests, missing key properties and unorderable key values map
// to 400, oversized sources to 413, unreachable sources to 502 and a missing
// storage or database backend to 503.
package diff
