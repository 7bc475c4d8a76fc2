// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting the diff endpoints.
//   - rayid: assigns a unique request ID (RayID) to every incoming request,
//     storing it in the context and echoing it in the response headers.
//
// Both are registered globally in the start command.
package middleware
