// Package client talks to the abstract server and opens the local draft
// database.
//
// # Overview
//
// The package provides:
//  1. The Client interface: the conference, abstract, figure and owner
//     resources of the server's /api tree.
//  2. HTTPClient, the JSON-over-HTTP implementation. It throttles requests,
//     tags each one with an X-Request-ID, sends the bearer token, rejects
//     expired JWTs before dialing and maps status codes to sentinel errors.
//  3. InitDatabase and RunMigrations, which open the SQLite draft database
//     and apply the embedded goose migrations.
//
// # Error Handling
//
// Callers match failures with errors.Is against ErrUnavailable (transport
// failures and 5xx), ErrUnauthorized (401, 403, expired token), ErrNotFound
// and ErrRequestFailed (any other non-2xx status).
//
// HTTPClient is safe for concurrent use. Every call honors ctx.
package client
