// Package client contains client-side building blocks for the catalog CLI.
//
// # Overview
//
// The package provides:
//  1. The API contract (see the Client interface): users, products and
//     notifications, plus Ping for the online probe.
//  2. A REST implementation (see HTTPClient) that sends one HTTP request per
//     call, uploads images as multipart form data, tags every request with an
//     X-Request-ID and maps failures to sentinel errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations),
//     wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Failures are exposed as sentinel errors that callers match with errors.Is:
//   - ErrUnavailable: the server could not be reached or timed out.
//   - ErrRequestFailed: the server answered with a non-2xx status. The
//     concrete *RequestError carries the status code and a display message.
//   - ErrDecode: a 2xx body did not decode into the expected type.
//
// Cancelling the caller's context returns the context error unchanged.
//
// HTTPClient is safe for concurrent use.
package client
