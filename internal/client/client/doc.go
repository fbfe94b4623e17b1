// Package client contains the request gateway of the recipearchive client.
//
// # Overview
//
// The package provides:
//  1. The typed API contract (see the Client interface): login, signup,
//     logout, user and recipe CRUD.
//  2. HTTPClient, which funnels every operation through one request
//     primitive: JSON content type, bearer credential injection, body
//     encoding, 204 handling and error normalisation.
//  3. The credential slot (TokenStore) with SQLite-backed, in-memory and
//     no-op implementations.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses are *APIError; failed exchanges and undecodable success
// bodies are *TransportError. Callers can match classes with errors.Is:
// ErrUnauthorized (401/403), ErrNotFound (404), ErrUnavailable (network).
// Message extracts the user-facing text.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use and keeps no per-request state.
// Every network operation takes a context.Context; timeouts belong to the
// underlying http.Client.
package client
