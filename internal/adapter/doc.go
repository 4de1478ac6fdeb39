// Package adapter connects the synchronization engine to groupware stores
// reachable over HTTP.
//
// RESTBackend implements backend.Backend against a JSON API. Sync state
// blobs are opaque cursors minted by the remote store; they travel in the
// X-Sync-State header and are persisted by the engine like any other state.
package adapter
