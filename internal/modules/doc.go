// Package modules implements the resource areas of the client: replicas,
// personas, videos, conversations, and API-key management. Each area is one
// nav.Module owning its screens and a module-local cache of fetched records.
//
// Caches are refreshed when a work screen is entered. Mutations keep the
// cache consistent without refetching: a rename updates the cached record in
// place, a delete drops it from the slice.
package modules
