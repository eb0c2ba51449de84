// Package tavus provides an HTTP client for the Tavus v2 API.
//
// # Overview
//
// This package defines the API client used by the interactive UI to browse and
// mutate the four Tavus resource kinds: replicas, personas, videos, and
// conversations. It handles HTTP communication, JSON serialization, and
// type-safe read models with display formatters.
//
// # Architecture
//
// The package is split into two files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: Read models mirroring the Tavus API schema
//
// # Client Usage
//
// Create a client from a base URL and an API key:
//
//	client, err := tavus.NewClient("", apiKey)
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	replicas, err := client.ListReplicas(ctx)
//	if err != nil {
//		log.Printf("replica fetch failed: %v", err)
//	}
//
// All operations are synchronous and return an error for any transport or HTTP
// failure. Callers in the UI layer convert those errors into one-line messages;
// nothing in this package panics or retries.
package tavus
