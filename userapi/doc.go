// Package userapi is a mock user service for the fetch client.
//
// It serves deterministic users at GET /users/:id with configurable latency
// and forced failures per id, so the CLI can demonstrate arrival order and
// error propagation without a network dependency:
//
//	latency_ms: {1: 30, 3: 10, 4: 20}   # arrival order 3, 4, 1
//	fail_ids: [3]                        # 503 for id 3
package userapi
