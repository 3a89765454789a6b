// Package websocket provides WebSocket transport for the sliding puzzle server.
//
// The websocket package implements:
//   - Real-time board state broadcasting
//   - Session-aware WebSocket connections
//   - Connection lifecycle management
//   - Message routing and handling
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine pair that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded:
//
//	{
//	  "session_id": "ab12cd34",
//	  "event": "state_update",
//	  "game_state": { ... }
//	}
//
// Clients currently send no commands over the socket; moves go through the
// REST API and the resulting state is pushed to every socket watching the
// same session.
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session ID
// via query parameter (?session=ab12cd34) when establishing the connection.
// State updates are broadcast only to clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// After a successful move:
//	hub.BroadcastToSession(sessionID, state)
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive messages
// simultaneously without blocking each other.
package websocket
