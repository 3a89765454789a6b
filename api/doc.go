// Package api provides HTTP REST API handlers for the sliding puzzle server.
//
// The api package implements:
//   - RESTful endpoints for puzzle operations
//   - Session management endpoints
//   - Configuration listing and creation
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session
//   - GET /api/sessions - List all sessions (sort, order, limit query params)
//   - GET /api/sessions/unified - Multi-session view
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current board state
//   - POST /api/sessions/{id}/move - Tap a tile: {"row": 2, "col": 1}
//   - POST /api/sessions/{id}/bulk-move - Tap sequence: {"taps": [{"row":2,"col":1}, ...]}
//   - POST /api/sessions/{id}/restart - Reshuffle into a fresh solvable board
//   - POST /api/sessions/{id}/difficulty - Change board size: {"difficulty": "hard"}
//   - GET /api/sessions/{id}/history - Move history with pagination
//   - GET /api/sessions/{id}/solvable - Parity check report for the current board
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - POST /api/configs - Save a configuration
//   - GET /api/configs/{name} - Get a specific configuration
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Move requests address tiles by
// zero-based grid coordinates; a rejected tap is a 200 response with
// success=false and an attempted block explaining the rejection:
//
//	{
//	  "row": 2,
//	  "col": 1,
//	  "restart": false
//	}
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
