// Package mcp provides the Model Context Protocol interface for the
// sliding puzzle server.
//
// The package is a thin client: every tool call is proxied to the REST
// API rather than touching the game service directly, so the HTTP
// server stays the single writer of session state.
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - board_state: Get current board with a rendered grid
//   - move_tile: Tap one tile at (row, col)
//   - bulk_move: Execute a sequence of taps
//   - restart_game: Reshuffle into a fresh solvable board
//   - change_difficulty: Switch board size (easy..expert)
//   - move_history: Retrieve move history with pagination
//   - check_solvable: Parity breakdown for the current board
//   - create_session: Create new game session with config selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_configs: List available game configurations
//   - game_instructions: Comprehensive rules and solving strategy
//
// Board rendering:
//
// Boards are rendered as aligned number grids with · marking the blank
// cell. Coordinates in tool input and output are 0-based (row, col)
// with row 0 at the top.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Solve puzzles autonomously
//   - Plan and verify tap sequences via bulk_move traces
//   - Inspect solvability before committing to a plan
//   - Manage multiple puzzle sessions independently
package mcp
