// Package service provides the business logic layer for the sliding puzzle.
//
// The service package implements:
//   - Multi-session game management
//   - Configuration management and loading
//   - Tile move processing and validation
//   - Session lifecycle management
//   - Move history tracking and pagination
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the puzzle engine, providing session isolation, configuration management,
// and business logic orchestration. Each session maintains its own engine
// instance with an independent board.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr, nil)
//
//	// Create a new session
//	sessionInfo, err := gameService.CreateSession(ctx, "easy")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Tap a tile
//	result, err := gameService.Move(ctx, sessionInfo.ID, 2, 1, false)
//
// Session Management:
//
// Sessions are identified by unique short IDs and maintain independent
// board state. Multiple sessions can run concurrently with different
// configurations. Sessions track creation time, last access time, and move
// history for analytics and debugging.
package service
