package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/tilegame/slidepuzzle/game/engine"
	"github.com/tilegame/slidepuzzle/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Slide Puzzle",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Slide Puzzle - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Slide numbered tiles into the blank cell until they read 1..N in row
order with the blank in the bottom-right corner.

AVAILABLE TOOLS:
- board_state: Get the current board
- move_tile: Tap one tile (row, col) to slide it into the blank - requires intent explanation
- bulk_move: Tap a sequence of tiles at once - requires intent explanation
- restart_game: Reshuffle the board into a fresh solvable layout
- change_difficulty: Switch board size (easy=3x3 .. expert=6x6)
- move_history: View past moves
- check_solvable: Verify the current board can still be solved
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available configurations
- game_instructions: Get comprehensive game instructions and rules

NOTE: The 'intent' parameter on move_tile/bulk_move tools serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the config to use: easy, medium, hard, expert, or a preset file name (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board_state",
		Description: "Get the current board state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleBoardState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_tile",
		Description: "Tap the tile at (row, col) to slide it into the adjacent blank cell",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the tile to move (0-based)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the tile to move (0-based)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
				"restart": map[string]interface{}{
					"type":        "boolean",
					"description": "Reshuffle before moving",
				},
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handleMoveTile)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: "Tap a sequence of tiles in order. Rejected taps are recorded but do not stop the sequence.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"taps": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"row": map[string]interface{}{"type": "integer"},
							"col": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"row", "col"},
					},
					"description": "Array of tile positions to tap in order",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of taps (serves as a rubber duck to help explain your reasoning)",
				},
				"restart": map[string]interface{}{
					"type":        "boolean",
					"description": "Reshuffle before moving",
				},
			},
			Required: []string{"session_id", "taps"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "restart_game",
		Description: "Reshuffle the board into a fresh solvable layout",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleRestart)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "change_difficulty",
		Description: "Change the session difficulty: easy (3x3), medium (4x4), hard (5x5), expert (6x6)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"difficulty": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"easy", "medium", "hard", "expert"},
					"description": "Target difficulty",
				},
			},
			Required: []string{"session_id", "difficulty"},
		},
	}, c.handleChangeDifficulty)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "check_solvable",
		Description: "Check whether the current board is solvable and see the parity breakdown",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleCheckSolvable)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configName, _ := args["config_name"].(string)

	body := map[string]string{}
	if configName != "" {
		body["config_name"] = configName
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatBoardState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Config: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleBoardState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.PuzzleState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatBoardState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	rowF, _ := args["row"].(float64)
	colF, _ := args["col"].(float64)
	intent, _ := args["intent"].(string)
	restart, _ := args["restart"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"row":     int(rowF),
		"col":     int(colF),
		"restart": restart,
	}

	var result service.MoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatMoveResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	tapsRaw, _ := args["taps"].([]interface{})
	intent, _ := args["intent"].(string)
	restart, _ := args["restart"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	taps := make([]map[string]int, 0, len(tapsRaw))
	for _, t := range tapsRaw {
		tap, ok := t.(map[string]interface{})
		if !ok {
			continue
		}
		row, _ := tap["row"].(float64)
		col, _ := tap["col"].(float64)
		taps = append(taps, map[string]int{"row": int(row), "col": int(col)})
	}

	body := map[string]interface{}{
		"taps":    taps,
		"restart": restart,
	}

	var result service.BulkMoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/bulk-move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatBulkMoveResult(sessionID, &result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleRestart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string              `json:"message"`
		State   *engine.PuzzleState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/restart", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatBoardState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleChangeDifficulty(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	difficulty, _ := args["difficulty"].(string)

	body := map[string]string{"difficulty": difficulty}

	var response struct {
		Message string              `json:"message"`
		State   *engine.PuzzleState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/difficulty", sessionID), body, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatBoardState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Also fetch current segment from live state
	var session service.SessionInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		// If fetching session fails, still return the history
		result := formatHistory(&history)
		return mcp.NewToolResultText(result), nil
	}

	result := formatHistory(&history)
	result += "\n" + formatCurrentSegment(session.GameState)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCheckSolvable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var report service.SolvabilityReport
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/solvable", sessionID), nil, &report)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	verdict := "NOT solvable"
	if report.Solvable {
		verdict = "solvable"
	}

	result := fmt.Sprintf("Board is %s\n\nBoard size: %dx%d\nInversions: %d\n",
		verdict, report.BoardSize, report.BoardSize, report.Inversions)
	if report.BlankFromBottom > 0 {
		result += fmt.Sprintf("Blank row from bottom: %d\n", report.BlankFromBottom)
	}
	result += fmt.Sprintf("Rule: %s\n", report.Rule)

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Board: %dx%d, Difficulty: %s\n\n",
			config.Name, config.ConfigID, config.Description,
			config.BoardSize, config.BoardSize, config.Difficulty)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🧩 Slide Puzzle - Complete Instructions

GAME OBJECTIVE:
Arrange the numbered tiles in order by sliding them into the blank
cell. The board is solved when tiles read 1, 2, 3, ... left to right,
top to bottom, with the blank (·) in the bottom-right corner.

GAME MECHANICS:
• Tap a tile directly adjacent to the blank (up, down, left, right of it)
• The tapped tile slides into the blank; the blank takes its old spot
• Diagonal taps, taps far from the blank, and taps on the blank itself are rejected
• Every shuffle produced by the engine is guaranteed solvable

BOARD DISPLAY:
• Numbers - tiles in their current positions
• · - the blank cell
• Coordinates are 0-based: (row, col), row 0 at the top

DIFFICULTY LEVELS:
• easy - 3x3 board (8 tiles)
• medium - 4x4 board (15 tiles, the classic 15-puzzle)
• hard - 5x5 board (24 tiles)
• expert - 6x6 board (35 tiles)

🤖 AI AGENTS - SOLVING STRATEGY:

1. **Locate the blank first**: every legal move involves a tile
   orthogonally adjacent to the blank. The board_state tool lists the
   movable tiles for you.

2. **Solve row by row, then column by column**:
   - Place the top row correctly, then the left column of the remainder
   - Repeat on the shrinking sub-board until a 2x2 remains
   - Cycle the last 2x2 into place

3. **Use bulk_move for planned sequences**: rejected taps are recorded
   but do not abort the rest of the sequence, so verify each step in
   the returned trace.

4. **Corner and edge tiles need setup moves**: never push a tile into
   its final corner directly along the wall; rotate it in via the
   adjacent cell.

🚨 COMMON PITFALLS:
- ❌ Tapping a tile that is diagonal to the blank (rejected)
- ❌ Confusing (row, col) order - row comes first
- ❌ Breaking already-solved rows while placing later tiles
- ❌ Ignoring the movable_tiles list in the state output

MOVE COMMANDS:
- move_tile - Tap a single tile at (row, col)
- bulk_move - Execute a sequence of taps in one call
- restart parameter available on both for a fresh shuffle first

SOLVABILITY:
Half of all random tile arrangements can never be solved. The engine
only ever deals solvable boards, and check_solvable shows the parity
arithmetic behind that guarantee:
- Odd board size: solvable when the inversion count is even
- Even board size: solvable when inversions plus the blank's row from
  the bottom (counting from 1) is odd

SESSION MANAGEMENT:
- Multiple puzzle sessions can run simultaneously
- Each session has a unique short ID
- Sessions maintain independent board state and configuration
- change_difficulty reshuffles onto a new board size; cumulative move
  history is preserved

Remember: the blank is the only thing that ever "moves". Think of the
puzzle as walking the blank around the board. Good luck! 🧩`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatBoardState(session.GameState))
}

func formatBoardState(state *engine.PuzzleState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	// Header (include cumulative total moves)
	result.WriteString(fmt.Sprintf("Board: %dx%d (%s) | Moves: %d | Total: %d\n",
		state.Size, state.Size, state.Difficulty, state.Moves, state.TotalMoves))
	result.WriteString(fmt.Sprintf("Blank: (%d,%d)\n\n", state.BlankPos.Row, state.BlankPos.Col))

	result.WriteString(formatGrid(state.Grid))

	if len(state.MovableTiles) > 0 {
		parts := make([]string, 0, len(state.MovableTiles))
		for _, p := range state.MovableTiles {
			tile := 0
			if p.Row < len(state.Grid) && p.Col < len(state.Grid[p.Row]) {
				tile = state.Grid[p.Row][p.Col]
			}
			parts = append(parts, fmt.Sprintf("%d@(%d,%d)", tile, p.Row, p.Col))
		}
		result.WriteString("\nMovable tiles: " + strings.Join(parts, ", ") + "\n")
	}

	if state.Solved {
		result.WriteString("\n🎉 SOLVED!")
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", state.Message))
	}

	return result.String()
}

// formatGrid renders the board with aligned columns and · for the blank
func formatGrid(grid [][]int) string {
	size := len(grid)
	width := 1
	if size > 3 {
		width = 2
	}

	var b strings.Builder
	for row := 0; row < size; row++ {
		for col := 0; col < len(grid[row]); col++ {
			if col > 0 {
				b.WriteString(" ")
			}
			if grid[row][col] == 0 {
				b.WriteString(strings.Repeat(" ", width-1) + "·")
			} else {
				b.WriteString(fmt.Sprintf("%*d", width, grid[row][col]))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	response := ""
	if result.Success {
		response = "✓ Move successful\n"
	} else {
		response = "✗ Move rejected\n"
	}

	// Compact step summary (if available)
	if result.Step != nil {
		s := result.Step
		status := "✗"
		if s.Success {
			status = "✓"
		}
		response += fmt.Sprintf("Step: tile %d (%d,%d)→(%d,%d) %s\n",
			s.Tile, s.From.Row, s.From.Col, s.To.Row, s.To.Col, status)
	}

	// Rejection diagnostic (if available)
	if result.Attempted != nil {
		a := result.Attempted
		response += fmt.Sprintf("Rejected: tapped (%d,%d) tile=%d reason=%s\n",
			a.Row, a.Col, a.Tile, a.Reason)
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatBoardState(result.GameState)
	return response
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder

	// Session header
	boardSize := 0
	configName := ""
	if result.GameState != nil {
		boardSize = result.GameState.Size
		configName = result.GameState.ConfigName
	}
	b.WriteString(fmt.Sprintf("Session: %s • Config: %s • Board: %dx%d\n",
		sessionID, configName, boardSize, boardSize))

	// Bulk summary
	b.WriteString(fmt.Sprintf("Executed %d/%d taps\n", result.MovesExecuted, result.RequestedMoves))
	if result.Truncated {
		b.WriteString(fmt.Sprintf("Truncated: sequence capped at %d taps\n", result.Limit))
	}
	b.WriteString(fmt.Sprintf("Blank: (%d,%d) → (%d,%d)\n",
		result.StartBlank.Row, result.StartBlank.Col,
		result.EndBlank.Row, result.EndBlank.Col))
	if result.Solved {
		if result.SolvedOnMove > 0 {
			b.WriteString(fmt.Sprintf("🎉 Solved on tap %d\n", result.SolvedOnMove))
		} else {
			b.WriteString("🎉 Solved\n")
		}
	}

	// Per-step trace for this call
	if len(result.Steps) > 0 {
		b.WriteString("\nSteps (this call):\n")
		for _, s := range result.Steps {
			status := "✗"
			if s.Success {
				status = "✓"
			}
			line := fmt.Sprintf("%d. tile %d (%d,%d)→(%d,%d) %s",
				s.Idx, s.Tile, s.From.Row, s.From.Col, s.To.Row, s.To.Col, status)
			if !s.Success {
				line = fmt.Sprintf("%d. tap (%d,%d) %s", s.Idx, s.From.Row, s.From.Col, status)
			}
			if s.Solved {
				line += " (solved)"
			}
			b.WriteString(line + "\n")
		}
	}

	// Events (keep as-is, concise)
	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	// Movable tiles from the final state
	if len(result.MovableTiles) > 0 && result.GameState != nil {
		parts := make([]string, 0, len(result.MovableTiles))
		for _, p := range result.MovableTiles {
			tile := 0
			if p.Row < len(result.GameState.Grid) && p.Col < len(result.GameState.Grid[p.Row]) {
				tile = result.GameState.Grid[p.Row][p.Col]
			}
			parts = append(parts, fmt.Sprintf("%d@(%d,%d)", tile, p.Row, p.Col))
		}
		b.WriteString("\nMovable tiles: " + strings.Join(parts, ", ") + "\n")
	}

	// Full state at the end (kept for compatibility)
	b.WriteString("\n")
	b.WriteString(formatBoardState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Move History (Page %d/%d) — Total (cumulative): %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for i, move := range history.Moves {
		num := (history.Page-1)*history.PageSize + i + 1
		status := "✓"
		if !move.Success {
			status = "✗"
		}
		result += fmt.Sprintf("%d. tile %d (%d,%d)→(%d,%d) %s\n",
			num, move.Tile, move.From.Row, move.From.Col, move.To.Row, move.To.Col, status)
	}

	return result
}

func formatCurrentSegment(state *engine.PuzzleState) string {
	if state == nil {
		return "Current Segment: unavailable"
	}
	moves := state.CurrentMoves
	total := state.CurrentMovesCount
	header := fmt.Sprintf("Current Move Segment — Moves: %d\n\n", total)
	if len(moves) == 0 {
		return header + "(no moves since last shuffle)"
	}
	var b strings.Builder
	b.WriteString(header)
	for i, move := range moves {
		status := "✓"
		if !move.Success {
			status = "✗"
		}
		b.WriteString(fmt.Sprintf("%d. tile %d (%d,%d)→(%d,%d) %s\n",
			i+1, move.Tile, move.From.Row, move.From.Col, move.To.Row, move.To.Col, status))
	}
	return b.String()
}
