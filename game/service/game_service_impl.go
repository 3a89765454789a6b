package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tilegame/slidepuzzle/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	log      *logrus.Logger
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, log *logrus.Logger) GameService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		log:      log,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate the ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      sess.Engine.GetState(),
			GameConfig:     sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move applies a single tile tap to a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, row, col int, restart bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	events := []GameEvent{}

	if restart {
		if err := sess.Engine.Restart(); err != nil {
			return nil, fmt.Errorf("failed to restart: %w", err)
		}
		events = append(events, GameEvent{
			Type:      "restart",
			Message:   "Board reshuffled",
			Timestamp: time.Now(),
		})
	}

	prevState := sess.Engine.GetState()
	wasSolved := prevState.Solved
	success := sess.Engine.Move(row, col)
	state := sess.Engine.GetState()

	result := &MoveResult{
		Success:   success,
		GameState: state,
		Message:   state.Message,
		Events:    events,
	}

	if success {
		last := sess.Engine.GetLastMove()
		result.Events = append(result.Events, GameEvent{
			Type:      "move",
			Message:   fmt.Sprintf("Tile %d slid to (%d,%d)", last.Tile, last.To.Row, last.To.Col),
			Timestamp: time.Now(),
			Position:  last.To,
		})
		result.Step = &StepInfo{
			Idx:     1,
			Tile:    last.Tile,
			From:    last.From,
			To:      last.To,
			Success: true,
			Solved:  state.Solved,
		}
		if state.Solved && !wasSolved {
			result.Events = append(result.Events, GameEvent{
				Type:      "solved",
				Message:   state.Message,
				Timestamp: time.Now(),
			})
		}
	} else {
		result.Attempted = classifyTap(prevState, row, col)
		result.Events = append(result.Events, GameEvent{
			Type:      "rejected",
			Message:   fmt.Sprintf("Tap at (%d,%d) rejected: %s", row, col, result.Attempted.Reason),
			Timestamp: time.Now(),
			Position:  engine.Position{Row: row, Col: col},
		})
	}

	if err := s.sessions.Save(sessionID); err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Warn("Failed to persist session after move")
	}

	return result, nil
}

// BulkMove applies a sequence of tile taps in order. Rejected taps are
// recorded but do not abort the remaining sequence.
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, taps []engine.Position, restart bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	if restart {
		if err := sess.Engine.Restart(); err != nil {
			return nil, fmt.Errorf("failed to restart: %w", err)
		}
	}

	startState := sess.Engine.GetState()

	result := &BulkMoveResult{
		RequestedMoves: len(taps),
		Events:         make([]GameEvent, 0),
		Success:        true,
		StartBlank:     startState.BlankPos,
	}

	if restart {
		result.Events = append(result.Events, GameEvent{
			Type:      "restart",
			Message:   "Board reshuffled",
			Timestamp: time.Now(),
		})
	}

	if len(taps) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		taps = taps[:engine.MaxBulkMoves]
	}

	for i, tap := range taps {
		success := sess.Engine.Move(tap.Row, tap.Col)
		state := sess.Engine.GetState()

		step := StepInfo{
			Idx:     i + 1,
			From:    engine.Position{Row: tap.Row, Col: tap.Col},
			Success: success,
		}

		if success {
			result.MovesExecuted++
			last := sess.Engine.GetLastMove()
			step.Tile = last.Tile
			step.To = last.To
			step.Solved = state.Solved

			result.Events = append(result.Events, GameEvent{
				Type:      "move",
				Message:   fmt.Sprintf("Tile %d slid to (%d,%d)", last.Tile, last.To.Row, last.To.Col),
				Timestamp: time.Now(),
				Position:  last.To,
			})
			if state.Solved && result.SolvedOnMove == 0 {
				result.SolvedOnMove = i + 1
				result.Events = append(result.Events, GameEvent{
					Type:      "solved",
					Message:   state.Message,
					Timestamp: time.Now(),
				})
			}
		} else {
			result.Success = false
			result.Events = append(result.Events, GameEvent{
				Type:      "rejected",
				Message:   fmt.Sprintf("Tap at (%d,%d) rejected", tap.Row, tap.Col),
				Timestamp: time.Now(),
				Position:  engine.Position{Row: tap.Row, Col: tap.Col},
			})
		}

		result.Steps = append(result.Steps, step)
	}

	endState := sess.Engine.GetState()
	result.GameState = endState
	result.EndBlank = endState.BlankPos
	result.Solved = endState.Solved
	result.Message = endState.Message
	result.MovableTiles = endState.MovableTiles

	if err := s.sessions.Save(sessionID); err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Warn("Failed to persist session after bulk moves")
	}

	return result, nil
}

// Restart reshuffles a session's board into a fresh solvable arrangement
func (s *gameServiceImpl) Restart(ctx context.Context, sessionID string) (*engine.PuzzleState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	if err := sess.Engine.Restart(); err != nil {
		return nil, fmt.Errorf("failed to restart: %w", err)
	}
	state := sess.Engine.GetState()

	if err := s.sessions.Save(sessionID); err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Warn("Failed to persist session after restart")
	}

	return state, nil
}

// ChangeDifficulty swaps the session to a builtin preset for the given
// difficulty and reshuffles when the board size changes
func (s *gameServiceImpl) ChangeDifficulty(ctx context.Context, sessionID string, difficulty string) (*engine.PuzzleState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	d := engine.Difficulty(strings.ToLower(difficulty))
	if _, ok := d.BoardSize(); !ok {
		return nil, fmt.Errorf("unrecognized difficulty '%s'. Valid difficulties: %v", difficulty, engine.Difficulties())
	}

	s.sessions.UpdateLastAccessed(sessionID)

	config := engine.DefaultConfig(d)
	if err := sess.Engine.SetConfig(config); err != nil {
		return nil, fmt.Errorf("failed to change difficulty: %w", err)
	}
	sess.Config = config

	if err := s.sessions.Save(sessionID); err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Warn("Failed to persist session after difficulty change")
	}

	return sess.Engine.GetState(), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.PuzzleState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var moves []engine.MoveHistoryEntry
	if opts.Order == "desc" {
		// Reverse order (most recent first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else {
		if start < total {
			moves = history[start:end]
		}
	}

	if moves == nil {
		moves = []engine.MoveHistoryEntry{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// CheckSolvable runs the parity test on the session's current board and
// reports the numbers behind the verdict
func (s *gameServiceImpl) CheckSolvable(ctx context.Context, sessionID string) (*SolvabilityReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	state := sess.Engine.GetState()
	report := &SolvabilityReport{
		Solvable:   engine.CheckSolvability(state.Grid),
		Inversions: engine.CountInversions(state.Grid),
		BoardSize:  state.Size,
	}
	if state.Size%2 == 1 {
		report.Rule = "odd size: solvable when inversions are even"
	} else {
		report.BlankFromBottom = state.Size - state.BlankPos.Row
		report.Rule = "even size: solvable when inversions plus blank row from bottom is odd"
	}
	return report, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// classifyTap explains why a tap was rejected
func classifyTap(state *engine.PuzzleState, row, col int) *AttemptInfo {
	attempt := &AttemptInfo{Row: row, Col: col}

	if row < 0 || row >= state.Size || col < 0 || col >= state.Size {
		attempt.Reason = "out_of_bounds"
		return attempt
	}

	attempt.Tile = state.Grid[row][col]
	if attempt.Tile == engine.Blank {
		attempt.Reason = "blank_cell"
		return attempt
	}

	attempt.Reason = "not_adjacent"
	return attempt
}
