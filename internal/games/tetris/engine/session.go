package engine

// Timing defaults, in seconds.
const (
	DefaultInitialDelay  = 0.60
	DefaultLevelStep     = 0.05
	DefaultMinDelay      = 0.08
	DefaultSoftDropDelay = 0.05
)

// LinesPerLevel is how many cleared lines raise the level by one.
const LinesPerLevel = 10

// scoreTable is indexed by lines cleared in one lock, clamped to 4.
var scoreTable = [5]int{0, 100, 300, 500, 800}

// wallKicks are tried in order when a rotation does not fit in place.
var wallKicks = [6]Offset{
	{-1, 0}, {1, 0}, {-2, 0}, {2, 0}, {0, -1}, {0, 1},
}

// Timing controls gravity. The automatic fall delay at a level is
// max(MinDelay, InitialDelay - LevelStep*(level-1)); LevelStep 0 gives a
// constant delay.
type Timing struct {
	InitialDelay  float64
	LevelStep     float64
	MinDelay      float64
	SoftDropDelay float64
}

// DefaultTiming returns the standard gravity curve.
func DefaultTiming() Timing {
	return Timing{
		InitialDelay:  DefaultInitialDelay,
		LevelStep:     DefaultLevelStep,
		MinDelay:      DefaultMinDelay,
		SoftDropDelay: DefaultSoftDropDelay,
	}
}

// Intents are the player commands collected for one tick.
type Intents struct {
	MoveLeft     bool
	MoveRight    bool
	Rotate       bool
	HardDrop     bool
	SoftDropHeld bool
	Restart      bool
}

// TickEvents reports what happened during a tick.
type TickEvents struct {
	Locked       bool
	LinesCleared int
	Restarted    bool
	GameOver     bool // true on the tick the round ended
}

// State is a read-only snapshot of a session for rendering.
type State struct {
	Board    [Rows][Cols]Cell
	Active   ActivePiece
	Next     Kind
	Score    int
	Lines    int
	Level    int
	GameOver bool
}

// Session is one player's game: board, falling piece and progression.
// It is not safe for concurrent use.
type Session struct {
	board    Board
	active   ActivePiece
	next     Kind
	score    int
	lines    int
	level    int
	gameOver bool
	fallAcc  float64

	rng    Randomizer
	timing Timing

	// events accumulates during Tick.
	events TickEvents
}

// NewSession creates a session and spawns its first piece.
func NewSession(rng Randomizer, timing Timing) *Session {
	s := &Session{rng: rng, timing: timing}
	s.Restart()
	return s
}

// Restart clears the board and progression and spawns a fresh piece.
func (s *Session) Restart() {
	s.board.Reset()
	s.score = 0
	s.lines = 0
	s.level = 1
	s.gameOver = false
	s.fallAcc = 0
	s.next = RandomKind(s.rng)
	s.Spawn()
}

// Spawn promotes the next kind to the active piece at the top of the board
// and draws a new next kind. If the spawn position is blocked the round ends;
// the blocked piece stays as the active piece.
func (s *Session) Spawn() {
	k := s.next
	o := RandomOrientation(s.rng, k)
	s.active = ActivePiece{Kind: k, Orientation: o, X: CenteredSpawnX(k, o), Y: 0}
	s.next = RandomKind(s.rng)

	if !s.board.Fits(s.active) {
		s.gameOver = true
		s.events.GameOver = true
	}
}

// TryMove shifts the active piece by dx columns if the target fits.
func (s *Session) TryMove(dx int) bool {
	p := s.active
	if !s.board.CanPlace(p.Kind, p.Orientation, p.X+dx, p.Y) {
		return false
	}
	s.active.X += dx
	return true
}

// TryRotateCW turns the active piece clockwise, trying the unshifted
// position first and then each wall kick in order.
func (s *Session) TryRotateCW() bool {
	p := s.active
	next := p.Orientation.Next()

	if s.board.CanPlace(p.Kind, next, p.X, p.Y) {
		s.active.Orientation = next
		return true
	}
	for _, k := range wallKicks {
		if s.board.CanPlace(p.Kind, next, p.X+k.DX, p.Y+k.DY) {
			s.active.X += k.DX
			s.active.Y += k.DY
			s.active.Orientation = next
			return true
		}
	}
	return false
}

// GhostY returns the row the active piece would land on if hard dropped.
func (s *Session) GhostY() int {
	p := s.active
	y := p.Y
	for s.board.CanPlace(p.Kind, p.Orientation, p.X, y+1) {
		y++
	}
	return y
}

// HardDrop drops the active piece to its landing row and locks it.
func (s *Session) HardDrop() {
	s.active.Y = s.GhostY()
	s.finishPiece()
	s.fallAcc = 0
}

// Fall advances the gravity timer by dt seconds. Once the threshold is
// reached the piece steps down one row, or locks if it cannot.
func (s *Session) Fall(dt float64, softDrop bool) {
	threshold := s.GravityDelay()
	if softDrop {
		threshold = s.timing.SoftDropDelay
	}

	s.fallAcc += dt
	if s.fallAcc < threshold {
		return
	}

	p := s.active
	if s.board.CanPlace(p.Kind, p.Orientation, p.X, p.Y+1) {
		s.active.Y++
	} else {
		s.finishPiece()
	}
	s.fallAcc = 0
}

// finishPiece locks the active piece, clears lines, scores and respawns.
func (s *Session) finishPiece() {
	s.board.Lock(s.active)
	cleared := s.board.ClearCompletedLines()
	s.ApplyScore(cleared)
	s.events.Locked = true
	s.events.LinesCleared += cleared
	s.Spawn()
}

// ApplyScore awards points for clearing n lines at the current level and
// updates the level. Clears beyond four lines score as four.
func (s *Session) ApplyScore(n int) {
	if n <= 0 {
		return
	}
	s.score += scoreTable[min(n, 4)] * s.level
	s.lines += n
	s.level = 1 + s.lines/LinesPerLevel
}

// GravityDelay returns the seconds between automatic fall steps at the
// current level.
func (s *Session) GravityDelay() float64 {
	delay := s.timing.InitialDelay - s.timing.LevelStep*float64(s.level-1)
	return max(s.timing.MinDelay, delay)
}

// Tick applies one frame of intents and dt seconds of gravity.
func (s *Session) Tick(in Intents, dt float64) TickEvents {
	s.events = TickEvents{}

	if s.gameOver {
		if in.Restart {
			s.Restart()
			s.events.Restarted = true
		}
		return s.events
	}

	if in.MoveLeft {
		s.TryMove(-1)
	}
	if in.MoveRight {
		s.TryMove(1)
	}
	if in.Rotate {
		s.TryRotateCW()
	}
	if in.HardDrop {
		s.HardDrop()
		return s.events
	}

	s.Fall(dt, in.SoftDropHeld)
	return s.events
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	return State{
		Board:    s.board.Grid(),
		Active:   s.active,
		Next:     s.next,
		Score:    s.score,
		Lines:    s.lines,
		Level:    s.level,
		GameOver: s.gameOver,
	}
}

// Board returns the session's board for direct inspection.
func (s *Session) Board() *Board { return &s.board }

// Active returns the falling piece.
func (s *Session) Active() ActivePiece { return s.active }

// Next returns the kind that will spawn after the active piece.
func (s *Session) Next() Kind { return s.next }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Lines returns the total lines cleared this round.
func (s *Session) Lines() int { return s.lines }

// Level returns the current level, starting at 1.
func (s *Session) Level() int { return s.level }

// GameOver reports whether the round has ended.
func (s *Session) GameOver() bool { return s.gameOver }

// Timing returns the gravity settings in use.
func (s *Session) Timing() Timing { return s.timing }
