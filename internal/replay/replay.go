// Package replay records tetris input frames and re-simulates stored
// replays. A round is fully determined by its seed, its configuration and
// the frames that advanced it.
package replay

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Recorder collects the frames that advanced a game.
type Recorder struct {
	frames []storage.Frame
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends one frame.
func (r *Recorder) Record(f core.InputFrame) {
	r.frames = append(r.frames, storage.Frame{
		Tick:    len(r.frames),
		Bits:    f.Bits(),
		Elapsed: f.Elapsed,
	})
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	return len(r.frames)
}

// Frames returns the recorded frames.
func (r *Recorder) Frames() []storage.Frame {
	return r.frames
}

// Header builds the storage header describing how g was started.
func Header(g *tetris.Game, tickRate int) (storage.Replay, error) {
	cfg := g.Config()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return storage.Replay{}, fmt.Errorf("replay: cannot encode config: %w", err)
	}
	return storage.Replay{
		GameID:   g.ID(),
		Seed:     g.Seed(),
		Preset:   string(cfg.Difficulty.Preset),
		TickRate: tickRate,
		Config:   string(data),
	}, nil
}

// Save writes the recording to the store and returns the replay ID.
func Save(store *storage.Store, g *tetris.Game, tickRate int, rec *Recorder) (int64, error) {
	header, err := Header(g, tickRate)
	if err != nil {
		return 0, err
	}
	return store.SaveReplay(header, rec.Frames())
}

// NewGame recreates the game a replay was recorded from, reset to its
// starting state on a screen of the given size.
func NewGame(r storage.Replay, screenW, screenH int) (*tetris.Game, error) {
	if r.GameID != tetris.ID {
		return nil, fmt.Errorf("replay: %d was recorded for %q, not %q", r.ID, r.GameID, tetris.ID)
	}

	cfg := config.DefaultTetrisConfig()
	if err := yaml.Unmarshal([]byte(r.Config), &cfg); err != nil {
		return nil, fmt.Errorf("replay: cannot decode config of %d: %w", r.ID, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("replay: %d: %w", r.ID, err)
	}

	g := tetris.New(cfg)
	g.Reset(core.RuntimeConfig{
		ScreenW:  screenW,
		ScreenH:  screenH,
		TickRate: r.TickRate,
		Seed:     r.Seed,
	})
	return g, nil
}

// Run re-simulates a replay without a screen and returns the final snapshot.
func Run(r storage.Replay, frames []storage.Frame) (tetris.Snapshot, error) {
	p, err := NewPlayer(r, frames, tetris.MinWidth, tetris.MinHeight)
	if err != nil {
		return tetris.Snapshot{}, err
	}
	for {
		f, ok := p.Next()
		if !ok {
			break
		}
		p.Game().Step(f)
	}
	return p.Game().Snapshot(), nil
}

// Player feeds stored frames to a game one at a time.
type Player struct {
	game   *tetris.Game
	frames []storage.Frame
	pos    int
}

// NewPlayer creates a player positioned at the first frame.
func NewPlayer(r storage.Replay, frames []storage.Frame, screenW, screenH int) (*Player, error) {
	g, err := NewGame(r, screenW, screenH)
	if err != nil {
		return nil, err
	}
	return &Player{game: g, frames: frames}, nil
}

// Game returns the game being driven.
func (p *Player) Game() *tetris.Game {
	return p.game
}

// Next returns the next frame, or false once all frames are used.
func (p *Player) Next() (core.InputFrame, bool) {
	if p.pos >= len(p.frames) {
		return core.InputFrame{}, false
	}
	f := p.frames[p.pos]
	p.pos++
	return core.FrameFromBits(f.Bits, f.Elapsed), true
}

// Unread steps back one frame so it is returned again by Next. Used when the
// game froze instead of consuming the frame.
func (p *Player) Unread() {
	if p.pos > 0 {
		p.pos--
	}
}

// Done reports whether every frame has been played.
func (p *Player) Done() bool {
	return p.pos >= len(p.frames)
}

// Progress returns the number of frames played and the total.
func (p *Player) Progress() (played, total int) {
	return p.pos, len(p.frames)
}
