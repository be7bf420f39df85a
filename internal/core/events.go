package core

import "time"

// Cue names a discrete sound the platform may play.
type Cue string

// Audio cues emitted by games.
const (
	CueJump          Cue = "jump"
	CueDash          Cue = "dash"
	CueHit           Cue = "hit"
	CueCollect       Cue = "collect"
	CueEnemyDefeated Cue = "enemy-defeated"
	CueTurretFire    Cue = "turret-fire"
	CueGameOver      Cue = "game-over"
)

// Event is an outbound notification produced by a simulation step.
// Events are consumed by collaborators outside the game (audio, HUD,
// persistence); games never read them back.
type Event interface {
	event()
}

// AudioCue asks the platform to play a sound.
type AudioCue struct {
	Cue Cue
}

func (AudioCue) event() {}

// WaveChanged is emitted when the difficulty wave increases.
type WaveChanged struct {
	Wave int
}

func (WaveChanged) event() {}

// EffectStarted is emitted when a timed power-up effect is applied or refreshed.
type EffectStarted struct {
	Name     string
	Duration time.Duration
	Refresh  bool // True when an active effect had its timer reset
}

func (EffectStarted) event() {}

// EffectEnded is emitted when a timed power-up effect expires.
type EffectEnded struct {
	Name string
}

func (EffectEnded) event() {}

// GameOver is emitted exactly once when a run ends.
type GameOver struct {
	FinalScore int
	Wave       int
	Elapsed    time.Duration
}

func (GameOver) event() {}
