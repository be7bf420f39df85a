package runner

import (
	"time"

	"github.com/vovakirdan/silhouette-runner/internal/config"
)

// ScoreTracker accumulates score and run statistics. Every addition is
// multiplied by the current multiplier. Once frozen, nothing changes.
type ScoreTracker struct {
	cfg        config.RunnerScoring
	score      int
	multiplier int
	passiveAt  time.Duration // game time the next passive award is due
	frozen     bool

	EnemiesDefeated   int
	PowerUpsCollected int
	DamageTaken       int
}

// NewScoreTracker creates a tracker at zero.
func NewScoreTracker(cfg config.RunnerScoring) *ScoreTracker {
	s := &ScoreTracker{cfg: cfg}
	s.Reset()
	return s
}

// Reset clears score and statistics.
func (s *ScoreTracker) Reset() {
	s.score = 0
	s.multiplier = 1
	s.passiveAt = s.cfg.PassiveInterval
	s.frozen = false
	s.EnemiesDefeated = 0
	s.PowerUpsCollected = 0
	s.DamageTaken = 0
}

// Score returns the current score.
func (s *ScoreTracker) Score() int { return s.score }

// Multiplier returns the current multiplier.
func (s *ScoreTracker) Multiplier() int { return s.multiplier }

// Frozen reports whether the score is final.
func (s *ScoreTracker) Frozen() bool { return s.frozen }

// SetMultiplier changes the multiplier; values below 1 are treated as 1.
func (s *ScoreTracker) SetMultiplier(m int) {
	if s.frozen {
		return
	}
	s.multiplier = max(m, 1)
}

// Add awards points times the multiplier.
func (s *ScoreTracker) Add(points int) {
	if s.frozen || points <= 0 {
		return
	}
	s.score += points * s.multiplier
}

// Defeated awards an enemy defeat bonus.
func (s *ScoreTracker) Defeated(bonus int) {
	if s.frozen {
		return
	}
	s.EnemiesDefeated++
	s.Add(bonus)
}

// Collected awards a pickup bonus.
func (s *ScoreTracker) Collected(bonus int) {
	if s.frozen {
		return
	}
	s.PowerUpsCollected++
	s.Add(bonus)
}

// Update awards passive points for each whole interval of game time that
// has passed since the last award.
func (s *ScoreTracker) Update(now time.Duration) {
	if s.frozen || s.cfg.PassiveInterval <= 0 {
		return
	}
	for now >= s.passiveAt {
		s.Add(s.cfg.PassivePoints)
		s.passiveAt += s.cfg.PassiveInterval
	}
}

// Freeze makes the score final.
func (s *ScoreTracker) Freeze() {
	s.frozen = true
}
