package runner

import "github.com/vovakirdan/silhouette-runner/internal/core"

// Autopilot is a simple bot that plays the game from snapshots. It runs
// right, jumps hazards and dash-attacks enemies below it. Used for headless
// soak runs.
type Autopilot struct {
	// JumpDistance is how far ahead (cells) a ground threat triggers a jump.
	JumpDistance float64
	// DashReach is how far ahead (cells) an enemy below triggers a dash.
	DashReach float64
}

// NewAutopilot returns a bot with default reaction distances.
func NewAutopilot() *Autopilot {
	return &Autopilot{JumpDistance: 6, DashReach: 8}
}

// Next decides the input for the coming tick.
func (a *Autopilot) Next(s Snapshot) core.InputFrame {
	in := core.NewInputFrame()
	if s.GameOver || s.Paused {
		return in
	}
	in.SetAxis(1)

	p := s.Player
	front := p.Pos.X + p.W
	feet := p.Pos.Y + p.H

	for _, e := range s.Entities {
		dx := e.Pos.X - front
		switch e.Kind {
		case KindSpike, KindWalker:
			if p.OnGround && dx > 0 && dx < a.JumpDistance {
				in.Set(core.ActionJump)
			}
		case KindProjectile:
			if p.OnGround && dx > 0 && dx < a.JumpDistance && e.Pos.Y >= p.Pos.Y {
				in.Set(core.ActionJump)
			}
		}

		if e.Kind == KindSpike || e.Kind == KindProjectile || e.Kind == KindPowerUp {
			continue
		}
		// Dive onto enemies that are ahead and below.
		if !p.OnGround && !p.Dashing && p.Vel.Y > 0 &&
			e.Pos.X+e.W > p.Pos.X && dx < a.DashReach && e.Pos.Y >= feet-1 {
			in.Set(core.ActionDash)
		}
	}
	return in
}
