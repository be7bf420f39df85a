package runner

import (
	"testing"
	"time"

	"github.com/vovakirdan/silhouette-runner/internal/core"
	"github.com/vovakirdan/silhouette-runner/internal/entity"
)

func TestWalkerPatrolReverses(t *testing.T) {
	cfg := quietConfig()
	g := newTestGame(t, cfg)
	w := g.world
	walker := w.spawner.placeWalker(w, 60)

	// Speed 5, patrol 20: passes the patrol limit after 4s.
	run(g, 410, idle())

	if walker.Walker.Dir != 1 {
		t.Errorf("Dir = %f, expected 1 after passing the patrol limit", walker.Walker.Dir)
	}
	if walker.Vel.X <= 0 {
		t.Errorf("Vel.X = %f, expected positive", walker.Vel.X)
	}
	if walker.Pos.Y != w.groundY-walker.H {
		t.Errorf("walker left the ground: y = %f", walker.Pos.Y)
	}
}

func TestBatFloatsAroundBaseHeight(t *testing.T) {
	cfg := quietConfig()
	cfg.Enemies.Bat.SwoopEnabled = false
	g := newTestGame(t, cfg)
	w := g.world
	bat := w.spawner.placeBat(w, 70)

	for range 300 {
		g.Step(idle())
		if off := bat.Pos.Y - bat.Bat.BaseY; off < -cfg.Enemies.Bat.Amplitude-0.01 || off > cfg.Enemies.Bat.Amplitude+0.01 {
			t.Fatalf("bat offset %f outside amplitude %f", off, cfg.Enemies.Bat.Amplitude)
		}
	}
	if bat.Pos.X >= 70 {
		t.Error("bat should drift left")
	}
}

func TestBatSwoopsOnce(t *testing.T) {
	cfg := quietConfig()
	cfg.Enemies.Bat.SwoopDuration = 300 * time.Millisecond
	g := newTestGame(t, cfg)
	w := g.world
	w.applyPowerUp(PowerShield) // keep the player out of the way
	bat := w.spawner.placeBat(w, w.player.Pos.X+10)
	startY := bat.Pos.Y

	g.Step(idle())
	if !bat.Bat.Swooping || !bat.Bat.SwoopUsed {
		t.Fatal("bat within range should start a swoop")
	}
	if bat.Bat.SwoopVel.Y <= 0 || bat.Bat.SwoopVel.X >= 0 {
		t.Errorf("SwoopVel = %v, expected toward the player (down-left)", bat.Bat.SwoopVel)
	}
	if bat.Pos.Y <= startY {
		t.Error("bat should move down while swooping")
	}

	run(g, int(cfg.Enemies.Bat.SwoopDuration/tick), idle())
	if bat.Bat.Swooping {
		t.Error("swoop should end after its duration")
	}

	// Never swoops twice.
	g.Step(idle())
	if bat.Bat.Swooping {
		t.Error("bat should not swoop a second time")
	}
}

func TestDestroyCancelsTimers(t *testing.T) {
	g := newTestGame(t, quietConfig())
	w := g.world
	bat := w.spawner.placeBat(w, w.player.Pos.X+5)
	g.Step(idle())
	if w.timers.Len() != 1 {
		t.Fatalf("expected one swoop timer, got %d", w.timers.Len())
	}

	w.destroy(bat.ID)
	if w.timers.Len() != 0 {
		t.Errorf("destroying the bat should cancel its timer, %d left", w.timers.Len())
	}

	// Destroying twice is harmless.
	w.destroy(bat.ID)
}

func TestTurretFiresOnCooldown(t *testing.T) {
	cfg := quietConfig()
	g := newTestGame(t, cfg)
	w := g.world
	turret := w.spawner.placeTurret(w, w.player.Pos.X+15)

	res := g.Step(idle())
	if countCue(res.Events, core.CueTurretFire) != 1 {
		t.Fatal("turret in range should fire")
	}
	if turret.Turret.Ready {
		t.Error("turret should not be ready right after firing")
	}
	if turret.Turret.LastFired != w.clock.Sim() {
		t.Errorf("LastFired = %v, expected %v", turret.Turret.LastFired, w.clock.Sim())
	}

	// Fired at 10ms, ready again at 2.01s, fires on the tick after.
	fired := countCue(run(g, 200, idle()), core.CueTurretFire)
	if fired != 0 {
		t.Errorf("turret fired %d times during cooldown", fired)
	}
	if !turret.Turret.Ready {
		t.Error("turret should be ready after its cooldown")
	}
	if countCue(run(g, 1, idle()), core.CueTurretFire) != 1 {
		t.Error("turret should fire again after its cooldown")
	}
}

func TestTurretOutOfRangeHoldsFire(t *testing.T) {
	cfg := quietConfig()
	g := newTestGame(t, cfg)
	w := g.world
	w.spawner.placeTurret(w, w.player.Pos.X+cfg.Enemies.Turret.Range+20)

	if n := countCue(run(g, 100, idle()), core.CueTurretFire); n != 0 {
		t.Errorf("out of range turret fired %d times", n)
	}
}

func TestProjectileAimedAtPlayer(t *testing.T) {
	cfg := quietConfig()
	g := newTestGame(t, cfg)
	w := g.world
	turret := w.spawner.placeTurret(w, w.player.Pos.X+15)
	g.Step(idle())

	var shot *Entity
	w.entities.Each(func(_ entity.ID, e *Entity) {
		if e.Kind == KindProjectile {
			shot = e
		}
	})
	if shot == nil {
		t.Fatal("expected a projectile")
	}
	if shot.Projectile.Owner != turret.ID {
		t.Error("projectile owner should be the turret")
	}
	if shot.Vel.X >= 0 {
		t.Errorf("projectile Vel = %v, expected leftward toward the player", shot.Vel)
	}
	speed := shot.Vel.Len()
	if speed < cfg.Enemies.Projectile.Speed-0.01 || speed > cfg.Enemies.Projectile.Speed+0.01 {
		t.Errorf("projectile speed %f, expected %f", speed, cfg.Enemies.Projectile.Speed)
	}
}

func TestProjectileTTL(t *testing.T) {
	cfg := quietConfig()
	cfg.Enemies.Projectile.TTL = 100 * time.Millisecond
	g := newTestGame(t, cfg)
	w := g.world
	shot := newProjectile(w, core.V(60, 2), core.V(0, 0))

	run(g, 9, idle())
	if !w.entities.Alive(shot.ID) {
		t.Fatal("projectile expired early")
	}
	g.Step(idle())
	if w.entities.Alive(shot.ID) {
		t.Error("projectile should not outlive its TTL")
	}
}

func TestPowerUpLifetime(t *testing.T) {
	cfg := quietConfig()
	cfg.PowerUps.Lifetime = 200 * time.Millisecond
	g := newTestGame(t, cfg)
	w := g.world
	pu := w.spawner.placePowerUp(w, 60, PowerShield)

	run(g, 20, idle())
	if w.entities.Alive(pu.ID) {
		t.Error("power-up should despawn after its lifetime")
	}
}

func TestPrune(t *testing.T) {
	g := newTestGame(t, quietConfig())
	w := g.world
	w.camera.X = 200
	w.player.Pos.X = 220

	nearSpike := w.spawner.placeSpike(w, 180)
	walker := w.spawner.placeWalker(w, 180)
	farSpike := w.spawner.placeSpike(w, 100)
	lost := newProjectile(w, core.V(230, -100), core.Vec2{})

	w.prune()

	if !w.entities.Alive(nearSpike.ID) {
		t.Error("spike within a screen of the camera should be kept")
	}
	if w.entities.Alive(walker.ID) {
		t.Error("walker behind the camera should be pruned")
	}
	if w.entities.Alive(farSpike.ID) {
		t.Error("spike more than a screen behind should be reclaimed")
	}
	if w.entities.Alive(lost.ID) {
		t.Error("entity far above the world should be reclaimed")
	}
}
