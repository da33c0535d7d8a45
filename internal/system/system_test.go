package system

import (
	"testing"
	"time"

	"github.com/l1jgo/engine2d/internal/component"
	"github.com/l1jgo/engine2d/internal/core/ecs"
	"github.com/l1jgo/engine2d/internal/core/event"
	coresys "github.com/l1jgo/engine2d/internal/core/system"
)

const frame = 100 * time.Millisecond

type world struct {
	reg    *ecs.Registry
	bus    *event.Bus
	runner *coresys.Runner
	watch  *watcher
}

// watcher records events emitted during a frame.
type watcher struct {
	collisions []event.CollisionEvent
	damaged    []event.EntityDamagedEvent
}

func (w *watcher) Phase() coresys.Phase   { return coresys.PhaseCleanup }
func (w *watcher) Update(_ time.Duration) {}

func (w *watcher) SubscribeToEvents(bus *event.Bus) {
	event.Subscribe(bus, func(ev event.CollisionEvent) { w.collisions = append(w.collisions, ev) })
	event.Subscribe(bus, func(ev event.EntityDamagedEvent) { w.damaged = append(w.damaged, ev) })
}

func newWorld() *world {
	w := &world{
		reg:   ecs.NewRegistry(ecs.Options{}),
		bus:   event.NewBus(),
		watch: &watcher{},
	}
	w.runner = coresys.NewRunner(w.reg, w.bus, nil)
	Install(w.reg, w.bus, w.runner, nil)
	w.runner.Register(w.watch)
	return w
}

func (w *world) box(x, y float64) ecs.Entity {
	e := w.reg.CreateEntity()
	ecs.AddComponent(w.reg, e, component.NewTransform(component.Vec2{X: x, Y: y}))
	ecs.AddComponent(w.reg, e, component.BoxCollider{Width: 10, Height: 10})
	return e
}

func (w *world) target(x, y float64, hp int) ecs.Entity {
	e := w.box(x, y)
	ecs.AddComponent(w.reg, e, component.NewHealth(hp))
	return e
}

func (w *world) projectile(x, y float64, damage int, friendly bool, owner ecs.Entity) ecs.Entity {
	e := w.box(x, y)
	p := component.NewProjectile(damage, 10, friendly)
	p.Owner = owner
	ecs.AddComponent(w.reg, e, p)
	return e
}

func hp(w *world, e ecs.Entity) int {
	return ecs.GetComponent[component.Health](w.reg, e).Current
}

func TestMovement(t *testing.T) {
	w := newWorld()
	e := w.reg.CreateEntity()
	ecs.AddComponent(w.reg, e, component.NewTransform(component.Vec2{X: 1, Y: 1}))
	ecs.AddComponent(w.reg, e, component.RigidBody{Velocity: component.Vec2{X: 10, Y: -20}})

	w.runner.Tick(500 * time.Millisecond)
	got := ecs.GetComponent[component.Transform](w.reg, e).Position
	if got.X != 6 || got.Y != -9 {
		t.Fatalf("position = %+v, want {6 -9}", got)
	}
}

func TestKeyboardControl(t *testing.T) {
	w := newWorld()
	e := w.reg.CreateEntity()
	ecs.AddComponent(w.reg, e, component.RigidBody{})
	ecs.AddComponent(w.reg, e, component.KeyboardControl{
		UpVelocity:    component.Vec2{Y: -5},
		RightVelocity: component.Vec2{X: 5},
		DownVelocity:  component.Vec2{Y: 5},
		LeftVelocity:  component.Vec2{X: -5},
	})
	w.runner.Tick(frame)

	tests := []struct {
		key  string
		want component.Vec2
	}{
		{KeyUp, component.Vec2{Y: -5}},
		{KeyRight, component.Vec2{X: 5}},
		{"escape", component.Vec2{X: 5}},
		{KeyDown, component.Vec2{Y: 5}},
		{KeyLeft, component.Vec2{X: -5}},
	}
	for _, tt := range tests {
		event.Emit(w.bus, event.KeyPressedEvent{Key: tt.key})
		if got := ecs.GetComponent[component.RigidBody](w.reg, e).Velocity; got != tt.want {
			t.Errorf("after %q velocity = %+v, want %+v", tt.key, got, tt.want)
		}
	}
}

func TestCollisionEmitsOncePerPair(t *testing.T) {
	w := newWorld()
	a := w.box(0, 0)
	b := w.box(5, 5)
	w.box(100, 100)

	w.runner.Tick(frame)
	if len(w.watch.collisions) != 1 {
		t.Fatalf("collisions = %v, want one", w.watch.collisions)
	}
	ev := w.watch.collisions[0]
	if !(ev.A == a && ev.B == b) && !(ev.A == b && ev.B == a) {
		t.Errorf("collision between %d and %d, want %d and %d", ev.A, ev.B, a, b)
	}
}

func TestDamage(t *testing.T) {
	tests := []struct {
		name      string
		friendly  bool
		group     string
		tag       string
		ownTarget bool
		wantHP    int
	}{
		{name: "friendly hits enemy", friendly: true, group: GroupEnemies, wantHP: 20},
		{name: "friendly ignores player", friendly: true, tag: TagPlayer, wantHP: 30},
		{name: "hostile hits player", friendly: false, tag: TagPlayer, wantHP: 20},
		{name: "hostile ignores enemy", friendly: false, group: GroupEnemies, wantHP: 30},
		{name: "owner is never hit", friendly: false, tag: TagPlayer, ownTarget: true, wantHP: 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld()
			target := w.target(0, 0, 30)
			if tt.group != "" {
				w.reg.GroupEntity(target, tt.group)
			}
			if tt.tag != "" {
				w.reg.TagEntity(target, tt.tag)
			}
			owner := ecs.InvalidEntity
			if tt.ownTarget {
				owner = target
			}
			p := w.projectile(2, 2, 10, tt.friendly, owner)

			w.runner.Tick(frame)
			if got := hp(w, target); got != tt.wantHP {
				t.Fatalf("health = %d, want %d", got, tt.wantHP)
			}
			hit := tt.wantHP != 30
			if spent := w.reg.State(p) == ecs.PendingKill; spent != hit {
				t.Errorf("projectile spent = %v, want %v", spent, hit)
			}
			if hit && (len(w.watch.damaged) != 1 || w.watch.damaged[0].Remaining != tt.wantHP) {
				t.Errorf("damage events = %+v", w.watch.damaged)
			}
		})
	}
}

func TestDamageKillsAtZero(t *testing.T) {
	w := newWorld()
	enemy := w.target(0, 0, 5)
	w.reg.GroupEntity(enemy, GroupEnemies)
	w.projectile(1, 1, 10, true, ecs.InvalidEntity)

	w.runner.Tick(frame)
	if got := hp(w, enemy); got != 0 {
		t.Fatalf("health = %d, want clamped to 0", got)
	}
	if w.reg.State(enemy) != ecs.PendingKill {
		t.Fatalf("enemy state = %s, want pending-kill", w.reg.State(enemy))
	}

	w.runner.Tick(frame)
	if w.reg.Alive(enemy) {
		t.Fatal("enemy survived the next frame")
	}
	if n := len(w.reg.GetEntitiesByGroup(GroupEnemies)); n != 0 {
		t.Errorf("enemies group still has %d members", n)
	}
}

func TestProjectileHitsOnce(t *testing.T) {
	w := newWorld()
	a := w.target(0, 0, 30)
	b := w.target(4, 4, 30)
	w.reg.GroupEntity(a, GroupEnemies)
	w.reg.GroupEntity(b, GroupEnemies)
	w.projectile(2, 2, 10, true, ecs.InvalidEntity)

	w.runner.Tick(frame)
	if total := hp(w, a) + hp(w, b); total != 50 {
		t.Fatalf("combined health = %d, want 50 (one hit)", total)
	}
}

func TestProjectileEmitterTimer(t *testing.T) {
	w := newWorld()
	e := w.reg.CreateEntity()
	ecs.AddComponent(w.reg, e, component.NewTransform(component.Vec2{X: 50, Y: 50}))
	ecs.AddComponent(w.reg, e, component.ProjectileEmitter{
		ProjectileVelocity: component.Vec2{X: 100},
		RepeatFrequency:    1,
		ProjectileDuration: 5,
		HitDamage:          7,
	})

	w.runner.Tick(600 * time.Millisecond)
	if n := len(w.reg.GetEntitiesByGroup(GroupProjectiles)); n != 0 {
		t.Fatalf("emitted %d projectiles before the interval", n)
	}
	w.runner.Tick(600 * time.Millisecond)
	ps := w.reg.GetEntitiesByGroup(GroupProjectiles)
	if len(ps) != 1 {
		t.Fatalf("emitted %d projectiles, want 1", len(ps))
	}

	p := ecs.GetComponent[component.Projectile](w.reg, ps[0])
	if p.Owner != e || p.HitDamage != 7 || p.Lifetime != 5 || p.Friendly {
		t.Errorf("projectile = %+v", *p)
	}
	if v := ecs.GetComponent[component.RigidBody](w.reg, ps[0]).Velocity; v.X != 100 {
		t.Errorf("velocity = %+v", v)
	}
	if pos := ecs.GetComponent[component.Transform](w.reg, ps[0]).Position; pos.X != 50 || pos.Y != 50 {
		t.Errorf("spawned at %+v, want emitter position", pos)
	}
	if got := ecs.GetComponent[component.ProjectileEmitter](w.reg, e).SinceLastEmission; got != 0 {
		t.Errorf("timer not reset: %v", got)
	}
}

func TestPlayerFiresOnSpace(t *testing.T) {
	w := newWorld()
	player := w.box(0, 0)
	w.reg.TagEntity(player, TagPlayer)
	ecs.AddComponent(w.reg, player, component.ProjectileEmitter{
		ProjectileVelocity: component.Vec2{Y: -50},
		ProjectileDuration: 1,
		HitDamage:          3,
		Friendly:           true,
	})
	other := w.reg.CreateEntity()
	ecs.AddComponent(w.reg, other, component.NewTransform(component.Vec2{}))
	ecs.AddComponent(w.reg, other, component.ProjectileEmitter{})
	w.runner.Tick(frame)

	event.Emit(w.bus, event.KeyPressedEvent{Key: KeyUp})
	event.Emit(w.bus, event.KeyPressedEvent{Key: KeySpace})
	ps := w.reg.GetEntitiesByGroup(GroupProjectiles)
	if len(ps) != 1 {
		t.Fatalf("projectiles = %d, want 1", len(ps))
	}
	if owner := ecs.GetComponent[component.Projectile](w.reg, ps[0]).Owner; owner != player {
		t.Errorf("owner = %d, want player %d", owner, player)
	}
	if pos := ecs.GetComponent[component.Transform](w.reg, ps[0]).Position; pos.X != 5 || pos.Y != 5 {
		t.Errorf("spawned at %+v, want collider centre {5 5}", pos)
	}
}

func TestProjectileExpires(t *testing.T) {
	w := newWorld()
	e := w.reg.CreateEntity()
	ecs.AddComponent(w.reg, e, component.NewProjectile(1, 0.5, true))

	w.runner.Tick(300 * time.Millisecond)
	if w.reg.State(e) != ecs.Live {
		t.Fatalf("state = %s after 0.3s, want live", w.reg.State(e))
	}
	w.runner.Tick(300 * time.Millisecond)
	if w.reg.State(e) != ecs.PendingKill {
		t.Fatalf("state = %s after 0.6s, want pending-kill", w.reg.State(e))
	}
	w.runner.Tick(300 * time.Millisecond)
	if w.reg.Alive(e) {
		t.Fatal("expired projectile still alive")
	}
}

// reinforcer spawns health-bearing entities whenever something is damaged,
// growing the Health pool in the middle of a hit.
type reinforcer struct {
	reg *ecs.Registry
	n   int
}

func (s *reinforcer) Phase() coresys.Phase   { return coresys.PhaseCleanup }
func (s *reinforcer) Update(_ time.Duration) {}

func (s *reinforcer) SubscribeToEvents(bus *event.Bus) {
	event.Subscribe(bus, func(event.EntityDamagedEvent) {
		for i := 0; i < s.n; i++ {
			ecs.AddComponent(s.reg, s.reg.CreateEntity(), component.NewHealth(1))
		}
	})
}

func TestDamageSurvivesPoolGrowthInHandler(t *testing.T) {
	w := newWorld()
	w.runner.Register(&reinforcer{reg: w.reg, n: 500})
	enemy := w.target(0, 0, 5)
	w.reg.GroupEntity(enemy, GroupEnemies)
	w.projectile(1, 1, 10, true, ecs.InvalidEntity)

	w.runner.Tick(frame)
	if w.reg.State(enemy) != ecs.PendingKill {
		t.Fatalf("enemy state = %s, want pending-kill", w.reg.State(enemy))
	}
	if got := hp(w, enemy); got != 0 {
		t.Errorf("health = %d, want 0", got)
	}
	if len(w.watch.damaged) != 1 || w.watch.damaged[0].Remaining != 0 || w.watch.damaged[0].Amount != 10 {
		t.Errorf("damage events = %+v", w.watch.damaged)
	}
}
