package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/l1jgo/engine2d/internal/component"
	"github.com/l1jgo/engine2d/internal/core/ecs"
)

const prefabsYAML = `
prefabs:
  - name: tank
    group: enemies
    transform:
      position: { x: 10, y: 20 }
    box_collider: { width: 25, height: 18, offset: { x: 0, y: 7 } }
    health: { hp: 50 }
    projectile_emitter:
      velocity: { x: -100, y: 0 }
      repeat_frequency: 3
      duration: 2
      hit_damage: 20

  - name: truck
    prefab: tank
    rigidbody:
      velocity: { x: 10, y: 0 }
    health: { hp: 80, max: 100 }

  - name: chopper
    tag: player
    transform:
      position: { x: 1, y: 2 }
      scale: { x: 2, y: 2 }
      rotation: 90
    keyboard_controller:
      up: { x: 0, y: -80 }
      left: { x: -80, y: 0 }
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPrefabTable(t *testing.T) {
	table, err := LoadPrefabTable(writeFile(t, "prefabs.yaml", prefabsYAML))
	if err != nil {
		t.Fatalf("LoadPrefabTable: %v", err)
	}
	if table.Count() != 3 {
		t.Fatalf("Count = %d, want 3", table.Count())
	}
	if table.Get("missing") != nil {
		t.Error("Get of unknown prefab should be nil")
	}

	truck := table.Get("truck")
	if truck == nil {
		t.Fatal("truck missing")
	}
	if truck.Group != "enemies" || truck.BoxCollider == nil || truck.ProjectileEmitter == nil {
		t.Errorf("truck did not inherit from tank: %+v", truck)
	}
	if truck.Health.HP != 80 || truck.RigidBody == nil {
		t.Errorf("truck overrides lost: health %+v", truck.Health)
	}
}

func TestLoadPrefabTableErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "prefabs: [", "parse prefabs"},
		{"missing name", "prefabs:\n  - tag: x\n", "missing name"},
		{"duplicate", "prefabs:\n  - name: a\n  - name: a\n", "defined twice"},
		{"unknown base", "prefabs:\n  - name: a\n    prefab: b\n", "unknown base"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPrefabTable(writeFile(t, "p.yaml", tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
	if _, err := LoadPrefabTable(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestSpawn(t *testing.T) {
	table, err := LoadPrefabTable(writeFile(t, "prefabs.yaml", prefabsYAML))
	if err != nil {
		t.Fatal(err)
	}
	r := ecs.NewRegistry(ecs.Options{})

	truck := table.Get("truck").Spawn(r)
	if !r.EntityBelongsToGroup(truck, "enemies") {
		t.Error("group not applied")
	}
	h := ecs.GetComponent[component.Health](r, truck)
	if h.Current != 80 || h.Max != 100 {
		t.Errorf("health = %+v, want 80/100", *h)
	}
	tr := ecs.GetComponent[component.Transform](r, truck)
	if tr.Position != (component.Vec2{X: 10, Y: 20}) || tr.Scale != (component.Vec2{X: 1, Y: 1}) {
		t.Errorf("transform = %+v", *tr)
	}
	pe := ecs.GetComponent[component.ProjectileEmitter](r, truck)
	if pe.RepeatFrequency != 3 || pe.HitDamage != 20 || pe.ProjectileVelocity.X != -100 {
		t.Errorf("emitter = %+v", *pe)
	}
	if ecs.HasComponent[component.KeyboardControl](r, truck) {
		t.Error("truck got a component it does not declare")
	}

	chopper := table.Get("chopper").Spawn(r)
	if r.GetEntityByTag("player") != chopper {
		t.Error("tag not applied")
	}
	ct := ecs.GetComponent[component.Transform](r, chopper)
	if ct.Scale != (component.Vec2{X: 2, Y: 2}) || ct.Rotation != 90 {
		t.Errorf("chopper transform = %+v", *ct)
	}
	kc := ecs.GetComponent[component.KeyboardControl](r, chopper)
	if kc.UpVelocity.Y != -80 || kc.LeftVelocity.X != -80 || !kc.DownVelocity.IsZero() {
		t.Errorf("keyboard = %+v", *kc)
	}
	if r.State(chopper) != ecs.PendingAdd {
		t.Errorf("spawned entity state = %s, want pending-add", r.State(chopper))
	}
}

func TestResolve(t *testing.T) {
	table, err := LoadPrefabTable(writeFile(t, "prefabs.yaml", prefabsYAML))
	if err != nil {
		t.Fatal(err)
	}
	s, err := table.Resolve(EntitySpec{
		Prefab:    "tank",
		Tag:       "boss",
		Transform: &TransformSpec{Position: Vec2Spec{X: 99}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.Tag != "boss" || s.Group != "enemies" || s.Transform.Position.X != 99 || s.Health.HP != 50 {
		t.Errorf("resolved = %+v", s)
	}

	if _, err := table.Resolve(EntitySpec{Prefab: "ghost"}); err == nil {
		t.Error("unknown prefab should fail")
	}
	var none *PrefabTable
	if plain, err := none.Resolve(EntitySpec{Tag: "x"}); err != nil || plain.Tag != "x" {
		t.Errorf("Resolve without prefab = %+v, %v", plain, err)
	}
}
