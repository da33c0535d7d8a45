package data

import (
	"fmt"
	"os"

	"github.com/l1jgo/engine2d/internal/component"
	"github.com/l1jgo/engine2d/internal/core/ecs"
	"gopkg.in/yaml.v3"
)

// Vec2Spec is an {x, y} pair.
type Vec2Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec2Spec) vec() component.Vec2 { return component.Vec2{X: v.X, Y: v.Y} }

type TransformSpec struct {
	Position Vec2Spec  `yaml:"position"`
	Scale    *Vec2Spec `yaml:"scale"` // defaults to {1, 1}
	Rotation float64   `yaml:"rotation"`
}

type RigidBodySpec struct {
	Velocity Vec2Spec `yaml:"velocity"`
}

type BoxColliderSpec struct {
	Width  float64  `yaml:"width"`
	Height float64  `yaml:"height"`
	Offset Vec2Spec `yaml:"offset"`
}

type HealthSpec struct {
	HP  int `yaml:"hp"`
	Max int `yaml:"max"` // defaults to HP
}

type ProjectileSpec struct {
	HitDamage int     `yaml:"hit_damage"`
	Duration  float64 `yaml:"duration"`
	Friendly  bool    `yaml:"friendly"`
}

type ProjectileEmitterSpec struct {
	Velocity        Vec2Spec `yaml:"velocity"`
	RepeatFrequency float64  `yaml:"repeat_frequency"`
	Duration        float64  `yaml:"duration"`
	HitDamage       int      `yaml:"hit_damage"`
	Friendly        bool     `yaml:"friendly"`
}

type KeyboardControlSpec struct {
	Up    Vec2Spec `yaml:"up"`
	Right Vec2Spec `yaml:"right"`
	Down  Vec2Spec `yaml:"down"`
	Left  Vec2Spec `yaml:"left"`
}

// EntitySpec describes one entity: an optional tag and group plus the
// components to attach. Nil component specs are left off.
type EntitySpec struct {
	Name   string `yaml:"name"`
	Prefab string `yaml:"prefab"`
	Tag    string `yaml:"tag"`
	Group  string `yaml:"group"`

	Transform         *TransformSpec         `yaml:"transform"`
	RigidBody         *RigidBodySpec         `yaml:"rigidbody"`
	BoxCollider       *BoxColliderSpec       `yaml:"box_collider"`
	Health            *HealthSpec            `yaml:"health"`
	Projectile        *ProjectileSpec        `yaml:"projectile"`
	ProjectileEmitter *ProjectileEmitterSpec `yaml:"projectile_emitter"`
	KeyboardControl   *KeyboardControlSpec   `yaml:"keyboard_controller"`
}

// Merge returns base with every field set in s laid over it. Component specs
// are replaced whole.
func (s EntitySpec) Merge(base EntitySpec) EntitySpec {
	out := base
	if s.Name != "" {
		out.Name = s.Name
	}
	out.Prefab = s.Prefab
	if s.Tag != "" {
		out.Tag = s.Tag
	}
	if s.Group != "" {
		out.Group = s.Group
	}
	if s.Transform != nil {
		out.Transform = s.Transform
	}
	if s.RigidBody != nil {
		out.RigidBody = s.RigidBody
	}
	if s.BoxCollider != nil {
		out.BoxCollider = s.BoxCollider
	}
	if s.Health != nil {
		out.Health = s.Health
	}
	if s.Projectile != nil {
		out.Projectile = s.Projectile
	}
	if s.ProjectileEmitter != nil {
		out.ProjectileEmitter = s.ProjectileEmitter
	}
	if s.KeyboardControl != nil {
		out.KeyboardControl = s.KeyboardControl
	}
	return out
}

// Spawn creates the entity in r. It becomes visible to systems at the next
// Registry.Update.
func (s EntitySpec) Spawn(r *ecs.Registry) ecs.Entity {
	e := r.CreateEntity()
	if s.Tag != "" {
		r.TagEntity(e, s.Tag)
	}
	if s.Group != "" {
		r.GroupEntity(e, s.Group)
	}
	if t := s.Transform; t != nil {
		tr := component.NewTransform(t.Position.vec())
		if t.Scale != nil {
			tr.Scale = t.Scale.vec()
		}
		tr.Rotation = t.Rotation
		ecs.AddComponent(r, e, tr)
	}
	if b := s.RigidBody; b != nil {
		ecs.AddComponent(r, e, component.RigidBody{Velocity: b.Velocity.vec()})
	}
	if c := s.BoxCollider; c != nil {
		ecs.AddComponent(r, e, component.BoxCollider{
			Width:  c.Width,
			Height: c.Height,
			Offset: c.Offset.vec(),
		})
	}
	if h := s.Health; h != nil {
		hp := component.NewHealth(h.HP)
		if h.Max > 0 {
			hp.Max = h.Max
		}
		ecs.AddComponent(r, e, hp)
	}
	if p := s.Projectile; p != nil {
		ecs.AddComponent(r, e, component.NewProjectile(p.HitDamage, p.Duration, p.Friendly))
	}
	if pe := s.ProjectileEmitter; pe != nil {
		ecs.AddComponent(r, e, component.ProjectileEmitter{
			ProjectileVelocity: pe.Velocity.vec(),
			RepeatFrequency:    pe.RepeatFrequency,
			ProjectileDuration: pe.Duration,
			HitDamage:          pe.HitDamage,
			Friendly:           pe.Friendly,
		})
	}
	if k := s.KeyboardControl; k != nil {
		ecs.AddComponent(r, e, component.KeyboardControl{
			UpVelocity:    k.Up.vec(),
			RightVelocity: k.Right.vec(),
			DownVelocity:  k.Down.vec(),
			LeftVelocity:  k.Left.vec(),
		})
	}
	return e
}

type prefabFile struct {
	Prefabs []EntitySpec `yaml:"prefabs"`
}

// PrefabTable holds named entity templates.
type PrefabTable struct {
	prefabs map[string]*EntitySpec
}

// LoadPrefabTable loads prefabs.yaml. A prefab may itself name a prefab
// defined earlier in the file.
func LoadPrefabTable(path string) (*PrefabTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prefabs: %w", err)
	}
	var f prefabFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse prefabs: %w", err)
	}
	t := &PrefabTable{
		prefabs: make(map[string]*EntitySpec, len(f.Prefabs)),
	}
	for i := range f.Prefabs {
		p := f.Prefabs[i]
		if p.Name == "" {
			return nil, fmt.Errorf("prefab #%d: missing name", i+1)
		}
		if _, dup := t.prefabs[p.Name]; dup {
			return nil, fmt.Errorf("prefab %q: defined twice", p.Name)
		}
		if p.Prefab != "" {
			base := t.Get(p.Prefab)
			if base == nil {
				return nil, fmt.Errorf("prefab %q: unknown base %q", p.Name, p.Prefab)
			}
			p = p.Merge(*base)
		}
		t.prefabs[p.Name] = &p
	}
	return t, nil
}

// Get returns the named prefab, or nil if none.
func (t *PrefabTable) Get(name string) *EntitySpec {
	if t == nil {
		return nil
	}
	return t.prefabs[name]
}

// Count returns the total number of prefabs loaded.
func (t *PrefabTable) Count() int {
	if t == nil {
		return 0
	}
	return len(t.prefabs)
}

// Resolve lays s over its named prefab. A spec without a prefab is returned
// unchanged.
func (t *PrefabTable) Resolve(s EntitySpec) (EntitySpec, error) {
	if s.Prefab == "" {
		return s, nil
	}
	base := t.Get(s.Prefab)
	if base == nil {
		return EntitySpec{}, fmt.Errorf("unknown prefab %q", s.Prefab)
	}
	return s.Merge(*base), nil
}
