// Package level reads Lua level files into entities.
//
// A level file assigns a global table:
//
//	level = {
//	    entities = {
//	        [0] = {
//	            tag = "player",
//	            prefab = "chopper",
//	            components = {
//	                transform = { position = { x = 10, y = 20 } },
//	            },
//	        },
//	    },
//	}
//
// The entities array may start at 0 or 1. Inline components replace the ones
// taken from the prefab.
package level

import (
	"fmt"

	"github.com/l1jgo/engine2d/internal/core/ecs"
	"github.com/l1jgo/engine2d/internal/data"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Loader runs level files in a fresh VM each time. Single-goroutine use.
type Loader struct {
	log *zap.Logger
}

func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log}
}

// Load executes path, spawns every entity in level.entities into r and
// returns them in file order. Nothing is spawned when the file is invalid.
func (l *Loader) Load(path string, r *ecs.Registry, prefabs *data.PrefabTable) ([]ecs.Entity, error) {
	specs, err := l.Read(path, prefabs)
	if err != nil {
		return nil, err
	}
	out := make([]ecs.Entity, 0, len(specs))
	for _, s := range specs {
		out = append(out, s.Spawn(r))
	}
	l.log.Info("level loaded", zap.String("file", path), zap.Int("entities", len(out)))
	return out, nil
}

// Read parses path into entity specs with prefabs already applied.
func (l *Loader) Read(path string, prefabs *data.PrefabTable) ([]data.EntitySpec, error) {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	defer vm.Close()

	if err := vm.DoFile(path); err != nil {
		return nil, fmt.Errorf("load level %s: %w", path, err)
	}
	lvl, ok := vm.GetGlobal("level").(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("level %s: global 'level' is not a table", path)
	}
	ents, ok := lvl.RawGetString("entities").(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("level %s: level.entities is not a table", path)
	}

	// Walk from 0 when present, else from 1, until the first gap.
	// Key 0 lives in the hash part, so read entries with RawGet.
	i := 0
	if ents.RawGet(lua.LNumber(0)) == lua.LNil {
		i = 1
	}
	var specs []data.EntitySpec
	for ; ; i++ {
		v := ents.RawGet(lua.LNumber(i))
		if v == lua.LNil {
			break
		}
		tbl, ok := v.(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("level %s: entity %d is %s, not a table", path, i, v.Type())
		}
		spec, err := readEntity(tbl)
		if err != nil {
			return nil, fmt.Errorf("level %s: entity %d: %w", path, i, err)
		}
		if spec, err = prefabs.Resolve(spec); err != nil {
			return nil, fmt.Errorf("level %s: entity %d: %w", path, i, err)
		}
		specs = append(specs, spec)
		l.log.Debug("level entity read",
			zap.Int("index", i),
			zap.String("tag", spec.Tag),
			zap.String("group", spec.Group),
			zap.String("prefab", spec.Prefab),
		)
	}
	return specs, nil
}

func readEntity(t *lua.LTable) (data.EntitySpec, error) {
	s := data.EntitySpec{
		Name:   getString(t, "name", ""),
		Prefab: getString(t, "prefab", ""),
		Tag:    getString(t, "tag", ""),
		Group:  getString(t, "group", ""),
	}
	comps := getTable(t, "components")
	if comps == nil {
		return s, nil
	}

	if tr := getTable(comps, "transform"); tr != nil {
		spec := &data.TransformSpec{
			Position: getVec(tr, "position", 0),
			Rotation: getNumber(tr, "rotation", 0),
		}
		scale := getVec(tr, "scale", 1)
		spec.Scale = &scale
		s.Transform = spec
	}
	if rb := getTable(comps, "rigidbody"); rb != nil {
		s.RigidBody = &data.RigidBodySpec{Velocity: getVec(rb, "velocity", 0)}
	}
	if bc := getTable(comps, "box_collider"); bc != nil {
		s.BoxCollider = &data.BoxColliderSpec{
			Width:  getNumber(bc, "width", 0),
			Height: getNumber(bc, "height", 0),
			Offset: getVec(bc, "offset", 0),
		}
		if s.BoxCollider.Width < 0 || s.BoxCollider.Height < 0 {
			return s, fmt.Errorf("box_collider: negative size %gx%g", s.BoxCollider.Width, s.BoxCollider.Height)
		}
	}
	if h := getTable(comps, "health"); h != nil {
		hp := int(getNumber(h, "health", 100))
		s.Health = &data.HealthSpec{HP: hp, Max: int(getNumber(h, "max", float64(hp)))}
	}
	if p := getTable(comps, "projectile"); p != nil {
		s.Projectile = &data.ProjectileSpec{
			HitDamage: int(getNumber(p, "hit_damage", 0)),
			Duration:  getNumber(p, "duration", 0),
			Friendly:  getBool(p, "friendly", false),
		}
	}
	if pe := getTable(comps, "projectile_emitter"); pe != nil {
		s.ProjectileEmitter = &data.ProjectileEmitterSpec{
			Velocity:        getVec(pe, "projectile_velocity", 0),
			RepeatFrequency: getNumber(pe, "repeat_frequency", 0),
			Duration:        getNumber(pe, "projectile_duration", 0),
			HitDamage:       int(getNumber(pe, "hit_damage", 0)),
			Friendly:        getBool(pe, "friendly", false),
		}
	}
	if kc := getTable(comps, "keyboard_controller"); kc != nil {
		s.KeyboardControl = &data.KeyboardControlSpec{
			Up:    getVec(kc, "up_velocity", 0),
			Right: getVec(kc, "right_velocity", 0),
			Down:  getVec(kc, "down_velocity", 0),
			Left:  getVec(kc, "left_velocity", 0),
		}
	}
	return s, nil
}

// ── Lua table accessors ───────────────────────────────────────────

func getTable(t *lua.LTable, key string) *lua.LTable {
	v, _ := t.RawGetString(key).(*lua.LTable)
	return v
}

func getNumber(t *lua.LTable, key string, def float64) float64 {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok {
		return float64(n)
	}
	return def
}

func getString(t *lua.LTable, key, def string) string {
	if s, ok := t.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return def
}

func getBool(t *lua.LTable, key string, def bool) bool {
	if b, ok := t.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return def
}

func getVec(t *lua.LTable, key string, def float64) data.Vec2Spec {
	v := getTable(t, key)
	if v == nil {
		return data.Vec2Spec{X: def, Y: def}
	}
	return data.Vec2Spec{X: getNumber(v, "x", def), Y: getNumber(v, "y", def)}
}
