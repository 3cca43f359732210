package statetesting

import (
	"fmt"

	"github.com/hexforge/fieldstate/lib/state"
)

// --------------------------------------------------------------------------
// VecState — minimal nested state type
// --------------------------------------------------------------------------

// VecState is a two-component integer vector, the smallest useful state
// type. It is used standalone and as a nested property of PlayerState.
type VecState struct {
	state.Tracker

	x int32
	y int32
}

var vecSchema = &state.Schema{
	Name: "VecState",
	Properties: []state.PropertySpec{
		{Name: "x", Kind: state.KindInt32},
		{Name: "y", Kind: state.KindInt32},
	},
}

func (v *VecState) StateSchema() *state.Schema { return vecSchema }

// X returns the x component.
func (v *VecState) X() int32 { return v.x }

// Y returns the y component.
func (v *VecState) Y() int32 { return v.y }

// SetX updates the x component, marking it dirty on change.
func (v *VecState) SetX(val int32) {
	if v.x != val {
		v.x = val
		v.MarkDirty("x")
	}
}

// SetY updates the y component, marking it dirty on change.
func (v *VecState) SetY(val int32) {
	if v.y != val {
		v.y = val
		v.MarkDirty("y")
	}
}

func (v *VecState) GetProperty(name string) (state.Value, error) {
	switch name {
	case "x":
		return state.Int32(v.x), nil
	case "y":
		return state.Int32(v.y), nil
	default:
		return state.Value{}, fmt.Errorf("VecState has no property %q", name)
	}
}

func (v *VecState) SetProperty(name string, val state.Value) error {
	switch name {
	case "x":
		v.x = val.Int32V()
	case "y":
		v.y = val.Int32V()
	default:
		return fmt.Errorf("VecState has no property %q", name)
	}
	// unconditional mark: the decoder reads the dirty list to know which
	// properties the stream carried
	v.MarkDirty(name)
	return nil
}

// --------------------------------------------------------------------------
// PlayerState — full-width state type
// --------------------------------------------------------------------------

// PlayerState covers every serializable value kind: all numeric scalars,
// text, char, a nested state object and both dirty containers. Use
// NewPlayerState to get an instance with wired container notifications.
type PlayerState struct {
	state.Tracker

	name    string
	tag     byte
	health  int32
	level   uint8
	flags   uint16
	score   uint32
	coins   uint64
	stamina float32
	morale  float64
	pos     *VecState
	slots   *state.Array // inventory item ids, uint32
	stats   *state.Map   // attribute name -> int32
}

const inventorySize = 8

var playerSchema = &state.Schema{
	Name: "PlayerState",
	Properties: []state.PropertySpec{
		{Name: "name", Kind: state.KindString},
		{Name: "tag", Kind: state.KindChar},
		{Name: "health", Kind: state.KindInt32},
		{Name: "level", Kind: state.KindUint8},
		{Name: "flags", Kind: state.KindUint16},
		{Name: "score", Kind: state.KindUint32},
		{Name: "coins", Kind: state.KindUint64},
		{Name: "stamina", Kind: state.KindFloat32},
		{Name: "morale", Kind: state.KindFloat64},
		{Name: "pos", Kind: state.KindState, Nested: vecSchema,
			NewNested: func() state.IStateObject { return &VecState{} }},
		{Name: "slots", Kind: state.KindArray, Elem: state.KindUint32},
		{Name: "stats", Kind: state.KindMap, Key: state.KindString, Elem: state.KindInt32},
	},
}

// NewPlayerState creates an empty player with its nested vector and
// containers constructed and their dirty notifications routed into the
// player's own bookkeeping.
func NewPlayerState() *PlayerState {
	p := &PlayerState{pos: &VecState{}}
	p.slots, _ = state.NewArray(state.KindUint32, inventorySize)
	p.stats, _ = state.NewMap(state.KindString, state.KindInt32)
	p.wire()
	return p
}

// wire routes child dirtiness into the parent dirty list, so a mutation
// deep in a container or the nested vector marks the owning property.
// Children may be nil on an instance built by the deserializer before its
// container properties are decoded.
func (p *PlayerState) wire() {
	if p.pos != nil {
		p.pos.Notify(func() { p.MarkDirty("pos") })
	}
	if p.slots != nil {
		p.slots.Notify(func() { p.MarkDirty("slots") })
	}
	if p.stats != nil {
		p.stats.Notify(func() { p.MarkDirty("stats") })
	}
}

func (p *PlayerState) StateSchema() *state.Schema { return playerSchema }

// ClearDirty resets the player and its children, so the next child mutation
// re-fires the one-shot notification and shows up in the dirty list again.
func (p *PlayerState) ClearDirty() {
	if p.pos != nil {
		p.pos.ClearDirty()
	}
	if p.slots != nil {
		p.slots.ClearDirty()
	}
	if p.stats != nil {
		p.stats.ClearDirty()
	}
	p.Tracker.ClearDirty()
}

// Accessors used by tests and the bench command.

func (p *PlayerState) Name() string        { return p.name }
func (p *PlayerState) Health() int32       { return p.health }
func (p *PlayerState) Pos() *VecState      { return p.pos }
func (p *PlayerState) Slots() *state.Array { return p.slots }
func (p *PlayerState) Stats() *state.Map   { return p.stats }

// SetName updates the display name, marking it dirty on change.
func (p *PlayerState) SetName(v string) {
	if p.name != v {
		p.name = v
		p.MarkDirty("name")
	}
}

// SetHealth updates the health pool, marking it dirty on change.
func (p *PlayerState) SetHealth(v int32) {
	if p.health != v {
		p.health = v
		p.MarkDirty("health")
	}
}

// SetScore updates the score, marking it dirty on change.
func (p *PlayerState) SetScore(v uint32) {
	if p.score != v {
		p.score = v
		p.MarkDirty("score")
	}
}

func (p *PlayerState) GetProperty(name string) (state.Value, error) {
	switch name {
	case "name":
		return state.String(p.name), nil
	case "tag":
		return state.Char(p.tag), nil
	case "health":
		return state.Int32(p.health), nil
	case "level":
		return state.Uint8(p.level), nil
	case "flags":
		return state.Uint16(p.flags), nil
	case "score":
		return state.Uint32(p.score), nil
	case "coins":
		return state.Uint64(p.coins), nil
	case "stamina":
		return state.Float32(p.stamina), nil
	case "morale":
		return state.Float64(p.morale), nil
	case "pos":
		return state.Nested(p.pos), nil
	case "slots":
		return state.ArrayValue(p.slots), nil
	case "stats":
		return state.MapValue(p.stats), nil
	default:
		return state.Value{}, fmt.Errorf("PlayerState has no property %q", name)
	}
}

func (p *PlayerState) SetProperty(name string, v state.Value) error {
	switch name {
	case "name":
		p.name = v.Str()
	case "tag":
		p.tag = v.CharV()
	case "health":
		p.health = v.Int32V()
	case "level":
		p.level = v.Uint8V()
	case "flags":
		p.flags = v.Uint16V()
	case "score":
		p.score = v.Uint32V()
	case "coins":
		p.coins = v.Uint64V()
	case "stamina":
		p.stamina = v.Float32V()
	case "morale":
		p.morale = v.Float64V()
	case "pos":
		vec, ok := v.StateV().(*VecState)
		if !ok {
			return fmt.Errorf("pos: expected *VecState, got %T", v.StateV())
		}
		p.pos = vec
	case "slots":
		p.slots = v.ArrayV()
	case "stats":
		p.stats = v.MapV()
	default:
		return fmt.Errorf("PlayerState has no property %q", name)
	}
	p.MarkDirty(name)
	// decoded children need their notifications re-routed to this instance
	p.wire()
	return nil
}

// --------------------------------------------------------------------------
// Seeding helpers
// --------------------------------------------------------------------------

// SeededPlayer returns a player with every property set to a fixed,
// non-zero value and the dirty bookkeeping cleared, ready for round-trip
// tests and benchmarks.
func SeededPlayer() *PlayerState {
	p := NewPlayerState()
	p.name = "aldric"
	p.tag = 'K'
	p.health = 250
	p.level = 12
	p.flags = 0x0304
	p.score = 77_000
	p.coins = 9_000_000_000
	p.stamina = 0.75
	p.morale = -1.25
	p.pos.SetX(64)
	p.pos.SetY(-32)
	for i := 0; i < inventorySize; i++ {
		_ = p.slots.Set(i, state.Uint32(uint32(1000+i)))
	}
	_ = p.stats.Set(state.String("str"), state.Int32(18))
	_ = p.stats.Set(state.String("dex"), state.Int32(14))
	_ = p.stats.Set(state.String("wis"), state.Int32(9))
	p.ClearDirty()
	return p
}
