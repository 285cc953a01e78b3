// Package feed streams Shape Runner simulations to external renderers over
// websockets. Every connection owns one simulation; frames and intents are
// msgpack encoded binary messages.
package feed

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/shaperun/internal/config"
	"github.com/vovakirdan/shaperun/internal/core"
	"github.com/vovakirdan/shaperun/internal/games/shaperun/sim"
)

// Client message types.
const (
	MsgConfigure = "configure" // Enter the configuring screen for a mode
	MsgMission   = "mission"   // Edit the mission while configuring
	MsgStart     = "start"     // Start the configured run
	MsgInput     = "input"     // Replace the held input state
	MsgReset     = "reset"     // Back to the menu
)

// Server message types.
const (
	MsgWelcome = "welcome"
	MsgFrame   = "frame"
	MsgError   = "error"
)

// ClientMsg is any message sent by a renderer.
type ClientMsg struct {
	Type    string      `msgpack:"type"`
	Mode    string      `msgpack:"mode,omitempty"`
	Mission *MissionMsg `msgpack:"mission,omitempty"`
	Seed    int64       `msgpack:"seed,omitempty"`
	Input   InputMsg    `msgpack:"input"`
}

// MissionMsg carries mission settings in both directions.
type MissionMsg struct {
	Tortuosity      float64 `msgpack:"tortuosity"`
	Density         float64 `msgpack:"density"`
	SpeedMultiplier float64 `msgpack:"speedMultiplier"`
	TotalDistance   float64 `msgpack:"totalDistance"`
}

// InputMsg is the held input state. Fire stays held until released and is
// rate limited by the shape cooldown on the server.
type InputMsg struct {
	MoveX float64 `msgpack:"moveX"`
	MoveY float64 `msgpack:"moveY"`
	Fire  bool    `msgpack:"fire"`
	Shape string  `msgpack:"shape,omitempty"`
}

// WelcomeMsg is sent once after the upgrade.
type WelcomeMsg struct {
	Type           string     `msgpack:"type"`
	Modes          []string   `msgpack:"modes"`
	Shapes         []string   `msgpack:"shapes"`
	TickRate       int        `msgpack:"tickRate"`
	RenderDistance float64    `msgpack:"renderDistance"`
	Mission        MissionMsg `msgpack:"mission"`
}

// ErrorMsg reports a rejected client message. The connection stays open.
type ErrorMsg struct {
	Type    string `msgpack:"type"`
	Message string `msgpack:"message"`
}

// Vec is a wire position.
type Vec struct {
	X float64 `msgpack:"x"`
	Y float64 `msgpack:"y"`
	Z float64 `msgpack:"z"`
}

// EntityMsg is one corridor entity.
type EntityMsg struct {
	ID    string  `msgpack:"id"`
	Kind  string  `msgpack:"kind"`
	Pos   Vec     `msgpack:"pos"`
	HP    float64 `msgpack:"hp,omitempty"`
	Shape string  `msgpack:"shape,omitempty"`
}

// ProjectileMsg is one live shot.
type ProjectileMsg struct {
	ID    uint64 `msgpack:"id"`
	Pos   Vec    `msgpack:"pos"`
	Shape string `msgpack:"shape"`
}

// EventMsg is one simulation event.
type EventMsg struct {
	Kind     string `msgpack:"kind"`
	EntityID string `msgpack:"entityId,omitempty"`
	ShotID   uint64 `msgpack:"shotId,omitempty"`
	Pos      Vec    `msgpack:"pos"`
	Score    int    `msgpack:"score,omitempty"`
}

// FrameMsg is the HUD and geometry after a tick or a state change.
type FrameMsg struct {
	Type        string          `msgpack:"type"`
	Tick        uint64          `msgpack:"tick"`
	Status      string          `msgpack:"status"`
	Mode        string          `msgpack:"mode"`
	HP          int             `msgpack:"hp"`
	MaxHP       int             `msgpack:"maxHp"`
	Score       int             `msgpack:"score"`
	Distance    float64         `msgpack:"distance"`
	Target      float64         `msgpack:"target"`
	Shape       string          `msgpack:"shape"`
	JustDamaged bool            `msgpack:"justDamaged"`
	Mission     MissionMsg      `msgpack:"mission"`
	Player      Vec             `msgpack:"player"`
	Entities    []EntityMsg     `msgpack:"entities"`
	Projectiles []ProjectileMsg `msgpack:"projectiles"`
	Events      []EventMsg      `msgpack:"events,omitempty"`
}

// DecodeClient parses a binary client message.
func DecodeClient(data []byte) (ClientMsg, error) {
	var msg ClientMsg
	if err := msgpack.Unmarshal(data, &msg); err != nil {
		return ClientMsg{}, fmt.Errorf("feed: cannot decode message: %w", err)
	}
	return msg, nil
}

// Encode marshals any server message.
func Encode(v any) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("feed: cannot encode message: %w", err)
	}
	return data, nil
}

// ParseMode converts a wire mode name.
func ParseMode(name string) (sim.Mode, bool) {
	switch name {
	case "mission", "":
		return sim.ModeMission, true
	case "endless":
		return sim.ModeEndless, true
	}
	return 0, false
}

func vec(v core.Vec3) Vec {
	return Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func missionMsg(m config.Mission) MissionMsg {
	return MissionMsg(m)
}

func (m MissionMsg) mission() config.Mission {
	return config.Mission(m)
}

func frameFrom(snap sim.Snapshot, mission config.Mission, events []sim.Event, radius float64) FrameMsg {
	visible := snap.Visible(radius)
	f := FrameMsg{
		Type:        MsgFrame,
		Tick:        snap.Tick,
		Status:      snap.HUD.Status.String(),
		Mode:        snap.HUD.Mode.String(),
		HP:          snap.HUD.HP,
		MaxHP:       snap.HUD.MaxHP,
		Score:       snap.HUD.Score,
		Distance:    snap.HUD.Distance,
		Target:      snap.HUD.Target,
		Shape:       snap.HUD.Shape.String(),
		JustDamaged: snap.HUD.JustDamaged,
		Mission:     missionMsg(mission),
		Player:      vec(snap.Player),
		Entities:    make([]EntityMsg, 0, len(visible)),
		Projectiles: make([]ProjectileMsg, 0, len(snap.Projectiles)),
	}
	for _, e := range visible {
		em := EntityMsg{ID: e.ID, Kind: e.Kind.String(), Pos: vec(e.Pos)}
		if e.Kind.IsObstacle() {
			em.HP = e.HP
		}
		if shape, ok := e.RequiredShape(); ok {
			em.Shape = shape.String()
		}
		f.Entities = append(f.Entities, em)
	}
	for _, p := range snap.Projectiles {
		f.Projectiles = append(f.Projectiles, ProjectileMsg{ID: p.ID, Pos: vec(p.Pos), Shape: p.Shape.String()})
	}
	for _, ev := range events {
		f.Events = append(f.Events, EventMsg{
			Kind:     ev.Kind.String(),
			EntityID: ev.EntityID,
			ShotID:   ev.ShotID,
			Pos:      vec(ev.Pos),
			Score:    ev.Score,
		})
	}
	return f
}
