package netclient

import (
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-spades/internal/world"
)

// Wire team id for spectators.
const SpectatorTeamWire = 255

type EventType string

const (
	EventMapLoaded     EventType = "map_loaded"
	EventPlayerJoined  EventType = "player_joined"
	EventPlayerLeft    EventType = "player_left"
	EventPlayerState   EventType = "player_state"
	EventChat          EventType = "chat"
	EventServerMessage EventType = "server_message"
	EventKill          EventType = "kill"
)

type IntentType string

const (
	IntentHello        IntentType = "hello"
	IntentJoin         IntentType = "join"
	IntentTeamChange   IntentType = "team_change"
	IntentWeaponChange IntentType = "weapon_change"
	IntentChat         IntentType = "chat"
	IntentBye          IntentType = "bye"
)

// Envelope wraps every message on the bus.
type Envelope struct {
	Type     string          `json:"type"`
	ClientId string          `json:"client_id,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

// Event is a decoded server to client message.
type Event interface {
	Type() EventType
}

type TeamInfo struct {
	Name  string   `json:"name"`
	Color [3]uint8 `json:"color"`
}

type MapLoaded struct {
	Slots  int        `json:"slots"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Depth  int        `json:"depth"`
	Data   []byte     `json:"data"`
	Teams  []TeamInfo `json:"teams"`
}

type PlayerJoined struct {
	Slot   int              `json:"slot"`
	Name   string           `json:"name"`
	Team   int              `json:"team"`
	Weapon world.WeaponType `json:"weapon"`
	Local  bool             `json:"local"`
}

type PlayerLeft struct {
	Slot int `json:"slot"`
}

type PlayerState struct {
	Slot     int        `json:"slot"`
	Position world.Vec3 `json:"position"`
	Front    world.Vec3 `json:"front"`
	Velocity world.Vec3 `json:"velocity"`
	Alive    bool       `json:"alive"`
	Health   int        `json:"health"`
}

type Chat struct {
	Slot   int    `json:"slot"`
	Global bool   `json:"global"`
	Text   string `json:"text"`
}

type ServerMessage struct {
	Text string `json:"text"`
}

type Kill struct {
	Victim int `json:"victim"`
	Killer int `json:"killer"`
}

func (MapLoaded) Type() EventType     { return EventMapLoaded }
func (PlayerJoined) Type() EventType  { return EventPlayerJoined }
func (PlayerLeft) Type() EventType    { return EventPlayerLeft }
func (PlayerState) Type() EventType   { return EventPlayerState }
func (Chat) Type() EventType          { return EventChat }
func (ServerMessage) Type() EventType { return EventServerMessage }
func (Kill) Type() EventType          { return EventKill }

// Join asks the server to place the client on a team.
type Join struct {
	Team   int              `json:"team"`
	Weapon world.WeaponType `json:"weapon"`
	Name   string           `json:"name"`
	Score  int              `json:"score"`
}

type TeamChange struct {
	Team int `json:"team"`
}

type WeaponChange struct {
	Weapon world.WeaponType `json:"weapon"`
}

type ChatIntent struct {
	Global bool   `json:"global"`
	Text   string `json:"text"`
}

// DecodeEvent unpacks an envelope into its typed event.
func DecodeEvent(data []byte) (Event, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}

	var ev Event
	var err error
	switch EventType(env.Type) {
	case EventMapLoaded:
		ev, err = decodePayload[MapLoaded](env.Payload)
	case EventPlayerJoined:
		ev, err = decodePayload[PlayerJoined](env.Payload)
	case EventPlayerLeft:
		ev, err = decodePayload[PlayerLeft](env.Payload)
	case EventPlayerState:
		ev, err = decodePayload[PlayerState](env.Payload)
	case EventChat:
		ev, err = decodePayload[Chat](env.Payload)
	case EventServerMessage:
		ev, err = decodePayload[ServerMessage](env.Payload)
	case EventKill:
		ev, err = decodePayload[Kill](env.Payload)
	default:
		return nil, fmt.Errorf("%w: unknown event type %q", ErrMalformedEvent, env.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s payload: %w", ErrMalformedEvent, env.Type, err)
	}
	return ev, nil
}

// EncodeEvent packs an event into an envelope.
func EncodeEvent(ev Event) ([]byte, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshalling %s payload: %w", ev.Type(), err)
	}
	return json.Marshal(&Envelope{Type: string(ev.Type()), Payload: payload})
}

func decodePayload[T Event](raw json.RawMessage) (T, error) {
	var v T
	if len(raw) == 0 {
		return v, fmt.Errorf("missing payload")
	}
	err := json.Unmarshal(raw, &v)
	return v, err
}
