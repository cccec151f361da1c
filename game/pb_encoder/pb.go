// Package pb encodes game state as protobuf Struct messages.
package pb

import (
	"errors"

	"github.com/beka-birhanu/vinom-chase/game"
	"github.com/beka-birhanu/vinom-chase/maze"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

var _ game.Encoder = &Protobuf{}

// ErrMalformedState is returned when a payload lacks a required field.
var ErrMalformedState = errors.New("malformed game state")

type Protobuf struct{}

// MarshalState implements game.Encoder.
func (p *Protobuf) MarshalState(s game.State) ([]byte, error) {
	enemies := make([]any, len(s.Enemies))
	for i, e := range s.Enemies {
		enemies[i] = cellToMap(e)
	}

	st, err := structpb.NewStruct(map[string]any{
		"version": s.Version,
		"tick":    s.Tick,
		"size":    s.Size,
		"player":  cellToMap(s.Player),
		"goal":    cellToMap(s.Goal),
		"enemies": enemies,
		"hits":    s.Hits,
		"status":  string(s.Status),
	})
	if err != nil {
		return nil, err
	}
	return proto.Marshal(st)
}

// UnmarshalState implements game.Encoder.
func (p *Protobuf) UnmarshalState(b []byte) (game.State, error) {
	st := &structpb.Struct{}
	if err := proto.Unmarshal(b, st); err != nil {
		return game.State{}, err
	}

	fields := st.GetFields()
	for _, key := range []string{"version", "tick", "size", "player", "goal", "status"} {
		if _, ok := fields[key]; !ok {
			return game.State{}, ErrMalformedState
		}
	}

	state := game.State{
		Version: int64(fields["version"].GetNumberValue()),
		Tick:    int64(fields["tick"].GetNumberValue()),
		Size:    int(fields["size"].GetNumberValue()),
		Player:  cellFromValue(fields["player"]),
		Goal:    cellFromValue(fields["goal"]),
		Hits:    int(fields["hits"].GetNumberValue()),
		Status:  game.Status(fields["status"].GetStringValue()),
	}

	values := fields["enemies"].GetListValue().GetValues()
	state.Enemies = make([]maze.Cell, len(values))
	for i, v := range values {
		state.Enemies[i] = cellFromValue(v)
	}

	return state, nil
}

func cellToMap(c maze.Cell) map[string]any {
	return map[string]any{"row": c.Row, "col": c.Col}
}

func cellFromValue(v *structpb.Value) maze.Cell {
	f := v.GetStructValue().GetFields()
	return maze.Cell{
		Row: int(f["row"].GetNumberValue()),
		Col: int(f["col"].GetNumberValue()),
	}
}
