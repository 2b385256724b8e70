package engine

import "encoding/json"

// State is the single authoritative behavioral state of a session.
type State int

const (
	Focused State = iota
	Confused
	ProctorAlert
)

var stateNames = map[State]string{
	Focused:      "FOCUSED",
	Confused:     "CONFUSED",
	ProctorAlert: "PROCTOR_ALERT",
}

var stateFromName = map[string]State{
	"FOCUSED":       Focused,
	"CONFUSED":      Confused,
	"PROCTOR_ALERT": ProctorAlert,
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "FOCUSED"
}

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *State) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	if v, ok := stateFromName[name]; ok {
		*s = v
	}
	return nil
}
