package model

import "fmt"

// Op names the remote action behind a state transition.
type Op byte

const (
	LOAD Op = iota
	CREATE
	UPDATE
	DELETE
)

// String returns the HTTP verb label used in diagnostic log lines ("Post Error: ...").
func (o Op) String() string {
	switch o {
	case LOAD:
		return "Get"
	case CREATE:
		return "Post"
	case UPDATE:
		return "Put"
	case DELETE:
		return "Delete"
	}
	return "Unknown"
}

// Record is a server-side entity. Identity is ID, which the server assigns.
type Record struct {
	ID    int    `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// Draft is the unsaved edit buffer bound to the form fields.
type Draft struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// IsZero reports whether both fields are empty.
func (d Draft) IsZero() bool {
	return d.Name == "" && d.Email == ""
}

type Mode byte

const (
	Creating Mode = iota
	Updating
)

func (m Mode) String() string {
	if m == Updating {
		return "updating"
	}
	return "creating"
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "updating":
		*m = Updating
	case "creating", "":
		*m = Creating
	default:
		return fmt.Errorf("unknown mode %q", text)
	}
	return nil
}

// SubmitLabel is the caption of the form's submit button for the given mode.
func SubmitLabel(m Mode) string {
	if m == Updating {
		return "Update Post"
	}
	return "Add Post"
}

// State is a point-in-time copy of the manager state. CurrentID is set iff Mode is Updating.
type State struct {
	Records   []Record `json:"records"`
	Draft     Draft    `json:"draft"`
	Mode      Mode     `json:"mode"`
	CurrentID *int     `json:"currentId"`
}

// Find returns the first record carrying id.
func (s State) Find(id int) (Record, bool) {
	for _, r := range s.Records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}
