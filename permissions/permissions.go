package permissions

import "github.com/pkg/errors"

// Action is the closed set of operation kinds a permission entry can grant.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionList   Action = "list"
	ActionDelete Action = "delete"
	ActionExport Action = "export"
)

var (
	ErrNotFound      = errors.New("permission entry not found")
	ErrUnknownAction = errors.New("unknown action")
)

// Entry ties a role and a resource to the set of actions the role may
// perform on it. At most one entry exists per (role, resource) pair; absence
// means no access to any action.
type Entry struct {
	RoleID     string `json:"role_id"`
	ResourceID string `json:"resource_id"`
	Create     bool   `json:"create"`
	Update     bool   `json:"update"`
	List       bool   `json:"list"`
	Delete     bool   `json:"delete"`
	Export     bool   `json:"export"`
}

// actionFlags maps each action to the entry field that grants it. Keeping
// the dispatch in a table means an action outside the enumeration is the only
// way to reach ErrUnknownAction.
var actionFlags = map[Action]func(Entry) bool{
	ActionCreate: func(e Entry) bool { return e.Create },
	ActionUpdate: func(e Entry) bool { return e.Update },
	ActionList:   func(e Entry) bool { return e.List },
	ActionDelete: func(e Entry) bool { return e.Delete },
	ActionExport: func(e Entry) bool { return e.Export },
}

// Allows reports whether the entry grants the named action.
// ErrUnknownAction signals a misconfigured caller, not a permission denial.
func (e Entry) Allows(action Action) (bool, error) {
	flag, ok := actionFlags[action]
	if !ok {
		return false, ErrUnknownAction
	}
	return flag(e), nil
}

// ParseAction converts an external action name into the enumeration.
func ParseAction(name string) (Action, error) {
	action := Action(name)
	if _, ok := actionFlags[action]; !ok {
		return "", ErrUnknownAction
	}
	return action, nil
}
