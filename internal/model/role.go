package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is the closed set of user roles in the inventory system.
// Stored as an integer, serialized as its name.
type Role int

const (
	// RoleAdministrador has full access to the web admin and the mobile app,
	// including user management.
	RoleAdministrador Role = 1
	// RoleSupervisor leads field teams; full mobile access, no user management.
	RoleSupervisor Role = 2
	// RoleTecnicoForestal captures field data on the mobile app.
	RoleTecnicoForestal Role = 3
	// RoleConsultor has read-only access for queries and reports.
	RoleConsultor Role = 4
)

var roleNames = map[Role]string{
	RoleAdministrador:   "Administrador",
	RoleSupervisor:      "Supervisor",
	RoleTecnicoForestal: "TecnicoForestal",
	RoleConsultor:       "Consultor",
}

// ParseRole maps a role name to its Role value, case-insensitively.
// Unrecognized input fails closed.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if strings.EqualFold(s, name) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// MarshalJSON serializes the role by name so clients never see raw integers.
func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid role %d", int(r))
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON accepts a role name and fails closed on anything else.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
