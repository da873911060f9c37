package values

import (
	"fmt"

	"github.com/google/uuid"
)

// InstallID uniquely identifies one installation of a plug-in.
// A re-install of the same plug-in gets a new ID.
type InstallID struct {
	value uuid.UUID
}

// NewInstallID creates a new random install ID
func NewInstallID() InstallID {
	return InstallID{value: uuid.New()}
}

// ParseInstallID parses a string into an InstallID
func ParseInstallID(s string) (InstallID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return InstallID{}, fmt.Errorf("invalid install ID: %w", err)
	}
	return InstallID{value: id}, nil
}

// String returns the string representation
func (i InstallID) String() string {
	return i.value.String()
}

// IsZero returns true if this is the zero value
func (i InstallID) IsZero() bool {
	return i.value == uuid.Nil
}

// Equals checks if two InstallIDs are equal
func (i InstallID) Equals(other InstallID) bool {
	return i.value == other.value
}

// MarshalText implements encoding.TextMarshaler so IDs round-trip through
// both JSON and YAML manifests.
func (i InstallID) MarshalText() ([]byte, error) {
	return []byte(i.value.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (i *InstallID) UnmarshalText(data []byte) error {
	id, err := ParseInstallID(string(data))
	if err != nil {
		return err
	}
	*i = id
	return nil
}
