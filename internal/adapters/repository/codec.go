package repository

import (
	"encoding/json"
	"fmt"

	"github.com/okian/swigup/internal/domain/profile"
)

// formatVersion is written into every envelope. Bump it and add a decode
// branch when the profile layout changes.
const formatVersion = 1

// envelope wraps the stored profile with an explicit format version.
type envelope struct {
	Version int             `json:"version"`
	Profile json.RawMessage `json:"profile"`
}

func encodeProfile(p profile.Profile) ([]byte, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	out, err := json.Marshal(envelope{Version: formatVersion, Profile: body})
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}
	return out, nil
}

// decodeProfile returns ErrStorageCorruption for anything that is not a
// valid current-version envelope holding a valid profile.
func decodeProfile(raw []byte) (profile.Profile, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return profile.Profile{}, fmt.Errorf("%w: %v", ErrStorageCorruption, err)
	}
	if env.Version != formatVersion {
		return profile.Profile{}, fmt.Errorf("%w: %w %d", ErrStorageCorruption, ErrUnsupportedFormat, env.Version)
	}

	var p profile.Profile
	if err := json.Unmarshal(env.Profile, &p); err != nil {
		return profile.Profile{}, fmt.Errorf("%w: %v", ErrStorageCorruption, err)
	}
	if err := p.Validate(); err != nil {
		return profile.Profile{}, fmt.Errorf("%w: %v", ErrStorageCorruption, err)
	}
	return p, nil
}
