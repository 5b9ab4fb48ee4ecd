package model

import (
	"fmt"
	"strings"
)

// Zone is a numbered distance band between origin and destination.
type Zone int

const (
	// MinZone is the lowest rated zone.
	MinZone Zone = 2
	// MaxZone is the highest rated zone.
	MaxZone Zone = 8
)

// AllZones lists every rated zone in ascending order.
var AllZones = []Zone{2, 3, 4, 5, 6, 7, 8}

// Valid reports whether z is one of the rated zones.
func (z Zone) Valid() bool {
	return z >= MinZone && z <= MaxZone
}

// Key returns the column key used by provider documents ("2".."8").
func (z Zone) Key() string {
	return fmt.Sprintf("%d", int(z))
}

// ParseZone accepts "5", "Zone5", "zone 5" and similar spellings.
func ParseZone(s string) (Zone, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSpace(strings.TrimPrefix(s, "zone"))
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, fmt.Errorf("invalid zone %q", s)
	}
	z := Zone(n)
	if !z.Valid() {
		return 0, fmt.Errorf("zone %d out of range %d-%d", n, MinZone, MaxZone)
	}
	return z, nil
}

// ZoneRange maps an inclusive postal code range to a zone.
type ZoneRange struct {
	StartCode string
	EndCode   string
	Zone      Zone
}

// PostalZoneTable holds the receiver zone ranges for one origin.
// Ranges are sorted by StartCode and disjoint.
type PostalZoneTable struct {
	Origin string
	Ranges []ZoneRange
}

// RemoteType classifies a remote delivery area.
type RemoteType string

const (
	RemoteNone   RemoteType = ""
	RemoteDAS    RemoteType = "DAS"
	RemoteDASExt RemoteType = "DAS_EXT"
	RemoteRemote RemoteType = "DAS_REMOTE"
	RemoteAlaska RemoteType = "DAS_ALASKA"
	RemoteHawaii RemoteType = "DAS_HAWAII"
)

// ParseRemoteType maps provider column names such as "DAS_Remote" to a RemoteType.
func ParseRemoteType(s string) RemoteType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DAS":
		return RemoteDAS
	case "DAS_EXT", "DAS_EXTENDED":
		return RemoteDASExt
	case "DAS_REMOTE":
		return RemoteRemote
	case "DAS_ALASKA":
		return RemoteAlaska
	case "DAS_HAWAII":
		return RemoteHawaii
	default:
		return RemoteNone
	}
}

// RemoteRange flags an inclusive postal code range as a remote area.
type RemoteRange struct {
	StartCode   string
	EndCode     string
	Type        RemoteType
	Commercial  bool
	Residential bool
}

// RemoteAreaTable holds the remote/DAS ranges. Ranges are sorted and disjoint.
type RemoteAreaTable struct {
	Ranges []RemoteRange
}

// RemoteFlags is the remote classification of a destination.
type RemoteFlags struct {
	Type        RemoteType
	Commercial  bool
	Residential bool
}

// IsRemote reports whether the destination is in any remote area.
func (f RemoteFlags) IsRemote() bool {
	return f.Type != RemoteNone
}

// Extended reports whether the destination is in an extended or remote-tier area.
func (f RemoteFlags) Extended() bool {
	return f.Type == RemoteDASExt || f.Type == RemoteRemote
}
