package rating

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
)

// postalCodeWidth is the width numeric postal codes are padded to before comparison.
const postalCodeWidth = 5

// NormalizePostalCode trims the code, drops the +4 extension of a ZIP+4 code and
// left-pads numeric codes to five digits so that range comparison is lexicographic
// on equal-length strings.
func NormalizePostalCode(code string) string {
	code = strings.TrimSpace(code)
	if base, ext, ok := strings.Cut(code, "-"); ok && len(base) == postalCodeWidth && isDigits(base) && isDigits(ext) {
		code = base
	}
	if code == "" || len(code) >= postalCodeWidth || !isDigits(code) {
		return code
	}
	return strings.Repeat("0", postalCodeWidth-len(code)) + code
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ResolveZone maps a destination postal code to its zone.
// Ranges are inclusive, sorted and disjoint by provider contract.
func ResolveZone(postalCode string, table *model.PostalZoneTable) (model.Zone, error) {
	code := NormalizePostalCode(postalCode)
	if table == nil || code == "" {
		return 0, fmt.Errorf("%w: %q", ErrZoneNotFound, postalCode)
	}

	ranges := table.Ranges
	i := sort.Search(len(ranges), func(i int) bool {
		return NormalizePostalCode(ranges[i].EndCode) >= code
	})
	if i < len(ranges) && NormalizePostalCode(ranges[i].StartCode) <= code {
		return ranges[i].Zone, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrZoneNotFound, postalCode)
}

// ResolveRemoteFlags returns the remote classification of a postal code.
// A code outside every remote range is not remote.
func ResolveRemoteFlags(postalCode string, table *model.RemoteAreaTable) model.RemoteFlags {
	code := NormalizePostalCode(postalCode)
	if table == nil || code == "" {
		return model.RemoteFlags{}
	}

	ranges := table.Ranges
	i := sort.Search(len(ranges), func(i int) bool {
		return NormalizePostalCode(ranges[i].EndCode) >= code
	})
	if i < len(ranges) && NormalizePostalCode(ranges[i].StartCode) <= code {
		r := ranges[i]
		return model.RemoteFlags{Type: r.Type, Commercial: r.Commercial, Residential: r.Residential}
	}
	return model.RemoteFlags{}
}
