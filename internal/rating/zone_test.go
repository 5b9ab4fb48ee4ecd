package rating

import (
	"testing"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePostalCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"30301", "30301"},
		{" 501 ", "00501"},
		{"7", "00007"},
		{"K1A", "K1A"},
		{"30301-1234", "30301"},
		{" 30399-0001 ", "30399"},
		{"3039-1234", "3039-1234"},
		{"30301-12A4", "30301-12A4"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePostalCode(tt.in))
		})
	}
}

// TestResolveZone tests range lookup including both inclusive edges.
func TestResolveZone(t *testing.T) {
	table := testZoneTable()
	table.Ranges = append(table.Ranges[:2:2],
		model.ZoneRange{StartCode: "45000", EndCode: "69999", Zone: 6},
		model.ZoneRange{StartCode: "70000", EndCode: "99999", Zone: 2},
	)

	tests := []struct {
		name    string
		code    string
		want    model.Zone
		wantErr bool
	}{
		{name: "first code of first range", code: "00501", want: 8},
		{name: "short code is padded", code: "501", want: 8},
		{name: "last code of a range", code: "19999", want: 8},
		{name: "first code of next range", code: "20000", want: 4},
		{name: "middle of range", code: "30301", want: 4},
		{name: "zip+4 at range end", code: "39999-1234", want: 4},
		{name: "zip+4 at range start", code: "20000-0001", want: 4},
		{name: "last code of table", code: "99999", want: 2},
		{name: "below first range", code: "00100", wantErr: true},
		{name: "gap between ranges", code: "42000", wantErr: true},
		{name: "empty code", code: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zone, err := ResolveZone(tt.code, table)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrZoneNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, zone)
		})
	}
}

func TestResolveZone_NilTable(t *testing.T) {
	_, err := ResolveZone("30301", nil)
	assert.ErrorIs(t, err, ErrZoneNotFound)
}

func TestResolveRemoteFlags(t *testing.T) {
	table := testRemoteTable()

	tests := []struct {
		name string
		code string
		want model.RemoteFlags
	}{
		{
			name: "DAS range",
			code: "30305",
			want: model.RemoteFlags{Type: model.RemoteDAS, Commercial: true, Residential: true},
		},
		{
			name: "extended range, commercial only",
			code: "30319",
			want: model.RemoteFlags{Type: model.RemoteDASExt, Commercial: true},
		},
		{
			name: "zip+4 at end of extended range",
			code: "30319-9999",
			want: model.RemoteFlags{Type: model.RemoteDASExt, Commercial: true},
		},
		{
			name: "outside every range",
			code: "30320",
			want: model.RemoteFlags{},
		},
		{
			name: "alaska",
			code: "99501",
			want: model.RemoteFlags{Type: model.RemoteAlaska, Commercial: true, Residential: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRemoteFlags(tt.code, table))
		})
	}

	assert.Equal(t, model.RemoteFlags{}, ResolveRemoteFlags("30305", nil))
}
