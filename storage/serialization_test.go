package storage

import (
	"testing"

	"github.com/poiesic/firmdex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalCompany(t *testing.T) {
	tests := []struct {
		name    string
		company core.Company
	}{
		{
			"full record",
			core.Company{
				Name: "Acme Analytics", Industry: "Tech", Location: "Berlin",
				Revenue: 1_000_000, TeamSize: 12, Founded: 2015,
				Website: "https://acme.io", Description: "cloud analytics",
				Needs: "enterprise customers", Challenges: "scaling",
			},
		},
		{
			"unicode fields",
			core.Company{
				Name: "Bücher & Söhne", Industry: "出版", Location: "München",
				Revenue: 0, TeamSize: 1, Founded: 1800,
				Website: "https://bücher.de", Description: "Verlag",
				Needs: "neue Autoren", Challenges: "Digitalisierung",
			},
		},
		{
			"boundary numerics",
			core.Company{
				Name: "Edge", Industry: "x", Location: "y",
				Revenue: core.MaxRevenue, TeamSize: core.MaxTeamSize, Founded: core.MaxFoundedYear,
				Website: "z", Description: "d", Needs: "n", Challenges: "c",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalCompany(&tt.company)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalCompany(data)
			require.NoError(t, err)
			assert.Equal(t, tt.company, *decoded)
		})
	}
}

func TestUnmarshalCompanyInvalid(t *testing.T) {
	_, err := UnmarshalCompany([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalVector(t *testing.T) {
	tests := []struct {
		name   string
		vector []float32
	}{
		{"unit axis", []float32{1, 0}},
		{"negative components", []float32{-0.5, 0.25, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalVector(tt.vector)
			decoded, err := UnmarshalVector(data)
			require.NoError(t, err)
			assert.Equal(t, tt.vector, decoded)
		})
	}

	t.Run("empty", func(t *testing.T) {
		decoded, err := UnmarshalVector(MarshalVector(nil))
		require.NoError(t, err)
		assert.Empty(t, decoded)
	})
}

func TestMarshalUnmarshalMeta(t *testing.T) {
	meta := Meta{Dimension: 1536, Count: 42}
	decoded, err := UnmarshalMeta(MarshalMeta(meta))
	require.NoError(t, err)
	assert.Equal(t, meta, decoded)
}
