package canon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Notre Équipe", "notre equipe"},
		{"  Ce qui nous   DIFFÉRENCIE ", "ce qui nous differencie"},
		{"Gérante", "gerante"},
		{"", ""},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			require.Equal(t, test.expected, Fold(test.in))
		})
	}
}

func TestFoldWords(t *testing.T) {
	require.Equal(t, "l equipe cote sud", FoldWords("L'équipe, Côte-Sud !"))
}

func TestContainsAny(t *testing.T) {
	assert := require.New(t)
	assert.True(ContainsAny("Découvrez NOTRE ÉQUIPE", "equipe"))
	assert.True(ContainsAny("Our team", "équipe", "team"))
	assert.False(ContainsAny("Nos biens", "equipe", "team"))
	assert.False(ContainsAny("anything", ""))
}

func TestCountDistinct(t *testing.T) {
	require.Equal(t, 2, CountDistinct("Tél : 06 12, Email : a@b.fr", []string{"tel", "email", "agent"}))
}

func TestDigits(t *testing.T) {
	require.Equal(t, "1250000", Digits("1 250 000 €"))
	require.Equal(t, "", Digits("Nous consulter"))
}

func TestGroupThousands(t *testing.T) {
	tests := map[int]string{
		0:        "0",
		950:      "950",
		1000:     "1 000",
		1250000:  "1 250 000",
		-45000:   "-45 000",
		12345678: "12 345 678",
	}
	for in, expected := range tests {
		require.Equal(t, expected, GroupThousands(in))
	}
}
