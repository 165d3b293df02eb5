package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBankRejectsEmptyTier(t *testing.T) {
	testCases := []struct {
		desc               string
		easy, medium, hard []string
	}{
		{desc: "empty easy", easy: nil, medium: []string{"m"}, hard: []string{"h"}},
		{desc: "empty medium", easy: []string{"e"}, medium: nil, hard: []string{"h"}},
		{desc: "empty hard", easy: []string{"e"}, medium: []string{"m"}, hard: nil},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			b, err := NewBank(tc.easy, tc.medium, tc.hard)
			assert.Error(t, err)
			assert.Nil(t, b)
		})
	}
}

func TestDrawThreeTierOrderAndPoints(t *testing.T) {
	b := DefaultBank()

	picked := b.DrawThree()

	require.Len(t, picked, 3)
	assert.Equal(t, DifficultyEasy, picked[0].Difficulty)
	assert.Equal(t, DifficultyMedium, picked[1].Difficulty)
	assert.Equal(t, DifficultyHard, picked[2].Difficulty)
	assert.Equal(t, PointsEasy, picked[0].Points)
	assert.Equal(t, PointsMedium, picked[1].Points)
	assert.Equal(t, PointsHard, picked[2].Points)
	for _, w := range picked {
		assert.NotEmpty(t, w.Text)
	}
}

func TestDrawThreeSingleWordTiers(t *testing.T) {
	b, err := NewBank([]string{"cat"}, []string{"castle"}, []string{"silhouette"})
	require.NoError(t, err)

	picked := b.DrawThree()

	require.Len(t, picked, 3)
	assert.Equal(t, "cat", picked[0].Text)
	assert.Equal(t, "castle", picked[1].Text)
	assert.Equal(t, "silhouette", picked[2].Text)
}

func TestDrawThreeVariesAcrossCalls(t *testing.T) {
	b := DefaultBank()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		seen[b.DrawThree()[0].Text] = true
	}

	// Thirty easy words make twenty identical draws astronomically unlikely.
	assert.Greater(t, len(seen), 1)
}
