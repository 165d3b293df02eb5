package words

import (
	"fmt"
	"math/rand"
)

// Difficulty is one of the three word tiers.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Points awarded per difficulty tier.
const (
	PointsEasy   = 10
	PointsMedium = 50
	PointsHard   = 100
)

// Word is an immutable drawing prompt with its tier and point value.
type Word struct {
	Text       string     `json:"text"`
	Difficulty Difficulty `json:"difficulty"`
	Points     int        `json:"points"`
}

var pointsByDifficulty = map[Difficulty]int{
	DifficultyEasy:   PointsEasy,
	DifficultyMedium: PointsMedium,
	DifficultyHard:   PointsHard,
}

// Bank holds the word lists the game draws from, one list per tier.
type Bank struct {
	byDifficulty map[Difficulty][]string
}

// NewBank builds a Bank from explicit tier lists. An empty tier is a
// configuration error; callers are expected to treat it as fatal at startup.
func NewBank(easy, medium, hard []string) (*Bank, error) {
	lists := map[Difficulty][]string{
		DifficultyEasy:   easy,
		DifficultyMedium: medium,
		DifficultyHard:   hard,
	}
	for tier, list := range lists {
		if len(list) == 0 {
			return nil, fmt.Errorf("word bank: %s tier is empty", tier)
		}
	}
	return &Bank{byDifficulty: lists}, nil
}

// DefaultBank returns a Bank with the stock word lists.
func DefaultBank() *Bank {
	b, err := NewBank(defaultEasy, defaultMedium, defaultHard)
	if err != nil {
		panic(err) // stock lists are non-empty
	}
	return b
}

// DrawThree picks one word per tier uniformly at random, in ascending
// difficulty order. Selections are independent across calls.
func (b *Bank) DrawThree() []Word {
	tiers := []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
	picked := make([]Word, 0, len(tiers))
	for _, tier := range tiers {
		list := b.byDifficulty[tier]
		picked = append(picked, Word{
			Text:       list[rand.Intn(len(list))],
			Difficulty: tier,
			Points:     pointsByDifficulty[tier],
		})
	}
	return picked
}

var defaultEasy = []string{
	"cat", "dog", "sun", "moon", "star", "tree", "house", "car", "boat", "fish",
	"bird", "ball", "book", "chair", "table", "door", "window", "flower", "apple", "banana",
	"hat", "shoe", "cup", "plate", "key", "watch", "phone", "lamp", "bed", "clock",
}

var defaultMedium = []string{
	"elephant", "butterfly", "mountain", "rainbow", "castle", "dragon", "guitar", "umbrella",
	"lighthouse", "volcano", "penguin", "kangaroo", "dinosaur", "astronaut", "telescope",
	"pyramid", "waterfall", "submarine", "helicopter", "campfire", "snowman",
	"surfboard", "skateboard", "basketball", "playground", "television", "refrigerator",
}

var defaultHard = []string{
	"architecture", "kaleidoscope", "metamorphosis", "photosynthesis", "constellation",
	"expedition", "silhouette", "equilibrium", "renaissance", "phenomenon",
	"infrastructure", "synchronization", "transparency", "biodiversity", "contemplation",
	"acceleration", "cryptocurrency", "deforestation", "globalization", "sustainability",
}
