package llm

// ThemeCategory is one weighted bucket of drawing themes for an age group.
// Weights are hand-tuned; Fallback is served verbatim when the generation
// call fails.
type ThemeCategory struct {
	Name     string
	Weight   int
	Themes   []string
	Fallback string
}

var themeTables = map[string][]ThemeCategory{
	"preschoolers": {
		{
			Name:   "animals",
			Weight: 35,
			Themes: []string{
				"a happy puppy", "a cat taking a nap", "a duck in a puddle",
				"a big friendly elephant", "a bunny eating a carrot",
			},
			Fallback: "Draw a happy puppy wagging its tail!",
		},
		{
			Name:   "nature",
			Weight: 25,
			Themes: []string{
				"a smiling sun", "a rainbow after rain", "a big tree with apples",
				"flowers in the garden",
			},
			Fallback: "Draw a big smiling sun in the sky!",
		},
		{
			Name:   "family",
			Weight: 20,
			Themes: []string{
				"my family at dinner", "a hug with grandma", "playing with my best friend",
			},
			Fallback: "Draw your family doing something fun together!",
		},
		{
			Name:   "vehicles",
			Weight: 20,
			Themes: []string{
				"a red fire truck", "a train going choo choo", "a boat on the water",
			},
			Fallback: "Draw a big red fire truck!",
		},
	},
	"kids": {
		{
			Name:   "animals",
			Weight: 25,
			Themes: []string{
				"an octopus playing instruments", "a penguin on a skateboard",
				"a fox in a forest", "a dragonfly over a pond",
			},
			Fallback: "Draw an octopus playing four instruments at once!",
		},
		{
			Name:   "adventure",
			Weight: 25,
			Themes: []string{
				"a treasure map island", "exploring a cave with a flashlight",
				"a tree house with a secret door", "sailing a pirate ship",
			},
			Fallback: "Draw a tree house with a secret door!",
		},
		{
			Name:   "space",
			Weight: 20,
			Themes: []string{
				"an astronaut walking a space dog", "a friendly alien picnic",
				"a rocket shaped like an animal",
			},
			Fallback: "Draw an astronaut walking a space dog on the moon!",
		},
		{
			Name:   "fantasy",
			Weight: 20,
			Themes: []string{
				"a dragon who bakes cookies", "a castle made of candy",
				"a wizard's messy workshop",
			},
			Fallback: "Draw a dragon baking a giant batch of cookies!",
		},
		{
			Name:   "sports",
			Weight: 10,
			Themes: []string{
				"a soccer game on the moon", "animals running a race",
			},
			Fallback: "Draw animals competing in a super silly race!",
		},
	},
	"tweens": {
		{
			Name:   "imaginative",
			Weight: 30,
			Themes: []string{
				"a city where it rains color", "your room in the year 3000",
				"a door to anywhere", "the inside of a song",
			},
			Fallback: "Draw a city where it rains color instead of water.",
		},
		{
			Name:   "character",
			Weight: 25,
			Themes: []string{
				"a superhero with an unusual power", "your own comic villain",
				"a robot with feelings", "an inventor and their invention",
			},
			Fallback: "Design a superhero whose power is something totally unexpected.",
		},
		{
			Name:   "scenes",
			Weight: 25,
			Themes: []string{
				"a market on another planet", "an underwater library",
				"a concert in the forest",
			},
			Fallback: "Draw an underwater library and who visits it.",
		},
		{
			Name:   "perspective",
			Weight: 20,
			Themes: []string{
				"the world from an ant's view", "looking down from a rooftop",
				"a reflection that doesn't match",
			},
			Fallback: "Draw the world the way an ant sees it.",
		},
	},
}

// defaultDifficulty per age group, used when the model omits one.
var defaultDifficulty = map[string]string{
	"preschoolers": "easy",
	"kids":         "medium",
	"tweens":       "hard",
}

// Categories returns the theme table for the age group, nil when unknown.
func Categories(ageGroup string) []ThemeCategory {
	return themeTables[ageGroup]
}
