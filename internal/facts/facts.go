// Package facts supplies the rotating hydration trivia used as notification
// body copy.
package facts

import "math/rand"

var hydrationFacts = []string{
	"Hydration can help improve concentration",
	"Water is crucial for transporting nutrients throughout the body",
	"Proper hydration can help reduce joint pain and stiffness",
	"Hydration is key for maintaining healthy skin and can help reduce the appearance of wrinkles",
	"Water plays a vital role in flushing toxins and waste products out of the body",
	"Water is crucial for regulating body temperature",
	"Hydration impacts everything from mood and energy levels to immune function and digestion",
	"Staying hydrated can reduce the risk of headaches and migraines",
	"Hydration supports the immune system, helping the body fight off illness and infection",
	"Drinking water throughout the day can help maintain energy levels and reduce fatigue",
	"Adequate water intake can help prevent muscle cramps during exercise",
}

// Random returns one hydration fact.
func Random() string {
	return hydrationFacts[rand.Intn(len(hydrationFacts))]
}
