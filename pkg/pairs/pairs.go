// Package pairs enumerates candidate argument pairs within a sentence.
package pairs

import "github.com/soundprediction/relex/pkg/types"

// Pair is an ordered candidate: Arg1 is queried first, Arg2 second.
type Pair struct {
	Arg1 types.ArgumentMention
	Arg2 types.ArgumentMention
}

// Generate produces the ordered candidate pairs for the mentions of one
// sentence, given in document order.
//
// With bothDirections false, each unordered pair appears exactly once, with
// the earlier mention queried first: (args[i], args[j]) for every i < j. A
// relation holding in the opposite order is then represented by an inverted
// label rather than a second candidate.
//
// With bothDirections true, every unordered pair appears twice, once in each
// order: (args[i], args[j]) for every i != j.
//
// The choice is a process-wide policy fixed for a whole run; it determines how
// direction is encoded throughout the training data.
func Generate(args []types.ArgumentMention, bothDirections bool) []Pair {
	var candidates []Pair
	for i := 0; i < len(args); i++ {
		jStart := i + 1
		if bothDirections {
			jStart = 0
		}
		for j := jStart; j < len(args); j++ {
			if i == j {
				continue
			}
			candidates = append(candidates, Pair{Arg1: args[i], Arg2: args[j]})
		}
	}
	return candidates
}
