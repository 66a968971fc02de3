// Package illustration picks the placeholder character art returned with a book.
package illustration

import (
	"math/rand"

	"github.com/adventuresof/adventuresof/backend/go-services/pkg/logger"
)

var placeholders = []string{
	"https://placehold.co/600x600/fef3c7/92400e?text=Adventure+Begins",
	"https://placehold.co/600x600/fde68a/78350f?text=Magic+Journey",
	"https://placehold.co/600x600/fef3c7/92400e?text=Dino+World",
	"https://placehold.co/600x600/fde68a/78350f?text=Space+Explorer",
	"https://placehold.co/600x600/fef3c7/92400e?text=Dragon+Tale",
}

// Pool returns a copy of the placeholder URLs in their fixed order.
func Pool() []string {
	out := make([]string, len(placeholders))
	copy(out, placeholders)
	return out
}

// Selector draws uniformly from the placeholder pool.
type Selector struct {
	pool []string
	intn func(n int) int
}

func NewSelector() *Selector {
	return &Selector{pool: Pool(), intn: rand.Intn}
}

// Pick returns one placeholder URL. Name and age are only logged; the art is
// not personalized.
func (s *Selector) Pick(childName string, childAge int) string {
	url := s.pool[s.intn(len(s.pool))]
	logger.Debugf("illustration: placeholder for %s (age %d): %s", childName, childAge, url)
	return url
}
