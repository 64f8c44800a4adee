// Package identity derives record identifiers from the run's random source.
// IDs are UUID-shaped but drawn from the seeded stream, so a fixed seed
// reproduces the same identifiers across runs.
package identity

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Identifier lengths in hex characters.
const (
	customerIDLen = 8
	orderIDLen    = 12
	lineIDLen     = 12
)

// Generator produces identifiers from a random byte stream.
type Generator struct {
	r io.Reader
}

// NewGenerator creates a Generator reading randomness from r,
// typically a randx.Source.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{r: r}
}

// CustomerID returns a new 8-character customer identifier.
func (g *Generator) CustomerID() (string, error) {
	return g.next(customerIDLen)
}

// OrderID returns a new 12-character order identifier.
func (g *Generator) OrderID() (string, error) {
	return g.next(orderIDLen)
}

// LineID returns a new 12-character line-item identifier.
func (g *Generator) LineID() (string, error) {
	return g.next(lineIDLen)
}

// next draws one UUID from the stream and truncates its hex form.
func (g *Generator) next(n int) (string, error) {
	u, err := uuid.NewRandomFromReader(g.r)
	if err != nil {
		return "", fmt.Errorf("draw uuid: %w", err)
	}
	return hex.EncodeToString(u[:])[:n], nil
}
