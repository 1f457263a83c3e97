package usecase

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderNumberGenerator produces human readable, URL-safe order numbers of the
// form PREFIX-YYYYMMDDHHMMSS-XXXXXXXX. Uniqueness is finally enforced by the
// database; callers retry on conflict.
type OrderNumberGenerator struct {
	prefix string
	random func() uuid.UUID
}

// NewOrderNumberGenerator constructs a generator for prefix.
func NewOrderNumberGenerator(prefix string) *OrderNumberGenerator {
	return &OrderNumberGenerator{prefix: prefix, random: uuid.New}
}

// Next returns a number for an order placed at t.
func (g *OrderNumberGenerator) Next(t time.Time) string {
	id := g.random()
	suffix := strings.ToUpper(hex.EncodeToString(id[:4]))
	return fmt.Sprintf("%s-%s-%s", g.prefix, t.UTC().Format("20060102150405"), suffix)
}
