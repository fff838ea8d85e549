package catalog

import (
	"math/rand"
	"sync"

	"github.com/BuildMate/matgate/internal/model"
)

// StockGenerator produces advisory branch availability for catalog
// views. The random source is injected so deployments and tests can
// seed it for deterministic output.
type StockGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewStockGenerator(rng *rand.Rand) *StockGenerator {
	return &StockGenerator{rng: rng}
}

// NewSeededStockGenerator seeds the source explicitly; seed 0 means
// caller wants ambient entropy.
func NewSeededStockGenerator(seed int64) *StockGenerator {
	if seed == 0 {
		return NewStockGenerator(rand.New(rand.NewSource(rand.Int63())))
	}
	return NewStockGenerator(rand.New(rand.NewSource(seed)))
}

func (g *StockGenerator) For(p model.Product) model.StockInfo {
	g.mu.Lock()
	defer g.mu.Unlock()

	branches := 2 + g.rng.Intn(10)
	inStock := g.rng.Intn(100) < 92
	days := 1 + g.rng.Intn(3)
	if !inStock {
		days = 3 + g.rng.Intn(5)
	}
	// Bulk bags go on a flatbed, not the van.
	collect := inStock && p.UnitWeightKg < 100

	return model.StockInfo{
		InStock:         inStock,
		BranchCount:     branches,
		DeliveryDays:    days,
		ClickAndCollect: collect,
	}
}
