package generator

import (
	"github.com/shopspring/decimal"

	"github.com/SuvarinA/MarketDataSimulator/pkg/models"
)

// Price floor: a perturbed price is clamped here instead of ever going
// non-positive. Volume is clamped at 1 the same way.
var priceFloor = decimal.New(1, -2) // 0.01

const (
	// price moves by uniform draw in [-0.5, 0.5) scaled down by 0.1
	priceDeltaSpan  = 1.0
	priceDeltaScale = 0.1

	// volume moves by uniform integer draw in [1, 100]; the range is
	// strictly positive, so volume only ever grows over a generator's
	// lifetime (observed behavior of the original model, kept as-is)
	volumeDeltaMax = 100
	volumeMin      = 1
)

// TickGenerator evolves a per-symbol random walk and emits one Tick per
// call. State is owned by a single caller (the simulation driver);
// Next is not safe for concurrent use on the same instance.
type TickGenerator struct {
	symbol string
	price  decimal.Decimal
	volume int64
	seq    int64

	priceRand  Rand
	volumeRand Rand
	clock      Clock
}

// NewTickGenerator builds a generator starting at the given price and
// volume. Callers are expected to pass startPrice > 0 and
// startVolume >= 1; out-of-range values are clamped to the same floors
// Next enforces.
func NewTickGenerator(symbol string, startPrice decimal.Decimal, startVolume int64, priceRand, volumeRand Rand, clock Clock) *TickGenerator {
	if startPrice.LessThan(priceFloor) {
		startPrice = priceFloor
	}
	if startVolume < volumeMin {
		startVolume = volumeMin
	}
	return &TickGenerator{
		symbol:     symbol,
		price:      startPrice,
		volume:     startVolume,
		priceRand:  priceRand,
		volumeRand: volumeRand,
		clock:      clock,
	}
}

func (g *TickGenerator) Symbol() string {
	return g.symbol
}

// Next advances the random walk and returns the resulting tick.
// It always succeeds.
func (g *TickGenerator) Next() models.Tick {
	delta := (g.priceRand.Float64() - 0.5) * priceDeltaSpan * priceDeltaScale
	g.price = g.price.Add(decimal.NewFromFloat(delta))
	if g.price.LessThan(priceFloor) {
		g.price = priceFloor
	}

	g.volume += int64(g.volumeRand.Intn(volumeDeltaMax)) + 1
	if g.volume < volumeMin {
		g.volume = volumeMin
	}

	g.seq++

	return models.Tick{
		Timestamp: g.clock.Now(),
		Symbol:    g.symbol,
		Price:     g.price,
		Volume:    g.volume,
		SeqID:     g.seq,
	}
}
