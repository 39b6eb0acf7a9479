// Package demo implements the randomized demo-mode value provider.
package demo

import (
	"hash/fnv"
	"math/rand"
	"sync"
	"time"

	"pulse/config"
	"pulse/internal/domain/service"

	"github.com/google/uuid"
)

type provider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewProvider creates a DemoProvider. A non-zero RandSeed in config makes the
// sequence reproducible, which demo scripts rely on.
func NewProvider(cfg *config.Config) service.DemoProvider {
	seed := cfg.Demo.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &provider{rng: rand.New(rand.NewSource(seed))}
}

// VisitorCount returns a mock live visitor total between 50 and 350.
func (p *provider) VisitorCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return 50 + p.rng.Intn(301)
}

// GenderSplit returns mock male/female percentages summing to 100, with the
// male share between 40 and 80.
func (p *provider) GenderSplit() (malePct, femalePct int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	malePct = 40 + p.rng.Intn(41)

	return malePct, 100 - malePct
}

// DistanceKm returns a mock candidate distance between 5 and 55 km.
func (p *provider) DistanceKm() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return 5 + p.rng.Float64()*50
}

// fillerPool is the fixed cast of demo guests. Venues pick a stable subset so
// repeated reads of the same venue show the same people.
var fillerPool = []service.FillerGuest{
	{UserID: uuid.MustParse("a1000000-0000-0000-0000-000000000001"), Name: "Elif", Age: 24, Gender: "female", Interests: []string{"techno", "cocktails"}, Profession: "Designer", University: "ITU"},
	{UserID: uuid.MustParse("a1000000-0000-0000-0000-000000000002"), Name: "Mert", Age: 27, Gender: "male", Interests: []string{"live music", "craft beer"}, Profession: "Engineer", University: "Bogazici"},
	{UserID: uuid.MustParse("a1000000-0000-0000-0000-000000000003"), Name: "Zeynep", Age: 25, Gender: "female", Interests: []string{"jazz", "wine"}, Profession: "Architect", University: "MSGSU"},
	{UserID: uuid.MustParse("a1000000-0000-0000-0000-000000000004"), Name: "Can", Age: 29, Gender: "male", Interests: []string{"house", "whiskey"}, Profession: "Product Manager", University: "Koc"},
	{UserID: uuid.MustParse("a1000000-0000-0000-0000-000000000005"), Name: "Selin", Age: 23, Gender: "female", Interests: []string{"pop", "dancing"}, Profession: "Student", University: "Bilgi"},
	{UserID: uuid.MustParse("a1000000-0000-0000-0000-000000000006"), Name: "Emre", Age: 26, Gender: "male", Interests: []string{"rock", "billiards"}, Profession: "Doctor", University: "Istanbul"},
	{UserID: uuid.MustParse("a1000000-0000-0000-0000-000000000007"), Name: "Deniz", Age: 28, Gender: "female", Interests: []string{"indie", "karaoke"}, Profession: "Lawyer", University: "Galatasaray"},
	{UserID: uuid.MustParse("a1000000-0000-0000-0000-000000000008"), Name: "Burak", Age: 30, Gender: "male", Interests: []string{"hip hop", "mixology"}, Profession: "Chef", University: "Yeditepe"},
}

// FillerGuests returns a stable venue-specific subset of the filler pool. The
// subset is derived from a hash of the venue ID, not the RNG, so it never
// changes between reads.
func (p *provider) FillerGuests(venueID uuid.UUID) []service.FillerGuest {
	h := fnv.New32a()
	h.Write(venueID[:])
	seed := h.Sum32()

	count := 3 + int(seed%3)
	start := int(seed/3) % len(fillerPool)

	guests := make([]service.FillerGuest, 0, count)
	for i := 0; i < count; i++ {
		guests = append(guests, fillerPool[(start+i)%len(fillerPool)])
	}

	return guests
}
