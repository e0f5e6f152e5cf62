package mockapi

import (
	_ "embed"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"

	"storedash/internal/domain"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the fixture the mock backend starts from
type Seed struct {
	Categories []domain.Category `yaml:"categories"`
	Products   []domain.Product  `yaml:"products"`
	Orders     []domain.Order    `yaml:"orders"`
}

// DefaultSeed returns the embedded fixture
func DefaultSeed() (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(defaultSeed, &s); err != nil {
		return nil, fmt.Errorf("failed to parse embedded seed: %w", err)
	}
	return &s, nil
}

// ReadSeed parses a YAML fixture
func ReadSeed(r io.Reader) (*Seed, error) {
	var s Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	return &s, nil
}

// LoadSeed reads the fixture at path, or the embedded one when path is empty
func LoadSeed(path string) (*Seed, error) {
	if path == "" {
		return DefaultSeed()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed: %w", err)
	}
	defer f.Close()
	return ReadSeed(f)
}

var (
	adjectives = []string{"Classic", "Urban", "Rugged", "Slim", "Everyday", "Premium", "Travel", "Sport"}
	nouns      = []string{"Sneaker", "Backpack", "Watch", "Hoodie", "Tote", "Boot", "Jacket", "Wallet"}
	firstNames = []string{"Rahim", "Karim", "Nusrat", "Farhana", "Tanvir", "Sadia", "Arif", "Mim"}
	lastNames  = []string{"Uddin", "Hasan", "Akter", "Islam", "Chowdhury", "Rahman", "Sarkar"}
	cities     = []string{"Dhaka", "Chattogram", "Sylhet", "Khulna", "Rajshahi", "Barishal"}
)

// Grow appends generated products and orders so the lists are long enough
// to scroll. The output depends only on seed.
func (s *Seed) Grow(products, orders int, seed uint64) {
	if len(s.Categories) == 0 {
		s.Categories = append(s.Categories, domain.Category{
			ID: "cat-misc", Name: "Misc", Slug: "misc", Description: "Generated catalogue items",
		})
	}
	r := rand.New(rand.NewPCG(seed, seed^0x5eed))

	for i := 0; i < products; i++ {
		cat := s.Categories[r.IntN(len(s.Categories))]
		name := fmt.Sprintf("%s %s %d", adjectives[r.IntN(len(adjectives))], nouns[r.IntN(len(nouns))], i+1)
		p := domain.Product{
			ID:               fmt.Sprintf("gen-prod-%d", i+1),
			Name:             name,
			Brand:            "Generic",
			SKU:              fmt.Sprintf("GEN-%05d", i+1),
			Slug:             slugify(name),
			ShortDescription: "Generated product",
			Description:      "Generated product used to exercise long lists.",
			Category:         domain.CategoryRef{ID: cat.ID, Name: cat.Name},
			Price:            float64(200 + r.IntN(9800)),
			DiscountType:     domain.DiscountFixed,
			Stock:            r.IntN(60),
			TotalReviews:     r.IntN(200),
			IsNew:            r.IntN(5) == 0,
			IsSale:           r.IntN(6) == 0,
			Colors:           []string{"black"},
			Sizes:            []string{"M"},
		}
		if r.IntN(3) == 0 {
			p.DiscountType = domain.DiscountPercentage
			p.DiscountValue = float64(5 * (1 + r.IntN(6)))
		}
		s.Products = append(s.Products, p)
	}

	payments := []domain.PaymentMethod{domain.PaymentCOD, domain.PaymentOnline, domain.PaymentCard}
	for i := 0; i < orders; i++ {
		qty := 1 + r.IntN(4)
		o := domain.Order{
			ID:        fmt.Sprintf("gen-ord-%d", i+1),
			InvoiceID: fmt.Sprintf("INV-G%06d", i+1),
			Customer: domain.Customer{
				FullName: firstNames[r.IntN(len(firstNames))] + " " + lastNames[r.IntN(len(lastNames))],
				Phone:    fmt.Sprintf("01%d%08d", 3+r.IntN(7), r.IntN(100000000)),
				Address:  cities[r.IntN(len(cities))],
			},
			PaymentMethod: payments[r.IntN(len(payments))],
			Status:        domain.OrderStatuses[r.IntN(len(domain.OrderStatuses))],
			TotalAmount:   float64(qty * (300 + r.IntN(5000))),
		}
		if len(s.Products) > 0 {
			o.Items = []domain.OrderItem{{ProductID: s.Products[r.IntN(len(s.Products))].ID, Qty: qty}}
		}
		s.Orders = append(s.Orders, o)
	}
}
