package application

import (
	"fmt"
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCategories(t *testing.T) {
	s := NewBootstrapService(rand.New(rand.NewSource(42)), 90)

	categories := s.GenerateCategories(15)
	require.Len(t, categories, 15)

	for i, cat := range categories {
		assert.Equal(t, fmt.Sprintf("cat_%03d", i), cat.CategoryID)
		assert.NotEmpty(t, cat.Name)
		require.GreaterOrEqual(t, len(cat.Subcategories), 3)
		require.LessOrEqual(t, len(cat.Subcategories), 5)

		for j, sub := range cat.Subcategories {
			assert.Equal(t, fmt.Sprintf("sub_%03d_%02d", i, j), sub.SubcategoryID)
			assert.GreaterOrEqual(t, sub.ProfitMargin, 0.1)
			assert.LessOrEqual(t, sub.ProfitMargin, 0.4)
		}
	}
}

func TestGenerateProducts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := NewBootstrapService(rng, 90)
	categories := s.GenerateCategories(5)

	products := s.GenerateProducts(200, categories)
	require.Len(t, products, 200)

	categoryIDs := map[string]bool{}
	for _, cat := range categories {
		categoryIDs[cat.CategoryID] = true
	}

	idPattern := regexp.MustCompile(`^prod_\d{5}$`)
	activeCount := 0
	for i, p := range products {
		assert.Equal(t, fmt.Sprintf("prod_%05d", i), p.ProductID)
		assert.True(t, idPattern.MatchString(p.ProductID))
		assert.True(t, categoryIDs[p.CategoryID], "product must reference a generated category")
		assert.NotEmpty(t, p.Name)
		assert.GreaterOrEqual(t, p.CurrentStock, 10)
		assert.LessOrEqual(t, p.CurrentStock, 500)
		if p.IsActive {
			activeCount++
		}

		require.NotEmpty(t, p.PriceHistory)
		assert.LessOrEqual(t, len(p.PriceHistory), 3, "at most two price changes after the initial price")
		for j := 1; j < len(p.PriceHistory); j++ {
			assert.False(t, p.PriceHistory[j].Date.Before(p.PriceHistory[j-1].Date), "price history must be date-ordered")
		}
		assert.Equal(t, p.PriceHistory[len(p.PriceHistory)-1].Price, p.BasePrice, "current price is the latest history entry")
		assert.Equal(t, p.PriceHistory[0].Date, p.CreationDate)
		for _, pp := range p.PriceHistory {
			assert.Positive(t, pp.Price)
		}
	}

	assert.Greater(t, activeCount, 150, "about 95%% of products should be active")
}

func TestGenerateUsers(t *testing.T) {
	s := NewBootstrapService(rand.New(rand.NewSource(42)), 90)

	users := s.GenerateUsers(100)
	require.Len(t, users, 100)

	horizon := s.now.AddDate(0, 0, -90)
	for i, u := range users {
		assert.Equal(t, fmt.Sprintf("user_%06d", i), u.UserID)
		assert.NotEmpty(t, u.Geo.City)
		assert.Len(t, u.Geo.State, 2)
		assert.Len(t, u.Geo.Country, 2)
		assert.False(t, u.RegistrationDate.After(horizon), "users register before the generation timespan")
		assert.False(t, u.LastActive.Before(u.RegistrationDate))
		assert.False(t, u.LastActive.After(s.now))
	}
}

func TestBootstrap_SeedDeterminism(t *testing.T) {
	a := NewBootstrapService(rand.New(rand.NewSource(7)), 90)
	b := NewBootstrapService(rand.New(rand.NewSource(7)), 90)

	productsA := a.GenerateProducts(50, a.GenerateCategories(3))
	productsB := b.GenerateProducts(50, b.GenerateCategories(3))

	require.Len(t, productsB, len(productsA))
	for i := range productsA {
		assert.Equal(t, productsA[i].Name, productsB[i].Name)
		assert.Equal(t, productsA[i].CategoryID, productsB[i].CategoryID)
		assert.Equal(t, productsA[i].BasePrice, productsB[i].BasePrice)
		assert.Equal(t, productsA[i].CurrentStock, productsB[i].CurrentStock)
		assert.Equal(t, productsA[i].IsActive, productsB[i].IsActive)
	}
}

func TestBootstrap_UserDeterminism(t *testing.T) {
	a := NewBootstrapService(rand.New(rand.NewSource(7)), 90)
	b := NewBootstrapService(rand.New(rand.NewSource(7)), 90)

	usersA := a.GenerateUsers(50)
	usersB := b.GenerateUsers(50)

	require.Len(t, usersB, len(usersA))
	for i := range usersA {
		assert.Equal(t, usersA[i].Geo, usersB[i].Geo, "fake geo data must follow the seeded rng")
	}
}
