// Package application bootstraps the frozen catalog: categories, products
// and users are independent random records generated before any session
// runs, and never mutated afterwards except product stock through the
// inventory ledger.
package application

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/wyfcoding/ecomsynth/internal/catalog/domain"
	"github.com/wyfcoding/ecomsynth/pkg/utils"
)

// BootstrapService generates the base dataset. Names and geo data come from
// gofakeit driven by the injected rng, so equal seeds yield equal catalogs.
type BootstrapService struct {
	rng          *rand.Rand
	faker        *gofakeit.Faker
	timespanDays int
	now          time.Time
}

func NewBootstrapService(rng *rand.Rand, timespanDays int) *BootstrapService {
	return &BootstrapService{
		rng:          rng,
		faker:        gofakeit.NewFaker(rng, false),
		timespanDays: timespanDays,
		now:          time.Now(),
	}
}

// GenerateCategories builds n categories, each with 3 to 5 subcategories.
func (s *BootstrapService) GenerateCategories(n int) []*domain.Category {
	categories := make([]*domain.Category, 0, n)
	for catID := 0; catID < n; catID++ {
		category := &domain.Category{
			CategoryID: fmt.Sprintf("cat_%03d", catID),
			Name:       s.faker.Company(),
		}

		subCount := utils.RandInt(s.rng, 3, 5)
		for subID := 0; subID < subCount; subID++ {
			category.Subcategories = append(category.Subcategories, domain.Subcategory{
				SubcategoryID: fmt.Sprintf("sub_%03d_%02d", catID, subID),
				Name:          s.faker.BS(),
				ProfitMargin:  utils.Round2(utils.RandFloat(s.rng, 0.1, 0.4)),
			})
		}

		categories = append(categories, category)
	}
	return categories
}

// GenerateProducts builds n products referencing the given categories. Each
// product carries a date-ordered price history with up to two changes; the
// current price is the latest history entry.
func (s *BootstrapService) GenerateProducts(n int, categories []*domain.Category) []*domain.Product {
	creationStart := s.now.AddDate(0, 0, -s.timespanDays*2)
	creationEnd := creationStart.AddDate(0, 0, s.timespanDays/3)

	products := make([]*domain.Product, 0, n)
	for prodID := 0; prodID < n; prodID++ {
		category := utils.RandChoice(s.rng, categories)

		basePrice := utils.Round2(utils.RandFloat(s.rng, 5, 500))
		initialDate := utils.RandTimeBetween(s.rng, creationStart, creationEnd)
		history := []domain.PricePoint{{Price: basePrice, Date: initialDate}}

		lastDate := initialDate
		for i := 0; i < utils.RandInt(s.rng, 0, 2); i++ {
			changeDate := utils.RandTimeBetween(s.rng, lastDate, s.now)
			newPrice := utils.Round2(basePrice * utils.RandFloat(s.rng, 0.8, 1.2))
			history = append(history, domain.PricePoint{Price: newPrice, Date: changeDate})
			lastDate = changeDate
		}

		sort.Slice(history, func(i, j int) bool { return history[i].Date.Before(history[j].Date) })

		products = append(products, &domain.Product{
			ProductID:    fmt.Sprintf("prod_%05d", prodID),
			Name:         s.faker.ProductName(),
			CategoryID:   category.CategoryID,
			BasePrice:    history[len(history)-1].Price,
			CurrentStock: utils.RandInt(s.rng, 10, 500),
			IsActive:     s.rng.Float64() < 0.95,
			PriceHistory: history,
			CreationDate: history[0].Date,
		})
	}
	return products
}

// GenerateUsers builds n users registered well before the generation
// timespan so every session can reference an existing account.
func (s *BootstrapService) GenerateUsers(n int) []*domain.User {
	regStart := s.now.AddDate(0, 0, -s.timespanDays*3)
	regEnd := s.now.AddDate(0, 0, -s.timespanDays)

	users := make([]*domain.User, 0, n)
	for userID := 0; userID < n; userID++ {
		regDate := utils.RandTimeBetween(s.rng, regStart, regEnd)
		users = append(users, &domain.User{
			UserID: fmt.Sprintf("user_%06d", userID),
			Geo: domain.GeoData{
				City:    s.faker.City(),
				State:   s.faker.StateAbr(),
				Country: s.faker.CountryAbr(),
			},
			RegistrationDate: regDate,
			LastActive:       utils.RandTimeBetween(s.rng, regDate, s.now),
		})
	}
	return users
}
