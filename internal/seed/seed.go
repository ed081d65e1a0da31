package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/sidjey-y/hellweekcoffee/internal/logger"
	"github.com/sidjey-y/hellweekcoffee/internal/models"
	"github.com/sidjey-y/hellweekcoffee/internal/services/catalog"
	"github.com/sidjey-y/hellweekcoffee/internal/services/promo"
)

// Seeder loads the starter catalog and promo codes into an empty database
type Seeder struct {
	catalog *catalog.Service
	promos  *promo.Service
	store   *catalog.Store
	logger  *logger.Logger
}

// New creates a seeder
func New(catalogService *catalog.Service, promoService *promo.Service, store *catalog.Store, log *logger.Logger) *Seeder {
	return &Seeder{
		catalog: catalogService,
		promos:  promoService,
		store:   store,
		logger:  log,
	}
}

// Run seeds the database. It is a no-op when catalog items already exist,
// so re-running the seed mode is safe.
func (s *Seeder) Run(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	count, err := s.store.CountItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing catalog: %w", err)
	}
	if count > 0 {
		s.logger.Info("seed_skipped", "Catalog already seeded", requestID, map[string]interface{}{
			"item_count": count,
		})
		return nil
	}

	if err := s.seedCategories(ctx); err != nil {
		return err
	}
	customizationIDs, err := s.seedCustomizations(ctx, requestID)
	if err != nil {
		return err
	}
	if err := s.seedItems(ctx, requestID, customizationIDs); err != nil {
		return err
	}
	if err := s.seedPromoCodes(ctx, requestID); err != nil {
		return err
	}

	s.logger.Info("seed_completed", "Database seeded", requestID, nil)
	return nil
}

func (s *Seeder) seedCategories(ctx context.Context) error {
	categories := []models.Category{
		{Code: "ESPRESSO", Name: "Espresso Drinks", ItemType: models.TypeDrink},
		{Code: "BREWED", Name: "Brewed Coffee & Tea", ItemType: models.TypeDrink},
		{Code: "BLENDED", Name: "Blended & Iced", ItemType: models.TypeDrink},
		{Code: "PASTRY", Name: "Pastries", ItemType: models.TypeFood},
		{Code: "SANDWICH", Name: "Sandwiches", ItemType: models.TypeFood},
		{Code: "MERCH", Name: "Merchandise", ItemType: models.TypeMerchandise},
	}
	for i := range categories {
		if _, err := s.catalog.CreateCategory(ctx, &categories[i]); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", categories[i].Code, err)
		}
	}
	return nil
}

// seedCustomizations creates the stock customizations and returns their ids
// keyed by name for item wiring.
func (s *Seeder) seedCustomizations(ctx context.Context, requestID string) (map[string]int64, error) {
	definitions := []catalog.CustomizationRequest{
		{
			Name:           "Milk",
			Description:    "Milk substitutions",
			ApplicableType: "drink",
			Options: []catalog.OptionRequest{
				{Name: "Whole Milk", Price: 0},
				{Name: "Oat Milk", Price: 2500},
				{Name: "Almond Milk", Price: 2500},
				{Name: "Soy Milk", Price: 2000},
			},
		},
		{
			Name:           "Espresso Shots",
			Description:    "Additional espresso shots",
			ApplicableType: "drink",
			Options: []catalog.OptionRequest{
				{Name: "Extra Shot", Price: 3000},
				{Name: "Double Extra Shot", Price: 5500},
				{Name: "Decaf", Price: 0},
			},
		},
		{
			Name:           "Syrup",
			Description:    "Flavor syrups",
			ApplicableType: "drink",
			Options: []catalog.OptionRequest{
				{Name: "Vanilla", Price: 1500},
				{Name: "Caramel", Price: 1500},
				{Name: "Hazelnut", Price: 1500},
				{Name: "Salted Caramel", Price: 2000},
			},
		},
		{
			Name:           "Warming",
			Description:    "Food preparation",
			ApplicableType: "food",
			Options: []catalog.OptionRequest{
				{Name: "Warmed", Price: 0},
				{Name: "Extra Butter", Price: 1000},
			},
		},
	}

	ids := make(map[string]int64, len(definitions))
	for i := range definitions {
		created, err := s.catalog.CreateCustomization(ctx, &definitions[i], requestID)
		if err != nil {
			return nil, fmt.Errorf("failed to seed customization %s: %w", definitions[i].Name, err)
		}
		ids[created.Name] = created.ID
	}
	return ids, nil
}

func (s *Seeder) seedItems(ctx context.Context, requestID string, customizations map[string]int64) error {
	drinkCustomizations := []int64{customizations["Milk"], customizations["Espresso Shots"], customizations["Syrup"]}
	foodCustomizations := []int64{customizations["Warming"]}

	items := []catalog.ItemRequest{
		{Code: "AMERICANO", Name: "Americano", Type: "drink", CategoryCode: "ESPRESSO", BasePrice: 12000, DefaultSizes: true, CustomizationIDs: drinkCustomizations},
		{Code: "LATTE", Name: "Cafe Latte", Type: "drink", CategoryCode: "ESPRESSO", BasePrice: 15000, DefaultSizes: true, CustomizationIDs: drinkCustomizations},
		{Code: "CAPPUCCINO", Name: "Cappuccino", Type: "drink", CategoryCode: "ESPRESSO", BasePrice: 15000, DefaultSizes: true, CustomizationIDs: drinkCustomizations},
		{Code: "MOCHA", Name: "Cafe Mocha", Type: "drink", CategoryCode: "ESPRESSO", BasePrice: 16500, DefaultSizes: true, CustomizationIDs: drinkCustomizations},
		{Code: "BREWED-COFFEE", Name: "Brewed Coffee", Type: "drink", CategoryCode: "BREWED", BasePrice: 10000, DefaultSizes: true, CustomizationIDs: []int64{customizations["Milk"], customizations["Syrup"]}},
		{Code: "CHAI-TEA", Name: "Chai Tea Latte", Type: "drink", CategoryCode: "BREWED", BasePrice: 14000, DefaultSizes: true, CustomizationIDs: []int64{customizations["Milk"]}},
		{Code: "ICED-LATTE", Name: "Iced Latte", Type: "drink", CategoryCode: "BLENDED", BasePrice: 16000, DefaultSizes: true, CustomizationIDs: drinkCustomizations},
		{Code: "FRAPPE", Name: "Coffee Frappe", Type: "drink", CategoryCode: "BLENDED", BasePrice: 18500, DefaultSizes: true, CustomizationIDs: []int64{customizations["Syrup"], customizations["Espresso Shots"]}},
		{Code: "CROISSANT", Name: "Butter Croissant", Type: "food", CategoryCode: "PASTRY", BasePrice: 9500, CustomizationIDs: foodCustomizations},
		{Code: "MUFFIN", Name: "Blueberry Muffin", Type: "food", CategoryCode: "PASTRY", BasePrice: 11000, CustomizationIDs: foodCustomizations},
		{Code: "CINNAMON-ROLL", Name: "Cinnamon Roll", Type: "food", CategoryCode: "PASTRY", BasePrice: 12500, CustomizationIDs: foodCustomizations},
		{Code: "HAM-CHEESE", Name: "Ham & Cheese Sandwich", Type: "food", CategoryCode: "SANDWICH", BasePrice: 17500, CustomizationIDs: foodCustomizations},
		{Code: "TUNA-MELT", Name: "Tuna Melt", Type: "food", CategoryCode: "SANDWICH", BasePrice: 18500, CustomizationIDs: foodCustomizations},
		{Code: "TUMBLER", Name: "Logo Tumbler", Type: "merchandise", CategoryCode: "MERCH", BasePrice: 55000},
		{Code: "BEANS-250", Name: "House Blend Beans 250g", Type: "merchandise", CategoryCode: "MERCH", BasePrice: 42000},
		{Code: "TOTE-BAG", Name: "Canvas Tote Bag", Type: "merchandise", CategoryCode: "MERCH", BasePrice: 25000},
	}

	for i := range items {
		if _, err := s.catalog.CreateItem(ctx, &items[i], requestID); err != nil {
			return fmt.Errorf("failed to seed item %s: %w", items[i].Code, err)
		}
	}
	return nil
}

func (s *Seeder) seedPromoCodes(ctx context.Context, requestID string) error {
	now := time.Now().UTC()
	yearFromNow := now.AddDate(1, 0, 0)

	codes := []models.PromoCode{
		{Code: "WELCOME25", DiscountPercent: 25, ValidFrom: now, ValidUntil: yearFromNow},
		{Code: "COFFEE10", DiscountPercent: 10, ValidFrom: now, ValidUntil: yearFromNow},
		{Code: "STUDENT15", DiscountPercent: 15, ValidFrom: now, ValidUntil: yearFromNow},
		{Code: "BDAY20", DiscountPercent: 20, ValidFrom: now, ValidUntil: yearFromNow},
		{Code: "MEMBER5", DiscountPercent: 5, ValidFrom: now, ValidUntil: yearFromNow},
		{Code: "HOLIDAY30", DiscountPercent: 30, ValidFrom: now, ValidUntil: now.AddDate(0, 3, 0)},
		{Code: "MONDAY10", DiscountPercent: 10, ValidFrom: now, ValidUntil: yearFromNow},
	}
	for i := range codes {
		if _, err := s.promos.Create(ctx, &codes[i], requestID); err != nil {
			return fmt.Errorf("failed to seed promo code %s: %w", codes[i].Code, err)
		}
	}
	return nil
}
