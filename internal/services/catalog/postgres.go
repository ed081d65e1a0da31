package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sidjey-y/hellweekcoffee/internal/database"
	"github.com/sidjey-y/hellweekcoffee/internal/models"
)

const (
	insertCategorySQL = `
		INSERT INTO categories (code, name, item_type)
		VALUES ($1, $2, $3)`

	getCategorySQL = `
		SELECT code, name, item_type FROM categories WHERE code = $1`

	listCategoriesSQL = `
		SELECT code, name, item_type FROM categories ORDER BY code ASC`

	insertItemSQL = `
		INSERT INTO items (code, name, type, category_code, base_price, description, active)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)`

	insertItemSizePriceSQL = `
		INSERT INTO item_size_prices (item_code, size, price)
		VALUES ($1, $2, $3)`

	insertItemCustomizationSQL = `
		INSERT INTO item_customizations (item_code, customization_id)
		VALUES ($1, $2)`

	getItemSQL = `
		SELECT code, name, type, COALESCE(category_code, ''), base_price, COALESCE(description, ''), active
		FROM items WHERE code = $1`

	listItemsSQL = `
		SELECT code, name, type, COALESCE(category_code, ''), base_price, COALESCE(description, ''), active
		FROM items ORDER BY code ASC`

	getItemSizePricesSQL = `
		SELECT size, price FROM item_size_prices WHERE item_code = $1`

	getItemCustomizationsSQL = `
		SELECT customization_id FROM item_customizations WHERE item_code = $1 ORDER BY customization_id ASC`

	setItemActiveSQL = `
		UPDATE items SET active = $1 WHERE code = $2`

	insertCustomizationSQL = `
		INSERT INTO customizations (name, description, applicable_type)
		VALUES ($1, $2, $3)
		RETURNING id`

	insertOptionSQL = `
		INSERT INTO customization_options (customization_id, name, price)
		VALUES ($1, $2, $3)
		RETURNING id`

	getCustomizationSQL = `
		SELECT id, name, COALESCE(description, ''), applicable_type
		FROM customizations WHERE id = $1`

	listCustomizationsSQL = `
		SELECT id, name, COALESCE(description, ''), applicable_type
		FROM customizations ORDER BY id ASC`

	getOptionsSQL = `
		SELECT id, name, price FROM customization_options
		WHERE customization_id = $1 ORDER BY id ASC`

	countItemsSQL = `SELECT COUNT(*) FROM items`
)

// Store is the PostgreSQL-backed catalog store. It satisfies the POS
// service's read-only CatalogStore interface.
type Store struct {
	db *database.DB
}

// NewStore creates a catalog store over the shared pool
func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// CreateCategory inserts a category
func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := s.db.Exec(ctx, insertCategorySQL, category.Code, category.Name, category.ItemType); err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

// GetCategory returns one category by code
func (s *Store) GetCategory(ctx context.Context, code string) (*models.Category, error) {
	category := &models.Category{}
	err := s.db.QueryRow(ctx, getCategorySQL, code).Scan(&category.Code, &category.Name, &category.ItemType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFoundError{Entity: "category", Key: code}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// ListCategories returns all categories
func (s *Store) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := s.db.Query(ctx, listCategoriesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(&category.Code, &category.Name, &category.ItemType); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// CreateItem inserts the item with its size prices and customization links
// in one transaction.
func (s *Store) CreateItem(ctx context.Context, item *models.Item) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, insertItemSQL,
		item.Code, item.Name, item.Type, item.CategoryCode, item.BasePrice, item.Description, item.Active)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	for size, price := range item.SizePrices {
		if _, err := tx.Exec(ctx, insertItemSizePriceSQL, item.Code, size, price); err != nil {
			return fmt.Errorf("failed to insert size price: %w", err)
		}
	}

	for _, customizationID := range item.CustomizationIDs {
		if _, err := tx.Exec(ctx, insertItemCustomizationSQL, item.Code, customizationID); err != nil {
			return fmt.Errorf("failed to link customization: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetItemByCode loads one item with its size prices and customization ids
func (s *Store) GetItemByCode(ctx context.Context, code string) (*models.Item, error) {
	item := &models.Item{}
	err := s.db.QueryRow(ctx, getItemSQL, code).Scan(
		&item.Code, &item.Name, &item.Type, &item.CategoryCode,
		&item.BasePrice, &item.Description, &item.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFoundError{Entity: "item", Key: code}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if err := s.loadItemDetails(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns all items with their details
func (s *Store) ListItems(ctx context.Context) ([]*models.Item, error) {
	rows, err := s.db.Query(ctx, listItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item := &models.Item{}
		err := rows.Scan(&item.Code, &item.Name, &item.Type, &item.CategoryCode,
			&item.BasePrice, &item.Description, &item.Active)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, item := range items {
		if err := s.loadItemDetails(ctx, item); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (s *Store) loadItemDetails(ctx context.Context, item *models.Item) error {
	rows, err := s.db.Query(ctx, getItemSizePricesSQL, item.Code)
	if err != nil {
		return fmt.Errorf("failed to get size prices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var size models.Size
		var price models.Money
		if err := rows.Scan(&size, &price); err != nil {
			return fmt.Errorf("failed to scan size price: %w", err)
		}
		if item.SizePrices == nil {
			item.SizePrices = make(map[models.Size]models.Money)
		}
		item.SizePrices[size] = price
	}
	if err := rows.Err(); err != nil {
		return err
	}

	custRows, err := s.db.Query(ctx, getItemCustomizationsSQL, item.Code)
	if err != nil {
		return fmt.Errorf("failed to get item customizations: %w", err)
	}
	defer custRows.Close()

	for custRows.Next() {
		var id int64
		if err := custRows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan customization id: %w", err)
		}
		item.CustomizationIDs = append(item.CustomizationIDs, id)
	}
	return custRows.Err()
}

// SetItemActive flips an item's active flag
func (s *Store) SetItemActive(ctx context.Context, code string, active bool) error {
	tag, err := s.db.Pool.Exec(ctx, setItemActiveSQL, active, code)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NotFoundError{Entity: "item", Key: code}
	}
	return nil
}

// CreateCustomization inserts the customization and its options in one
// transaction, filling in generated ids.
func (s *Store) CreateCustomization(ctx context.Context, customization *models.Customization) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, insertCustomizationSQL,
		customization.Name, customization.Description, customization.ApplicableType,
	).Scan(&customization.ID)
	if err != nil {
		return fmt.Errorf("failed to insert customization: %w", err)
	}

	for i := range customization.Options {
		err = tx.QueryRow(ctx, insertOptionSQL,
			customization.ID, customization.Options[i].Name, customization.Options[i].Price,
		).Scan(&customization.Options[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert option: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetCustomization loads one customization with its options
func (s *Store) GetCustomization(ctx context.Context, id int64) (*models.Customization, error) {
	customization := &models.Customization{}
	err := s.db.QueryRow(ctx, getCustomizationSQL, id).Scan(
		&customization.ID, &customization.Name, &customization.Description, &customization.ApplicableType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFoundError{Entity: "customization", Key: fmt.Sprintf("%d", id)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customization: %w", err)
	}

	if err := s.loadOptions(ctx, customization); err != nil {
		return nil, err
	}
	return customization, nil
}

// ListCustomizations returns all customizations with their options
func (s *Store) ListCustomizations(ctx context.Context) ([]*models.Customization, error) {
	rows, err := s.db.Query(ctx, listCustomizationsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list customizations: %w", err)
	}
	defer rows.Close()

	var customizations []*models.Customization
	for rows.Next() {
		customization := &models.Customization{}
		err := rows.Scan(&customization.ID, &customization.Name,
			&customization.Description, &customization.ApplicableType)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customization: %w", err)
		}
		customizations = append(customizations, customization)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, customization := range customizations {
		if err := s.loadOptions(ctx, customization); err != nil {
			return nil, err
		}
	}
	return customizations, nil
}

func (s *Store) loadOptions(ctx context.Context, customization *models.Customization) error {
	rows, err := s.db.Query(ctx, getOptionsSQL, customization.ID)
	if err != nil {
		return fmt.Errorf("failed to get options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var option models.Option
		if err := rows.Scan(&option.ID, &option.Name, &option.Price); err != nil {
			return fmt.Errorf("failed to scan option: %w", err)
		}
		customization.Options = append(customization.Options, option)
	}
	return rows.Err()
}

// CountItems reports how many items exist, used by idempotent seeding
func (s *Store) CountItems(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRow(ctx, countItemsSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}
