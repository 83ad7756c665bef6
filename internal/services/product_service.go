package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"customer-chatbot/internal/database"
	"customer-chatbot/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const ProductCacheKeyPrefix = "product:name:"

var (
	ErrProductNotFound = errors.New("product not found")

	// ProductCacheDuration is overridden from config at startup.
	ProductCacheDuration = time.Hour
)

// DefaultProducts are inserted on every startup; existing rows are kept.
func DefaultProducts() []models.Product {
	return []models.Product{
		{
			Name:        "smartphone",
			Description: "A high-end smartphone with 128GB storage.",
			Price:       decimal.RequireFromString("699.99"),
		},
		{
			Name:        "laptop",
			Description: "A lightweight laptop with 16GB RAM and 512GB SSD.",
			Price:       decimal.RequireFromString("1199.99"),
		},
	}
}

// SeedProducts inserts products, ignoring any whose name already exists.
func SeedProducts(products []models.Product) error {
	for i := range products {
		err := database.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name_key"}},
			DoNothing: true,
		}).Create(&products[i]).Error
		if err != nil {
			return fmt.Errorf("seeding product %q: %w", products[i].Name, err)
		}
	}
	return nil
}

// productTokens splits input on whitespace and normalizes each token the
// way product names are keyed.
func productTokens(input string) []string {
	fields := strings.Fields(input)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if key := models.ProductKey(f); key != "" {
			tokens = append(tokens, key)
		}
	}
	return tokens
}

// FindProductName returns the stored name of the product matching the
// left-most token of input, or ErrProductNotFound.
func FindProductName(input string) (string, error) {
	tokens := productTokens(input)
	if len(tokens) == 0 {
		return "", ErrProductNotFound
	}

	var rows []models.Product
	err := database.DB.Model(&models.Product{}).
		Select("name", "name_key").
		Where("name_key IN ?", tokens).
		Find(&rows).Error
	if err != nil {
		return "", fmt.Errorf("looking up product: %w", err)
	}

	byKey := make(map[string]string, len(rows))
	for _, p := range rows {
		byKey[p.NameKey] = p.Name
	}
	for _, token := range tokens {
		if name, ok := byKey[token]; ok {
			return name, nil
		}
	}
	return "", ErrProductNotFound
}

// GetProductByName retrieves a product by case-insensitive name, using cache
func GetProductByName(name string) (*models.Product, error) {
	key := models.ProductKey(name)
	cacheKey := ProductCacheKeyPrefix + key

	// Try cache
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(database.Ctx, cacheKey).Result()
		if err == nil {
			var product models.Product
			if err := json.Unmarshal([]byte(val), &product); err == nil {
				return &product, nil
			}
		}
	}

	// Fetch from DB
	var product models.Product
	if err := database.DB.Where("name_key = ?", key).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	// Set cache
	if database.RedisClient != nil {
		if data, err := json.Marshal(product); err == nil {
			database.RedisClient.Set(database.Ctx, cacheKey, data, ProductCacheDuration)
		}
	}

	return &product, nil
}

// ListProducts returns the whole catalog in insertion order.
func ListProducts() ([]models.Product, error) {
	var products []models.Product
	if err := database.DB.Order("id asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FormatProductDetails renders the product reply shown to the user.
func FormatProductDetails(p *models.Product) string {
	return fmt.Sprintf("Product: %s\nDescription: %s\nPrice: $%s", p.Name, p.Description, p.Price.StringFixed(2))
}
