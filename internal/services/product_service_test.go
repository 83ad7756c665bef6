package services

import (
	"testing"
	"time"

	"customer-chatbot/internal/database"
	"customer-chatbot/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSeedProductsIsIdempotent(t *testing.T) {
	setupTestDB()

	assert.NoError(t, SeedProducts(DefaultProducts()))
	assert.NoError(t, SeedProducts(DefaultProducts()))

	var count int64
	database.DB.Model(&models.Product{}).Count(&count)
	assert.Equal(t, int64(2), count)

	// A differently cased duplicate is ignored as well
	err := SeedProducts([]models.Product{{Name: "LAPTOP", Description: "other", Price: decimal.NewFromInt(1)}})
	assert.NoError(t, err)
	database.DB.Model(&models.Product{}).Count(&count)
	assert.Equal(t, int64(2), count)

	product, err := GetProductByName("laptop")
	assert.NoError(t, err)
	assert.Equal(t, "A lightweight laptop with 16GB RAM and 512GB SSD.", product.Description)
}

func TestSeedProductsRejectsBlankName(t *testing.T) {
	setupTestDB()
	err := SeedProducts([]models.Product{{Name: "  "}})
	assert.Error(t, err)
}

func TestFindProductName(t *testing.T) {
	setupTestDB()
	seedDefaults(t)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"Exact", "laptop", "laptop", nil},
		{"Case insensitive", "Do you sell a LapTop", "laptop", nil},
		{"Trailing punctuation", "What's the price of the Laptop?", "laptop", nil},
		{"Left-most token wins", "smartphone or laptop", "smartphone", nil},
		{"Left-most token wins reversed", "laptop or smartphone", "laptop", nil},
		{"Substring is not a match", "laptops", "", ErrProductNotFound},
		{"No product", "what products do you have", "", ErrProductNotFound},
		{"Empty", "", "", ErrProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindProductName(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindProductNameDatabaseError(t *testing.T) {
	setupTestDB()
	database.DB.Migrator().DropTable(&models.Product{})

	_, err := FindProductName("laptop")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrProductNotFound)
}

func TestGetProductByNameUsesCache(t *testing.T) {
	setupTestDB()
	mr := setupTestRedis()
	defer mr.Close()
	defer func() { database.RedisClient = nil }()
	seedDefaults(t)

	// Cache miss populates redis
	product, err := GetProductByName("Smartphone")
	assert.NoError(t, err)
	assert.Equal(t, "smartphone", product.Name)
	assert.True(t, mr.Exists(ProductCacheKeyPrefix+"smartphone"))

	// Change the row behind the cache
	database.DB.Exec("UPDATE products SET description = ? WHERE name_key = ?", "changed", "smartphone")

	cached, err := GetProductByName("smartphone")
	assert.NoError(t, err)
	assert.Equal(t, "A high-end smartphone with 128GB storage.", cached.Description)
	assert.Equal(t, "699.99", cached.Price.StringFixed(2))

	mr.FastForward(ProductCacheDuration + time.Minute)

	fresh, err := GetProductByName("smartphone")
	assert.NoError(t, err)
	assert.Equal(t, "changed", fresh.Description)
}

func TestGetProductByNameNotFound(t *testing.T) {
	setupTestDB()
	seedDefaults(t)

	_, err := GetProductByName("tablet")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListProducts(t *testing.T) {
	setupTestDB()
	seedDefaults(t)

	products, err := ListProducts()
	assert.NoError(t, err)
	if assert.Len(t, products, 2) {
		assert.Equal(t, "smartphone", products[0].Name)
		assert.Equal(t, "laptop", products[1].Name)
	}
}

func TestFormatProductDetails(t *testing.T) {
	p := &models.Product{
		Name:        "laptop",
		Description: "A lightweight laptop with 16GB RAM and 512GB SSD.",
		Price:       decimal.RequireFromString("1199.99"),
	}
	assert.Equal(t,
		"Product: laptop\nDescription: A lightweight laptop with 16GB RAM and 512GB SSD.\nPrice: $1199.99",
		FormatProductDetails(p))

	p.Price = decimal.NewFromInt(5)
	assert.Contains(t, FormatProductDetails(p), "Price: $5.00")
}

func TestProductTokens(t *testing.T) {
	assert.Equal(t, []string{"what's", "the", "price", "of", "laptop"}, productTokens(" What's the price of  Laptop?! "))
	assert.Empty(t, productTokens(" ?? ... "))
}
