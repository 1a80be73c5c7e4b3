package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"shoepos/internal/models"
)

const keyPrefix = "shoepos:"

// CatalogCache caches catalog reads from the backend. Getters return
// nil, nil on a miss.
type CatalogCache interface {
	GetProduct(ctx context.Context, productID int64) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, productID int64) error

	GetProductList(ctx context.Context, categoryID *int64) ([]models.Product, error)
	SetProductList(ctx context.Context, categoryID *int64, products []models.Product, ttl time.Duration) error

	GetCategories(ctx context.Context) ([]models.Category, error)
	SetCategories(ctx context.Context, categories []models.Category, ttl time.Duration) error

	// InvalidateCatalog drops every cached catalog entry
	InvalidateCatalog(ctx context.Context) error
	Ping(ctx context.Context) error
}

type redisCatalogCache struct {
	client *redis.Client
}

// NewRedisClient builds a go-redis client, accepting both host:port and
// redis:// style addresses.
func NewRedisClient(addr, password string, db int, logger *zap.Logger) *redis.Client {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsedAddr = strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis ping failed on initialization", zap.String("addr", parsedAddr), zap.Error(err))
	} else {
		logger.Debug("redis connection established", zap.String("addr", parsedAddr))
	}
	return client
}

func NewRedisCatalogCache(client *redis.Client) CatalogCache {
	return &redisCatalogCache{client: client}
}

func productKey(productID int64) string {
	return fmt.Sprintf("%scatalog:product:%d", keyPrefix, productID)
}

func productListKey(categoryID *int64) string {
	if categoryID == nil {
		return keyPrefix + "catalog:products:all"
	}
	return fmt.Sprintf("%scatalog:products:category:%d", keyPrefix, *categoryID)
}

func categoriesKey() string {
	return keyPrefix + "catalog:categories"
}

func (r *redisCatalogCache) GetProduct(ctx context.Context, productID int64) (*models.Product, error) {
	var product models.Product
	found, err := r.getJSON(ctx, productKey(productID), &product)
	if err != nil || !found {
		return nil, err
	}
	return &product, nil
}

func (r *redisCatalogCache) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	return r.setJSON(ctx, productKey(product.ProductID), product, ttl)
}

func (r *redisCatalogCache) DeleteProduct(ctx context.Context, productID int64) error {
	return r.client.Del(ctx, productKey(productID)).Err()
}

func (r *redisCatalogCache) GetProductList(ctx context.Context, categoryID *int64) ([]models.Product, error) {
	var products []models.Product
	found, err := r.getJSON(ctx, productListKey(categoryID), &products)
	if err != nil || !found {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (r *redisCatalogCache) SetProductList(ctx context.Context, categoryID *int64, products []models.Product, ttl time.Duration) error {
	return r.setJSON(ctx, productListKey(categoryID), products, ttl)
}

func (r *redisCatalogCache) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	found, err := r.getJSON(ctx, categoriesKey(), &categories)
	if err != nil || !found {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

func (r *redisCatalogCache) SetCategories(ctx context.Context, categories []models.Category, ttl time.Duration) error {
	return r.setJSON(ctx, categoriesKey(), categories, ttl)
}

func (r *redisCatalogCache) InvalidateCatalog(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, keyPrefix+"catalog:*").Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCatalogCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisCatalogCache) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil // cache miss
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCatalogCache) setJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

// NoopCache never stores anything. It stands in when redis is disabled.
type NoopCache struct{}

func (NoopCache) GetProduct(context.Context, int64) (*models.Product, error) { return nil, nil }
func (NoopCache) SetProduct(context.Context, *models.Product, time.Duration) error {
	return nil
}
func (NoopCache) DeleteProduct(context.Context, int64) error { return nil }
func (NoopCache) GetProductList(context.Context, *int64) ([]models.Product, error) {
	return nil, nil
}
func (NoopCache) SetProductList(context.Context, *int64, []models.Product, time.Duration) error {
	return nil
}
func (NoopCache) GetCategories(context.Context) ([]models.Category, error) { return nil, nil }
func (NoopCache) SetCategories(context.Context, []models.Category, time.Duration) error {
	return nil
}
func (NoopCache) InvalidateCatalog(context.Context) error { return nil }
func (NoopCache) Ping(context.Context) error              { return nil }
