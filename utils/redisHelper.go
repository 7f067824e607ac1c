package utils

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/mmdatafocus/retail_backend/config"
	"github.com/redis/go-redis/v9"
)

func GetCacheLifespan() time.Duration {
	lifespan, err := strconv.Atoi(os.Getenv("CACHE_LIFESPAN"))
	if err != nil {
		lifespan = 1
	}
	return time.Duration(lifespan) * time.Hour
}

// get from redis
// returns nil if does not exist
func RetrieveRedis[T any](ctx context.Context, key string) (*T, error) {
	var result T
	exists, err := config.GetRedisObject(ctx, key, &result)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return &result, nil
}

func StoreRedis[T any](ctx context.Context, key string, obj *T) error {
	return config.SetRedisObject(ctx, key, obj, GetCacheLifespan())
}

func RemoveRedis(ctx context.Context, keys ...string) error {
	return config.RemoveRedisKey(ctx, keys...)
}

const invoiceGenerationKey = "Report:invoice_generation"

// BumpInvoiceGeneration invalidates every cached report built from invoices.
func BumpInvoiceGeneration(ctx context.Context) error {
	rdb := config.GetRedisDB()
	if rdb == nil {
		return nil
	}
	return rdb.Incr(ctx, invoiceGenerationKey).Err()
}

// InvoiceGeneration is zero until the first invoice write.
func InvoiceGeneration(ctx context.Context) (int64, error) {
	rdb := config.GetRedisDB()
	if rdb == nil {
		return 0, nil
	}
	n, err := rdb.Get(ctx, invoiceGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}
