package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const summaryCacheTTL = 24 * time.Hour

// CacheAnalysisSummary stores a run's summary JSON keyed by its timestamp,
// so the dashboard can re-fetch recent runs without a database round trip.
func CacheAnalysisSummary(ctx context.Context, redisClient *redis.Client, analysisTimestamp string, summaryJSON []byte) error {
	key := fmt.Sprintf("analysis:summary:%s", analysisTimestamp)
	return redisClient.Set(ctx, key, summaryJSON, summaryCacheTTL).Err()
}

// GetCachedAnalysisSummary fetches a cached run summary; redis.Nil maps to
// (nil, false) so callers fall through to the database.
func GetCachedAnalysisSummary(ctx context.Context, redisClient *redis.Client, analysisTimestamp string) ([]byte, bool, error) {
	key := fmt.Sprintf("analysis:summary:%s", analysisTimestamp)
	data, err := redisClient.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// InvalidateAnalysisCache removes all cached summaries for a run.
func InvalidateAnalysisCache(ctx context.Context, redisClient *redis.Client, analysisTimestamp string) error {
	pattern := fmt.Sprintf("analysis:summary:%s*", analysisTimestamp)
	iter := redisClient.Scan(ctx, 0, pattern, 0).Iterator()

	for iter.Next(ctx) {
		key := iter.Val()
		if err := redisClient.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %v", key, err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("error during SCAN iteration: %v", err)
	}
	return nil
}

// InvalidateAnalysisCacheAsync invalidates a run's cache without blocking
// the request path.
func InvalidateAnalysisCacheAsync(redisClient *redis.Client, analysisTimestamp string) {
	go func() {
		if err := InvalidateAnalysisCache(context.Background(), redisClient, analysisTimestamp); err != nil {
			log.Printf("Cache invalidation failed for analysis '%s': %v", analysisTimestamp, err)
		}
	}()
}
