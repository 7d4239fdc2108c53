package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// Retry configuration
const maxRetries = 3
const retryDelay = 2 * time.Minute

// CleanupExpiredFiles removes expired files older than the TTL
func CleanupExpiredFiles(filePath string, ttl time.Duration) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("error checking file: %v", err)
	}

	if time.Since(info.ModTime()) > ttl {
		err := os.Remove(filePath)
		if err != nil {
			return fmt.Errorf("error deleting expired file: %v", err)
		}
		log.Printf("report file %s deleted", filePath)
	}
	return nil
}

// CleanupExpiredCache removes stale analysis summaries from Redis
func CleanupExpiredCache(redisClient *redis.Client) error {
	iter := redisClient.Scan(context.Background(), 0, "analysis:summary:*", 0).Iterator()
	for iter.Next(context.Background()) {
		key := iter.Val()
		ttl, err := redisClient.TTL(context.Background(), key).Result()
		if err != nil {
			return fmt.Errorf("error reading TTL for %s: %v", key, err)
		}
		// Keys written without an expiry predate the TTL policy; drop them.
		if ttl < 0 {
			if err := redisClient.Del(context.Background(), key).Err(); err != nil {
				return fmt.Errorf("error deleting cache key %s: %v", key, err)
			}
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("error during SCAN iteration: %v", err)
	}
	return nil
}

// CleanupAllExpired handles the cleanup of report files and Redis cache entries
func CleanupAllExpired(fileTTL time.Duration, redisClient *redis.Client) error {
	files, err := os.ReadDir("./public/files")
	if err != nil {
		return fmt.Errorf("error reading files directory: %v", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		filePath := fmt.Sprintf("./public/files/%s", file.Name())
		err := CleanupExpiredFiles(filePath, fileTTL)
		if err != nil {
			log.Println("Error cleaning up file:", err)
		}
	}

	err = CleanupExpiredCache(redisClient)
	if err != nil {
		return fmt.Errorf("error cleaning up cache: %v", err)
	}

	return nil
}

// RunScheduledCleanup runs cleanup tasks daily at 1 AM with retries and logs error messages to console on failure
func RunScheduledCleanup(redisClient *redis.Client) {
	c := cron.New()

	c.AddFunc("0 1 * * *", func() {
		log.Println("running scheduled cleanup task...")

		var retries int
		var cleanupSuccess bool

		for retries < maxRetries {
			log.Printf("attempt %d to clean up...", retries+1)
			err := CleanupAllExpired(7*24*time.Hour, redisClient)
			if err == nil {
				log.Println("cleanup successful!")
				cleanupSuccess = true
				break
			}
			log.Printf("cleanup failed: %v", err)
			retries++
			time.Sleep(retryDelay)
		}

		if !cleanupSuccess {
			log.Printf("cleanup task failed after %d retries. please check the system.", retries)

			SendEmail(
				os.Getenv("ADMIN_EMAIL"),
				"The scheduled report cleanup task failed after multiple attempts.",
				"Cleanup Task Failed",
				"",
			)
		}
	})

	c.Start()

	// Keep the goroutine alive so cron jobs execute
	select {}
}
