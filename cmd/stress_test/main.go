package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rl1809/cart-store/config"
	"github.com/rl1809/cart-store/internal/adapter/client"
	"github.com/rl1809/cart-store/internal/adapter/notify"
	"github.com/rl1809/cart-store/internal/adapter/storage"
	"github.com/rl1809/cart-store/internal/core/service"
	"github.com/rl1809/cart-store/internal/logger"
	"github.com/rl1809/cart-store/internal/port"
)

// namespacedKV keeps each run's cart under its own key.
type namespacedKV struct {
	prefix string
	kv     port.KeyValueStore
}

func (n namespacedKV) Get(ctx context.Context, key string) (string, bool, error) {
	return n.kv.Get(ctx, n.prefix+key)
}

func (n namespacedKV) Set(ctx context.Context, key, value string) error {
	return n.kv.Set(ctx, n.prefix+key, value)
}

func main() {
	_ = godotenv.Load()

	cfg := config.LoadEnv()
	log, err := logger.New(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}

	err = run(context.Background(), cfg, log)
	log.Sync()
	if err != nil {
		log.Error("stress test failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	runID := uuid.NewString()
	prefix := "stress:" + runID + ":"
	productID := cfg.Stress.ProductID
	totalRequests := cfg.Stress.Requests

	// Cart storage: redis when reachable, memory otherwise
	var kv port.KeyValueStore
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	defer rdb.Close()
	redisAdapter := storage.NewRedisAdapter(rdb)
	if err := redisAdapter.Ping(ctx); err != nil {
		log.Warn("redis not available, using memory storage", zap.Error(err))
		kv = storage.NewMemoryAdapter()
	} else {
		kv = redisAdapter
		defer rdb.Del(ctx, prefix+service.CartStorageKey)
	}
	kv = namespacedKV{prefix: prefix, kv: kv}

	catalog, closeCatalog, err := client.New(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("build catalog client: %w", err)
	}
	defer closeCatalog()

	stock, err := catalog.GetStock(ctx, productID)
	if err != nil {
		return fmt.Errorf("read stock of product %d: %w", productID, err)
	}

	recorder := &notify.Recorder{}
	notifier := notify.Fanout{recorder, notify.NewLogNotifier(log.Named("toast"))}
	store := service.NewCartStore(ctx, catalog, kv, notifier, log.Named("cart"))

	// First add never checks stock
	if err := store.AddProduct(ctx, productID); err != nil {
		return fmt.Errorf("add product %d: %w", productID, err)
	}

	// Spawn concurrent increments
	var successCount atomic.Int32
	var failCount atomic.Int32
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.AddProduct(ctx, productID); err == nil {
				successCount.Add(1)
			} else {
				failCount.Add(1)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	success := int(successCount.Load())
	expected := 1 + success
	cart := store.Cart()
	final := 0
	if len(cart) == 1 {
		final = cart[0].Amount
	}

	persisted := -1
	if raw, ok, err := kv.Get(ctx, service.CartStorageKey); err == nil && ok {
		if items, err := service.DecodeCart(raw); err == nil && len(items) == 1 {
			persisted = items[0].Amount
		}
	}

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Run ID:           %s\n", runID)
	fmt.Printf("Product:          %d\n", productID)
	fmt.Printf("Catalog Stock:    %d\n", stock.Amount)
	fmt.Printf("Total Requests:   %d\n", totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", failCount.Load())
	fmt.Printf("Notifications:    %d\n", len(recorder.Messages()))
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Printf("Expected Amount:  %d\n", expected)
	fmt.Printf("Cart Amount:      %d\n", final)
	fmt.Printf("Stored Amount:    %d\n", persisted)
	fmt.Printf("Lost Updates:     %d\n", expected-final)
	fmt.Println("==========================================")

	if persisted != final {
		return fmt.Errorf("storage (%d) diverged from memory (%d)", persisted, final)
	}
	fmt.Println("PASS: storage mirrors memory")
	return nil
}
