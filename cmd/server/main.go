package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/example/kawa-b2b/internal/adapter/cache"
	"github.com/example/kawa-b2b/internal/adapter/catalog"
	"github.com/example/kawa-b2b/internal/adapter/httpapi"
	"github.com/example/kawa-b2b/internal/adapter/intake"
	"github.com/example/kawa-b2b/internal/adapter/natsstan"
	"github.com/example/kawa-b2b/internal/adapter/storage"
	"github.com/example/kawa-b2b/internal/domain"
	"github.com/example/kawa-b2b/internal/usecase"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// хранилище состояния; без каталога данных деградируем в память,
	// витрина работает, но состояние не переживёт рестарт
	var kv domain.KV
	fileKV, err := storage.NewFileKV(getEnv("DATA_DIR", "./data/state"))
	if err != nil {
		log.Printf("data dir unavailable, falling back to memory: %v", err)
		kv = storage.NewMemoryKV()
	} else {
		kv = fileKV
	}

	// каталог: внешний API и локальный файл как фоллбэк
	var sources catalog.Chain
	if url := os.Getenv("CATALOG_URL"); url != "" {
		sources = append(sources, &catalog.HTTPSource{URL: url})
	}
	sources = append(sources, &catalog.FileSource{Path: getEnv("CATALOG_PATH", "./data/demo-products.json")})

	cat := cache.NewMemoryCatalogCache()
	loadCatalog := usecase.LoadCatalog{Source: sources, Cache: cat}
	if err := loadCatalog.Execute(ctx); err != nil {
		log.Printf("catalog load: %v", err)
	}
	// периодическое обновление остатков
	go func() {
		t := time.NewTicker(10 * time.Minute)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if err := loadCatalog.Execute(ctx); err != nil {
					log.Printf("catalog refresh: %v", err)
				}
			}
		}
	}()

	auth := usecase.AuthConfig{
		Secret:     getEnv("AUTH_SECRET", "dev-secret"),
		TTLSeconds: getEnvInt("SESSION_TTL_SECONDS", 7*24*3600),
		DemoCode:   getEnv("AUTH_DEMO_CODE", "0000"),
		DemoEmail:  getEnv("AUTH_DEMO_EMAIL", "demo@kawa.by"),
		DemoPass:   getEnv("AUTH_DEMO_PASSWORD", "demo123"),
	}

	carts := &usecase.CartEngine{KV: kv}
	arch := &storage.KVOrderArchive{KV: kv}

	// шина экспорта заказов; без NATS_URL заказы просто оседают в архиве
	var bus domain.OrderPublisher
	if url := os.Getenv("NATS_URL"); url != "" {
		pub := &natsstan.Publisher{
			ClusterID: getEnv("STAN_CLUSTER_ID", "kawa-cluster"),
			URL:       url,
			Subject:   getEnv("STAN_SUBJECT", "orders"),
		}
		defer pub.Close()
		bus = pub
	}

	addr := getEnv("SERVER_ADDR", ":8080")
	intakeURL := getEnv("ORDER_INTAKE_URL", selfIntakeURL(addr))

	api := httpapi.NewServer(httpapi.Server{
		Products: usecase.ListProducts{Cache: cat},
		Carts:    carts,
		Start:    usecase.StartLogin{Auth: auth},
		Verify:   usecase.VerifyCode{Auth: auth},
		Login:    usecase.PasswordLogin{Auth: auth},
		Current:  usecase.CurrentSession{Auth: auth},
		Checkout: usecase.Checkout{
			Carts:  carts,
			Intake: &intake.HTTPClient{URL: intakeURL},
			Source: getEnv("ORDER_SOURCE", "kawa.by"),
		},
		Intake:        usecase.ProcessIntake{Archive: arch, Bus: bus},
		History:       usecase.OrderHistory{Archive: arch},
		Reorder:       usecase.Reorder{Archive: arch, Catalog: cat, Carts: carts},
		KV:            kv,
		TTLSeconds:    auth.TTLSeconds,
		SecureCookies: getEnv("COOKIE_SECURE", "false") == "true",
	})

	srv := &http.Server{Addr: addr, Handler: api.Router}
	go func() {
		log.Printf("http listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = srv.Shutdown(shutdownCtx)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

// selfIntakeURL — точка приёма по умолчанию: собственный /api/orders.
func selfIntakeURL(addr string) string {
	host := addr
	if strings.HasPrefix(addr, ":") {
		host = "127.0.0.1" + addr
	}
	return "http://" + host + "/api/orders"
}
