package cache

import (
	"context"
	"log"
	"time"

	"pizzaria-backend/internal/config"

	"github.com/go-redis/redis/v8"
)

// Client é nil quando REDIS_ADDR não está configurado; quem consome o
// cache precisa tratar esse caso (o servidor funciona sem Redis).
var Client *redis.Client

func Init(cfg *config.Config) {
	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADDR não configurado, cache de estatísticas desabilitado")
		return
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPass,
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[WARN] Redis inacessível (%v), seguindo sem cache", err)
		return
	}

	Client = rdb
	log.Println("Redis conectado:", cfg.RedisAddr)
}

// Get retorna o valor da chave ou "" quando não há cache disponível.
func Get(ctx context.Context, key string) string {
	if Client == nil {
		return ""
	}
	val, err := Client.Get(ctx, key).Result()
	if err != nil {
		return ""
	}
	return val
}

// Set grava com TTL; silencioso quando não há cache.
func Set(ctx context.Context, key, value string, ttl time.Duration) {
	if Client == nil {
		return
	}
	if err := Client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("Erro ao gravar cache %s: %v", key, err)
	}
}

// Invalidate remove chaves por padrão (ex: "sales:stats:*").
func Invalidate(ctx context.Context, pattern string) {
	if Client == nil {
		return
	}
	keys, err := Client.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := Client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Erro ao invalidar cache %s: %v", pattern, err)
	}
}
