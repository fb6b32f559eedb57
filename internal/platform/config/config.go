package config

import (
	"os"
	"strconv"
	"time"
)

// Config agrupa tudo que o main precisa para subir o serviço.
// Só variáveis de ambiente; sem arquivo de configuração por enquanto.
type Config struct {
	Addr string

	// DSN do Postgres. Vazio => repositórios in-memory (modo dev).
	DBDSN string

	// Endereço do Redis para sessões. Vazio => sessões in-memory.
	RedisAddr string

	SessionTTL time.Duration
}

// DefaultSessionTTL vale quando SESSION_TTL_MINUTES não está definido.
const DefaultSessionTTL = 8 * time.Hour

// FromEnv monta a configuração a partir do ambiente para o main ficar enxuto.
func FromEnv() Config {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}
	if v := os.Getenv("ADDR"); v != "" {
		addr = v
	}

	ttl := DefaultSessionTTL
	if v := os.Getenv("SESSION_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttl = time.Duration(n) * time.Minute
		}
	}

	return Config{
		Addr:       addr,
		DBDSN:      os.Getenv("DB_DSN"),
		RedisAddr:  os.Getenv("REDIS_ADDR"),
		SessionTTL: ttl,
	}
}
