package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/planify/config"
	"github.com/oksasatya/planify/internal/infrastructure/store"
	"github.com/oksasatya/planify/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router auto-wires modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	dataStore   *store.Store
	redisClient *redis.Client

	jwtManager *helpers.JWTManager

	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config {
	if cfg == nil {
		cfg = config.Load()
	}
	return cfg
}
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return logger
}
func SetStore(s *store.Store)      { dataStore = s }
func GetStore() *store.Store       { return dataStore }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.DefaultJWT()
}

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }

// Reset clears every singleton.
func Reset() {
	cfg, logger, dataStore, redisClient, jwtManager, rabbitPub, esClient = nil, nil, nil, nil, nil, nil, nil
}
