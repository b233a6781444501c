package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/bakemart/backend/config"
	"github.com/bakemart/backend/internal/application"
	"github.com/bakemart/backend/internal/notify"
	"github.com/bakemart/backend/internal/session"
	"github.com/bakemart/backend/pkg/helpers"
	"github.com/bakemart/backend/pkg/mailer"
)

// App-level container sharing constructed components across packages so the
// router modules can auto-wire from singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client

	jwtManager *helpers.JWTManager

	mailgunClient *mailer.Mailgun
	rabbitPub     *helpers.RabbitPublisher
	esClient      *elasticsearch.Client

	sessionStore session.Store
	notifier     notify.Notifier
	authCtrl     *application.AuthController
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetGCS(s *storage.Client)     { gcsClient = s }
func GetGCS() *storage.Client      { return gcsClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

func SetMailgun(m *mailer.Mailgun)            { mailgunClient = m }
func GetMailgun() *mailer.Mailgun             { return mailgunClient }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }

func SetSessionStore(s session.Store)              { sessionStore = s }
func GetSessionStore() session.Store               { return sessionStore }
func SetNotifier(n notify.Notifier)                { notifier = n }
func GetNotifier() notify.Notifier                 { return notifier }
func SetAuthController(c *application.AuthController) { authCtrl = c }
func GetAuthController() *application.AuthController  { return authCtrl }
