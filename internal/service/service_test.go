package service

import (
	"circlenet_backend/internal/config"
	"circlenet_backend/internal/model"
	"circlenet_backend/internal/repository"
	"circlenet_backend/pkg/database"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv bundles the full service graph over an in-memory database so
// tests exercise the real transactions and cascades.
type testEnv struct {
	db          *gorm.DB
	cfg         *config.Config
	userRepo    *repository.UserRepository
	connRepo    *repository.ConnectionRepository
	auth        *AuthService
	users       *UserService
	connections *ConnectionService
	circles     *CircleService
	intros      *IntroService
	invitations *InvitationService
	feed        *FeedService
	messages    *MessageService
}

var envCounter atomic.Int64

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// Cascades only fire with the foreign_keys pragma on. The counter keeps
	// each env's shared in-memory database distinct when a single test
	// builds more than one.
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on", name, envCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Social: config.SocialConfig{
			MaxConnectionsPerUser: 150,
			InviteLifespanDays:    7,
		},
	}
	cfg.JWT.Secret = "test-secret"

	userRepo := repository.NewUserRepository(db)
	connRepo := repository.NewConnectionRepository(db, nil)
	circleRepo := repository.NewCircleRepository(db)
	introRepo := repository.NewIntroRepository(db)
	invRepo := repository.NewInvitationRepository(db)
	postRepo := repository.NewPostRepository(db)
	msgRepo := repository.NewMessageRepository(db)

	env := &testEnv{db: db, cfg: cfg, userRepo: userRepo, connRepo: connRepo}
	env.auth = NewAuthService(userRepo, cfg)
	env.connections = NewConnectionService(connRepo, circleRepo, cfg)
	env.users = NewUserService(userRepo, connRepo, nil)
	env.circles = NewCircleService(circleRepo, connRepo)
	env.intros = NewIntroService(introRepo, connRepo, userRepo, env.connections)
	env.invitations = NewInvitationService(invRepo, circleRepo, connRepo, env.connections, cfg)
	env.feed = NewFeedService(postRepo, circleRepo)
	env.messages = NewMessageService(msgRepo, connRepo)
	return env
}

// setMaxConnections tunes the admission limit the way the config watcher
// would, through the synchronized setter.
func (e *testEnv) setMaxConnections(n int) {
	limits := e.cfg.SocialLimits()
	limits.MaxConnectionsPerUser = n
	e.cfg.SetSocialLimits(limits)
}

func (e *testEnv) createUser(t *testing.T, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "irrelevant",
	}
	require.NoError(t, e.userRepo.Create(user))
	return user
}

func (e *testEnv) createCircle(t *testing.T, ownerID, name string) *model.Circle {
	t.Helper()
	circle, err := e.circles.Create(ownerID, name, "")
	require.NoError(t, err)
	return circle
}

// connect pairs two users and returns the row owned by a.
func (e *testEnv) connect(t *testing.T, aID, bID string) *model.Connection {
	t.Helper()
	conn, err := e.connections.Connect(aID, bID)
	require.NoError(t, err)
	return conn
}
