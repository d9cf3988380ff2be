package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"home-services/internal/data/entity"
	"home-services/internal/data/repository"
	"home-services/pkg/notify"
	"home-services/pkg/utils"

	"github.com/stretchr/testify/require"
)

func testConfig() *utils.Config {
	return &utils.Config{
		App:    utils.AppConfig{Name: "home-services", Timezone: time.UTC},
		JWT:    utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
		Notify: utils.NotifyConfig{Timeout: time.Second},
	}
}

// recordingNotifier keeps every message and answers with err.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Message
	err  error
}

func (n *recordingNotifier) Notify(ctx context.Context, msg notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return n.err
}

func (n *recordingNotifier) messages() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.sent...)
}

func seedService(t *testing.T, repo *repository.Repository, slug, title string, price float64) *entity.Service {
	t.Helper()
	now := time.Now()
	service := &entity.Service{
		Base:      entity.Base{ID: utils.NewObjectID(), CreatedAt: now, UpdatedAt: now},
		Slug:      slug,
		Title:     title,
		Category:  "AC",
		BasePrice: price,
	}
	require.NoError(t, repo.Service.Create(context.Background(), service))
	return service
}

func seedUser(t *testing.T, repo *repository.Repository, email string, role entity.UserRole, blocked bool) *entity.User {
	t.Helper()
	now := time.Now()
	user := &entity.User{
		Base:    entity.Base{ID: utils.NewObjectID(), CreatedAt: now, UpdatedAt: now},
		Name:    "Asha",
		Email:   email,
		Role:    role,
		Blocked: blocked,
	}
	require.NoError(t, repo.User.Create(context.Background(), user))
	return user
}
