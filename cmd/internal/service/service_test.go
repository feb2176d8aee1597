package service_test

import (
	"fmt"
	"testing"

	"slotswap/cmd/internal/domain/entity"
	"slotswap/cmd/internal/domain/sqlite"
	"slotswap/cmd/internal/domain/sqlite/repository"
	"slotswap/cmd/internal/service"
	"slotswap/cmd/internal/utils"
	"slotswap/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db     *gorm.DB
	users  *service.DefaultUserService
	events *service.DefaultEventService
	swaps  *service.DefaultSwapService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.Init(":memory:")
	require.NoError(t, err)

	validate := validator.New()
	require.NoError(t, validate.RegisterValidation("iso8601", validators.IsIso8601))
	require.NoError(t, validate.RegisterValidation("nospaces", validators.NoWhiteSpaces))

	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	swapRepo := repository.NewSwapRepository(db)

	return &testEnv{
		db:     db,
		users:  service.NewUserService(userRepo, validate, "test-secret"),
		events: service.NewEventService(eventRepo, validate),
		swaps:  service.NewSwapService(swapRepo, eventRepo),
	}
}

func (env *testEnv) createUser(t *testing.T, name string) *entity.User {
	t.Helper()

	now := utils.NowUTC()
	user := &entity.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "irrelevant",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env *testEnv) createEvent(t *testing.T, owner *entity.User, title, status string) *entity.Event {
	t.Helper()

	now := utils.NowUTC()
	event := &entity.Event{
		Title:     title,
		StartsAt:  now,
		EndsAt:    now + 3600000,
		OwnerID:   owner.ID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, env.db.Create(event).Error)
	return event
}

func (env *testEnv) reloadEvent(t *testing.T, id int) *entity.Event {
	t.Helper()

	var event entity.Event
	require.NoError(t, env.db.First(&event, id).Error)
	return &event
}

func (env *testEnv) reloadSwap(t *testing.T, id int) *entity.SwapRequest {
	t.Helper()

	var swap entity.SwapRequest
	require.NoError(t, env.db.First(&swap, id).Error)
	return &swap
}

func (env *testEnv) countSwapsReferencing(t *testing.T, eventID int) int64 {
	t.Helper()

	var count int64
	err := env.db.Model(&entity.SwapRequest{}).
		Where("my_event_id = ? OR their_event_id = ?", eventID, eventID).
		Count(&count).Error
	require.NoError(t, err)
	return count
}
