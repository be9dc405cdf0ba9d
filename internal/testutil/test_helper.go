package testutil

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/noteduco342/readgroup-backend/internal/models"
	"github.com/noteduco342/readgroup-backend/internal/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	TestJWTSecret     = "test-secret-key-for-testing-only"
	TestRefreshSecret = "test-refresh-secret-for-testing-only"
)

// TestHelper provides utility functions for tests
type TestHelper struct {
	t *testing.T
}

func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{t: t}
}

// NewTestDB opens a migrated in-memory SQLite database that lives as long as
// the test. A single connection keeps every query on the same memory store.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := repository.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// CreateTestUser creates a test user with default values
func (h *TestHelper) CreateTestUser(username string) *models.User {
	if username == "" {
		username = "testuser"
	}
	return &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: "hashed_password_123",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

// CreateTestGroup creates a group owned by owner whose member set holds the
// owner plus extra.
func (h *TestHelper) CreateTestGroup(owner, name string, extra ...string) *models.Group {
	if name == "" {
		name = "Test Group"
	}
	id := uuid.NewString()
	members := []models.GroupMember{{GroupID: id, UserID: owner}}
	for _, m := range extra {
		members = append(members, models.GroupMember{GroupID: id, UserID: m})
	}
	return &models.Group{
		ID:      id,
		Name:    name,
		Owner:   owner,
		Members: members,
	}
}

// CreateTestMessage creates a message on read at the given progress offset
func (h *TestHelper) CreateTestMessage(owner, read string, progress float64, content string) *models.Message {
	if content == "" {
		content = "Test message"
	}
	return &models.Message{
		ID:        uuid.NewString(),
		Owner:     owner,
		OwnerName: "sender",
		Read:      read,
		Progress:  progress,
		Content:   content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
