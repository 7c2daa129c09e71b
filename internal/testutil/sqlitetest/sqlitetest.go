package sqlitetest

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"relief-fund-backend/internal/domain/member"
	"relief-fund-backend/internal/infrastructure/db"
)

// Open returns a migrated SQLite database in a file under t.TempDir. A file
// is used instead of :memory: so every pooled connection sees the same data.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "relief.db") + "?_txlock=immediate&_busy_timeout=5000"
	gdb, err := db.OpenGormWithDialector(sqlite.Open(dsn), db.WithPool(8, 8, 0, 0))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })
	if err := db.AutoMigrate(context.Background(), gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

// SeedMembers inserts active members with the given ids.
func SeedMembers(t testing.TB, gdb *gorm.DB, memberIDs ...string) {
	t.Helper()
	for _, id := range memberIDs {
		if err := gdb.Create(&member.Member{MemberID: id, Name: "member " + id, Active: true}).Error; err != nil {
			t.Fatalf("seed member %s: %v", id, err)
		}
	}
}

// Deactivate flips a member to inactive.
func Deactivate(t testing.TB, gdb *gorm.DB, memberID string) {
	t.Helper()
	err := gdb.Model(&member.Member{}).Where("member_id = ?", memberID).Update("active", false).Error
	if err != nil {
		t.Fatalf("deactivate %s: %v", memberID, err)
	}
}
