package service

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tradefair/internal/model"
	"tradefair/internal/repository"
)

// ==================== 测试辅助 ====================

// testDeps 单测共用的仓库集合
type testDeps struct {
	db            *gorm.DB
	users         repository.UserRepository
	vendors       repository.VendorRepository
	listings      repository.ListingRepository
	orders        repository.OrderRepository
	reviews       repository.ReviewRepository
	notifications repository.NotificationRepository
	activities    repository.ActivityRepository
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()

	db := setupServiceTestDB(t)
	return &testDeps{
		db:            db,
		users:         repository.NewUserRepository(db),
		vendors:       repository.NewVendorRepository(db),
		listings:      repository.NewListingRepository(db),
		orders:        repository.NewOrderRepository(db),
		reviews:       repository.NewReviewRepository(db),
		notifications: repository.NewNotificationRepository(db),
		activities:    repository.NewActivityRepository(db),
	}
}

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{}, &model.Vendor{},
		&model.Listing{},
		&model.Order{}, &model.OrderItem{},
		&model.Review{}, &model.ReviewHelpful{},
		&model.Notification{}, &model.UserActivity{},
	); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, clerkID, role string) *model.User {
	t.Helper()

	user := &model.User{
		ClerkUserID: clerkID,
		Role:        role,
		DisplayName: "用户-" + clerkID,
		Email:       clerkID + "@example.com",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("写入测试用户失败: %v", err)
	}
	return user
}

func seedVendor(t *testing.T, db *gorm.DB, userID int64, status string) *model.Vendor {
	t.Helper()

	vendor := &model.Vendor{
		UserID:       userID,
		BusinessName: "测试店铺",
		Status:       status,
	}
	if err := db.Create(vendor).Error; err != nil {
		t.Fatalf("写入测试卖家失败: %v", err)
	}
	return vendor
}

func seedListing(t *testing.T, db *gorm.DB, vendorID int64, title string, active bool) *model.Listing {
	t.Helper()

	listing := &model.Listing{
		VendorID:    vendorID,
		Title:       title,
		Description: "描述: " + title,
		PriceAmount: 2500,
		Inventory:   10,
		Categories:  []string{"home"},
		Images:      []string{"https://img.example.com/1.jpg"},
		IsActive:    active,
	}
	if err := db.Create(listing).Error; err != nil {
		t.Fatalf("写入测试商品失败: %v", err)
	}
	return listing
}

func principalOf(u *model.User) *Principal {
	return &Principal{ClerkUserID: u.ClerkUserID, Role: u.Role}
}
