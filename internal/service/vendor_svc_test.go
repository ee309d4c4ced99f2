package service

import (
	"context"
	"errors"
	"testing"

	"tradefair/internal/model"
)

func setupVendorService(t *testing.T) (*VendorService, *testDeps) {
	t.Helper()

	deps := newTestDeps(t)
	svc := NewVendorService(deps.vendors, deps.users, nil)
	return svc, deps
}

func TestVendorService_Apply(t *testing.T) {
	svc, deps := setupVendorService(t)
	ctx := context.Background()

	buyer := seedUser(t, deps.db, "clerk_buyer_1", model.RoleBuyer)

	t.Run("正常申请", func(t *testing.T) {
		vendor, err := svc.Apply(ctx, principalOf(buyer), "  手作陶艺坊  ", "手工陶瓷")
		if err != nil {
			t.Fatalf("申请失败: %v", err)
		}
		if vendor.BusinessName != "手作陶艺坊" {
			t.Errorf("店铺名未去除空白: %q", vendor.BusinessName)
		}
		if vendor.Status != model.VendorStatusPending {
			t.Errorf("新申请状态应为 PENDING, 实际 %s", vendor.Status)
		}
	})

	t.Run("重复申请被拒", func(t *testing.T) {
		_, err := svc.Apply(ctx, principalOf(buyer), "第二家店", "")
		if !errors.Is(err, ErrInvalidState) {
			t.Errorf("期望 ErrInvalidState, 实际 %v", err)
		}
	})

	t.Run("店铺名为空", func(t *testing.T) {
		other := seedUser(t, deps.db, "clerk_buyer_2", model.RoleBuyer)
		_, err := svc.Apply(ctx, principalOf(other), "   ", "")
		if !errors.Is(err, ErrValidation) {
			t.Errorf("期望 ErrValidation, 实际 %v", err)
		}
	})

	t.Run("匿名申请", func(t *testing.T) {
		_, err := svc.Apply(ctx, nil, "店", "")
		if !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("期望 ErrUnauthenticated, 实际 %v", err)
		}
	})
}

func TestVendorService_Approve(t *testing.T) {
	svc, deps := setupVendorService(t)
	ctx := context.Background()

	admin := seedUser(t, deps.db, "clerk_admin", model.RoleAdmin)
	applicant := seedUser(t, deps.db, "clerk_applicant", model.RoleBuyer)
	vendor := seedVendor(t, deps.db, applicant.ID, model.VendorStatusPending)

	t.Run("非管理员无权审核", func(t *testing.T) {
		_, err := svc.Approve(ctx, principalOf(applicant), vendor.ID)
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("期望 ErrForbidden, 实际 %v", err)
		}
	})

	t.Run("审核通过", func(t *testing.T) {
		approved, err := svc.Approve(ctx, principalOf(admin), vendor.ID)
		if err != nil {
			t.Fatalf("审核失败: %v", err)
		}
		if approved.Status != model.VendorStatusApproved {
			t.Errorf("状态应为 APPROVED, 实际 %s", approved.Status)
		}
		if approved.ApprovedAt == nil {
			t.Error("ApprovedAt 未写入")
		}

		// 用户角色同事务内提升为 VENDOR
		var user model.User
		if err := deps.db.First(&user, applicant.ID).Error; err != nil {
			t.Fatalf("读取用户失败: %v", err)
		}
		if user.Role != model.RoleVendor {
			t.Errorf("用户角色应提升为 VENDOR, 实际 %s", user.Role)
		}

		// 站内通知已生成
		var count int64
		deps.db.Model(&model.Notification{}).
			Where("user_id = ? AND type = ?", applicant.ID, model.NotificationVendorApproved).
			Count(&count)
		if count != 1 {
			t.Errorf("期望 1 条审核通过通知, 实际 %d", count)
		}
	})

	t.Run("重复审批被拒", func(t *testing.T) {
		_, err := svc.Approve(ctx, principalOf(admin), vendor.ID)
		if !errors.Is(err, ErrInvalidState) {
			t.Errorf("期望 ErrInvalidState, 实际 %v", err)
		}
	})

	t.Run("申请不存在", func(t *testing.T) {
		_, err := svc.Approve(ctx, principalOf(admin), 99999)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("期望 ErrNotFound, 实际 %v", err)
		}
	})
}

func TestVendorService_Reject(t *testing.T) {
	svc, deps := setupVendorService(t)
	ctx := context.Background()

	admin := seedUser(t, deps.db, "clerk_admin", model.RoleAdmin)
	applicant := seedUser(t, deps.db, "clerk_applicant", model.RoleBuyer)
	vendor := seedVendor(t, deps.db, applicant.ID, model.VendorStatusPending)

	t.Run("驳回原因必填", func(t *testing.T) {
		_, err := svc.Reject(ctx, principalOf(admin), vendor.ID, "  ")
		if !errors.Is(err, ErrValidation) {
			t.Errorf("期望 ErrValidation, 实际 %v", err)
		}
	})

	t.Run("驳回", func(t *testing.T) {
		rejected, err := svc.Reject(ctx, principalOf(admin), vendor.ID, "资料不全")
		if err != nil {
			t.Fatalf("驳回失败: %v", err)
		}
		if rejected.Status != model.VendorStatusRejected {
			t.Errorf("状态应为 REJECTED, 实际 %s", rejected.Status)
		}
		if rejected.RejectionReason != "资料不全" {
			t.Errorf("驳回原因未写入: %q", rejected.RejectionReason)
		}

		// 驳回不改变用户角色
		var user model.User
		deps.db.First(&user, applicant.ID)
		if user.Role != model.RoleBuyer {
			t.Errorf("驳回后角色应保持 BUYER, 实际 %s", user.Role)
		}
	})

	t.Run("已处理的申请不可再驳回", func(t *testing.T) {
		_, err := svc.Reject(ctx, principalOf(admin), vendor.ID, "再驳一次")
		if !errors.Is(err, ErrInvalidState) {
			t.Errorf("期望 ErrInvalidState, 实际 %v", err)
		}
	})
}

func TestVendorService_ListPending(t *testing.T) {
	svc, deps := setupVendorService(t)
	ctx := context.Background()

	admin := seedUser(t, deps.db, "clerk_admin", model.RoleAdmin)
	u1 := seedUser(t, deps.db, "clerk_u1", model.RoleBuyer)
	u2 := seedUser(t, deps.db, "clerk_u2", model.RoleBuyer)
	seedVendor(t, deps.db, u1.ID, model.VendorStatusPending)
	seedVendor(t, deps.db, u2.ID, model.VendorStatusApproved)

	pending, err := svc.ListPending(ctx, principalOf(admin))
	if err != nil {
		t.Fatalf("查询待审核列表失败: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("期望 1 条待审核, 实际 %d", len(pending))
	}
	if pending[0].UserID != u1.ID {
		t.Errorf("待审核记录归属错误: %d", pending[0].UserID)
	}
}
