package service

import (
	"context"
	"errors"
	"testing"

	"tradefair/internal/model"
)

func setupReviewService(t *testing.T) (*ReviewService, *testDeps) {
	t.Helper()

	deps := newTestDeps(t)
	svc := NewReviewService(deps.reviews, deps.listings, deps.vendors, deps.users)
	return svc, deps
}

func TestReviewService_Create(t *testing.T) {
	svc, deps := setupReviewService(t)
	ctx := context.Background()

	buyer := seedUser(t, deps.db, "clerk_buyer", model.RoleBuyer)
	seller := seedUser(t, deps.db, "clerk_seller", model.RoleVendor)
	vendor := seedVendor(t, deps.db, seller.ID, model.VendorStatusApproved)
	listing := seedListing(t, deps.db, vendor.ID, "Blue Mug", true)

	t.Run("正常发表", func(t *testing.T) {
		review, err := svc.Create(ctx, principalOf(buyer), listing.ID, 5, "非常好用")
		if err != nil {
			t.Fatalf("发表失败: %v", err)
		}
		if review.Rating != 5 || review.HelpfulCount != 0 {
			t.Errorf("评价初始状态异常: %+v", review)
		}
	})

	t.Run("评分越界", func(t *testing.T) {
		for _, rating := range []int{0, 6, -1} {
			_, err := svc.Create(ctx, principalOf(buyer), listing.ID, rating, "x")
			if !errors.Is(err, ErrValidation) {
				t.Errorf("评分 %d: 期望 ErrValidation, 实际 %v", rating, err)
			}
		}
	})

	t.Run("商品不存在", func(t *testing.T) {
		_, err := svc.Create(ctx, principalOf(buyer), 99999, 4, "x")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("期望 ErrNotFound, 实际 %v", err)
		}
	})
}

func TestReviewService_ToggleHelpful(t *testing.T) {
	svc, deps := setupReviewService(t)
	ctx := context.Background()

	author := seedUser(t, deps.db, "clerk_author", model.RoleBuyer)
	voterA := seedUser(t, deps.db, "clerk_voter_a", model.RoleBuyer)
	voterB := seedUser(t, deps.db, "clerk_voter_b", model.RoleBuyer)
	seller := seedUser(t, deps.db, "clerk_seller", model.RoleVendor)
	vendor := seedVendor(t, deps.db, seller.ID, model.VendorStatusApproved)
	listing := seedListing(t, deps.db, vendor.ID, "Blue Mug", true)

	review, err := svc.Create(ctx, principalOf(author), listing.ID, 4, "不错")
	if err != nil {
		t.Fatalf("准备评价失败: %v", err)
	}

	t.Run("首次投票计数加一", func(t *testing.T) {
		count, isHelpful, err := svc.ToggleHelpful(ctx, principalOf(voterA), review.ID)
		if err != nil {
			t.Fatalf("投票失败: %v", err)
		}
		if !isHelpful || count != 1 {
			t.Errorf("期望 (1, true), 实际 (%d, %v)", count, isHelpful)
		}
	})

	t.Run("第二人投票互不影响", func(t *testing.T) {
		count, isHelpful, err := svc.ToggleHelpful(ctx, principalOf(voterB), review.ID)
		if err != nil {
			t.Fatalf("投票失败: %v", err)
		}
		if !isHelpful || count != 2 {
			t.Errorf("期望 (2, true), 实际 (%d, %v)", count, isHelpful)
		}
	})

	t.Run("再次投票撤销", func(t *testing.T) {
		count, isHelpful, err := svc.ToggleHelpful(ctx, principalOf(voterA), review.ID)
		if err != nil {
			t.Fatalf("撤销失败: %v", err)
		}
		if isHelpful || count != 1 {
			t.Errorf("期望 (1, false), 实际 (%d, %v)", count, isHelpful)
		}

		// 持久化计数与返回值一致
		var persisted model.Review
		deps.db.First(&persisted, review.ID)
		if persisted.HelpfulCount != 1 {
			t.Errorf("落库计数应为 1, 实际 %d", persisted.HelpfulCount)
		}
	})

	t.Run("评价不存在", func(t *testing.T) {
		_, _, err := svc.ToggleHelpful(ctx, principalOf(voterA), 99999)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("期望 ErrNotFound, 实际 %v", err)
		}
	})
}

func TestReviewService_Respond(t *testing.T) {
	svc, deps := setupReviewService(t)
	ctx := context.Background()

	buyer := seedUser(t, deps.db, "clerk_buyer", model.RoleBuyer)
	seller := seedUser(t, deps.db, "clerk_seller", model.RoleVendor)
	vendor := seedVendor(t, deps.db, seller.ID, model.VendorStatusApproved)
	otherSeller := seedUser(t, deps.db, "clerk_other_seller", model.RoleVendor)
	seedVendor(t, deps.db, otherSeller.ID, model.VendorStatusApproved)
	listing := seedListing(t, deps.db, vendor.ID, "Blue Mug", true)

	review, err := svc.Create(ctx, principalOf(buyer), listing.ID, 3, "一般般")
	if err != nil {
		t.Fatalf("准备评价失败: %v", err)
	}

	t.Run("回复内容必填", func(t *testing.T) {
		_, err := svc.Respond(ctx, principalOf(seller), review.ID, "   ")
		if !errors.Is(err, ErrValidation) {
			t.Errorf("期望 ErrValidation, 实际 %v", err)
		}
	})

	t.Run("非本店商品的评价无权回复", func(t *testing.T) {
		_, err := svc.Respond(ctx, principalOf(otherSeller), review.ID, "感谢反馈")
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("期望 ErrForbidden, 实际 %v", err)
		}
	})

	t.Run("正常回复", func(t *testing.T) {
		responded, err := svc.Respond(ctx, principalOf(seller), review.ID, "感谢反馈，我们会改进")
		if err != nil {
			t.Fatalf("回复失败: %v", err)
		}
		if !responded.HasVendorResponse() {
			t.Error("回复未写入")
		}
		if responded.VendorRespondedAt == nil {
			t.Error("回复时间未写入")
		}
	})

	t.Run("回复只写一次", func(t *testing.T) {
		_, err := svc.Respond(ctx, principalOf(seller), review.ID, "再改一下措辞")
		if !errors.Is(err, ErrInvalidState) {
			t.Errorf("期望 ErrInvalidState, 实际 %v", err)
		}
	})
}

func TestReviewService_ListForListing(t *testing.T) {
	svc, deps := setupReviewService(t)
	ctx := context.Background()

	buyer := seedUser(t, deps.db, "clerk_buyer", model.RoleBuyer)
	seller := seedUser(t, deps.db, "clerk_seller", model.RoleVendor)
	vendor := seedVendor(t, deps.db, seller.ID, model.VendorStatusApproved)
	listing := seedListing(t, deps.db, vendor.ID, "Blue Mug", true)

	if _, err := svc.Create(ctx, principalOf(buyer), listing.ID, 5, "好"); err != nil {
		t.Fatalf("准备评价失败: %v", err)
	}

	// 公开读取不需要认证主体
	reviews, err := svc.ListForListing(ctx, listing.ID)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("期望 1 条评价, 实际 %d", len(reviews))
	}
	if reviews[0].Author == nil || reviews[0].Author.ID != buyer.ID {
		t.Errorf("评价作者未预加载: %+v", reviews[0].Author)
	}
}

func TestReviewService_HelpfulCountMatchesVotes(t *testing.T) {
	svc, deps := setupReviewService(t)
	ctx := context.Background()

	author := seedUser(t, deps.db, "clerk_author", model.RoleBuyer)
	voter := seedUser(t, deps.db, "clerk_voter", model.RoleBuyer)
	seller := seedUser(t, deps.db, "clerk_seller", model.RoleVendor)
	vendor := seedVendor(t, deps.db, seller.ID, model.VendorStatusApproved)
	listing := seedListing(t, deps.db, vendor.ID, "Blue Mug", true)

	review, err := svc.Create(ctx, principalOf(author), listing.ID, 4, "不错")
	if err != nil {
		t.Fatalf("准备评价失败: %v", err)
	}

	t.Run("计数漂移后投票回正", func(t *testing.T) {
		// 人为制造计数与投票行不一致
		deps.db.Model(&model.Review{}).Where("id = ?", review.ID).
			UpdateColumn("helpful_count", 5)

		count, isHelpful, err := svc.ToggleHelpful(ctx, principalOf(voter), review.ID)
		if err != nil {
			t.Fatalf("投票失败: %v", err)
		}
		if !isHelpful || count != 1 {
			t.Errorf("期望 (1, true), 实际 (%d, %v)", count, isHelpful)
		}
	})

	t.Run("投票行已先行删除时转为投票", func(t *testing.T) {
		// 模拟同一用户的撤销请求已抢先落库：投票行没了，计数还停在旧值
		deps.db.Where("review_id = ? AND user_id = ?", review.ID, voter.ID).
			Delete(&model.ReviewHelpful{})
		deps.db.Model(&model.Review{}).Where("id = ?", review.ID).
			UpdateColumn("helpful_count", 1)

		count, isHelpful, err := svc.ToggleHelpful(ctx, principalOf(voter), review.ID)
		if err != nil {
			t.Fatalf("投票失败: %v", err)
		}
		if !isHelpful || count != 1 {
			t.Errorf("期望 (1, true), 实际 (%d, %v)", count, isHelpful)
		}

		// 计数必须等于投票行数
		var rows int64
		deps.db.Model(&model.ReviewHelpful{}).
			Where("review_id = ?", review.ID).Count(&rows)
		if rows != count {
			t.Errorf("计数 %d 与投票行数 %d 不一致", count, rows)
		}

		var persisted model.Review
		deps.db.First(&persisted, review.ID)
		if persisted.HelpfulCount != rows {
			t.Errorf("落库计数 %d 与投票行数 %d 不一致", persisted.HelpfulCount, rows)
		}
	})
}
