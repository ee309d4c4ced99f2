package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tradefair/internal/controller"
	"tradefair/internal/middleware"
	"tradefair/internal/model"
	"tradefair/internal/repository"
	"tradefair/internal/router"
	"tradefair/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 测试环境 ====================

func setupTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	return setupTestServerWith(t, nil, false, failingEnhancer{})
}

// setupTestServerWith 可注入支付网关与搜索增强器的完整路由环境
func setupTestServerWith(t *testing.T, gateway service.PaymentGateway, paymentConfigured bool, enhancer service.QueryEnhancer) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
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

	users := repository.NewUserRepository(db)
	vendors := repository.NewVendorRepository(db)
	listings := repository.NewListingRepository(db)
	orders := repository.NewOrderRepository(db)
	reviews := repository.NewReviewRepository(db)
	notifications := repository.NewNotificationRepository(db)
	activities := repository.NewActivityRepository(db)

	userSvc := service.NewUserService(users)
	vendorSvc := service.NewVendorService(vendors, users, nil)
	catalogSvc := service.NewCatalogService(listings, vendors, users)
	orderSvc := service.NewOrderService(orders, vendors, users)
	paymentSvc := service.NewPaymentService(gateway, users, "http://localhost:3000", paymentConfigured)
	reviewSvc := service.NewReviewService(reviews, listings, vendors, users)
	searchSvc := service.NewSearchService(listings, enhancer)
	activitySvc := service.NewActivityService(activities, users)
	notificationSvc := service.NewNotificationService(notifications, users)

	engine := router.SetupRouter(&router.Controllers{
		User:         controller.NewUserController(userSvc),
		Vendor:       controller.NewVendorController(vendorSvc),
		Admin:        controller.NewAdminController(vendorSvc),
		Product:      controller.NewProductController(catalogSvc),
		Order:        controller.NewOrderController(orderSvc),
		Payment:      controller.NewPaymentController(paymentSvc),
		Review:       controller.NewReviewController(reviewSvc),
		Search:       controller.NewSearchController(searchSvc),
		Activity:     controller.NewActivityController(activitySvc),
		Notification: controller.NewNotificationController(notificationSvc),
	})
	return engine, db
}

// failingEnhancer 控制器测试不触达真实 AI
type failingEnhancer struct{}

func (failingEnhancer) Enhance(ctx context.Context, query string) (*service.EnhancedQuery, error) {
	return nil, service.ErrGateway
}

func (failingEnhancer) Suggest(ctx context.Context, query string, contextTitles []string) ([]string, error) {
	return nil, service.ErrGateway
}

func performRequest(r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenFor(t *testing.T, clerkID, role string) string {
	t.Helper()
	token, err := middleware.GenerateToken(clerkID, role)
	if err != nil {
		t.Fatalf("签发测试令牌失败: %v", err)
	}
	return token
}

// ==================== 认证与 RBAC ====================

func TestAuthBoundary(t *testing.T) {
	engine, _ := setupTestServer(t)

	t.Run("无令牌访问受保护接口", func(t *testing.T) {
		w := performRequest(engine, http.MethodGet, "/api/users/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("普通用户访问管理接口", func(t *testing.T) {
		token := tokenFor(t, "clerk_buyer", model.RoleBuyer)
		w := performRequest(engine, http.MethodGet, "/api/admin/vendors/pending", token, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("公开搜索联想无需令牌", func(t *testing.T) {
		w := performRequest(engine, http.MethodGet, "/api/search/suggestions?q=mu", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success     bool     `json:"success"`
			Suggestions []string `json:"suggestions"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Empty(t, resp.Suggestions)
	})
}

// ==================== 端到端流程 ====================

func TestUserSyncThenMe(t *testing.T) {
	engine, _ := setupTestServer(t)
	token := tokenFor(t, "clerk_alice", model.RoleBuyer)

	w := performRequest(engine, http.MethodPost, "/api/users/sync", token, map[string]interface{}{
		"displayName": "Alice",
		"email":       "alice@example.com",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var syncResp struct {
		Success bool `json:"success"`
		User    struct {
			Role        string `json:"role"`
			DisplayName string `json:"displayName"`
		} `json:"user"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &syncResp))
	assert.True(t, syncResp.Success)
	assert.Equal(t, model.RoleBuyer, syncResp.User.Role)

	w = performRequest(engine, http.MethodGet, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestActivityTrackAnonymous(t *testing.T) {
	engine, db := setupTestServer(t)

	// 匿名埋点：成功但 tracked=false
	w := performRequest(engine, http.MethodPost, "/api/activity/track", "", map[string]interface{}{
		"activityType": model.ActivityViewProduct,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Tracked bool `json:"tracked"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.False(t, resp.Tracked)

	var count int64
	db.Model(&model.UserActivity{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestVendorApplyFlow(t *testing.T) {
	engine, db := setupTestServer(t)

	buyerToken := tokenFor(t, "clerk_bob", model.RoleBuyer)
	performRequest(engine, http.MethodPost, "/api/users/sync", buyerToken, map[string]interface{}{
		"displayName": "Bob", "email": "bob@example.com",
	})

	// 申请入驻
	w := performRequest(engine, http.MethodPost, "/api/vendors/apply", buyerToken, map[string]interface{}{
		"businessName": "Bob 的店",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// 重复申请 400
	w = performRequest(engine, http.MethodPost, "/api/vendors/apply", buyerToken, map[string]interface{}{
		"businessName": "又一家店",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 管理员审批通过
	admin := &model.User{ClerkUserID: "clerk_root", Role: model.RoleAdmin, Email: "root@example.com"}
	assert.NoError(t, db.Create(admin).Error)
	adminToken := tokenFor(t, admin.ClerkUserID, model.RoleAdmin)

	var vendor model.Vendor
	assert.NoError(t, db.First(&vendor).Error)
	w = performRequest(engine, http.MethodPost, "/api/admin/vendors/approve", adminToken, map[string]interface{}{
		"vendorId": vendor.ID,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// 审批后买家角色已提升, 可创建商品
	vendorToken := tokenFor(t, "clerk_bob", model.RoleVendor)
	w = performRequest(engine, http.MethodPost, "/api/vendor/products", vendorToken, map[string]interface{}{
		"title":       "Blue Mug",
		"description": "A handmade blue ceramic mug",
		"price":       "1500",
		"inventory":   "10",
		"categories":  []string{"home"},
		"images":      []string{"https://img.example.com/mug.jpg"},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var productResp struct {
		Product struct {
			Price    float64 `json:"price"`
			IsActive bool    `json:"isActive"`
		} `json:"product"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &productResp))
	assert.Equal(t, 15.0, productResp.Product.Price)
	assert.True(t, productResp.Product.IsActive)
}

func TestPaymentNotConfigured(t *testing.T) {
	engine, _ := setupTestServer(t)

	token := tokenFor(t, "clerk_payer", model.RoleBuyer)
	performRequest(engine, http.MethodPost, "/api/users/sync", token, map[string]interface{}{
		"displayName": "Payer", "email": "payer@example.com",
	})

	w := performRequest(engine, http.MethodPost, "/api/payment/initialize", token, map[string]interface{}{
		"email":     "payer@example.com",
		"amount":    150000,
		"orderId":   1,
		"reference": "ref-1",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "payment system not configured")
}

// cannedEnhancer 固定返回结构化意图
type cannedEnhancer struct{}

func (cannedEnhancer) Enhance(ctx context.Context, query string) (*service.EnhancedQuery, error) {
	return &service.EnhancedQuery{
		Keywords:    []string{"mug"},
		PriceIntent: "budget",
	}, nil
}

func (cannedEnhancer) Suggest(ctx context.Context, query string, contextTitles []string) ([]string, error) {
	return []string{"Blue Mug"}, nil
}

func TestPaymentInitializeResponse(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		var data map[string]interface{}
		if r.URL.Path == "/transaction/initialize" {
			data = map[string]interface{}{
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code":       "abc123",
				"reference":         "ref-1",
			}
		} else {
			data = map[string]interface{}{
				"status":    "success",
				"reference": "ref-1",
				"amount":    float64(5000),
				"currency":  "NGN",
				"channel":   "card",
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data":   data,
		})
	}))
	t.Cleanup(stub.Close)

	gateway := service.NewPaystackClient(&service.PaystackConfig{
		BaseURL:   stub.URL,
		SecretKey: "sk_test_xxx",
	})
	r, db := setupTestServerWith(t, gateway, true, failingEnhancer{})

	payer := &model.User{ClerkUserID: "clerk_payer", Email: "payer@example.com", Role: model.RoleBuyer}
	assert.NoError(t, db.Create(payer).Error)
	token := tokenFor(t, "clerk_payer", model.RoleBuyer)

	w := performRequest(r, "POST", "/api/payment/initialize", token, map[string]interface{}{
		"email":     "payer@example.com",
		"amount":    5000,
		"orderId":   1,
		"reference": "ref-1",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	// 支付字段平铺在顶层
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "https://checkout.paystack.com/abc123", body["authorizationUrl"])
	assert.Equal(t, "abc123", body["accessCode"])
	assert.Equal(t, "ref-1", body["reference"])
	assert.NotContains(t, body, "data")

	// 核验结果同样平铺
	w = performRequest(r, "GET", "/api/payment/verify?reference=ref-1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	body = map[string]interface{}{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "ref-1", body["reference"])
	assert.Equal(t, float64(5000), body["amount"])
	assert.Equal(t, "NGN", body["currency"])
	assert.NotContains(t, body, "data")
}

func TestSearchEnhanceResponse(t *testing.T) {
	r, _ := setupTestServerWith(t, nil, false, cannedEnhancer{})

	w := performRequest(r, "POST", "/api/search/enhance", "", map[string]string{
		"query": "cheap mug",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	// 回显原始查询，结构化结果挂在 enhanced 下
	assert.Equal(t, "cheap mug", body["original"])
	assert.NotContains(t, body, "data")

	enhanced, ok := body["enhanced"].(map[string]interface{})
	assert.True(t, ok, "enhanced 应为对象: %v", body["enhanced"])
	assert.Equal(t, []interface{}{"mug"}, enhanced["keywords"])
	assert.NotNil(t, enhanced["priceRange"])
}
