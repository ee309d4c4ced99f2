package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradefair/internal/controller"
	"tradefair/internal/middleware"
	"tradefair/internal/model"
)

// Controllers 控制器集合
type Controllers struct {
	User         *controller.UserController
	Vendor       *controller.VendorController
	Admin        *controller.AdminController
	Product      *controller.ProductController
	Order        *controller.OrderController
	Payment      *controller.PaymentController
	Review       *controller.ReviewController
	Search       *controller.SearchController
	Activity     *controller.ActivityController
	Notification *controller.NotificationController
}

// SetupRouter 构建 gin 引擎并注册所有路由
func SetupRouter(ctl *Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLog())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// users 身份档案
		users := api.Group("/users", middleware.Auth())
		{
			// POST /api/users/sync
			users.POST("/sync", ctl.User.Sync)
			users.GET("/me", ctl.User.Me)
		}

		// vendors 商家入驻
		vendors := api.Group("/vendors", middleware.Auth())
		{
			// POST /api/vendors/apply
			vendors.POST("/apply", ctl.Vendor.Apply)
		}

		// admin 平台管理组
		admin := api.Group("/admin", middleware.Auth(), middleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/vendors/pending", ctl.Admin.ListPendingVendors)
			admin.POST("/vendors/approve", ctl.Admin.ApproveVendor)
			admin.POST("/vendors/reject", ctl.Admin.RejectVendor)
		}

		// vendor 商家工作台
		vendor := api.Group("/vendor", middleware.Auth())
		{
			vendor.GET("/products", ctl.Product.List)
			vendor.POST("/products", ctl.Product.Create)
			vendor.PATCH("/products/:id/active", ctl.Product.ToggleActive)
			vendor.GET("/products/:id", ctl.Product.Detail)

			vendor.GET("/orders", ctl.Order.VendorOrders)
			vendor.PATCH("/orders/:id/update-status", ctl.Order.UpdateStatus)
		}

		// orders 买家订单
		orders := api.Group("/orders", middleware.Auth())
		{
			// GET /api/orders/my-orders
			orders.GET("/my-orders", ctl.Order.MyOrders)
			orders.GET("/:id", ctl.Order.Detail)
		}

		// payment 支付桥接
		payment := api.Group("/payment", middleware.Auth())
		{
			payment.POST("/initialize", ctl.Payment.Initialize)
			payment.GET("/verify", ctl.Payment.Verify)
		}

		// reviews 评价互动
		reviews := api.Group("/reviews", middleware.Auth())
		{
			reviews.POST("", ctl.Review.Create)
			reviews.POST("/:id/helpful", ctl.Review.ToggleHelpful)
			reviews.POST("/:id/respond", ctl.Review.Respond)
		}
		// 商品评价列表公开可读
		api.GET("/listings/:id/reviews", ctl.Review.ListForListing)

		// search 搜索增强（公开）
		search := api.Group("/search")
		{
			search.POST("/enhance", ctl.Search.Enhance)
			search.GET("/suggestions", ctl.Search.Suggestions)
		}

		// activity 行为埋点（允许匿名）
		api.POST("/activity/track", middleware.OptionalAuth(), ctl.Activity.Track)

		// notifications 通知
		notifications := api.Group("/notifications", middleware.Auth())
		{
			notifications.GET("", ctl.Notification.List)
			notifications.POST("/:id/read", ctl.Notification.MarkRead)
		}
	}

	return r
}
