// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/client"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/auth"
	"github.com/your-org/storefront/internal/pkg/pdf"
)

// Dependencies are the services the routes are served by
type Dependencies struct {
	Config   *config.Config
	Logger   logrus.FieldLogger
	Backend  *client.Client
	Carts    *cart.Service
	Checkout *checkout.Service
	PDF      *pdf.Service

	// Auth is shared by every route group so confirmed tokens are cached
	// once. SetupRoutes builds it from Config and Backend when nil.
	Auth *auth.Authenticator
}

// SetupRoutes registers every API route on rg
func SetupRoutes(rg *gin.RouterGroup, deps Dependencies) {
	if deps.Auth == nil {
		deps.Auth = auth.NewAuthenticator(deps.Config, deps.Backend)
	}

	SetupAuthRoutes(rg, deps)
	SetupUserRoutes(rg, deps)
	SetupProductRoutes(rg, deps)
	SetupCartRoutes(rg, deps)
	SetupOrderRoutes(rg, deps)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.Backend)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}
}

// SetupUserRoutes sets up the member account routes
func SetupUserRoutes(rg *gin.RouterGroup, deps Dependencies) {
	memberHandler := handlers.NewMemberHandler(deps.Backend)
	requireAuth := middleware.AuthMiddleware(deps.Auth)

	users := rg.Group("/users")
	users.Use(requireAuth)
	{
		users.GET("/dashboard", memberHandler.GetDashboard)
		users.GET("/profile", memberHandler.GetProfile)
		users.PUT("/profile", memberHandler.UpdateProfile)
		users.GET("/team", memberHandler.GetTeam)
	}

	wallet := rg.Group("/wallet")
	wallet.Use(requireAuth)
	{
		wallet.GET("/balance", memberHandler.GetWalletBalance)
		wallet.GET("/transactions", memberHandler.GetWalletTransactions)
		wallet.POST("/withdraw", memberHandler.RequestWithdrawal)
		wallet.POST("/transfer", memberHandler.TransferFunds)
	}

	kyc := rg.Group("/kyc")
	kyc.Use(requireAuth)
	{
		kyc.GET("/status", memberHandler.GetKYCStatus)
		kyc.POST("/submit", memberHandler.SubmitKYC)
		kyc.PUT("/update", memberHandler.UpdateKYC)
	}

	finance := rg.Group("/finance")
	finance.Use(requireAuth)
	{
		finance.GET("/summary", memberHandler.GetFinanceSummary)
		finance.GET("/payouts", memberHandler.GetPayouts)
		finance.PUT("/bank-details", memberHandler.UpdateBankDetails)
	}

	bonuses := rg.Group("/bonuses")
	bonuses.Use(requireAuth)
	{
		bonuses.GET("", memberHandler.ListBonusPrograms)
		bonuses.GET("/:program", memberHandler.GetBonus)
	}
}

// SetupProductRoutes sets up product related routes
func SetupProductRoutes(rg *gin.RouterGroup, deps Dependencies) {
	productHandler := handlers.NewProductHandler(deps.Backend)
	requireAuth := middleware.AuthMiddleware(deps.Auth)

	products := rg.Group("/products")
	products.Use(middleware.OptionalAuthMiddleware(deps.Auth))
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/mine", requireAuth, productHandler.GetMyProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.POST("", requireAuth, productHandler.CreateProduct)
		products.PUT("/:id", requireAuth, productHandler.UpdateProduct)
		products.DELETE("/:id", requireAuth, productHandler.DeleteProduct)
	}
}

// SetupCartRoutes sets up cart routes. They work with guest sessions or
// authenticated users.
func SetupCartRoutes(rg *gin.RouterGroup, deps Dependencies) {
	cartHandler := handlers.NewCartHandler(deps.Carts, deps.Backend, deps.Config)

	cart := rg.Group("/cart")
	cart.Use(middleware.OptionalAuthMiddleware(deps.Auth))
	{
		cart.GET("", cartHandler.GetCart)
		cart.GET("/count", cartHandler.GetCartCount)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.POST("/load", cartHandler.LoadCart)
		cart.POST("/merge", middleware.AuthMiddleware(deps.Auth), cartHandler.MergeCart)
	}
}

// SetupOrderRoutes sets up order and checkout routes
func SetupOrderRoutes(rg *gin.RouterGroup, deps Dependencies) {
	orderHandler := handlers.NewOrderHandler(deps.Backend)
	receiptHandler := handlers.NewReceiptHandler(deps.Backend, deps.PDF, deps.Logger)
	checkoutHandler := handlers.NewCheckoutHandler(deps.Checkout)
	requireAuth := middleware.AuthMiddleware(deps.Auth)

	orders := rg.Group("/orders")
	orders.Use(requireAuth)
	{
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/:id/receipt", receiptHandler.GetReceipt)
	}

	rg.POST("/checkout", requireAuth, checkoutHandler.Checkout)
}
