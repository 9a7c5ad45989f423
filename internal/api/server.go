package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/agrolink/distribution-api/docs"
	v1 "github.com/agrolink/distribution-api/internal/api/handler/v1"
	"github.com/agrolink/distribution-api/internal/api/middleware"
	"github.com/agrolink/distribution-api/internal/config"
	"github.com/agrolink/distribution-api/internal/repository"
	"github.com/agrolink/distribution-api/internal/repository/dao"
	"github.com/agrolink/distribution-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	productHandler := s.initProductHandler(db)
	transactionHandler := s.initTransactionHandler(db)
	inventoryHandler := s.initInventoryHandler(db)
	payoutHandler := s.initPayoutHandler(db)
	s.MountHandlers(authHandler, userHandler, productHandler, transactionHandler, inventoryHandler, payoutHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	repo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewAuthService(repo)
	uSvc := service.NewUserService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc, uSvc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	repo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initProductHandler(db *gorm.DB) *v1.ProductHandler {
	repo := repository.NewProductRepository(dao.NewProductDAO(db))
	svc := service.NewProductService(repo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewProductHandler(svc, uSvc)

	return handler
}

func (s *Server) initTransactionHandler(db *gorm.DB) *v1.TransactionHandler {
	repo := repository.NewTransactionRepository(dao.NewTransactionDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	productRepo := repository.NewProductRepository(dao.NewProductDAO(db))
	inventoryRepo := repository.NewInventoryRepository(dao.NewInventoryDAO(db))
	svc := service.NewTransactionService(repo, userRepo, productRepo, inventoryRepo)
	uSvc := service.NewUserService(userRepo)
	handler := v1.NewTransactionHandler(svc, uSvc)

	return handler
}

func (s *Server) initInventoryHandler(db *gorm.DB) *v1.InventoryHandler {
	repo := repository.NewInventoryRepository(dao.NewInventoryDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewInventoryService(repo, userRepo)
	uSvc := service.NewUserService(userRepo)
	handler := v1.NewInventoryHandler(svc, uSvc)

	return handler
}

func (s *Server) initPayoutHandler(db *gorm.DB) *v1.PayoutHandler {
	repo := repository.NewPayoutRepository(dao.NewPayoutDAO(db))
	transactionRepo := repository.NewTransactionRepository(dao.NewTransactionDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewPayoutService(repo, transactionRepo, userRepo)
	uSvc := service.NewUserService(userRepo)
	handler := v1.NewPayoutHandler(svc, uSvc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	productHandler *v1.ProductHandler,
	transactionHandler *v1.TransactionHandler,
	inventoryHandler *v1.InventoryHandler,
	payoutHandler *v1.PayoutHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/auth/me", authHandler.HandleGetMe)

		authed.POST("/users", userHandler.HandleCreateUser)
		authed.GET("/users/by-role", userHandler.HandleGetUsersByRole)
		authed.GET("/users/:userID/downline", userHandler.HandleGetDownline)
		authed.GET("/users/:userID/hierarchy", userHandler.HandleGetHierarchy)

		authed.POST("/products", productHandler.HandleCreateProduct)
		authed.GET("/products", productHandler.HandleGetProducts)
		authed.GET("/products/:productID", productHandler.HandleGetProduct)
		authed.PUT("/products/:productID", productHandler.HandleUpdateProduct)
		authed.DELETE("/products/:productID", productHandler.HandleDeleteProduct)

		authed.POST("/transactions", transactionHandler.HandleCreateTransaction)
		authed.GET("/transactions", transactionHandler.HandleGetTransactions)

		authed.GET("/inventory", inventoryHandler.HandleGetInventory)
		authed.GET("/inventory/upline", inventoryHandler.HandleGetUplineInventory)
		authed.POST("/inventory/stock", inventoryHandler.HandleAddStock)

		authed.GET("/payouts/pending", payoutHandler.HandleListPending)
		authed.GET("/payouts/user/:userID", payoutHandler.HandleGetUserPayout)
		authed.POST("/payouts", payoutHandler.HandleRecordPayout)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Tiered Distribution API"
	docs.SwaggerInfo.Description = "Inventory, transaction and payout ledger for a tiered distribution network."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
