package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/vietanh2810/dining-pos-api/docs"
	v1 "github.com/vietanh2810/dining-pos-api/internal/api/handler/v1"
	"github.com/vietanh2810/dining-pos-api/internal/api/middleware"
	"github.com/vietanh2810/dining-pos-api/internal/config"
	"github.com/vietanh2810/dining-pos-api/internal/repository"
	"github.com/vietanh2810/dining-pos-api/internal/repository/dao"
	"github.com/vietanh2810/dining-pos-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
	Floor  *v1.FloorHandler
}

type handlers struct {
	table   *v1.TableHandler
	session *v1.SessionHandler
	cart    *v1.CartHandler
}

// NewServer wires the handlers. Events go to the floor feed and to every extra publisher.
// The caller runs s.Floor.
func NewServer(conf *config.AppConfig, db *gorm.DB, publishers ...service.EventPublisher) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		Floor:  v1.NewFloorHandler(),
	}

	s.MountMiddlewares()

	events := append(service.Broadcast{s.Floor}, publishers...)
	s.MountHandlers(s.initHandlers(db, events))

	return s
}

func (s *Server) initHandlers(db *gorm.DB, events service.EventPublisher) handlers {
	tx := repository.NewTxManager(db)
	tableRepo := repository.NewTableRepository(dao.NewTableDAO(db))
	orderDAO := dao.NewOrderDAO(db)
	orderRepo := repository.NewOrderRepository(orderDAO)
	groupRepo := repository.NewOrderGroupRepository(dao.NewOrderGroupDAO(db), orderDAO)
	participantRepo := repository.NewParticipantRepository(dao.NewParticipantDAO(db))
	productRepo := repository.NewProductRepository(dao.NewProductDAO(db))

	tableSvc := service.NewTableService(tableRepo, groupRepo, tx, s.Config.Layout.Canvas(), events)
	sessionSvc := service.NewSessionService(groupRepo, tableRepo, participantRepo, tx, events)
	participantSvc := service.NewParticipantService(participantRepo)
	cartSvc := service.NewCartService(orderRepo, groupRepo, productRepo, participantSvc, tx, events)

	return handlers{
		table:   v1.NewTableHandler(tableSvc),
		session: v1.NewSessionHandler(sessionSvc),
		cart:    v1.NewCartHandler(cartSvc),
	}
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	auth := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	tables := s.Router.Group(basePath, auth.VerifyJWT())
	{
		tables.POST("/tables", h.table.HandleCreateTable)
		tables.GET("/tables", h.table.HandleListTables)
		tables.GET("/tables/empty", h.table.HandleListEmptyTables)
		tables.GET("/tables/canvas", h.table.HandleGetCanvas)
		tables.PUT("/tables/layout", h.table.HandleBulkRelayout)
		tables.GET("/tables/:tableID", h.table.HandleGetTable)
		tables.PATCH("/tables/:tableID", h.table.HandleUpdateTableInfo)
		tables.PATCH("/tables/:tableID/status", h.table.HandleUpdateTableStatus)
		tables.PUT("/tables/:tableID/position", h.table.HandleRepositionTable)
		tables.DELETE("/tables/:tableID", h.table.HandleDeleteTable)
		tables.GET("/floor/ws", s.Floor.HandleWebSocket)
	}

	sessions := s.Router.Group(basePath, auth.IdentifyCaller())
	{
		sessions.POST("/tables/:tableID/groups", h.session.HandleOpenSession)
		sessions.GET("/tables/:tableID/groups/active", h.session.HandleGetActiveSession)
		sessions.GET("/groups/:groupID", h.session.HandleGetSession)
		sessions.POST("/groups/:groupID/close", h.session.HandleCloseSession)
		sessions.POST("/groups/:groupID/guests", h.session.HandleJoinGuest)
	}

	cart := s.Router.Group(basePath, auth.IdentifyCaller())
	{
		cart.GET("/groups/:groupID/cart", h.cart.HandleGetCart)
		cart.POST("/groups/:groupID/cart/items", h.cart.HandleAddItem)
		cart.GET("/groups/:groupID/orders", h.cart.HandleListOrders)
		cart.POST("/groups/:groupID/orders", h.cart.HandleOpenDraft)
		cart.GET("/groups/:groupID/totals", h.cart.HandleGetTotals)
		cart.GET("/groups/:groupID/spend", h.cart.HandleGetSpend)
		cart.PATCH("/cart/items/:itemID", h.cart.HandleUpdateItem)
		cart.DELETE("/cart/items/:itemID", h.cart.HandleRemoveItem)
		cart.POST("/orders/:orderID/submit", h.cart.HandleSubmitOrder)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Dining POS API"
	docs.SwaggerInfo.Description = "Floor layout, dining sessions and shared carts of a restaurant."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
