package server

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"anoa.com/kolabboard/internal/entity"
	"anoa.com/kolabboard/internal/middleware"
	"anoa.com/kolabboard/pkg/metrics"
	"anoa.com/kolabboard/pkg/storage"
	"anoa.com/kolabboard/pkg/token"
	"anoa.com/kolabboard/pkg/validator"

	accessRepo "anoa.com/kolabboard/internal/modules/access/repository"
	accessService "anoa.com/kolabboard/internal/modules/access/service"

	auditHttp "anoa.com/kolabboard/internal/modules/auditlog/delivery/http"
	auditRepo "anoa.com/kolabboard/internal/modules/auditlog/repository"
	auditService "anoa.com/kolabboard/internal/modules/auditlog/service"

	boardHttp "anoa.com/kolabboard/internal/modules/board/delivery/http"
	boardRepo "anoa.com/kolabboard/internal/modules/board/repository"
	boardService "anoa.com/kolabboard/internal/modules/board/service"

	cardHttp "anoa.com/kolabboard/internal/modules/card/delivery/http"
	cardRepo "anoa.com/kolabboard/internal/modules/card/repository"
	cardSearch "anoa.com/kolabboard/internal/modules/card/search"
	cardService "anoa.com/kolabboard/internal/modules/card/service"

	fileHttp "anoa.com/kolabboard/internal/modules/file/delivery/http"
	fileRepo "anoa.com/kolabboard/internal/modules/file/repository"
	fileService "anoa.com/kolabboard/internal/modules/file/service"

	listHttp "anoa.com/kolabboard/internal/modules/list/delivery/http"
	listRepo "anoa.com/kolabboard/internal/modules/list/repository"
	listService "anoa.com/kolabboard/internal/modules/list/service"

	notiHttp "anoa.com/kolabboard/internal/modules/notification/delivery/http"
	notifRepo "anoa.com/kolabboard/internal/modules/notification/repository"
	notifService "anoa.com/kolabboard/internal/modules/notification/service"

	orgHttp "anoa.com/kolabboard/internal/modules/organization/delivery/http"
	orgRepo "anoa.com/kolabboard/internal/modules/organization/repository"
	orgService "anoa.com/kolabboard/internal/modules/organization/service"

	profileHttp "anoa.com/kolabboard/internal/modules/profile/delivery/http"
	profileRepo "anoa.com/kolabboard/internal/modules/profile/repository"
	profileService "anoa.com/kolabboard/internal/modules/profile/service"

	revisionHttp "anoa.com/kolabboard/internal/modules/revision/delivery/http"
	revisionRepo "anoa.com/kolabboard/internal/modules/revision/repository"
	revisionService "anoa.com/kolabboard/internal/modules/revision/service"

	userHttp "anoa.com/kolabboard/internal/modules/user/delivery/http"
	userRepo "anoa.com/kolabboard/internal/modules/user/repository"
	userService "anoa.com/kolabboard/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are constructed by the caller and owned by it. Redis, Meili, Storage
// and Metrics are optional.
type Deps struct {
	DB      *gorm.DB
	Tokens  token.Service
	Log     *zap.Logger
	Redis   *redis.Client
	Meili   meilisearch.ServiceManager
	Storage storage.FileStorage
	Metrics *metrics.Metrics

	AllowedOrigins []string
	DebugErrors    bool
}

type Server struct {
	engine *gin.Engine
	db     *gorm.DB
	log    *zap.Logger
	http   *http.Server
}

func NewServer(deps Deps) (*Server, error) {
	if deps.DB == nil || deps.Tokens == nil || deps.Log == nil {
		return nil, errors.New("server: DB, Tokens and Log are required")
	}
	if err := validator.Register(); err != nil {
		return nil, err
	}
	binding.EnableDecoderDisallowUnknownFields = true

	db := deps.DB
	log := deps.Log
	origins := allowedOrigins(deps.AllowedOrigins)

	access := accessService.NewService(accessRepo.NewAccessRepository(db))

	// User Module
	userRepository := userRepo.NewUserRepository(db)
	authSvc := userService.NewAuthService(userRepository, deps.Tokens)
	authHandler := userHttp.NewAuthHandler(authSvc)

	// Profile Module
	profileSvc := profileService.NewProfileService(profileRepo.NewProfileRepository(db))
	profileHandler := profileHttp.NewProfileHandler(profileSvc)

	// Notification Module
	notificationSvc := notifService.NewNotificationService(
		notifRepo.NewNotificationRepository(db),
		userRepository,
		access,
		notifService.NewRedisPublisher(deps.Redis),
		log,
	)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc, deps.Redis, originChecker(origins))

	// Organization Module
	orgSvc := orgService.NewService(orgRepo.NewOrganizationRepository(db), userRepository, access, notificationSvc, log)
	orgHandler := orgHttp.NewOrganizationHandler(orgSvc)

	// Audit Log Module
	auditSvc := auditService.NewService(auditRepo.NewAuditLogRepository(db), access)
	auditHandler := auditHttp.NewAuditLogHandler(auditSvc)

	// Board Module
	boardSvc := boardService.NewService(boardRepo.NewBoardRepository(db), access, auditSvc, log)
	boardHandler := boardHttp.NewBoardHandler(boardSvc)

	listSvc := listService.NewService(listRepo.NewListRepository(db), access)
	listHandler := listHttp.NewListHandler(listSvc)

	// Card Module
	var indexer cardService.Indexer
	if deps.Meili != nil {
		indexer = cardSearch.NewMeiliIndexer(deps.Meili, log)
	}
	cardSvc := cardService.NewService(cardRepo.NewCardRepository(db), access, indexer, log)
	cardHandler := cardHttp.NewCardHandler(cardSvc)

	fileSvc := fileService.NewService(fileRepo.NewFileRepository(db), access, deps.Storage, log)
	fileHandler := fileHttp.NewFileHandler(fileSvc)

	revisionSvc := revisionService.NewService(revisionRepo.NewRevisionRepository(db), access)
	revisionHandler := revisionHttp.NewRevisionHandler(revisionSvc)

	router := gin.New()
	router.Use(middleware.RequestLogger(log, deps.DebugErrors), middleware.Recovery(log))
	setupCORS(router, origins)

	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
		router.GET("/metrics", deps.Metrics.Handler())
	}
	router.GET("/health", healthHandler(db))

	authMiddleware := middleware.NewAuthMiddleware(deps.Tokens)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/register-dosen", authHandler.RegisterFaculty)
		auth.POST("/login", authHandler.Login)
		auth.POST("/check-user", authHandler.CheckUser)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		profile := protected.Group("/profile")
		profile.GET("/student", profileHandler.GetStudentProfile)
		profile.PUT("/student", profileHandler.UpdateStudentProfile)
		profile.GET("/faculty", profileHandler.GetFacultyProfile)
		profile.PUT("/faculty", profileHandler.UpdateFacultyProfile)

		org := protected.Group("/organization")
		org.POST("", authMiddleware.RequireRole(entity.RoleStudent), orgHandler.Create)
		org.GET("/workspace/my", orgHandler.MyWorkspaces)
		org.GET("/invitations", orgHandler.PendingInvitations)
		org.POST("/check-user", orgHandler.CheckUser)
		org.GET("/:id", orgHandler.Get)
		org.PATCH("/:id", orgHandler.Rename)
		org.DELETE("/:id/delete", orgHandler.Delete)
		org.GET("/:id/members", orgHandler.Members)
		org.DELETE("/:id/leave", orgHandler.Leave)
		org.DELETE("/:id/kick/:userId", orgHandler.Kick)
		org.POST("/:id/invite", orgHandler.Invite)
		org.PATCH("/:id/accept/:invitationId", orgHandler.AcceptInvitation)

		board := protected.Group("/board")
		board.POST("", boardHandler.Create)
		board.GET("/org/:organizationId", boardHandler.ListByOrganization)
		board.GET("/:id", boardHandler.Get)
		board.PUT("/:id/edit", boardHandler.Update)
		board.DELETE("/:id", boardHandler.Delete)

		list := protected.Group("/list")
		list.POST("", listHandler.Create)
		list.GET("/board/:boardId", listHandler.ListByBoard)
		list.PUT("/:id/edit", listHandler.Update)
		list.DELETE("/:id", listHandler.Delete)

		card := protected.Group("/card")
		card.POST("", cardHandler.Create)
		card.GET("/search", cardHandler.Search)
		card.GET("/board/:boardId", cardHandler.ListByBoard)
		card.GET("/:id", cardHandler.Get)
		card.PATCH("/:id", cardHandler.Update)
		card.DELETE("/:id", cardHandler.Delete)

		files := protected.Group("/files")
		files.POST("", fileHandler.Create)
		files.POST("/upload", fileHandler.Upload)
		files.GET("/card/:cardId", fileHandler.ListByCard)
		files.DELETE("/:id", fileHandler.Delete)

		revision := protected.Group("/revision")
		revision.POST("", revisionHandler.Create)
		revision.GET("/card/:cardId", revisionHandler.ListByCard)

		notification := protected.Group("/notification")
		notification.GET("", notificationHandler.GetNotifications)
		notification.POST("", notificationHandler.Create)
		notification.GET("/unread-count", notificationHandler.UnreadCount)
		notification.GET("/ws", notificationHandler.HandleWebSocket)
		notification.PATCH("/read-all", notificationHandler.MarkAllAsRead)
		notification.PATCH("/:id/read", notificationHandler.MarkAsRead)

		audit := protected.Group("/auditlog")
		audit.GET("", auditHandler.List)
		audit.POST("", auditHandler.Create)
	}

	return &Server{engine: router, db: db, log: log}, nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run blocks until the listener stops. http.ErrServerClosed after Shutdown
// is reported as nil.
func (s *Server) Run(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("http server listening", zap.String("addr", addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

const defaultOrigin = "http://localhost:3000"

// allowedOrigins is shared by CORS and the websocket upgrader.
func allowedOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{defaultOrigin}
	}
	return origins
}

func setupCORS(router *gin.Engine, origins []string) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

// originChecker mirrors the CORS allow-list for websocket upgrades. Requests
// without an Origin header are not browser requests and pass.
func originChecker(origins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(origins, origin)
	}
}
