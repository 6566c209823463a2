package http

import (
	"time"

	"AssistHub/internal/clients/backbone"
	"AssistHub/internal/clients/lrs"
	"AssistHub/internal/config"
	"AssistHub/internal/initial"
	jwtMiddleware "AssistHub/internal/middleware/jwt"
	assistanceService "AssistHub/internal/modules/assistance/application/service"
	assistancePersistence "AssistHub/internal/modules/assistance/infrastructure/persistence"
	assistanceHandler "AssistHub/internal/modules/assistance/interface/http"
	"AssistHub/internal/modules/assistance/interface/scheduler"
	userService "AssistHub/internal/modules/user/application/service"
	userPersistence "AssistHub/internal/modules/user/infrastructure/persistence"
	userHandler "AssistHub/internal/modules/user/interface/http"
	"AssistHub/pkg/ssl"
	"AssistHub/pkg/ws"

	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	GE        *gin.Engine
	Scheduler *scheduler.Manager
)

func init() {
	conf := config.GetConfig()

	GE = gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	GE.Use(cors.New(corsConfig))
	GE.Use(ssl.TlsHandler(conf.MainConfig.Host, conf.MainConfig.Port))

	wsHub := ws.NewHub()

	userRepo := userPersistence.NewUserRepository(initial.GormDB)
	typeRepo := assistancePersistence.NewAssistanceTypeRepository(initial.GormDB)
	featureRepo := assistancePersistence.NewFeatureRepository(initial.GormDB)
	courseRepo := assistancePersistence.NewCourseRepository(initial.GormDB)
	objectRepo := assistancePersistence.NewCommunicationObjectRepository(initial.GormDB)
	disconnectRepo := assistancePersistence.NewDisconnectRepository(initial.GormDB)

	backboneAPI := backbone.NewClient(conf.BackboneConfig)
	if initial.RedisClient != nil && conf.BackboneConfig.CatalogCacheSeconds > 0 {
		ttl := time.Duration(conf.BackboneConfig.CatalogCacheSeconds) * time.Second
		backboneAPI = backbone.WithCatalogCache(backboneAPI, initial.RedisClient, ttl)
	}
	lrsAPI := lrs.NewClient(conf.LrsConfig)

	userSvc := userService.NewUserService(userRepo)
	authSvc := userService.NewAuthService(userSvc)

	factory := assistanceService.NewStatementFactory(time.Now)
	typeSvc := assistanceService.NewAssistanceTypeService(typeRepo, courseRepo, backboneAPI)
	featureSvc := assistanceService.NewFeatureService(featureRepo, typeRepo, courseRepo, typeSvc)
	courseSvc := assistanceService.NewCourseService(courseRepo, featureRepo, backboneAPI, typeSvc)
	communicationSvc := assistanceService.NewCommunicationService(objectRepo, backboneAPI, conf.BackboneConfig.URL, lrsAPI, userSvc, factory, wsHub)
	presenceSvc := assistanceService.NewPresenceService(disconnectRepo, communicationSvc, userSvc, lrsAPI, factory)
	statementSvc := assistanceService.NewStatementService(
		backboneAPI, conf.BackboneConfig.URL, lrsAPI, typeSvc, courseSvc, userSvc, communicationSvc, factory)

	wsHub.OnConnect(presenceSvc.HandleConnect)
	wsHub.OnDisconnect(presenceSvc.HandleDisconnect)

	userH := userHandler.NewUserHandler(userSvc, authSvc, wsHub)
	assistanceH := assistanceHandler.NewAssistanceHandler(typeSvc, statementSvc, communicationSvc)
	featureH := assistanceHandler.NewFeatureHandler(featureSvc)
	courseH := assistanceHandler.NewCourseHandler(courseSvc)
	wsH := assistanceHandler.NewWsHandler(wsHub, communicationSvc, userSvc)

	v1 := GE.Group("/api/v1")
	v1.POST("/auth/login", userH.Login)
	// Token rides in the query string, websocket handshakes cannot carry
	// an authorization header from the browser.
	v1.GET("/ws", wsH.Connect)

	authed := v1.Group("/")
	authed.Use(jwtMiddleware.Auth(userRepo))
	authed.GET("/users/ws-connections", userH.GetWsConnections)
	authed.POST("/users/long-lived-token", userH.CreateLongLivedToken)
	authed.DELETE("/users/long-lived-token", userH.RevokeLongLivedToken)
	authed.GET("/users/:id", userH.GetUser)
	authed.GET("/assistance/types", assistanceH.GetAssistanceTypes)
	authed.POST("/assistance/initiate", assistanceH.InitiateAssistance)
	authed.POST("/assistance/bundle", assistanceH.HandleBundle)
	authed.POST("/statements", assistanceH.HandleStatement)
	authed.GET("/features", featureH.GetFeatures)
	authed.GET("/courses/:objectId", courseH.GetCourse)
	authed.GET("/courses/:objectId/features", courseH.GetCourseFeatures)
	authed.GET("/courses/:objectId/assistance-types", courseH.GetCourseAssistanceTypes)

	admin := v1.Group("/")
	admin.Use(jwtMiddleware.Auth(userRepo), jwtMiddleware.RequireAdmin())
	admin.GET("/users", userH.GetUsers)
	admin.POST("/users", userH.AddUser)
	admin.DELETE("/users/:actorAccountName", userH.DeleteUser)
	admin.PUT("/users/:id/role", userH.UpdateRole)
	admin.PUT("/users/:id/language", userH.UpdateLanguage)
	admin.PUT("/users/:id/password", userH.UpdatePassword)
	admin.PUT("/assistance/types", assistanceH.SetAssistanceTypes)
	admin.POST("/features", featureH.AddFeature)
	admin.DELETE("/features/:key", featureH.DeleteFeature)
	admin.GET("/courses", courseH.GetCourses)
	admin.PUT("/courses/:objectId/features", courseH.UpdateCourseFeatures)
	admin.PUT("/courses/:objectId/assistance-types", courseH.ConfigureCourseAssistanceTypes)

	Scheduler = scheduler.NewManager(presenceSvc, communicationSvc, typeSvc, courseSvc, conf.SchedulerConfig)
}
