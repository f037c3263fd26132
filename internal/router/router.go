package router

import (
	"watog/internal/handlers"
	"watog/internal/middleware"
	"watog/web"

	"github.com/gin-gonic/gin"
)

// AccountService is both the account API and the token gate.
type AccountService interface {
	handlers.AccountService
	middleware.Authenticator
}

// Deps 路由依赖的服务
type Deps struct {
	Accounts     AccountService
	Verification handlers.VerificationService
	Posts        handlers.PostService
	Reporter     middleware.ErrorReporter
}

// New builds the engine with middleware, templates and all routes.
func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.Recovery(deps.Reporter))
	r.HTMLRender = web.LoadTemplates()
	r.MaxMultipartMemory = 8 << 20

	handlers.SetErrorReporter(deps.Reporter)
	RegisterRoutes(r, deps)
	return r
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	// Handlers
	authHandler := handlers.NewAuthHandler(deps.Accounts)
	userHandler := handlers.NewUserHandler(deps.Accounts)
	verifyHandler := handlers.NewVerifyHandler(deps.Verification)
	categoryHandler := handlers.NewCategoryHandler(deps.Posts)
	postHandler := handlers.NewPostHandler(deps.Posts)
	voteHandler := handlers.NewVoteHandler(deps.Posts)

	// 公共路由 (Public Routes)
	r.GET("/healthz", handlers.Healthz)                     // 存活检查
	r.POST("/signup", authHandler.Signup)                   // 注册
	r.POST("/login", authHandler.Login)                     // 登录
	r.GET("/verify/email/:code", verifyHandler.VerifyEmail) // 邮件链接验证 (HTML)
	r.GET("/categories", categoryHandler.List)              // 分类列表

	// 受保护路由 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired(deps.Accounts))
	{
		authorized.GET("/me", userHandler.Me)                         // 当前用户
		authorized.PUT("/me", userHandler.EditMe)                     // 修改资料
		authorized.GET("/users", userHandler.List)                    // 用户列表
		authorized.GET("/users/:id", userHandler.Get)                 // 用户详情
		authorized.POST("/verify/email", verifyHandler.SendEmail)     // 发送邮件验证码
		authorized.POST("/verify/sms", verifyHandler.SendSMS)         // 发送短信验证码
		authorized.POST("/verify/sms/:code", verifyHandler.VerifySMS) // 短信验证

		authorized.POST("/posts", postHandler.Create)            // 发帖
		authorized.GET("/posts", postHandler.List)               // 帖子列表
		authorized.GET("/posts/:id", postHandler.Detail)         // 帖子详情
		authorized.POST("/posts/:id/vote", voteHandler.Vote)     // 投票
		authorized.POST("/posts/:id/report", voteHandler.Report) // 举报
	}
}
