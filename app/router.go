// Package app wires the HTTP surface together
package app

import (
	"fmt"
	"time"

	"okravets/contacts-api/app/contact"
	"okravets/contacts-api/app/root"
	"okravets/contacts-api/app/user"
	"okravets/contacts-api/aws"
	"okravets/contacts-api/db"
	"okravets/contacts-api/internal"
	"okravets/contacts-api/internal/repository"
	"okravets/contacts-api/internal/service"
	"okravets/contacts-api/pkg/middleware"
	"okravets/contacts-api/pkg/security"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

// NewRouter builds the production router: database, redis rate-limiter
// backend, avatar bucket and mail dispatcher, then the routes on top.
func NewRouter() (*gin.Engine, error) {
	makeLogger()

	database, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	tokens := security.NewTokenMaker(
		viper.GetString("jwt.secret"),
		viper.GetDuration("jwt.access_ttl"),
		viper.GetDuration("jwt.refresh_ttl"),
		viper.GetDuration("jwt.email_ttl"),
	)

	users := repository.NewUserRepo(database, service.NewGravatarFetcher())
	argon := security.New()

	d := &internal.Deps{
		DB:       database,
		Argon:    argon,
		Tokens:   tokens,
		Users:    users,
		Contacts: repository.NewContactRepo(database),
		Auth:     service.NewAuth(users, argon, tokens),
		Mail:     service.NewMailer(tokens),
	}

	if viper.GetString("aws.bucket") != "" {
		s3, err := aws.NewS3()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
		}

		d.Avatars = service.NewAvatarStore(s3)
	} else {
		zap.L().Warn("No avatar bucket configured, avatar uploads are disabled")
	}

	var rl *middleware.RateLimiter
	if addr := viper.GetString("redis.addr"); addr != "" {
		rl = middleware.NewRateLimiter(redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   viper.GetInt("redis.db"),
		}))
	} else {
		zap.L().Warn("No redis address configured, rate limiting is disabled")
	}

	return Routes(d, rl), nil
}

// Routes registers every endpoint on a fresh engine. Split from
// NewRouter so tests can pass their own deps and skip redis/S3.
func Routes(d *internal.Deps, rl *middleware.RateLimiter) *gin.Engine {
	router := gin.New()

	origins := viper.GetStringSlice("host.cors")
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userEmail"); v != "" {
					fields = append(fields, zap.String("user_email", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	jwt := middleware.NewJWTMiddleware(d.Tokens, d.Users)

	m := router.Group("/api")
	{
		// GET  /api/			-> Root message
		m.GET("/", rl.Limit("root", 1, 7*time.Second), root.Root)

		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)
	}

	a := m.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/auth/signup		-> Registers a new user
		a.POST("/signup", rl.Limit("signup", 1, 40*time.Second), func(c *gin.Context) { user.UserRegister(c, d) })

		// POST /api/auth/login			-> Verifies credentials, returns a token pair
		a.POST("/login", rl.Limit("login", 1, 300*time.Second), func(c *gin.Context) { user.UserLogin(c, d) })

		// GET  /api/auth/refresh_token		-> Rotates the refresh token
		a.GET("/refresh_token", func(c *gin.Context) { user.UserRefresh(c, d) })

		// GET  /api/auth/confirm_email/:token	-> Confirms an email address
		a.GET("/confirm_email/:token", func(c *gin.Context) { user.UserConfirmEmail(c, d) })

		// POST /api/auth/request_email		-> Re-sends the confirmation mail
		a.POST("/request_email", func(c *gin.Context) { user.UserRequestEmail(c, d) })
	}

	u := m.Group("/users", middleware.BodySizeLimiter(1<<20))
	{
		// GET    /api/users		-> Lists users
		u.GET("", jwt, func(c *gin.Context) { user.UserList(c, d) })

		// GET    /api/users/me		-> Returns the authenticated user
		u.GET("/me", jwt, func(c *gin.Context) { user.UserFetch(c, d) })

		// PUT    /api/users/:id	-> Updates a user
		u.PUT("/:id", jwt, func(c *gin.Context) { user.UserUpdate(c, d) })

		// DELETE /api/users/:id	-> Deletes a user and their contacts
		u.DELETE("/:id", jwt, func(c *gin.Context) { user.UserDelete(c, d) })
	}

	// PATCH /api/users/avatar	-> Replaces the authenticated user's avatar
	m.PATCH("/users/avatar", middleware.BodySizeLimiter(5<<20), jwt,
		rl.Limit("avatar", 1, 120*time.Second),
		func(c *gin.Context) { user.UserPatchAvatar(c, d) })

	mutateRL := rl.Limit("contacts_mutate", 3, 7*time.Second)

	ct := m.Group("/contacts", middleware.BodySizeLimiter(1<<20), jwt)
	{
		// GET    /api/contacts			-> Lists the user's contacts
		ct.GET("", func(c *gin.Context) { contact.ContactList(c, d) })

		// GET    /api/contacts/find		-> Searches contacts by field
		ct.GET("/find", rl.Limit("contacts_find", 3, 60*time.Second), func(c *gin.Context) { contact.ContactSearch(c, d) })

		// GET    /api/contacts/birthdays	-> Upcoming birthdays
		ct.GET("/birthdays", func(c *gin.Context) { contact.ContactBirthdays(c, d) })

		// GET    /api/contacts/:id		-> Returns an owned contact
		ct.GET("/:id", func(c *gin.Context) { contact.ContactFetch(c, d) })

		// POST   /api/contacts			-> Creates a contact
		ct.POST("", mutateRL, func(c *gin.Context) { contact.ContactCreate(c, d) })

		// PUT    /api/contacts/:id		-> Replaces an owned contact
		ct.PUT("/:id", mutateRL, func(c *gin.Context) { contact.ContactUpdate(c, d) })

		// DELETE /api/contacts/:id		-> Deletes an owned contact
		ct.DELETE("/:id", mutateRL, func(c *gin.Context) { contact.ContactDelete(c, d) })
	}

	return router
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
