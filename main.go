package main

import (
	"database/sql"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/acme/autocert"
	_ "modernc.org/sqlite"

	"veranda/access"
	"veranda/config"
	"veranda/handler"
	"veranda/store"
)

type TemplateRegistry struct {
	templates map[string]*template.Template
}

func (t *TemplateRegistry) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.templates[name]
	if !ok {
		return errors.New("template not found: " + name)
	}
	return tmpl.ExecuteTemplate(w, "base.html", data)
}

var templateNames = []string{
	"index.html",
	"post-view.html",
	"page-view.html",
	"locked.html",
	"tag.html",
	"resume.html",
	"contact.html",
	"login.html",
	"signup.html",
	"admin-dashboard.html",
	"admin-posts.html",
	"admin-post-edit.html",
	"admin-pages.html",
	"admin-page-edit.html",
	"admin-resume.html",
	"admin-settings.html",
	"admin-subscribers.html",
	"admin-messages.html",
	"admin-notifications.html",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	fmt.Println("Running database schema migrations...")
	db, err := setupDB(cfg)
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("No database schema migration ran. Database schema already in latest version")
		} else {
			fmt.Printf("Error during database schema migration: %v", err)
		}
	}
	if db == nil {
		panic(err)
	}

	posts := store.NewPostService(db)
	pages := store.NewPageService(db)

	h := &handler.Handler{
		JWTSecret:    cfg.JWTSecret,
		EnableSignup: cfg.EnableSignup,
		Environment:  cfg.Env,

		Posts:       posts,
		Pages:       pages,
		Settings:    store.NewSettingsService(db),
		Resume:      store.NewResumeService(db),
		Subscribers: store.NewSubscriberService(db),
		Messages:    store.NewMessageService(db),
		Push:        store.NewPushService(db),
		Users:       store.NewUserService(db),
		Verifier:    access.NewVerifier(posts, pages),

		VAPIDPublicKey:  cfg.VAPIDPublicKey,
		VAPIDPrivateKey: cfg.VAPIDPrivateKey,
		PushContact:     cfg.PushContact,
	}

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	t := make(map[string]*template.Template, len(templateNames))
	for _, name := range templateNames {
		t[name] = template.Must(template.ParseFiles("templates/"+name, "templates/base.html"))
	}
	e.Renderer = &TemplateRegistry{templates: t}

	// Public site
	e.GET("/", h.Home)
	e.GET("/posts/:slug", h.GetPost)
	e.POST("/posts/:id/unlock", h.UnlockPost)
	e.POST("/pages/:id/unlock", h.UnlockPage)
	e.GET("/tags/:tag", h.GetTag)
	e.GET("/resume", h.GetResume)
	e.GET("/contact", h.GetContactForm)
	e.POST("/contact", h.SubmitContactForm)
	e.POST("/subscribe", h.Subscribe)
	e.POST("/push/subscribe", h.RegisterPushSubscription)
	e.GET("/signup", h.GetNewUserForm)
	e.POST("/signup", h.NewUser)
	e.GET("/login", h.GetLoginForm)
	e.POST("/login", h.Login)
	e.GET("/logout", h.Logout)
	e.Static("/static", "assets")
	// Dynamic pages match last, after every static route above.
	e.GET("/:slug", h.GetPage)

	// Admin dashboard
	admin := e.Group("/admin", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "cookie:Authorization",
		ErrorHandler: func(c echo.Context, err error) error {
			return c.Redirect(http.StatusFound, "/login")
		},
	}))
	admin.GET("", h.AdminDashboard)
	admin.GET("/posts", h.AdminListPosts)
	admin.GET("/posts/new", h.AdminNewPostForm)
	admin.POST("/posts", h.AdminCreatePost)
	admin.GET("/posts/:id", h.AdminEditPostForm)
	admin.POST("/posts/:id", h.AdminUpdatePost)
	admin.POST("/posts/:id/delete", h.AdminDeletePost)
	admin.GET("/pages", h.AdminListPages)
	admin.GET("/pages/new", h.AdminNewPageForm)
	admin.POST("/pages", h.AdminCreatePage)
	admin.GET("/pages/:id", h.AdminEditPageForm)
	admin.POST("/pages/:id", h.AdminUpdatePage)
	admin.POST("/pages/:id/delete", h.AdminDeletePage)
	admin.GET("/resume", h.AdminResumeForm)
	admin.POST("/resume", h.AdminSaveResume)
	admin.GET("/settings", h.AdminSettingsForm)
	admin.POST("/settings", h.AdminSaveSettings)
	admin.GET("/subscribers", h.AdminListSubscribers)
	admin.POST("/subscribers/delete", h.AdminDeleteSubscribers)
	admin.GET("/messages", h.AdminListMessages)
	admin.POST("/messages/delete", h.AdminDeleteMessages)
	admin.GET("/notifications", h.AdminNotificationsForm)
	admin.POST("/notifications/send", h.AdminSendNotification)

	e.HTTPErrorHandler = customHTTPErrorHandler

	addr := cfg.AddressListen
	if cfg.Dev() && addr == "" {
		addr = ":8080"
	}

	if addr != "" {
		e.Logger.Fatal(e.Start(addr))
	} else {
		// Cache certificates to avoid issues with rate limits (https://letsencrypt.org/docs/rate-limits)
		e.AutoTLSManager.Cache = autocert.DirCache("/var/www/.cache")
		if cfg.WhitelistHost != "" {
			e.AutoTLSManager.HostPolicy = autocert.HostWhitelist(cfg.WhitelistHost)
		}
		e.Pre(middleware.HTTPSRedirect())
		e.Logger.Fatal(e.StartAutoTLS(":443"))
	}
}

func setupDB(cfg config.Config) (*sql.DB, error) {
	dbDriver := cfg.DBDriver
	dataSourceName := cfg.DBURL

	if dbDriver != "sqlite" {
		return nil, fmt.Errorf("unsupported db driver %q", dbDriver)
	}
	if dataSourceName == "" {
		dataSourceName = "./veranda.db?_pragma=foreign_keys(1)"
	}

	var driver database.Driver
	db, err := sql.Open(dbDriver, dataSourceName)
	if err != nil {
		return nil, err
	}
	driver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return nil, err
	}
	m, err := migrate.NewWithDatabaseInstance(
		"file://db/migrations",
		dbDriver, driver)
	if err != nil {
		return nil, err
	}

	err = m.Up()

	return db, err
}

func customHTTPErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
	}
	if code != http.StatusNotFound {
		c.Logger().Error(err)
	}
	errorPage := fmt.Sprintf("assets/%d.html", code)
	if err := c.File(errorPage); err != nil {
		c.Logger().Error(err)
	}
}
