package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/notekeep-api/internal/application/article"
	"github.com/notekeep-api/internal/application/attachment"
	"github.com/notekeep-api/internal/application/auth"
	"github.com/notekeep-api/internal/application/category"
	"github.com/notekeep-api/internal/application/journal"
	"github.com/notekeep-api/internal/application/note"
	"github.com/notekeep-api/internal/application/project"
	"github.com/notekeep-api/internal/application/signin"
	"github.com/notekeep-api/internal/application/tag"
	"github.com/notekeep-api/internal/application/task"
	"github.com/notekeep-api/internal/application/template"
	"github.com/notekeep-api/internal/application/user"
	"github.com/notekeep-api/internal/config"
	"github.com/notekeep-api/internal/domain"
	"github.com/notekeep-api/internal/transport/http/handler"
	appmiddleware "github.com/notekeep-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10, applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:  deps.UserRepo,
		TokenRepo: deps.TokenRepo,
		Mailer:    deps.Mailer,
		BaseURL:   cfg.BaseURL,
	})
	providers := map[string]signin.Provider{
		domain.ProviderCredentials: signin.NewCredentialsProvider(deps.UserRepo),
		domain.ProviderMagicLink:   signin.NewMagicLinkProvider(deps.TokenRepo, deps.UserRepo),
	}
	if deps.GoogleVerifier != nil {
		providers[domain.ProviderGoogle] = signin.NewGoogleProvider(deps.GoogleVerifier, deps.UserRepo)
	}
	if deps.GitHubVerifier != nil {
		providers[domain.ProviderGitHub] = signin.NewGitHubProvider(deps.GitHubVerifier, deps.UserRepo)
	}
	signinSvc := signin.NewService(signin.ServiceDeps{
		Providers: providers,
		Signer:    deps.JWTProvider,
		TokenRepo: deps.TokenRepo,
		Mailer:    deps.Mailer,
		BaseURL:   cfg.BaseURL,
	})
	userSvc := user.NewService(deps.UserRepo)
	noteSvc := note.NewService(deps.NoteRepo)
	categorySvc := category.NewService(deps.CategoryRepo)
	tagSvc := tag.NewService(deps.TagRepo)
	taskSvc := task.NewService(deps.TaskRepo)
	projectSvc := project.NewService(deps.ProjectRepo)
	templateSvc := template.NewService(deps.TemplateRepo)
	journalSvc := journal.NewService(deps.JournalRepo)
	articleSvc := article.NewService(deps.ArticleRepo)
	attachmentSvc := attachment.NewService(deps.S3Store, deps.AttachmentRepo, deps.NoteRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	sessionH := handler.NewSessionHandler(signinSvc)
	userH := handler.NewUserHandler(userSvc)
	noteH := handler.NewNoteHandler(noteSvc)
	categoryH := handler.NewCategoryHandler(categorySvc)
	tagH := handler.NewTagHandler(tagSvc)
	taskH := handler.NewTaskHandler(taskSvc)
	projectH := handler.NewProjectHandler(projectSvc)
	templateH := handler.NewTemplateHandler(templateSvc)
	journalH := handler.NewJournalHandler(journalSvc)
	articleH := handler.NewArticleHandler(articleSvc)
	attachmentH := handler.NewAttachmentHandler(attachmentSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/auth/register", authH.Register)
		r.With(sensitiveRL.Limit).Post("/auth/reset-password", authH.ResetPassword)
		r.Get("/auth/validate-reset-token", authH.ValidateResetToken)
		r.With(sensitiveRL.Limit).Post("/auth/update-password", authH.UpdatePassword)
		r.Post("/auth/verify-email", authH.VerifyEmail)
		r.With(sensitiveRL.Limit).Post("/sessions/sign-in", sessionH.SignIn)
		r.With(sensitiveRL.Limit).Post("/sessions/magic-link", sessionH.MagicLink)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/sessions", sessionH.Current)
			r.Post("/sessions/sign-out", sessionH.SignOut)

			r.Get("/users/me", userH.Me)
			r.Put("/users/me", userH.UpdateMe)

			r.Post("/notes", noteH.Create)
			r.Get("/notes", noteH.List)
			r.Get("/notes/{id}", noteH.Get)
			r.Put("/notes/{id}", noteH.Update)
			r.Delete("/notes/{id}", noteH.Delete)
			r.Post("/notes/{id}/attachments", attachmentH.Upload)
			r.Get("/notes/{id}/attachments", attachmentH.ListByNote)
			r.Get("/attachments/{id}/download", attachmentH.Download)
			r.Delete("/attachments/{id}", attachmentH.Delete)

			r.Post("/categories", categoryH.Create)
			r.Get("/categories", categoryH.List)
			r.Get("/categories/{id}", categoryH.Get)
			r.Put("/categories/{id}", categoryH.Update)
			r.Delete("/categories/{id}", categoryH.Delete)

			r.Post("/tags", tagH.Create)
			r.Get("/tags", tagH.List)
			r.Get("/tags/{id}", tagH.Get)
			r.Put("/tags/{id}", tagH.Update)
			r.Delete("/tags/{id}", tagH.Delete)

			r.Post("/tasks", taskH.Create)
			r.Get("/tasks", taskH.List)
			r.Get("/tasks/{id}", taskH.Get)
			r.Put("/tasks/{id}", taskH.Update)
			r.Delete("/tasks/{id}", taskH.Delete)

			r.Post("/projects", projectH.Create)
			r.Get("/projects", projectH.List)
			r.Get("/projects/{id}", projectH.Get)
			r.Put("/projects/{id}", projectH.Update)
			r.Delete("/projects/{id}", projectH.Delete)

			r.Post("/templates", templateH.Create)
			r.Get("/templates", templateH.List)
			r.Get("/templates/{id}", templateH.Get)
			r.Put("/templates/{id}", templateH.Update)
			r.Delete("/templates/{id}", templateH.Delete)

			r.Post("/journal", journalH.Create)
			r.Get("/journal", journalH.List)
			r.Get("/journal/{date}", journalH.GetByDate)
			r.Put("/journal/{id}", journalH.Update)
			r.Delete("/journal/{id}", journalH.Delete)

			r.Post("/articles", articleH.Create)
			r.Get("/articles", articleH.List)
			r.Get("/articles/{id}", articleH.Get)
			r.Put("/articles/{id}", articleH.Update)
			r.Delete("/articles/{id}", articleH.Delete)
		})
	})

	return r
}
