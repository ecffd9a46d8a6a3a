package rest

import (
	"context"
	"net/http"

	core_port "marketplace-client/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(port string,
	listingsHandlers *ListingsHandler,
	favoritesHandlers *FavoritesHandler,
	authHandlers *AuthHandler,
	draftsHandlers *DraftsHandler,
	notificationsHandlers *NotificationsHandler,
	baseLogger core_port.LoggerPort) *Server {

	r := chi.NewRouter()

	// Стандартные middleware
	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		// AllowedOrigins - список доменов, с которых разрешены запросы
		AllowedOrigins: []string{"http://localhost:5173"},

		// AllowedMethods - список разрешенных HTTP-методов.
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},

		// AllowedHeaders - список разрешенных заголовков в запросе
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},

		// AllowCredentials - разрешает отправку cookies и Authorization хедера
		AllowCredentials: true,

		// MaxAge - на сколько секунд браузер может кэшировать результат preflight-запроса
		MaxAge: 300, // 5 минут
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// листинги
		r.Get("/listings/{resource}", listingsHandlers.GetSnapshot)
		r.Put("/listings/{resource}/filters", listingsHandlers.UpdateFilter)
		r.Delete("/listings/{resource}/filters", listingsHandlers.ResetFilters)
		r.Put("/listings/{resource}/page", listingsHandlers.ChangePage)
		r.Get("/listings/{resource}/{itemID}", listingsHandlers.GetDetails)

		// избранное
		r.Get("/favorites", favoritesHandlers.GetFavorites)
		r.Post("/favorites/toggle", favoritesHandlers.Toggle)

		// аутентификация
		r.Post("/auth/login", authHandlers.Login)
		r.Post("/auth/register", authHandlers.Register)
		r.Post("/auth/verify-email", authHandlers.VerifyEmail)
		r.Post("/auth/resend-code", authHandlers.ResendCode)
		r.Post("/auth/forgot-password", authHandlers.ForgotPassword)
		r.Post("/auth/logout", authHandlers.Logout)

		// черновики форм
		r.Post("/drafts", draftsHandlers.Create)
		r.Get("/drafts/{draftID}", draftsHandlers.Get)
		r.Put("/drafts/{draftID}/fields", draftsHandlers.UpdateField)
		r.Post("/drafts/{draftID}/advance", draftsHandlers.Advance)
		r.Post("/drafts/{draftID}/back", draftsHandlers.Back)
		r.Post("/drafts/{draftID}/attachments", draftsHandlers.AddAttachment)
		r.Post("/drafts/{draftID}/submit", draftsHandlers.Submit)
		r.Delete("/drafts/{draftID}", draftsHandlers.Cancel)

		// уведомления
		r.Get("/notifications", notificationsHandlers.List)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
