package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plannerhq/eventra-backend/api/controllers"
	"github.com/plannerhq/eventra-backend/api/middleware"
	authsvc "github.com/plannerhq/eventra-backend/internal/auth"
	budgetsvc "github.com/plannerhq/eventra-backend/internal/budgets"
	commentsvc "github.com/plannerhq/eventra-backend/internal/comments"
	eventsvc "github.com/plannerhq/eventra-backend/internal/events"
	inventorysvc "github.com/plannerhq/eventra-backend/internal/inventory"
	notificationsvc "github.com/plannerhq/eventra-backend/internal/notifications"
	quotesvc "github.com/plannerhq/eventra-backend/internal/quotations"
	tasksvc "github.com/plannerhq/eventra-backend/internal/tasks"
	usersvc "github.com/plannerhq/eventra-backend/internal/users"
	"github.com/plannerhq/eventra-backend/pkg/auth/session"
	"github.com/plannerhq/eventra-backend/pkg/config"
	"github.com/plannerhq/eventra-backend/pkg/db"
	"github.com/plannerhq/eventra-backend/pkg/enums"
	"github.com/plannerhq/eventra-backend/pkg/logger"
	"github.com/plannerhq/eventra-backend/pkg/metrics"
	pkgredis "github.com/plannerhq/eventra-backend/pkg/redis"
)

// Services groups the feature services the router exposes.
type Services struct {
	Auth          authsvc.Service
	Users         usersvc.Service
	Events        eventsvc.Service
	Tasks         tasksvc.Service
	Budgets       budgetsvc.Service
	Quotations    quotesvc.Service
	Comments      commentsvc.Service
	Inventory     inventorysvc.Service
	Notifications notificationsvc.Service
}

// NewRouter assembles the full HTTP surface: health probes, metrics,
// the public auth endpoints, and the authenticated API.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	sessionManager session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	svcs Services,
) http.Handler {
	var idemStore pkgredis.IdempotencyStore
	if redisClient != nil {
		idemStore = redisClient
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(
			middleware.AuthRateLimit(registerPolicy, redisClient, logg),
			middleware.Idempotency(idemStore, logg),
		).Post("/register", controllers.AuthRegister(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(svcs.Auth, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		staff := []enums.UserRole{enums.UserRoleAdmin, enums.UserRoleManager, enums.UserRoleTeamMember}
		managers := []enums.UserRole{enums.UserRoleAdmin, enums.UserRoleManager}

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", controllers.CurrentUser(svcs.Users, logg))
			r.With(middleware.RequireRoles(logg, managers...)).Get("/", controllers.ListUsers(svcs.Users, logg))
			r.With(middleware.RequireRoles(logg, managers...)).Get("/{userId}", controllers.GetUser(svcs.Users, logg))
			r.With(middleware.RequireRoles(logg, managers...)).Patch("/{userId}", controllers.UpdateUser(svcs.Users, logg))
			r.With(middleware.RequireRoles(logg, enums.UserRoleAdmin)).Delete("/{userId}", controllers.DeleteUser(svcs.Users, logg))
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", controllers.ListEvents(svcs.Events, logg))
			r.Get("/calendar", controllers.EventCalendar(svcs.Events, logg))
			r.Get("/status-summary", controllers.EventStatusSummary(svcs.Events, logg))
			r.Get("/{eventId}", controllers.GetEvent(svcs.Events, logg))
			r.With(middleware.RequireRoles(logg, managers...)).Post("/", controllers.CreateEvent(svcs.Events, logg))
			r.With(middleware.RequireRoles(logg, managers...)).Patch("/{eventId}", controllers.UpdateEvent(svcs.Events, logg))
			r.With(middleware.RequireRoles(logg, managers...)).Delete("/{eventId}", controllers.DeleteEvent(svcs.Events, logg))
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", controllers.ListTasks(svcs.Tasks, logg))
			r.Get("/status-summary", controllers.TaskStatusSummary(svcs.Tasks, logg))
			r.Get("/{taskId}", controllers.GetTask(svcs.Tasks, logg))
			r.With(middleware.RequireRoles(logg, staff...)).Post("/", controllers.CreateTask(svcs.Tasks, logg))
			r.With(middleware.RequireRoles(logg, staff...)).Patch("/{taskId}", controllers.UpdateTask(svcs.Tasks, logg))
			r.With(middleware.RequireRoles(logg, managers...)).Delete("/{taskId}", controllers.DeleteTask(svcs.Tasks, logg))

			r.Route("/{taskId}/subtasks", func(r chi.Router) {
				r.Use(middleware.RequireRoles(logg, staff...))
				r.Post("/", controllers.AddSubtask(svcs.Tasks, logg))
				r.Patch("/{subtaskId}", controllers.SetSubtaskDone(svcs.Tasks, logg))
				r.Delete("/{subtaskId}", controllers.RemoveSubtask(svcs.Tasks, logg))
			})

			r.Route("/{taskId}/comments", func(r chi.Router) {
				r.Get("/", controllers.ListTaskComments(svcs.Comments, logg))
				r.Post("/", controllers.CreateTaskComment(svcs.Comments, logg))
			})
		})

		r.Delete("/comments/{commentId}", controllers.DeleteComment(svcs.Comments, logg))

		r.Route("/budgets", func(r chi.Router) {
			r.Get("/", controllers.ListBudgets(svcs.Budgets, logg))
			r.Get("/{budgetId}", controllers.GetBudget(svcs.Budgets, logg))
			r.With(middleware.RequireRoles(logg, staff...)).Post("/", controllers.CreateBudget(svcs.Budgets, logg))
			r.With(middleware.RequireRoles(logg, staff...)).Patch("/{budgetId}", controllers.UpdateBudget(svcs.Budgets, logg))
			r.With(middleware.RequireRoles(logg, managers...)).Post("/{budgetId}/status", controllers.UpdateBudgetStatus(svcs.Budgets, logg))
			r.With(middleware.RequireRoles(logg, managers...)).Delete("/{budgetId}", controllers.DeleteBudget(svcs.Budgets, logg))
		})

		r.Route("/quotations", func(r chi.Router) {
			r.Get("/", controllers.ListQuotations(svcs.Quotations, logg))
			r.Get("/{quotationId}", controllers.GetQuotation(svcs.Quotations, logg))
			r.With(middleware.RequireRoles(logg, staff...)).Post("/", controllers.CreateQuotation(svcs.Quotations, logg))
			r.With(middleware.RequireRoles(logg, staff...)).Patch("/{quotationId}", controllers.UpdateQuotation(svcs.Quotations, logg))
			r.With(middleware.RequireRoles(logg, staff...)).Post("/{quotationId}/submit", controllers.SubmitQuotation(svcs.Quotations, logg))
			r.With(middleware.RequireRoles(logg, managers...)).Post("/{quotationId}/approve", controllers.ApproveQuotation(svcs.Quotations, logg))
			r.With(middleware.RequireRoles(logg, managers...)).Post("/{quotationId}/reject", controllers.RejectQuotation(svcs.Quotations, logg))
			r.With(middleware.RequireRoles(logg, managers...)).Delete("/{quotationId}", controllers.DeleteQuotation(svcs.Quotations, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.ListInventoryItems(svcs.Inventory, logg))
			r.Get("/{itemId}", controllers.GetInventoryItem(svcs.Inventory, logg))
			r.Get("/{itemId}/availability", controllers.ItemAvailability(svcs.Inventory, logg))
			r.With(middleware.RequireRoles(logg, managers...)).Post("/", controllers.CreateInventoryItem(svcs.Inventory, logg))
			r.With(middleware.RequireRoles(logg, managers...)).Patch("/{itemId}", controllers.UpdateInventoryItem(svcs.Inventory, logg))
			r.With(middleware.RequireRoles(logg, managers...)).Delete("/{itemId}", controllers.DeleteInventoryItem(svcs.Inventory, logg))
			r.With(middleware.RequireRoles(logg, staff...)).Post("/{itemId}/reservations", controllers.ReserveInventoryItem(svcs.Inventory, logg))
			r.With(middleware.RequireRoles(logg, managers...)).Delete("/{itemId}/reservations/{reservationId}", controllers.CancelReservation(svcs.Inventory, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(svcs.Notifications, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(svcs.Notifications, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(svcs.Notifications, logg))
		})
	})

	return r
}
