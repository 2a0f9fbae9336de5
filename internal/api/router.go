package api

import (
	"database/sql"
	"net/http"

	"github.com/paws4pals/inventory/internal/backup"
	"github.com/paws4pals/inventory/internal/model"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, guard *Guard, backups *backup.Service) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	itemsHandler := &ItemsHandler{Guard: guard}
	metadataHandler := &MetadataHandler{Guard: guard}
	reportsHandler := &ReportsHandler{Guard: guard}
	profileHandler := &ProfileHandler{DB: db}
	settingsHandler := &SettingsHandler{DB: db}
	backupsHandler := &BackupsHandler{DB: db, Service: backups}
	feedbackHandler := &FeedbackHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Users (admin only).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("GET /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Get))))
	mux.Handle("PUT /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Update))))
	mux.Handle("PUT /api/users/{id}/password", authMW(requireAdmin(http.HandlerFunc(usersHandler.ResetPassword))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	// Items: all roles may read; the session rejects writes from staff.
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("GET /api/items/draft", authMW(http.HandlerFunc(itemsHandler.Draft)))
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PUT /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("DELETE /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))
	mux.Handle("POST /api/items/{id}/transactions", authMW(http.HandlerFunc(itemsHandler.Transact)))
	mux.Handle("GET /api/items/{id}/movements", authMW(http.HandlerFunc(itemsHandler.Movements)))

	// Metadata: same access rules as items.
	mux.Handle("GET /api/metadata/{kind}", authMW(http.HandlerFunc(metadataHandler.List)))
	mux.Handle("POST /api/metadata/{kind}", authMW(http.HandlerFunc(metadataHandler.Create)))
	mux.Handle("PUT /api/metadata/{kind}/{id}", authMW(http.HandlerFunc(metadataHandler.Update)))
	mux.Handle("DELETE /api/metadata/{kind}/{id}", authMW(http.HandlerFunc(metadataHandler.Delete)))

	// Dashboard and reports.
	mux.Handle("GET /api/dashboard", authMW(http.HandlerFunc(reportsHandler.Dashboard)))
	mux.Handle("GET /api/reports/categories", authMW(http.HandlerFunc(reportsHandler.Categories)))
	mux.Handle("GET /api/reports/monthly", authMW(http.HandlerFunc(reportsHandler.Monthly)))
	mux.Handle("GET /api/reports/turnover", authMW(http.HandlerFunc(reportsHandler.Turnover)))

	// Own profile and preferences.
	mux.Handle("GET /api/profile", authMW(http.HandlerFunc(profileHandler.Get)))
	mux.Handle("PUT /api/profile", authMW(http.HandlerFunc(profileHandler.Update)))
	mux.Handle("PUT /api/profile/avatar", authMW(http.HandlerFunc(profileHandler.UploadAvatar)))
	mux.Handle("GET /api/profile/avatar", authMW(http.HandlerFunc(profileHandler.GetAvatar)))
	mux.Handle("GET /api/settings", authMW(http.HandlerFunc(settingsHandler.Get)))
	mux.Handle("PUT /api/settings/notifications", authMW(http.HandlerFunc(settingsHandler.UpdateNotifications)))
	mux.Handle("PUT /api/settings/appearance", authMW(http.HandlerFunc(settingsHandler.UpdateAppearance)))

	// Feedback: anyone signed in may submit; admins read it.
	mux.Handle("POST /api/feedback", authMW(http.HandlerFunc(feedbackHandler.Create)))
	mux.Handle("GET /api/feedback", authMW(requireAdmin(http.HandlerFunc(feedbackHandler.List))))

	// Backups (admin only).
	mux.Handle("PUT /api/settings/backup", authMW(requireAdmin(http.HandlerFunc(settingsHandler.UpdateBackupSchedule))))
	mux.Handle("GET /api/backups", authMW(requireAdmin(http.HandlerFunc(backupsHandler.List))))
	mux.Handle("POST /api/backups", authMW(requireAdmin(http.HandlerFunc(backupsHandler.Create))))
	mux.Handle("DELETE /api/backups/{id}", authMW(requireAdmin(http.HandlerFunc(backupsHandler.Delete))))
	mux.Handle("POST /api/backups/{id}/restore", authMW(requireAdmin(http.HandlerFunc(backupsHandler.Restore))))

	return mux
}
