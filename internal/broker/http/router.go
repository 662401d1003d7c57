package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/internal/broker/service"
	"github.com/aussiebroadwan/seatbroker/internal/broker/store"
	"github.com/aussiebroadwan/seatbroker/pkg/httpx"
	"github.com/aussiebroadwan/seatbroker/pkg/slogx"

	_ "github.com/aussiebroadwan/seatbroker/api/broker" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	cookieSecure bool

	store           store.Store
	SessionService  *service.SessionService
	SettingsService *service.SettingsService
	AccountService  *service.AccountService
	LedgerService   *service.LedgerService
	RedeemService   *service.RedeemService
	BatchService    *service.BatchService
	CodeService     *service.CodeService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger, cookieSecure bool) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		cookieSecure: cookieSecure,
		store:        st,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerPublic()
	r.registerAdminSession()
	r.registerTeamAccounts()
	r.registerCodes()
	r.registerSettings()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Seat Broker API
//	@version		0.1.0
//	@description	Brokers seats on team workspaces: admins load team accounts and mint single-use invite codes, the public redeems a code for an invite.
//	@description
//	@description				Sessions are carried in httpOnly cookies: admin_session for administrators and access_session for the public access key.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/seatbroker
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	AdminSession
//	@in							cookie
//	@name						admin_session
//
//	@securityDefinitions.apikey	AccessSession
//	@in							cookie
//	@name						access_session
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// admin guards h with an admin session and a per-session rate limit.
func (r *Router) admin(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		r.requireSession(domain.RealmAdmin),
		httpx.RateLimitBySession(limit),
	)
}

func (r *Router) registerPublic() {
	h := &PublicHandler{
		Settings:     r.SettingsService,
		Sessions:     r.SessionService,
		Accounts:     r.AccountService,
		Redeem:       r.RedeemService,
		CookieSecure: r.cookieSecure,
	}

	r.Mux.Handle("GET /api/settings/public",
		httpx.Chain(http.HandlerFunc(h.HandlePublicSettings),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("GET /api/access/verify",
		httpx.Chain(http.HandlerFunc(h.HandleAccessStatus),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// Access key guesses are strictly limited per IP
	r.Mux.Handle("POST /api/access/verify",
		httpx.Chain(http.HandlerFunc(h.HandleAccessVerify),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /api/team-accounts/status",
		httpx.Chain(http.HandlerFunc(h.HandleTeamStatus),
			r.requireSession(domain.RealmAccess),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// Code checks and redemptions are strict to make code guessing slow
	r.Mux.Handle("POST /api/codes/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerifyCode),
			r.requireSession(domain.RealmAccess),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/invite/use",
		httpx.Chain(http.HandlerFunc(h.HandleRedeem),
			r.requireSession(domain.RealmAccess),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerAdminSession() {
	h := &AdminSessionHandler{
		Settings:     r.SettingsService,
		Sessions:     r.SessionService,
		CookieSecure: r.cookieSecure,
	}

	// POST /login - strict rate limit by IP (password and OTP guesses)
	r.Mux.Handle("POST /api/admin/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/admin/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /api/admin/check", r.admin(http.HandlerFunc(h.HandleCheck), httpx.LenientLimit))
}

func (r *Router) registerTeamAccounts() {
	h := &TeamAccountsHandler{
		Accounts: r.AccountService,
		Ledger:   r.LedgerService,
		Batch:    r.BatchService,
	}

	r.Mux.Handle("GET /api/admin/team-accounts", r.admin(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("POST /api/admin/team-accounts", r.admin(http.HandlerFunc(h.HandleCreate), httpx.ModerateLimit))
	r.Mux.Handle("PUT /api/admin/team-accounts/{id}", r.admin(http.HandlerFunc(h.HandleUpdate), httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/admin/team-accounts/{id}", r.admin(http.HandlerFunc(h.HandleDelete), httpx.ModerateLimit))

	// Everything below calls upstream
	r.Mux.Handle("POST /api/admin/team-accounts/{id}/sync", r.admin(http.HandlerFunc(h.HandleSync), httpx.ModerateLimit))
	r.Mux.Handle("POST /api/admin/team-accounts/{id}/batch-invite", r.admin(http.HandlerFunc(h.HandleBatchInvite), httpx.ModerateLimit))
	r.Mux.Handle("POST /api/admin/team-accounts/{id}/checkout", r.admin(http.HandlerFunc(h.HandleCheckout), httpx.ModerateLimit))
	r.Mux.Handle("POST /api/admin/team-accounts/smart-batch-invite", r.admin(http.HandlerFunc(h.HandleSmartBatchInvite), httpx.ModerateLimit))

	r.Mux.Handle("POST /api/admin/credentials/classify", r.admin(http.HandlerFunc(HandleClassifyCredential), httpx.LenientLimit))
}

func (r *Router) registerCodes() {
	h := &CodesHandler{Codes: r.CodeService}

	r.Mux.Handle("GET /api/admin/codes", r.admin(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("POST /api/admin/codes", r.admin(http.HandlerFunc(h.HandleGenerate), httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/admin/codes/{id}", r.admin(http.HandlerFunc(h.HandleDelete), httpx.ModerateLimit))
	r.Mux.Handle("POST /api/admin/codes/clear-used", r.admin(http.HandlerFunc(h.HandleDeleteUsed), httpx.ModerateLimit))
	r.Mux.Handle("GET /api/admin/codes/export", r.admin(http.HandlerFunc(h.HandleExport), httpx.LenientLimit))
}

func (r *Router) registerSettings() {
	h := &SettingsHandler{Settings: r.SettingsService}

	r.Mux.Handle("GET /api/admin/settings", r.admin(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PUT /api/admin/settings", r.admin(http.HandlerFunc(h.HandleUpdate), httpx.ModerateLimit))

	// TOTP verification is strict to prevent brute force of codes
	r.Mux.Handle("POST /api/admin/totp/enroll", r.admin(http.HandlerFunc(h.HandleTOTPEnroll), httpx.ModerateLimit))
	r.Mux.Handle("POST /api/admin/totp/confirm", r.admin(http.HandlerFunc(h.HandleTOTPConfirm), httpx.StrictLimit))
	r.Mux.Handle("POST /api/admin/totp/disable", r.admin(http.HandlerFunc(h.HandleTOTPDisable), httpx.StrictLimit))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
