package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/unrolled/secure"
)

type RouterConfig struct {
	AllowedOrigins      []string
	Production          bool
	RequestTimeout      time.Duration
	GenerateLimit       int
	AllowHeaderIdentity bool
}

func NewRouter(
	cfg RouterConfig,
	logger *slog.Logger,
	JWTService jwt.Service,
	payrollHandler PayrollHandler,
	reportHandler ReportHandler,
	leaveHandler LeaveHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept", "Authorization", "Content-Type",
			middleware.HeaderRequesterRole, middleware.HeaderRequesterID,
		},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
		SSLRedirect:           cfg.Production,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
	}).Handler)

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	if cfg.RequestTimeout > 0 {
		r.Use(chiMiddleware.Timeout(cfg.RequestTimeout))
	}

	generateLimiter := newGenerateLimiter(cfg.GenerateLimit)

	// Everything below needs a resolved requester
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.ResolveRequester(cfg.AllowHeaderIdentity))

		r.Route("/api/v1", func(r chi.Router) {
			r.Route("/payroll", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionPayrollView)).Get("/", payrollHandler.ListPayrollRecords)
				r.With(middleware.RequirePermission(user.PermissionPayrollView)).Get("/hours", payrollHandler.GetTotalHours)
				r.With(middleware.RequirePermission(user.PermissionPayrollView)).Get("/overtime-rules", payrollHandler.ListOvertimeRules)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollGenerate))
					if generateLimiter != nil {
						r.Use(generateLimiter)
					}
					r.Post("/generate", payrollHandler.GeneratePayroll)
				})

				r.With(middleware.RequirePermission(user.PermissionPayrollPay)).Put("/{id}/pay", payrollHandler.MarkPaid)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/monthly", reportHandler.GetMonthlyReport)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionLeaveReview))
				r.Put("/{id}/review", leaveHandler.ReviewRequest)
			})
		})

		// Legacy action dispatchers
		r.Handle("/payroll.php", NewLegacyPayrollDispatcher(payrollHandler, generateLimiter))
		r.Handle("/reports.php", NewLegacyReportDispatcher(reportHandler))
	})

	return r
}

// newGenerateLimiter limits payroll generation per requester, falling back to
// the client IP. A non-positive limit disables it.
func newGenerateLimiter(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return nil
	}
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(generateLimitKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			response.TooManyRequests(w, "Too many payroll generation requests, try again later")
		}),
	)
}

func generateLimitKey(r *http.Request) (string, error) {
	if requester, ok := middleware.RequesterFromContext(r.Context()); ok && requester.EmployeeID != "" {
		return "requester:" + requester.EmployeeID, nil
	}
	key, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + key, nil
}
