package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
)

// Legacy action names accepted by the dispatcher endpoints.
const (
	ActionGetAllPayrolls  = "get_all_payrolls"
	ActionGeneratePayroll = "generate_payroll"
	ActionGenerateReport  = "generate_report"
)

type legacyRoute struct {
	method     string
	permission user.Permission
	handler    http.Handler
}

// LegacyDispatcher serves the old single-file endpoints that select an
// operation through the action query parameter.
type LegacyDispatcher struct {
	routes map[string]legacyRoute
}

// NewLegacyPayrollDispatcher serves payroll.php. generateLimiter, when set,
// wraps the generate action the same way as the versioned route.
func NewLegacyPayrollDispatcher(h PayrollHandler, generateLimiter func(http.Handler) http.Handler) *LegacyDispatcher {
	var generate http.Handler = http.HandlerFunc(h.GeneratePayroll)
	if generateLimiter != nil {
		generate = generateLimiter(generate)
	}
	return &LegacyDispatcher{routes: map[string]legacyRoute{
		ActionGetAllPayrolls:  {http.MethodGet, user.PermissionPayrollView, http.HandlerFunc(h.ListPayrollRecords)},
		ActionGeneratePayroll: {http.MethodPost, user.PermissionPayrollGenerate, generate},
	}}
}

func NewLegacyReportDispatcher(h ReportHandler) *LegacyDispatcher {
	return &LegacyDispatcher{routes: map[string]legacyRoute{
		ActionGenerateReport: {http.MethodGet, user.PermissionReportsView, http.HandlerFunc(h.GetMonthlyReport)},
	}}
}

func (d *LegacyDispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route, ok := d.routes[r.URL.Query().Get("action")]
	if !ok {
		response.BadRequest(w, "Invalid action", nil)
		return
	}
	if r.Method != route.method {
		w.Header().Set("Allow", route.method)
		response.BadRequest(w, "Action requires "+route.method, nil)
		return
	}

	middleware.RequirePermission(route.permission)(route.handler).ServeHTTP(w, r)
}
