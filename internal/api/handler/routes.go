package handler

import (
	"net/http"

	"github.com/vfg2006/attribution-api/internal/api/handler/router"
	"github.com/vfg2006/attribution-api/internal/usecases/attributing"
	"github.com/vfg2006/attribution-api/internal/usecases/authenticating"
	"github.com/vfg2006/attribution-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: MetricsHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/login",
			Method:      http.MethodPost,
			Handler:     Login(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.MetricsMiddleware("/v1/login")},
		},
	}
}

func Attribution(service attributing.Attributor) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/attribution/compare",
			Method:  http.MethodGet,
			Handler: CompareFromRepository(service),
			Middlewares: []func(http.Handler) http.Handler{
				middleware.MetricsMiddleware("/v1/attribution/compare"),
				middleware.AllRoles(),
			},
		},
		{
			Path:    "/v1/attribution/compare",
			Method:  http.MethodPost,
			Handler: CompareRecords(service),
			Middlewares: []func(http.Handler) http.Handler{
				middleware.MetricsMiddleware("/v1/attribution/compare"),
				middleware.AllRoles(),
			},
		},
		{
			Path:    "/v1/attribution/patterns",
			Method:  http.MethodGet,
			Handler: ComparePatterns(service),
			Middlewares: []func(http.Handler) http.Handler{
				middleware.MetricsMiddleware("/v1/attribution/patterns"),
				middleware.AllRoles(),
			},
		},
		{
			Path:    "/v1/attribution/snapshots",
			Method:  http.MethodPost,
			Handler: Snapshots(service),
			Middlewares: []func(http.Handler) http.Handler{
				middleware.MetricsMiddleware("/v1/attribution/snapshots"),
				middleware.AllRoles(),
			},
		},
	}
}

func Reports(source ReportSource) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports/latest",
			Method:  http.MethodGet,
			Handler: LatestReports(source),
			Middlewares: []func(http.Handler) http.Handler{
				middleware.MetricsMiddleware("/v1/reports/latest"),
				middleware.AllRoles(),
			},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
