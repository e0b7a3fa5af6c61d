package server

import (
	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/gosuda/cadence/internal/api/v1"
	"github.com/gosuda/cadence/internal/auth"
	"github.com/gosuda/cadence/internal/task"
)

func registerAuthRoutes(api huma.API, authSvc *auth.Service) {
	v1.RegisterAuthRoutes(api, authSvc)
}

func registerAPIRoutes(api huma.API, taskSvc *task.Service, authSvc *auth.Service) {
	v1.RegisterTaskRoutes(api, taskSvc)
	v1.RegisterDashboardRoutes(api, taskSvc)
	v1.RegisterProfileRoutes(api, taskSvc, authSvc)
}
