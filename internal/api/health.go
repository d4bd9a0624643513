// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package api

import (
	"net/http"

	"github.com/lamnguyen/petvault/internal/platform/constants"
	"github.com/lamnguyen/petvault/internal/platform/postgres"
	redisplatform "github.com/lamnguyen/petvault/internal/platform/redis"
	"github.com/lamnguyen/petvault/internal/platform/respond"
)

// # Operational Probes

/*
health is the liveness probe.

Endpoint: GET /health

It only proves the process is serving requests; no dependency is touched.
*/
func (server *Server) health(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{
		constants.FieldStatus: "ok",
		"service":             constants.AppName,
		"version":             constants.AppVersion,
	})
}

/*
ready is the readiness probe.

Endpoint: GET /ready

It pings both backing stores. A failing dependency yields 503 so load
balancers stop routing traffic here until the dependency recovers.
*/
func (server *Server) ready(writer http.ResponseWriter, request *http.Request) {
	checks := map[string]string{
		"postgres": "ok",
		"redis":    "ok",
	}
	healthy := true

	if err := postgres.Ping(request.Context(), server.pool); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	}
	if err := redisplatform.Ping(request.Context(), server.cache); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	}

	status := http.StatusOK
	overall := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	respond.JSON(writer, status, map[string]interface{}{
		constants.FieldStatus: overall,
		"checks":              checks,
	})
}
