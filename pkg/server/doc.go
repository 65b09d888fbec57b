// Package server provides the HTTP server for the ACTS API.
//
// This package implements the core HTTP server that handles all ACTS REST API
// requests. It uses gorilla/mux for routing and gorilla/handlers for access
// logging, CORS and panic recovery.
//
// # Server Setup
//
//	srv := server.NewServer(mediator, healthStore, db, cfg, log, server.Options{Port: "8080"})
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Components
//
// The Server struct holds:
//
//   - Router: operational routes (status, metrics), no authentication
//   - API: REST API routes, behind the bearer token authenticator
//   - Mediator: dispatches commands and queries
//   - HealthStore: database connectivity check
//   - Config: loaded configuration
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//   - GET, POST /Person and GET, PUT /Person/{name}
//   - GET /AstronautDuty/{name} and POST /AstronautDuty
//   - GET / - status
//   - GET /metrics - Prometheus metrics
package server
