package endpoints

import (
	"github.com/doodlesbykumbi/acts/pkg/server"
)

// RegisterAll registers all endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterPersonEndpoints(srv)
	RegisterAstronautDutyEndpoints(srv)
}
