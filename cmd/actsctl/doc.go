// Command actsctl runs and administers the Astronaut Career Tracking System.
//
// # Quick Start
//
//	# Run database migrations
//	actsctl db migrate
//
//	# Start the server
//	actsctl server
//
//	# Import a roster of people and their duty histories
//	actsctl roster load roster.yml
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - ACTS_JWT_SECRET: HS256 secret for bearer tokens (optional)
//   - ACTS_CONFIG_PATH: directory holding acts.yml (default: /etc/acts)
//   - ACTS_LOG_LEVEL: Log level (trace, debug, info, warn, error)
//   - PORT: Server port (default: 8000)
//   - BIND_ADDRESS: Server bind address (default: 0.0.0.0)
package main
