// Package app composes the exercise tracker: stores, domain services and
// their lifecycle.
//
// # Package Structure
//
//	internal/app/
//	├── application.go      # Application struct, wiring, lifecycle
//	├── domain/             # Domain models (pure data structures)
//	│   ├── user/           # Registered users
//	│   └── exercise/       # Exercises, day formatting, log queries
//	├── storage/            # Store interfaces
//	│   └── memory/         # In-memory implementation (the only backend)
//	├── services/           # Validation and business rules
//	│   ├── users/
//	│   └── exercises/
//	├── httpapi/            # HTTP routes, request decoding, response shaping
//	├── system/             # Lifecycle manager and cron scheduler
//	└── metrics/            # Prometheus collectors
//
// # Usage
//
//	application, err := app.New(app.Stores{}, log)
//	if err != nil {
//	    return err
//	}
//	handler := httpapi.NewHandler(application, httpapi.Options{Logger: log})
package app
