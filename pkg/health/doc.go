// Package health provides HTTP handlers for liveness and readiness checks.
//
// [LivenessHandler] always reports OK while the process runs.
// [ReadinessHandler] runs a set of named [Checks] in parallel with a timeout
// and reports 503 Service Unavailable when any of them fails:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "mysql": db.Healthcheck(conn),
//	}, health.WithTimeout(3*time.Second)))
//
// Responses are plain text unless the client asks for JSON with an
// Accept: application/json header or ?format=json. A failing plain text
// readiness response names each failed check on its own line:
//
//	Service Unavailable
//	mysql: dial tcp: connection refused
//
// The JSON form adds the latency of every check:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "mysql": {"status": "unhealthy", "error": "dial tcp: connection refused", "latency": "1.2ms"}
//	  }
//	}
package health
