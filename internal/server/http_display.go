package server

import "fmt"

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo() {
	s.displayEndpoints()
	s.displayAuthInfo()
	s.displayRequestLimitInfo()
	s.displayRateLimitInfo()
}

// displayEndpoints shows available API endpoints
func (s *Server) displayEndpoints() {
	fmt.Println("Available endpoints:")
	fmt.Println("  GET  /health                              - Health check")
	fmt.Println("  GET  /stats                               - Server statistics")
	fmt.Println("  POST /api/auth/login                      - Log in")
	fmt.Println("  POST /api/auth/register                   - Register an account")
	fmt.Println("  GET  /api/jobs                            - Job catalog")
	fmt.Println("  GET  /api/courses                         - Course catalog")
	fmt.Println("  POST /api/applications                    - Submit application (requires API key)")
	fmt.Println("  POST /api/applications/{id}/decision      - Approve or reject (requires API key)")
	fmt.Println("  GET  /api/users/{id}/notifications        - Notification feed (requires API key)")
	fmt.Println("  POST /api/notifications/{id}/read         - Mark notification read (requires API key)")
	fmt.Println("  POST /api/advisory/*                      - Advisory generation (requires API key)")
	fmt.Println("  GET  /api/advisory/course-recommendation  - Deterministic course match")
}

// displayAuthInfo shows authentication configuration
func (s *Server) displayAuthInfo() {
	if len(s.APIKeys) > 0 {
		fmt.Printf("API authentication: ENABLED (%d keys configured)\n", len(s.APIKeys))
		fmt.Println("Include 'X-API-Key: <your-key>' header in requests to protected endpoints")
	} else {
		fmt.Println("API authentication: DISABLED (no API keys configured)")
		fmt.Println("WARNING: API endpoints are publicly accessible!")
	}
}

// displayRequestLimitInfo shows request size limit configuration
func (s *Server) displayRequestLimitInfo() {
	if s.MaxRequestSize > 0 {
		fmt.Printf("Request size limit: %d bytes (%.1f MB)\n", s.MaxRequestSize, float64(s.MaxRequestSize)/(1024*1024))
	} else {
		fmt.Println("Request size limit: DISABLED")
		fmt.Println("WARNING: No request size limits configured!")
	}
}

// displayRateLimitInfo shows rate limiting configuration
func (s *Server) displayRateLimitInfo() {
	if s.RateLimit.Enabled {
		fmt.Printf("Rate limiting: ENABLED (%d req/min, burst %d)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
	} else {
		fmt.Println("Rate limiting: DISABLED")
	}
}
