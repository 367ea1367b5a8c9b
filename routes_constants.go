package transposit

// Route path constants of the hosted backend, relative to the service origin.
const (
	// Sign-in
	RouteAuthorize = "/login/authorize"
	RouteToken     = "/login/authorize/token"

	// Sign-out; RouteLogout is navigated to, RouteAPILogout is called.
	RouteLogout    = "/logout"
	RouteAPILogout = "/api/v1/logout"

	RouteSettings = "/settings"

	// API Routes
	RouteUser    = "/api/v1/user"
	RouteExecute = "/api/v1/execute/"
)
