package errx

// System-level codes shared by every component. Domain codes such as
// CODE_VALIDATION belong to the package that raises them, not here.

const (
	// CodeInternal is the fallback for unexpected failures.
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable means a dependency (actor, runtime, file) could not serve the call.
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"
	// CodeTimeout means the call or a dependency timed out.
	CodeTimeout Code = "TIMEOUT"
)

// Sentinels. Derive new values with WithData/WithCause, never mutate.
var (
	ErrInternal    = NewSys(CodeInternal, "internal error")
	ErrUnavailable = NewSys(CodeUnavailable, "service unavailable")
	ErrTimeout     = NewSys(CodeTimeout, "request timeout")
)
