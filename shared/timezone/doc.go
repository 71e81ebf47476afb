// Package timezone keeps every timestamp the service produces in one
// configured location.
//
// Usage:
//
//	now := timezone.Now()                      // current time in app timezone
//	local := timezone.ToAppTime(storedAt)      // convert a stored time
//	text := timezone.Format(now, time.RFC3339) // render in app timezone
//	since, err := timezone.Parse(time.RFC3339, r.URL.Query().Get("since"))
//
// Services never call Now directly. They receive a Clock:
//
//	svc := service.New(repo, timezone.NewClock())
//
// and tests hand them a settable clock from the mocks package instead.
//
// The location comes from APP_TIMEZONE and must be an IANA name such as
// "UTC" or "America/Sao_Paulo". It is loaded when the package is imported.
package timezone
