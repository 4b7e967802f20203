// Package web provides the gin middleware shared by every catalog page:
// flash messages carried in scs sessions, CSRF protection for form posts,
// security headers, request ids and request logging.
//
// Middleware order matters. CSRF replaces the request with one carrying
// its own context, so the session middleware must run after it:
//
//	router.Use(web.RequestID(), web.RequestLogger(), web.Recovery())
//	router.Use(web.SecurityHeadersMiddleware())
//	router.Use(web.CSRFMiddleware(key, secure))
//	router.Use(sessions.SessionLoadSave())
package web
