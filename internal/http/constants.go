package httpx

// sessionCookieName is the cookie carrying the opaque session identifier.
const sessionCookieName = "session_id"
