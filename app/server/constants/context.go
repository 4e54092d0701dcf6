package constants

// ContextKeySession is where the route guard stores the caller's session on
// the echo context after a successful authorization.
const ContextKeySession = "session"
