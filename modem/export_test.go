package modem

// EnsureBooted exposes ensureBooted to the external test package.
var EnsureBooted = (*Modem).ensureBooted
