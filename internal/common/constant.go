package common

// AuthHeaderName is the HTTP header carrying the bearer token on requests
// to the entry store.
const AuthHeaderName = "Authorization"

// BearerPrefix is the scheme prefix expected in AuthHeaderName.
const BearerPrefix = "Bearer "

// MaxPhotosPerEntry caps the photo set of one car entry, counting both
// already-persisted photos and newly staged files.
const MaxPhotosPerEntry = 6
