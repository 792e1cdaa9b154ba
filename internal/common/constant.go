package common

const (
	// AuthorizationHeaderName carries the bearer access token.
	AuthorizationHeaderName = "Authorization"

	// UserIDHeaderName identifies the caller on the profile update and
	// delivery routes.
	UserIDHeaderName = "uid"

	// BearerScheme is the only accepted authorization scheme.
	BearerScheme = "Bearer"
)
