package auth

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Error is a provider error with its original code and a message
// suitable for showing to the user.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// providerMessages maps Identity Toolkit error codes to user-readable
// strings, mirroring the messages the original web client showed.
var providerMessages = map[string]string{
	"EMAIL_EXISTS":                "An account with this email already exists.",
	"EMAIL_NOT_FOUND":             "No account found with this email.",
	"INVALID_PASSWORD":            "Incorrect password. Please try again.",
	"INVALID_LOGIN_CREDENTIALS":   "Incorrect email or password. Please try again.",
	"WEAK_PASSWORD":               "Password is too weak. Use at least 6 characters.",
	"INVALID_EMAIL":               "Please enter a valid email address.",
	"USER_DISABLED":               "This account has been disabled.",
	"TOO_MANY_ATTEMPTS_TRY_LATER": "Too many attempts. Please try again later.",
	"TOKEN_EXPIRED":               "Your session has expired. Please sign in again.",
	"INVALID_REFRESH_TOKEN":       "Your session is no longer valid. Please sign in again.",
}

// parseProviderError turns an identity-provider error body into an
// Error with a user-readable message.
func parseProviderError(body []byte) error {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &parsed) != nil || parsed.Error.Message == "" {
		return &Error{Code: "UNKNOWN", Message: "Authentication failed. Please try again."}
	}

	// Codes can carry a suffix, e.g. "WEAK_PASSWORD : Password should
	// be at least 6 characters".
	code := parsed.Error.Message
	if i := strings.IndexAny(code, " :"); i > 0 {
		code = code[:i]
	}

	if msg, ok := providerMessages[code]; ok {
		return &Error{Code: code, Message: msg}
	}
	return &Error{Code: code, Message: fmt.Sprintf("Authentication failed (%s).", code)}
}
