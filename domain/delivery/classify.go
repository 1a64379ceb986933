package delivery

import "net/http"

// Classify maps a response status code from the notices endpoint to a
// delivery outcome. A nil return means the notice was accepted. Status
// classes are checked before specific codes, so any 2xx is a success and
// any 3xx a redirect; codes matching neither a class nor a known terminal
// status yield an UnknownStatusError.
func Classify(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status >= 300 && status < 400:
		return ErrRedirected
	}

	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusUnprocessableEntity:
		return ErrUnprocessable
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusInternalServerError:
		return ErrServer
	default:
		return &UnknownStatusError{Code: status}
	}
}
