package http

import "net/http"

// userIDHeader carries the caller identity established by the upstream
// identity provider. The service trusts the value as given.
const userIDHeader = "X-User-ID"

func callerID(r *http.Request) (string, bool) {
	id := r.Header.Get(userIDHeader)
	return id, id != ""
}

func requireCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "missing "+userIDHeader+" header")
	}
	return id, ok
}
