// internal/auth/auth.go
package auth

import (
	"crypto/subtle"
	"net/http"
)

// Credentials is the injected admin username/password pair.
type Credentials struct {
	Username string
	Password string
}

// Authenticator checks admin credentials. The operator routes sit behind
// its middleware; the tracking route does not.
type Authenticator struct {
	Creds Credentials
}

func (a *Authenticator) Check(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.Creds.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.Creds.Password)) == 1
	return userOK && passOK
}

// Middleware enforces HTTP Basic auth with the injected credentials.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || !a.Check(user, pass) {
			w.Header().Set("WWW-Authenticate", `Basic realm="phishsim"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
