package handler

import "net/http"

// The front-end owns the actual markup; these named destinations exist
// so browser navigation hits the same guard rules the client router
// enforces: anonymous sessions are sent to the login entry, authenticated
// sessions are sent to the directory.

// HandleRoot routes the bare origin to the right entry point.
func HandleRoot(w http.ResponseWriter, r *http.Request) {
	if UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/directory", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

// HandleLoginPage is the unauthenticated entry.
func HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	if UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/directory", http.StatusFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"page": "login"})
}

// HandleSignupPage is the account-creation entry.
func HandleSignupPage(w http.ResponseWriter, r *http.Request) {
	if UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/directory", http.StatusFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"page": "signup"})
}

// HandleDirectoryPage is the directory listing destination.
func HandleDirectoryPage(w http.ResponseWriter, r *http.Request) {
	if UserFromContext(r.Context()) == nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"page": "directory"})
}
