package tracker

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/relabs-tech/energytrack/core/logger"
)

func (b *Backend) handleUserRoutes(router *mux.Router) {

	router.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Infoln("called route for", r.URL, r.Method)
		http.Redirect(w, r, "/new", http.StatusFound)
	})).Methods(http.MethodGet)

	router.Handle("/new", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Infoln("called route for", r.URL, r.Method)
		b.createUserWithRedirect(w, r)
	})).Methods(http.MethodGet)

	router.Handle("/demo", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Infoln("called route for", r.URL, r.Method)
		b.createDemoUserWithRedirect(w, r)
	})).Methods(http.MethodGet)
}

// createUserWithRedirect creates a new user with a random secret key and
// redirects the caller to the user's page. The secret key is the only
// credential there is, it exists nowhere but in the user's own URL.
func (b *Backend) createUserWithRedirect(w http.ResponseWriter, r *http.Request) {
	rlog := logger.FromContext(r.Context())

	secretKey := uuid.New().String()
	var userID int
	err := b.db.QueryRowContext(r.Context(), b.sqlInsertUser, secretKey).Scan(&userID)
	if err != nil {
		rlog.WithError(err).Errorf("Error 2311: cannot create user")
		http.Error(w, "Error 2311", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/u/"+secretKey, http.StatusFound)
}

// createDemoUserWithRedirect creates a new user like createUserWithRedirect
// does, but seeds the account with a few days worth of example entries. The
// user and all entries are created in a single transaction.
func (b *Backend) createDemoUserWithRedirect(w http.ResponseWriter, r *http.Request) {
	rlog := logger.FromContext(r.Context())

	secretKey := uuid.New().String()
	tx, err := b.db.BeginTx(r.Context(), nil)
	if err != nil {
		rlog.WithError(err).Errorf("Error 2312: cannot begin transaction")
		http.Error(w, "Error 2312", http.StatusInternalServerError)
		return
	}
	var userID int
	err = tx.QueryRow(b.sqlInsertUser, secretKey).Scan(&userID)
	if err != nil {
		tx.Rollback()
		rlog.WithError(err).Errorf("Error 2313: cannot create demo user")
		http.Error(w, "Error 2313", http.StatusInternalServerError)
		return
	}
	err = b.seedDemoEntries(tx, userID, time.Now().UTC())
	if err != nil {
		tx.Rollback()
		rlog.WithError(err).Errorf("Error 2314: cannot seed demo entries")
		http.Error(w, "Error 2314", http.StatusInternalServerError)
		return
	}
	err = tx.Commit()
	if err != nil {
		rlog.WithError(err).Errorf("Error 2315: cannot commit demo user")
		http.Error(w, "Error 2315", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/u/"+secretKey, http.StatusFound)
}
