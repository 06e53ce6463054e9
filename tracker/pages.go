package tracker

import (
	"net/http"
	"path/filepath"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/relabs-tech/energytrack/core/csql"
	"github.com/relabs-tech/energytrack/core/logger"
)

func (b *Backend) handlePageRoutes(router *mux.Router) {

	router.Handle("/u/{secret}", handlers.CompressHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Infoln("called route for", r.URL, r.Method)
		b.userPageWithAuth(w, r)
	}))).Methods(http.MethodGet)

	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/",
		http.FileServer(http.Dir(b.assetsDir)))).Methods(http.MethodGet)
}

// userPageWithAuth serves the page of the user owning the secret key. The
// page is the same for every user, the frontend reads the secret key from
// the URL and talks to the api with it.
func (b *Backend) userPageWithAuth(w http.ResponseWriter, r *http.Request) {
	rlog := logger.FromContext(r.Context())
	params := mux.Vars(r)

	_, err := b.userID(r.Context(), params["secret"])
	if err == csql.ErrNoRows {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	} else if err != nil {
		rlog.WithError(err).Errorf("Error 2341: cannot look up user")
		http.Error(w, "Error 2341", http.StatusInternalServerError)
		return
	}

	http.ServeFile(w, r, filepath.Join(b.assetsDir, "index.html"))
}
