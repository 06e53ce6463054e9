package tracker

import (
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"github.com/relabs-tech/energytrack/core/csql"
	"github.com/relabs-tech/energytrack/core/logger"
)

// Entry is a single tracked moment. Description and Energy are pointers
// because either one can be null, but never both at the same time.
type Entry struct {
	ID          int       `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Description *string   `json:"description"`
	Energy      *int      `json:"energy"`
}

func (b *Backend) handleEntryRoutes(router *mux.Router) {

	entriesRoute := "/api/u/{secret}/entries"

	router.Handle(entriesRoute, handlers.CompressHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Infoln("called route for", r.URL, r.Method)
		switch r.Method {
		case http.MethodGet:
			b.listEntriesWithAuth(w, r)
		case http.MethodPost:
			b.createEntryWithAuth(w, r)
		}
	}))).Methods(http.MethodGet, http.MethodPost)
}

// listEntriesWithAuth returns all entries of the user owning the secret key,
// sorted by timestamp from new to old
func (b *Backend) listEntriesWithAuth(w http.ResponseWriter, r *http.Request) {
	rlog := logger.FromContext(r.Context())
	params := mux.Vars(r)

	userID, err := b.userID(r.Context(), params["secret"])
	if err == csql.ErrNoRows {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	} else if err != nil {
		rlog.WithError(err).Errorf("Error 2321: cannot look up user")
		http.Error(w, "Error 2321", http.StatusInternalServerError)
		return
	}

	rows, err := b.db.QueryContext(r.Context(), b.sqlListEntries, userID)
	if err != nil {
		rlog.WithError(err).Errorf("Error 2322: cannot query entries")
		http.Error(w, "Error 2322", http.StatusInternalServerError)
		return
	}

	response := []Entry{}
	defer rows.Close()
	for rows.Next() {
		var entry Entry
		err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.Description, &entry.Energy)
		if err != nil {
			rlog.WithError(err).Errorf("Error 2323: cannot scan entry")
			http.Error(w, "Error 2323", http.StatusInternalServerError)
			return
		}
		response = append(response, entry)
	}

	jsonData, _ := json.MarshalWithOption(response, json.DisableHTMLEscape())
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(jsonData)
}

// createEntryWithAuth creates a new entry for the user owning the secret key
// and returns the entry as the database sees it
func (b *Backend) createEntryWithAuth(w http.ResponseWriter, r *http.Request) {
	rlog := logger.FromContext(r.Context())
	params := mux.Vars(r)

	userID, err := b.userID(r.Context(), params["secret"])
	if err == csql.ErrNoRows {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	} else if err != nil {
		rlog.WithError(err).Errorf("Error 2321: cannot look up user")
		http.Error(w, "Error 2321", http.StatusInternalServerError)
		return
	}

	body, _ := io.ReadAll(r.Body)
	request, details := b.validateEntryRequest(string(body))
	if len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	tx, err := b.db.BeginTx(r.Context(), nil)
	if err != nil {
		rlog.WithError(err).Errorf("Error 2325: BeginTx")
		http.Error(w, "Error 2325", http.StatusInternalServerError)
		return
	}
	var id int
	err = tx.QueryRow(b.sqlInsertEntry, userID, request.Timestamp, request.Description, request.Energy).Scan(&id)
	if err != nil {
		status := http.StatusInternalServerError
		msg := "Error 2326"
		if err, ok := err.(*pq.Error); ok && err.Code == "23503" {
			// 23503 is FOREIGN KEY VIOLATION and means that the user is gone
			status = http.StatusNotFound
			msg = "user not found"
		} else {
			rlog.WithError(err).Errorf("Error 2326: QueryRow query: `%s`", b.sqlInsertEntry)
		}
		tx.Rollback()
		http.Error(w, msg, status)
		return
	}

	// re-read the entry and return it as json
	var entry Entry
	err = tx.QueryRow(b.sqlReadEntry, id).Scan(&entry.ID, &entry.Timestamp, &entry.Description, &entry.Energy)
	if err != nil {
		tx.Rollback()
		rlog.WithError(err).Errorf("Error 2327: re-read entry")
		http.Error(w, "Error 2327", http.StatusInternalServerError)
		return
	}
	err = tx.Commit()
	if err != nil {
		rlog.WithError(err).Errorf("Error 2328: cannot commit entry")
		http.Error(w, "Error 2328", http.StatusInternalServerError)
		return
	}

	jsonData, _ := json.MarshalWithOption(entry, json.DisableHTMLEscape())
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(jsonData)
}
