/*
Package tracker implements the EnergyTrack REST backend.

EnergyTrack is a minimal personal tracking service. A user creates an
anonymous account with a single request and receives a secret key. The
secret key addresses the user's page and entry collection; whoever has
the key owns the data. Entries carry a timestamp, an optional text
description and an optional energy rating from 1 to 10.

The backend creates its two sql relations at startup if they do not
exist, and registers all routes on a mux router:

	GET  /                           redirect to /new
	GET  /new                        create a user, redirect to the page
	GET  /demo                       create a user with demo entries, redirect to the page
	GET  /u/{secret}                 the user's page
	GET  /static/...                 frontend assets
	GET  /api/u/{secret}/entries     list entries, newest first
	POST /api/u/{secret}/entries     create an entry
*/
package tracker

import (
	"context"
	"fmt"

	"github.com/gorilla/mux"
	"github.com/relabs-tech/energytrack/core/csql"
	"github.com/relabs-tech/energytrack/core/logger"
	"github.com/relabs-tech/energytrack/core/schema"
)

// Backend is the EnergyTrack REST backend
type Backend struct {
	db        *csql.DB
	assetsDir string
	validator *schema.Validator

	sqlSelectUserBySecret string
	sqlInsertUser         string
	sqlListEntries        string
	sqlInsertEntry        string
	sqlReadEntry          string
}

// Builder is a builder helper for the Backend
type Builder struct {
	// DB is a postgres database opened with csql.OpenWithSchema. This is mandatory.
	DB *csql.DB
	// Router is a mux router. This is mandatory.
	Router *mux.Router
	// AssetsDir is the directory holding the frontend assets. This is optional,
	// the default is "./frontend".
	AssetsDir string
}

// New realizes the actual backend. It creates the sql relations (if they
// do not exist) and adds actual routes to router
func New(bb *Builder) *Backend {

	if bb.DB == nil {
		panic("DB is missing")
	}

	if bb.Router == nil {
		panic("Router is missing")
	}

	assetsDir := bb.AssetsDir
	if len(assetsDir) == 0 {
		assetsDir = "./frontend"
	}

	validator, err := schema.NewValidator([]string{entryRequestSchema}, nil)
	if err != nil {
		panic(fmt.Errorf("cannot compile entry request schema: %s", err))
	}
	if !validator.HasSchema(entryRequestSchemaID) {
		panic("entry request schema is missing")
	}

	b := &Backend{
		db:        bb.DB,
		assetsDir: assetsDir,
		validator: validator,
	}
	b.createTablesIfNotExist()
	b.prepareQueries()
	b.handleRoutes(bb.Router)
	return b
}

// poor man's database migrations
func (b *Backend) createTablesIfNotExist() {
	schema := b.db.Schema

	_, err := b.db.Exec(
		`CREATE table IF NOT EXISTS ` + schema + `."users"
(id serial PRIMARY KEY,
secret_key varchar NOT NULL UNIQUE,
created_at timestamp NOT NULL DEFAULT now()
);`)
	if err != nil {
		panic(err)
	}

	_, err = b.db.Exec(
		`CREATE table IF NOT EXISTS ` + schema + `."entries"
(id serial PRIMARY KEY,
user_id integer NOT NULL REFERENCES ` + schema + `."users"(id) ON DELETE CASCADE,
timestamp timestamp NOT NULL,
description varchar,
energy integer
);
CREATE index IF NOT EXISTS sort_index_entries_user_id_timestamp ON ` + schema + `."entries"(user_id,timestamp);`)
	if err != nil {
		panic(err)
	}
}

func (b *Backend) prepareQueries() {
	schema := b.db.Schema

	b.sqlSelectUserBySecret = `SELECT id FROM ` + schema + `."users" WHERE secret_key = $1;`
	b.sqlInsertUser = `INSERT INTO ` + schema + `."users"(secret_key) VALUES($1) RETURNING id;`
	b.sqlListEntries = `SELECT id, timestamp, description, energy FROM ` + schema + `."entries" ` +
		`WHERE user_id = $1 ORDER BY timestamp DESC,id DESC;`
	b.sqlInsertEntry = `INSERT INTO ` + schema + `."entries"(user_id,timestamp,description,energy) ` +
		`VALUES($1,$2,$3,$4) RETURNING id;`
	b.sqlReadEntry = `SELECT id, timestamp, description, energy FROM ` + schema + `."entries" WHERE id = $1;`
}

// handleRoutes adds all necessary handlers for the service's routes
func (b *Backend) handleRoutes(router *mux.Router) {

	nillog := logger.FromContext(nil)
	nillog.Debugln("backend: handle user routes: /, /new, /demo GET")
	nillog.Debugln("backend: handle page routes: /u/{secret}, /static/ GET")
	nillog.Debugln("backend: handle entry routes: /api/u/{secret}/entries GET,POST")

	b.handleUserRoutes(router)
	b.handlePageRoutes(router)
	b.handleEntryRoutes(router)
}

// userID resolves a secret key to the id of the user owning it.
// Returns csql.ErrNoRows if the secret key is unknown.
func (b *Backend) userID(ctx context.Context, secretKey string) (int, error) {
	var id int
	err := b.db.QueryRowContext(ctx, b.sqlSelectUserBySecret, secretKey).Scan(&id)
	return id, err
}
