package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/sirupsen/logrus"

	"github.com/relabs-tech/energytrack/core/csql"
	"github.com/relabs-tech/energytrack/core/logger"
	"github.com/relabs-tech/energytrack/tracker"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
)

// Service holds the configuration for this service
//
// use POSTGRES="host=localhost port=5432 user=postgres dbname=postgres sslmode=disable"
// and POSTRGRES_PASSWORD="docker"
type Service struct {
	Postgres         string `env:"POSTGRES,required" description:"the connection string for the Postgres DB without password"`
	PostgresPassword string `env:"POSTGRES_PASSWORD,optional" description:"password to the Postgres DB"`
	Port             string `env:"PORT,default=3000" description:"the port the service listens on"`
	AssetsDir        string `env:"ASSETS_DIR,default=./frontend" description:"the directory holding the frontend assets"`
}

func main() {
	service := &Service{}
	if err := envdecode.Decode(service); err != nil {
		panic(err)
	}
	logger.InitLogger(logrus.InfoLevel)

	db := csql.OpenWithSchema(service.Postgres, service.PostgresPassword, "energytrack")
	defer db.Close()

	router := mux.NewRouter()
	logger.AddRequestID(router)
	tracker.New(&tracker.Builder{
		DB:        db,
		Router:    router,
		AssetsDir: service.AssetsDir,
	})

	server := &http.Server{
		Addr:    ":" + service.Port,
		Handler: router,
	}
	go func() {
		log.Println("listen on port :" + service.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	<-signalCh

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	server.Shutdown(ctx)
	log.Println("stopped")
}
