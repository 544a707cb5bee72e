// Command admininit creates the first administrator account, or grants
// administrator rights to an existing one. It reads the same configuration
// as the server.
package main

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/jobportal/internal/cli"
	"github.com/dmitrijs2005/jobportal/internal/logging"
	"github.com/dmitrijs2005/jobportal/internal/server"
	"github.com/dmitrijs2005/jobportal/internal/server/config"
	"github.com/dmitrijs2005/jobportal/internal/server/notify"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobportal/internal/server/services"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSON(os.Stderr, cfg.LogLevel)

	rm := repomanager.NewPostgresRepositoryManager()
	db, err := server.OpenDB(ctx, cfg.DatabaseDSN, rm)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	sink := notify.NewStoreSink(db, rm, logger)
	admin := services.NewAdminService(db, rm, sink, nil, logger)

	if err := cli.InitAdmin(ctx, admin, bufio.NewReader(os.Stdin), os.Stdout); err != nil {
		log.Printf("%v", err)
		db.Close()
		os.Exit(1)
	}
}
