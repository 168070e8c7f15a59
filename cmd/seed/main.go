// Command seed loads a YAML catalog fixture into the database.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/hintermeier-t/projet-11-amelioration/config"
	"github.com/hintermeier-t/projet-11-amelioration/services"

	"github.com/sirupsen/logrus"
)

func main() {
	file := flag.String("file", "catalog.yaml", "Path to the catalog fixture")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log := config.NewLogger(cfg)

	f, err := os.Open(filepath.Clean(*file))
	if err != nil {
		log.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	fixture, err := services.ParseCatalogFixture(f)
	if err != nil {
		log.Fatal(err)
	}

	db, err := config.OpenDB(cfg, log)
	if err != nil {
		log.Fatal(err)
	}
	if err := config.Migrate(db); err != nil {
		log.Fatal(err)
	}

	res, err := services.NewCatalogService(db).Import(context.Background(), fixture)
	if err != nil {
		log.Fatalf("import: %v", err)
	}
	log.WithFields(logrus.Fields{
		"created": res.Created,
		"updated": res.Updated,
	}).Info("catalog imported")
}
