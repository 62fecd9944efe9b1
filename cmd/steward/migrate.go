package main

import (
	"embed"
	"errors"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const (
	docMigrate = `Create or update the database schema`
)

//go:embed migrations/*.sql
var migrations embed.FS

type optsMigrate struct {
	optsGeneral
	optsDatabase

	Down bool `long:"down" description:"Roll the schema back instead"`
}

func (c *optsMigrate) Execute(args []string) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, c.databaseURL())
	if err != nil {
		return err
	}
	defer m.Close()

	if c.Down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		log.Println("schema already up to date")
		return nil
	}
	return err
}
