package main

import (
	"github.com/ketrez/steward/internal/utils"
	"github.com/ketrez/steward/pkg/api"
	"github.com/ketrez/steward/pkg/api/http/server"
	"github.com/ketrez/steward/pkg/broadcast"
	"github.com/ketrez/steward/pkg/database"
	"github.com/ketrez/steward/pkg/queue"
	"github.com/ketrez/steward/pkg/task"
)

const (
	docApi = `Run the API server`
)

type optsAPI struct {
	optsGeneral
	optsDatabase
	optsRedis

	Addr string `long:"addr" env:"ADDR" description:"Address to bind to" default:"localhost:8100"`
}

func (c *optsAPI) Execute(args []string) error {
	// This serves the task manager to clients over HTTP. It performs no
	// execution or reconciliation itself; run `worker` for that.
	tlsCfg, err := utils.TLSConfig(c.RedisTLSCaCert, c.RedisTLSCert, c.RedisTLSKey)
	if err != nil {
		panic(err)
	}

	reg := task.NewRegistry()
	if err := task.RegisterBuiltins(reg); err != nil {
		panic(err)
	}

	svc, err := api.NewDefault(
		&database.Options{URL: c.databaseURL()},
		&queue.Options{URL: c.redisURL(), TLSConfig: tlsCfg},
		&broadcast.Options{URL: c.redisURL(), TLSConfig: tlsCfg},
		reg,
		api.OptionsClientDefault(),
	)
	if err != nil {
		panic(err)
	}

	s := server.NewServer(c.Addr, reg, c.Debug)
	return s.ServeForever(svc)
}
