package main

import (
	"os"
	"os/signal"

	"github.com/ketrez/steward/internal/utils"
	"github.com/ketrez/steward/pkg/api"
	"github.com/ketrez/steward/pkg/broadcast"
	"github.com/ketrez/steward/pkg/database"
	"github.com/ketrez/steward/pkg/queue"
	"github.com/ketrez/steward/pkg/task"
)

const (
	docWorker = `Run a steward worker node`
)

type optsWorker struct {
	optsGeneral
	optsDatabase
	optsRedis

	Node string `long:"node" env:"NODE" description:"Name this node writes into task events (defaults to hostname)"`
}

func (c *optsWorker) Execute(args []string) error {
	// This runs a node that pulls tasks off the queue and executes them,
	// plus the background reconciliation routines. Tasks run one at a
	// time across the whole cluster.
	tlsCfg, err := utils.TLSConfig(c.RedisTLSCaCert, c.RedisTLSCert, c.RedisTLSKey)
	if err != nil {
		panic(err)
	}

	reg := task.NewRegistry()
	if err := task.RegisterBuiltins(reg); err != nil {
		panic(err)
	}

	opts := api.OptionsWorkerDefault()
	opts.Node = c.Node

	svc, err := api.NewDefault(
		&database.Options{URL: c.databaseURL()},
		&queue.Options{URL: c.redisURL(), TLSConfig: tlsCfg},
		&broadcast.Options{URL: c.redisURL(), TLSConfig: tlsCfg},
		reg,
		opts,
	)
	if err != nil {
		panic(err)
	}

	defer svc.Close()

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt)
	<-exit

	return nil
}
