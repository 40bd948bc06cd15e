// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

// x32mirror keeps a passive, queryable mirror of a Behringer X32 console.
// It polls the console for a full state dump on an interval, holds the
// subscription open with /xremote, and applies every update the console
// streams back.
package main

import (
	"net"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/chabad360/go-x32/osc"
	"github.com/chabad360/go-x32/x32"
)

var log = logrus.New()

func main() {
	app := &cli.App{
		Name:  "x32mirror",
		Usage: "passive state mirror for a Behringer X32 console",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "console",
				Aliases: []string{"c"},
				Usage:   "console address (host:port)",
				Value:   "192.168.1.64:10023",
				EnvVars: []string{"X32_CONSOLE"},
			},
			&cli.DurationFlag{
				Name:  "poll",
				Usage: "full state refresh interval",
				Value: 5 * time.Minute,
			},
			&cli.DurationFlag{
				Name:  "keepalive",
				Usage: "/xremote subscription refresh interval",
				Value: 5 * time.Second,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "trace, debug, info, warn, or error",
				Value: "info",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	level, err := logrus.ParseLevel(c.String("log-level"))
	if err != nil {
		return err
	}
	log.SetLevel(level)

	addr, err := net.ResolveUDPAddr("udp", c.String("console"))
	if err != nil {
		return err
	}

	// One connected socket for both directions: the console replies to
	// the source port of whatever asked.
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	log.WithFields(logrus.Fields{
		"console": addr.String(),
		"local":   conn.LocalAddr().String(),
	}).Info("mirror starting")

	m := &mirror{console: x32.NewConsole()}

	go poll(conn, c.Duration("poll"), c.Duration("keepalive"))

	server := &osc.Server{Handler: m.handle}
	return server.Serve(conn)
}

// poll sends the subscription keep-alive and the periodic full refresh.
func poll(conn *net.UDPConn, refresh, keepalive time.Duration) {
	fullUpdate(conn)

	refreshTick := time.NewTicker(refresh)
	keepaliveTick := time.NewTicker(keepalive)
	defer refreshTick.Stop()
	defer keepaliveTick.Stop()

	for {
		select {
		case <-keepaliveTick.C:
			if _, err := conn.Write(x32.KeepAliveRequest()); err != nil {
				log.WithError(err).Warn("keepalive send failed")
			}
		case <-refreshTick.C:
			fullUpdate(conn)
		}
	}
}

func fullUpdate(conn *net.UDPConn) {
	buffers := x32.FullUpdateRequests()
	for _, buf := range buffers {
		if _, err := conn.Write(buf); err != nil {
			log.WithError(err).Warn("full update send failed")
			return
		}
	}
	log.WithField("requests", len(buffers)).Debug("full update requested")
}

type mirror struct {
	mu      sync.Mutex
	console *x32.Console
}

func (m *mirror) handle(pkt osc.Packet, from net.Addr) {
	m.mu.Lock()
	results := m.console.Process(pkt)
	m.mu.Unlock()

	for _, result := range results {
		switch result.Kind {
		case x32.FaderChanged:
			lvl, display := result.Fader.Level()
			_, on := result.Fader.IsOn()
			log.WithFields(logrus.Fields{
				"fader": result.Fader.Source().MirrorAddress(),
				"name":  result.Fader.Name(),
				"level": lvl,
				"db":    display,
				"on":    on,
				"color": result.Fader.Color().String(),
			}).Info("fader")
		case x32.CueChanged:
			log.WithField("active", result.Display).Info("cue")
		case x32.MeterSamples:
			log.WithFields(logrus.Fields{
				"bank":    result.Meters.Bank,
				"samples": len(result.Meters.Samples),
			}).Debug("meters")
		}
	}
}
