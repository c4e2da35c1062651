// Command cywctl brings up a CYW55500 over a hostio.Bus and dumps its
// lifecycle state and scan results (the chip identity is not dumped), the way
// go-tcg-storage's tcgsdiag dumps a negotiated TCG session with go-spew.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/soypat/cyw55500"
	"github.com/soypat/cyw55500/internal/busfake"
)

func main() {
	fwPath := flag.String("fw", "", "path to firmware image")
	nvramPath := flag.String("nvram", "", "path to NVRAM image")
	ssid := flag.String("ssid", "", "SSID to connect to after bring-up")
	passphrase := flag.String("passphrase", "", "WPA2 passphrase for -ssid")
	scan := flag.Bool("scan", false, "scan for access points after bring-up")
	flag.Parse()

	spew.Config.Indent = "  "
	spew.Config.DisableMethods = true

	var fw, nvram []byte
	var err error
	if *fwPath != "" {
		fw, err = os.ReadFile(*fwPath)
		if err != nil {
			log.Fatalf("read firmware: %v", err)
		}
	}
	if *nvramPath != "" {
		nvram, err = os.ReadFile(*nvramPath)
		if err != nil {
			log.Fatalf("read nvram: %v", err)
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// cywctl has no hardware backend of its own; it runs against a fake bus
	// on a development machine. The fake bus never reports function 1 ready,
	// so Init fails with a timeout there. A real deployment wires
	// internal/piohost.Host or an equivalent hostio.Bus instead.
	bus := busfake.New()
	cfg := cyw55500.DefaultConfig(fw, nvram)
	cfg.Logger = logger
	dev := cyw55500.NewDevice(bus, cfg)

	if err := dev.Init(); err != nil {
		log.Fatalf("init: %v", err)
	}
	log.Printf("state after init: %s", dev.State())

	if len(fw) > 0 {
		if err := dev.LoadFirmware(fw, nvram); err != nil {
			log.Fatalf("load firmware: %v", err)
		}
		if err := dev.Up(); err != nil {
			log.Fatalf("up: %v", err)
		}
	}

	log.Printf("dumping device state:")
	spew.Dump(dev.State())

	if *ssid != "" {
		if err := dev.Connect(*ssid, *passphrase); err != nil {
			log.Fatalf("connect: %v", err)
		}
	}

	if *scan {
		results, err := dev.Scan(16)
		if err != nil {
			log.Fatalf("scan: %v", err)
		}
		log.Printf("dumping %d scan results:", len(results))
		spew.Dump(results)
	}
}
