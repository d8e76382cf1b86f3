// Command stubapi serves an in-memory stand-in for the upstream commerce API,
// for local storefront development.
package main

import (
	"flag"
	"log"
	"os"

	"storefront/internal/stubapi"
)

func main() {
	addr := flag.String("addr", ":9000", "listen address")
	secret := flag.String("jwt-secret", "dev-secret", "HMAC secret for issued tokens")
	seed := flag.Bool("seed", true, "load the demo catalog and admin account")
	flag.Parse()

	logger := log.New(os.Stdout, "[stubapi] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	srv := stubapi.New(logger, *secret)
	if *seed {
		if err := srv.Seed(); err != nil {
			logger.Fatalf("seed: %v", err)
		}
		logger.Println("seeded demo catalog (admin@example.com / admin123)")
	}

	logger.Printf("stub upstream listening on %s", *addr)
	if err := srv.Router().Run(*addr); err != nil {
		logger.Fatalf("serve: %v", err)
	}
}
