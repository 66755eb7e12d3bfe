// Command learnsets loads the game master and language tables, then prints
// the learnset of one Pokémon or serves learnsets over HTTP.
//
// Flags:
//
//	--pokemon  print the learnset of this Pokémon once every source has loaded
//	--serve    keep running behind the HTTP server until interrupted
//
// Configuration comes from CONFIG_PATH (default ./config.yaml) and the
// environment; a .env file in the working directory is loaded first when
// present. Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/learnsets/internal/app"
)

func main() {
	pokemonFlag := flag.String("pokemon", "", "print the learnset of this Pokémon")
	serveFlag := flag.Bool("serve", false, "serve health and learnset endpoints until interrupted")
	flag.Parse()

	// Variables already set in the environment win over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("learnsets: load .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, app.Options{Pokemon: *pokemonFlag, Serve: *serveFlag}); err != nil {
		stop()
		log.Fatalf("learnsets: %v", err)
	}
}
