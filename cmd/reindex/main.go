package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"

	"token-registry-service/conf"
	"token-registry-service/database"
)

// Offline ownership-index rebuild. Drops all owner index entries and
// regenerates them from the token registry. Run against a stopped service.

var ENV string

func init() {
	flag.StringVar(&ENV, "env", "mainnet", "Environment: loc/mainnet/testnet")
}

func main() {
	flag.Parse()

	if ENV == "loc" {
		conf.SystemEnvironmentEnum = conf.LocalEnvironmentEnum
	} else if ENV == "mainnet" {
		conf.SystemEnvironmentEnum = conf.MainnetEnvironmentEnum
	} else if ENV == "testnet" {
		conf.SystemEnvironmentEnum = conf.TestnetEnvironmentEnum
	}
	fmt.Printf("Environment: %s\n", ENV)

	if err := conf.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	config := &database.PebbleConfig{
		DataDir: conf.Cfg.Database.DataDir,
	}
	if err := database.InitDatabase(database.DBTypePebble, config); err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.DB.Close()

	supply, err := database.DB.GetCounter(database.CounterTokenSupply)
	if err != nil {
		log.Fatalf("Failed to read token supply counter: %v", err)
	}

	bar := progressbar.NewOptions64(
		supply,
		progressbar.OptionSetDescription("Rebuilding ownership index"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("tokens"),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)

	rebuilt, err := database.DB.RebuildOwnershipIndex(func(tokenID string) {
		bar.Add(1)
	})
	if err != nil {
		log.Fatalf("\nFailed to rebuild ownership index: %v", err)
	}
	bar.Finish()

	fmt.Printf("\nOwnership index rebuilt: %d tokens indexed\n", rebuilt)
}
