// osufetch downloads beatmap sets by ID and extracts their .osu files.
// The osu_session cookie is read from the OSU_SESSION environment
// variable; a .env file in the working directory is honored.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/alecthomas/kingpin.v2"

	"osukit/mirror"
	"osukit/osz"
)

var (
	setIDs = kingpin.Arg("set-id", "Beatmap set IDs to download").Required().Ints()
	outDir = kingpin.Flag("out", "Output directory").Short('O').Default(".").String()
)

func main() {
	kingpin.Version("0.1.0")
	kingpin.Parse()

	logger := log.New(os.Stderr, "[osufetch] ", log.LstdFlags)

	_ = godotenv.Load()
	session := os.Getenv("OSU_SESSION")
	if session == "" {
		logger.Fatalln("OSU_SESSION is not set; log in on the website and copy the osu_session cookie")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := mirror.New(session, logger)
	defer client.Close()
	for _, id := range *setIDs {
		if err := fetchSet(ctx, logger, client, id); err != nil {
			logger.Fatalln(err)
		}
	}
}

func fetchSet(ctx context.Context, logger *log.Logger, client *mirror.Client, id int) error {
	data, err := client.DownloadSet(ctx, id)
	if err != nil {
		return err
	}
	files, err := osz.Extract(data)
	if err != nil {
		return fmt.Errorf("set %d: %w", id, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("set %d: no .osu files in archive", id)
	}

	dir := filepath.Join(*outDir, strconv.Itoa(id))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for name, contents := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, contents, 0o644); err != nil {
			return err
		}
		logger.Printf("wrote %s (%d bytes)", path, len(contents))
	}
	return nil
}
