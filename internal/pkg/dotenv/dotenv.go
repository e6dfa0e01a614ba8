package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Load reads .env files into the process environment without overriding
// variables that are already set. Missing files are skipped. A -port flag, if
// given, wins over PORT.
func Load(files ...string) error {
	for _, file := range defaultFiles(files) {
		err := godotenv.Load(file)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}

	var portFlag string
	flag.StringVar(&portFlag, "port", "", "Server port (overrides PORT environment variable)")
	flag.Parse()

	if portFlag != "" {
		err := os.Setenv("PORT", portFlag)
		if err != nil {
			return fmt.Errorf("failed to set PORT environment variable: %w", err)
		}
	}
	return nil
}

func defaultFiles(files []string) []string {
	if len(files) == 0 {
		return []string{".env"}
	}
	return files
}
