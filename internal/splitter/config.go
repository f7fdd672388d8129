package splitter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultViaPitch is the pin-to-border distance (database units) the
// reference standard-cell library places primary pins at; a route point
// exactly this distance from a pin along one axis is taken to reach it.
const DefaultViaPitch = 70

// Config mirrors the persisted split_def.ini settings: which side of the
// split (BEOL/"back end", FEOL/"front end") to keep, the metal layer the
// split occurs at, and the input/output file paths of the last run.
type Config struct {
	InputFile  string
	OutputFile string
	BackEnd    bool
	FrontEnd   bool
	SplitLayer string
	ViaPitch   int64
}

// DefaultConfig matches the reference tool's hardcoded defaults.
func DefaultConfig() Config {
	return Config{
		BackEnd:    true,
		FrontEnd:   true,
		SplitLayer: "metal2",
		ViaPitch:   DefaultViaPitch,
	}
}

// LoadConfig parses a split_def.ini stream: one "KEY = value" assignment
// per line, in any order, unknown keys ignored. Values not present keep
// DefaultConfig's value, matching the reference tool's "last setup"
// fallback behavior.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 || fields[1] != "=" {
			return cfg, fmt.Errorf("splitter: malformed config line %q", line)
		}
		value := strings.Join(fields[2:], " ")
		var err error
		switch fields[0] {
		case "INPUT_FILE_NAME":
			cfg.InputFile = value
		case "OUTPUT_FILE_NAME":
			cfg.OutputFile = value
		case "BACK_END":
			cfg.BackEnd = toBool(value)
		case "FRONT_END":
			cfg.FrontEnd = toBool(value)
		case "SPLIT_LAYER":
			cfg.SplitLayer = value
		case "VIA_PITCH":
			cfg.ViaPitch, err = strconv.ParseInt(value, 10, 64)
		}
		if err != nil {
			return cfg, fmt.Errorf("splitter: config line %q: %w", line, err)
		}
	}
	return cfg, scanner.Err()
}

// SaveConfig persists cfg in the same "KEY = value" shape LoadConfig reads.
func SaveConfig(w io.Writer, cfg Config) error {
	lines := []string{
		fmt.Sprintf("INPUT_FILE_NAME = %s", cfg.InputFile),
		fmt.Sprintf("BACK_END = %t", cfg.BackEnd),
		fmt.Sprintf("FRONT_END = %t", cfg.FrontEnd),
		fmt.Sprintf("SPLIT_LAYER = %s", cfg.SplitLayer),
		fmt.Sprintf("VIA_PITCH = %d", cfg.ViaPitch),
		fmt.Sprintf("OUTPUT_FILE_NAME = %s", cfg.OutputFile),
	}
	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// toBool matches the reference tool's parsing: anything but a
// case-insensitive "false" is true.
func toBool(s string) bool {
	return !strings.EqualFold(s, "false")
}
