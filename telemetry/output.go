package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/dreamers/config"
)

// OutputManager handles structured experiment output with CSV logging.
// A nil OutputManager is valid and discards everything.
type OutputManager struct {
	dir           string
	telemetryFile *os.File
	soundsFile    *os.File
	deathsFile    *os.File

	telemetryHeaderWritten bool
	soundsHeaderWritten    bool
	deathsHeaderWritten    bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}
	om.telemetryFile = f

	f, err = os.Create(filepath.Join(dir, "sounds.csv"))
	if err != nil {
		om.telemetryFile.Close()
		return nil, fmt.Errorf("creating sounds.csv: %w", err)
	}
	om.soundsFile = f

	f, err = os.Create(filepath.Join(dir, "deaths.csv"))
	if err != nil {
		om.telemetryFile.Close()
		om.soundsFile.Close()
		return nil, fmt.Errorf("creating deaths.csv: %w", err)
	}
	om.deathsFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML alongside the CSVs.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return writeRecord(om.telemetryFile, []WindowStats{stats}, &om.telemetryHeaderWritten, "telemetry")
}

// WriteSound appends a sound event to sounds.csv.
func (om *OutputManager) WriteSound(ev SoundEvent) error {
	if om == nil {
		return nil
	}
	return writeRecord(om.soundsFile, []SoundEvent{ev}, &om.soundsHeaderWritten, "sounds")
}

// WriteDeath appends a death event to deaths.csv.
func (om *OutputManager) WriteDeath(ev DeathEvent) error {
	if om == nil {
		return nil
	}
	return writeRecord(om.deathsFile, []DeathEvent{ev}, &om.deathsHeaderWritten, "deaths")
}

// writeRecord marshals records to f, emitting the header only on first use.
func writeRecord[T any](f *os.File, records []T, headerWritten *bool, what string) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return fmt.Errorf("writing %s: %w", what, err)
		}
		*headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, f); err != nil {
		return fmt.Errorf("writing %s: %w", what, err)
	}
	return nil
}

// Close closes all output files.
func (om *OutputManager) Close() {
	if om == nil {
		return
	}
	om.telemetryFile.Close()
	om.soundsFile.Close()
	om.deathsFile.Close()
}
