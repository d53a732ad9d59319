// Command motor-control drives three motor GPIO outputs from tri-state motor values.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sweeney/motor-control/internal/config"
	"github.com/sweeney/motor-control/internal/control"
	"github.com/sweeney/motor-control/internal/gpio"
)

var (
	configPath string
	overrides  flagValues

	mainCmd = &cobra.Command{
		Use:           "motor-control",
		Short:         "Drive motor outputs from ON/OFF/UNKNOWN states",
		RunE:          runMotors,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	printConfigCmd = &cobra.Command{
		Use:   "print-config",
		Short: "Print the effective configuration as TOML and exit",
		RunE:  runPrintConfig,
	}
)

// flagValues holds command-line overrides. Only flags the user set are applied.
type flagValues struct {
	chip   string
	pins   [3]int
	states [3]string
	dryRun bool
	hold   bool
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	defaults := config.Default()
	f := mainCmd.PersistentFlags()
	f.StringVarP(&configPath, "config", "c", "/etc/motor-control.toml", "Config path (missing file means built-in defaults)")
	f.StringVar(&overrides.chip, "chip", defaults.Chip, "GPIO chip name")
	for i := range overrides.pins {
		f.IntVar(&overrides.pins[i], fmt.Sprintf("pin-m%d", i+1), defaults.Motor[i].Pin, fmt.Sprintf("BCM pin number for motor %d", i+1))
		f.StringVar(&overrides.states[i], fmt.Sprintf("motor%d", i+1), defaults.Motor[i].State, fmt.Sprintf("State of motor %d (ON, OFF, UNKNOWN)", i+1))
	}
	f.BoolVar(&overrides.dryRun, "dry-run", false, "Log writes instead of driving GPIO")
	f.BoolVar(&overrides.hold, "hold", false, "Keep outputs driven until SIGINT/SIGTERM")

	mainCmd.AddCommand(printConfigCmd)
	if err := mainCmd.Execute(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// loadConfig reads the config file and applies the flags that were set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	applyOverrides(&cfg, overrides, cmd.Flags().Changed)
	return cfg, nil
}

func applyOverrides(cfg *config.Config, v flagValues, changed func(string) bool) {
	if changed("chip") {
		cfg.Chip = v.chip
	}
	for i := range v.pins {
		if i >= len(cfg.Motor) {
			break
		}
		if changed(fmt.Sprintf("pin-m%d", i+1)) {
			cfg.Motor[i].Pin = v.pins[i]
		}
		if changed(fmt.Sprintf("motor%d", i+1)) {
			cfg.Motor[i].State = v.states[i]
		}
	}
	if changed("dry-run") {
		cfg.DryRun = v.dryRun
	}
	if changed("hold") {
		cfg.Hold = v.hold
	}
}

func runPrintConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := cfg.Encode()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runMotors(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	return run(cfg, openWriter, sigCh)
}

func openWriter(cfg config.Config) (gpio.Writer, error) {
	if cfg.DryRun {
		return gpio.NewSimulatedWriter(cfg.Pins())
	}
	return gpio.NewRealWriter(cfg.Chip, cfg.Pins(), cfg.ActiveLow())
}

// run initializes the driver once and applies one decision. With Hold set
// the outputs are held until a signal arrives and then parked; otherwise the
// lines are released still driven.
func run(cfg config.Config, newWriter func(config.Config) (gpio.Writer, error), sig <-chan os.Signal) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	motors, err := cfg.MotorStates()
	if err != nil {
		return err
	}

	w, err := newWriter(cfg)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer func() {
		if err := w.Close(); err != nil {
			log.Printf("gpio close error: %v", err)
		}
	}()

	log.Printf("started: chip=%s pins=%v dry-run=%v hold=%v", cfg.Chip, cfg.Pins(), cfg.DryRun, cfg.Hold)

	ctrl := control.New(w)
	action, err := ctrl.Apply(motors)
	if err != nil {
		return err
	}
	log.Printf("applied %s", action)

	if !cfg.Hold {
		// Outputs stay at their driven levels after the lines are released.
		return nil
	}

	s := <-sig
	log.Printf("received %v, shutting down", s)
	if err := w.Park(); err != nil {
		return fmt.Errorf("park outputs: %w", err)
	}
	return nil
}
