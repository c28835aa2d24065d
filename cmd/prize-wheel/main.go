package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/prize-wheel/audio"
	"github.com/lixenwraith/prize-wheel/config"
	"github.com/lixenwraith/prize-wheel/constants"
	"github.com/lixenwraith/prize-wheel/core"
	"github.com/lixenwraith/prize-wheel/pool"
	"github.com/lixenwraith/prize-wheel/store"
	"github.com/lixenwraith/prize-wheel/wheel"
)

var (
	listFlag   = flag.Bool("list", false, "Print the prize pool and exit")
	resetFlag  = flag.Bool("reset", false, "Return all drawn prizes to the pool")
	clearFlag  = flag.Bool("clear", false, "Empty the prize pool")
	poolFlag   = flag.String("pool", "", "Replace the prize pool ('#' or newline separated)")
	dataFlag   = flag.String("data", "", "Data directory (overrides config)")
	configFlag = flag.String("config", "", "Config file path")
	debugFlag  = flag.Bool("debug", false, "Write debug log to "+constants.LogDir+"/"+constants.LogFileName)
	muteFlag   = flag.Bool("mute", false, "Disable sound for this run")
)

// poolCommands applies the non-interactive pool flags in order: clear, replace, reset
type poolCommands struct {
	clear bool
	raw   string
	reset bool
}

func (pc poolCommands) apply(ps *store.PoolStore) error {
	if pc.clear {
		if err := ps.ClearAll(); err != nil {
			return fmt.Errorf("clear pool: %w", err)
		}
	}
	if pc.raw != "" {
		normalized := pool.Normalize(pc.raw)
		if normalized == "" {
			return fmt.Errorf("pool %q has no labels", pc.raw)
		}
		if err := ps.SetRawInput(normalized); err != nil {
			return fmt.Errorf("set pool: %w", err)
		}
	}
	if pc.reset {
		if err := ps.ClearRemoved(); err != nil {
			return fmt.Errorf("reset pool: %w", err)
		}
	}
	return nil
}

// openStores opens the pool and audio stores under cfg.DataDir; audio config only seeds a first run
func openStores(cfg *config.Config) (*store.PoolStore, *store.AudioStore) {
	backend := store.NewFileBackend(cfg.DataDir)
	pools := store.OpenPool(backend, cfg.DefaultPool)
	prefs := store.OpenAudio(backend, store.AudioPrefs{
		Enabled: cfg.Audio.Enabled,
		Volume:  cfg.Audio.Volume(),
	})
	return pools, prefs
}

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *dataFlag != "" {
		cfg.DataDir = *dataFlag
	}
	log.Printf("main: data dir %s", cfg.DataDir)

	pools, prefs := openStores(cfg)

	cmds := poolCommands{clear: *clearFlag, raw: *poolFlag, reset: *resetFlag}
	if err := cmds.apply(pools); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if *listFlag {
		st := pools.State()
		printList(os.Stdout, pool.Parse(st.RawInput, st.RemovedLabels))
		return
	}

	if err := runUI(cfg, pools, prefs, *muteFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
}

func runUI(cfg *config.Config, pools *store.PoolStore, prefs *store.AudioStore, muted bool) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	core.SetCrashScreen(screen)

	// Panic recovery: restore the terminal even if the UI crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	defer func() {
		core.SetCrashScreen(nil)
		screen.Fini()
	}()

	stored := prefs.Prefs()
	player := audio.NewPlayer(audio.PlayerConfig{
		SampleRate: cfg.Audio.SampleRate,
		Enabled:    stored.Enabled,
		Volume:     stored.Volume,
	})
	defer player.Close()

	ctrl := wheel.New(wheel.Options{
		Pool:  pools,
		Prefs: prefs,
		Cues:  player,
		Muted: muted,
	})
	defer ctrl.Close()

	app := NewApp(screen, ctrl)
	defer app.Close()

	app.Run()
	return nil
}
