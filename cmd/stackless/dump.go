package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stackless/internal/analysis"
	"stackless/internal/config"
	"stackless/internal/driver"
	"stackless/internal/env"
	"stackless/internal/testkit"
)

var (
	dumpConfigPath string
	dumpCacheDir   string
	dumpMetrics    bool
)

func init() {
	dumpCmd.Flags().StringVar(&dumpConfigPath, "config", "", "path to stackless.toml")
	dumpCmd.Flags().StringVar(&dumpCacheDir, "cache-dir", "", "cache rendered dumps in this directory")
	dumpCmd.Flags().BoolVar(&dumpMetrics, "metrics", false, "print processing counters in Prometheus text format after the run")
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Render the demo module's function targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if dumpConfigPath != "" {
			loaded, err := config.Load(dumpConfigPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		cacheDir := dumpCacheDir
		if cacheDir == "" {
			cacheDir = cfg.CacheDir
		}

		var cache *driver.DumpCache
		if cacheDir != "" {
			var err error
			cache, err = driver.NewDumpCache(cacheDir)
			if err != nil {
				return err
			}
		}

		fix := testkit.BuildDemo()
		h := driver.NewHolder()
		h.Init(fix.Transfer, fix.TransferData)
		h.Init(fix.BorrowCoin, fix.BorrowCoinData)

		// No rewriting passes are configured in the demo; the run still
		// drives both functions through the holder and the counters.
		pipe := driver.NewPipeline()
		pipe.Verify = cfg.Verify
		if err := pipe.Run(cmd.Context(), fix.Env, h, cfg.Jobs); err != nil {
			return err
		}

		banner := color.New(color.FgCyan, color.Bold)
		useColor := colorEnabled(cmd)

		for _, fn := range []struct {
			fe   *env.FunctionEnv
			name string
		}{
			{fix.Transfer, "Test::transfer"},
			{fix.BorrowCoin, "Test::borrow_coin"},
		} {
			tgt := h.Target(fn.fe)
			analysis.RegisterTestFormatters(tgt)
			text := tgt.String()

			if useColor {
				banner.Fprintf(os.Stdout, "== %s ==\n", fn.name)
			} else {
				fmt.Fprintf(os.Stdout, "== %s ==\n", fn.name)
			}
			fmt.Fprint(os.Stdout, text)

			if cache != nil {
				key := driver.DumpKey(fn.name, pipe.Names())
				if err := cache.Put(key, driver.DumpPayload{Function: fn.name, Passes: pipe.Names(), Dump: text}); err != nil {
					return err
				}
			}
		}

		if dumpMetrics {
			driver.WriteMetrics(os.Stdout)
		}
		return nil
	},
}
