package main

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/engine"
	"github.com/iov-one/custody/store/iavl"
)

const version = "0.1.0"

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "custodyd",
		Short: "shared-custody authorization engine",
	}
	root.PersistentFlags().String("home", defaultHome(), "directory for config and data")
	if err := viper.BindPFlag("home", root.PersistentFlags().Lookup("home")); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("CUSTODYD")
	viper.AutomaticEnv()

	root.AddCommand(initCmd())
	root.AddCommand(demoCmd())
	root.AddCommand(versionCmd())
	return root
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".custodyd"
	}
	return filepath.Join(home, ".custodyd")
}

func logger() log.Logger {
	return log.NewTMLogger(log.NewSyncWriter(os.Stdout))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the application version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println(version)
			return nil
		},
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "initialize engine state from a genesis document",
		Long: `Reads genesis.json from the home directory, seeds the engine
state and commits the first version of the database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			home := viper.GetString("home")
			raw, err := ioutil.ReadFile(filepath.Join(home, "genesis.json"))
			if err != nil {
				return err
			}
			opts, err := engine.FromGenesis(raw)
			if err != nil {
				return err
			}

			db, err := iavl.NewCommitStore(filepath.Join(home, "data"), "custody")
			if err != nil {
				return err
			}
			if err := db.LoadLatestVersion(); err != nil {
				return err
			}

			eng := engine.NewEngine(db, nopReleaser{}, engine.Options{Logger: logger()})
			if err := eng.Initialize(opts); err != nil {
				return err
			}
			commit, err := db.Commit()
			if err != nil {
				return err
			}
			cmd.Printf("initialized at version %d (%X)\n", commit.Version, commit.Hash)
			return nil
		},
	}
}

// nopReleaser is used by commands that never execute transfers.
type nopReleaser struct{}

func (nopReleaser) Release(dest custody.Address, value uint64, payload []byte) error {
	return nil
}
