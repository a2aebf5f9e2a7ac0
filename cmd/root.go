// Copyright (C) 2025-2026 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/dynfield/config"
	"github.com/cardinalhq/dynfield/fielddb"
	"github.com/cardinalhq/dynfield/internal/fieldreg"
	"github.com/cardinalhq/dynfield/internal/validstatus"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dynfield",
	Short: "Manage dynamic field definitions",
	Long:  `Administer the dynamic field definition registry: schema migrations, field definitions and their display order.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// openRegistry wires a Registry against the FIELDDB_* database for CLI
// use. The caller must Close both returned values.
func openRegistry(ctx context.Context) (*fieldreg.Registry, *fielddb.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	store, err := fielddb.FieldDBStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	registry, err := fieldreg.New(fieldreg.Params{
		Store:         store,
		Valid:         validstatus.NewDBProvider(store),
		CacheTTL:      cfg.Cache.TTL(),
		SystemActorID: cfg.Reorder.SystemActorID,
	})
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return registry, store, nil
}
