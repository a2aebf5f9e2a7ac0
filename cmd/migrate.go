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
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/dynfield/fielddb"
	fielddbmigrations "github.com/cardinalhq/dynfield/fielddb/migrations"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long:  "Apply the embedded dynamic field schema migrations to the FIELDDB database",
	RunE:  runMigrate,
}

func runMigrate(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	slog.Info("Running fielddb migrations")
	pool, err := fielddb.ConnectToFieldDB(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to fielddb: %w", err)
	}
	defer pool.Close()

	if err := fielddbmigrations.RunMigrationsUp(ctx, pool); err != nil {
		return fmt.Errorf("failed to migrate fielddb: %w", err)
	}
	slog.Info("fielddb migrations completed successfully")
	return nil
}
