package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/frahmantamala/employee-records/internal/employee"
	employeeRepo "github.com/frahmantamala/employee-records/internal/employee/gormrepo"
	"github.com/frahmantamala/employee-records/pkg/logger"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Reset the employee table to the fixture records",
	Long:  `Truncate the employee table and repopulate it with the nine fixture employees.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, err := bootstrap()
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		gdb, err := openDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer closeDB(gdb)

		if err := runMigrations(ctx, gdb, cfg.Database.Driver, "", "up"); err != nil {
			log.Fatalf("failed to migrate db: %v", err)
		}

		service := employee.NewService(employeeRepo.NewEmployeeRepository(gdb), logger.LoggerWrapper())
		n, err := service.Seed(ctx, employee.Fixtures())
		if err != nil {
			log.Fatalf("failed to seed employees: %v", err)
		}

		total, err := service.Count(ctx)
		if err != nil {
			log.Fatalf("failed to count employees: %v", err)
		}

		fmt.Printf("Seeded %d employees, table now holds %d\n", n, total)
	},
}
