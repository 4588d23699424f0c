package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/frahmantamala/employee-records/internal/employee"
	employeeRepo "github.com/frahmantamala/employee-records/internal/employee/gormrepo"
	"github.com/frahmantamala/employee-records/pkg/logger"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every employee to an xlsx file",
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

		service := employee.NewService(employeeRepo.NewEmployeeRepository(gdb), logger.LoggerWrapper()).
			WithQueryTimeout(cfg.Database.QueryTimeout)
		page, err := service.ListEmployees(ctx, employee.ListQuery{})
		if err != nil {
			log.Fatalf("failed to list employees: %v", err)
		}

		f, err := os.Create(exportOut)
		if err != nil {
			log.Fatalf("failed to create %s: %v", exportOut, err)
		}
		defer f.Close()

		if err := employee.WriteWorkbook(f, page.Employees); err != nil {
			log.Fatalf("failed to write workbook: %v", err)
		}

		fmt.Printf("Exported %d employees to %s\n", len(page.Employees), exportOut)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "employees.xlsx", "output file")
}
