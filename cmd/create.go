package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frahmantamala/employee-records/internal"
	"github.com/frahmantamala/employee-records/internal/employee"
	employeeRepo "github.com/frahmantamala/employee-records/internal/employee/gormrepo"
	"github.com/frahmantamala/employee-records/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	createCmd = &cobra.Command{
		RunE:         runCreate,
		Use:          "create",
		Short:        "Add a single employee",
		Long:         `Validate and insert one employee. The email must not already be taken.`,
		SilenceUsage: true,
	}
	createFirstName string
	createLastName  string
	createEmail     string
	createAge       int
	createHireDate  string
	createInactive  bool
)

func init() {
	createCmd.Flags().StringVar(&createFirstName, "firstname", "", "first name")
	createCmd.Flags().StringVar(&createLastName, "lastname", "", "last name")
	createCmd.Flags().StringVar(&createEmail, "email", "", "unique email address")
	createCmd.Flags().IntVar(&createAge, "age", 0, "age in years")
	createCmd.Flags().StringVar(&createHireDate, "hire-date", "", "hire date as YYYY-MM-DD")
	createCmd.Flags().BoolVar(&createInactive, "inactive", false, "mark the employee as out of office")
}

func runCreate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	dto := employee.CreateEmployeeDTO{
		FirstName: createFirstName,
		LastName:  createLastName,
		Email:     createEmail,
		Age:       createAge,
		Active:    !createInactive,
	}
	if createHireDate != "" {
		hireDate, err := time.Parse(employee.DateLayout, createHireDate)
		if err != nil {
			return fmt.Errorf("invalid --hire-date %q, expected YYYY-MM-DD", createHireDate)
		}
		dto.HireDate = hireDate
	}

	cfg, err := bootstrap()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	gdb, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}
	defer closeDB(gdb)

	if err := runMigrations(ctx, gdb, cfg.Database.Driver, "", "up"); err != nil {
		return fmt.Errorf("failed to migrate db: %w", err)
	}

	service := employee.NewService(employeeRepo.NewEmployeeRepository(gdb), logger.LoggerWrapper()).
		WithQueryTimeout(cfg.Database.QueryTimeout)
	created, err := service.CreateEmployee(ctx, dto)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return errors.New(appErr.GetDetailedMessage())
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created employee %d: %s <%s>\n", created.ID, created.FullName(), created.Email)
	return nil
}
