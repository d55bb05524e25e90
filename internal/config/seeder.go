package config

import (
	"context"
	"fmt"
	"log/slog"

	"staffdesk/internal/adapters/persistence/models"
	"staffdesk/internal/adapters/persistence/repositories"
	"staffdesk/internal/core/domain"
	"staffdesk/internal/pkg/password"
)

// Seeder handles database seeding
type Seeder struct {
	users      repositories.UserRepository
	employees  repositories.EmployeeRepository
	cfg        SeedConfig
	bcryptCost int
}

// NewSeeder creates a new seeder instance
func NewSeeder(
	users repositories.UserRepository,
	employees repositories.EmployeeRepository,
	cfg SeedConfig,
	bcryptCost int,
) *Seeder {
	return &Seeder{
		users:      users,
		employees:  employees,
		cfg:        cfg,
		bcryptCost: bcryptCost,
	}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	slog.Info("running database seeders")

	if err := s.seedAdminUser(ctx); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	if s.cfg.Employees {
		if err := s.seedEmployees(ctx); err != nil {
			return fmt.Errorf("seed employees: %w", err)
		}
	}

	slog.Info("database seeding completed")
	return nil
}

// seedAdminUser creates the initial login account when it does not exist
func (s *Seeder) seedAdminUser(ctx context.Context) error {
	exists, err := s.users.ExistsByEmail(ctx, s.cfg.AdminEmail)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashedPassword, err := password.HashWithCost(s.cfg.AdminPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     s.cfg.AdminName,
		Email:    s.cfg.AdminEmail,
		Password: hashedPassword,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}

	slog.Info("admin user created", "email", admin.Email)
	return nil
}

// seedEmployees loads the demo roster into an empty table
func (s *Seeder) seedEmployees(ctx context.Context) error {
	count, err := s.employees.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, f := range demoEmployees {
		employee := &models.Employee{}
		employee.Apply(f)
		if err := s.employees.Create(ctx, employee); err != nil {
			return fmt.Errorf("%s: %w", f.Email, err)
		}
	}

	slog.Info("demo employees created", "count", len(demoEmployees))
	return nil
}

var demoEmployees = []domain.EmployeeFields{
	{Name: "Alice Johnson", Email: "alice.johnson@company.com", Position: "Software Engineer", Salary: 85000, Status: domain.EmployeeActive},
	{Name: "Bob Smith", Email: "bob.smith@company.com", Position: "Product Manager", Salary: 95000, Status: domain.EmployeeActive},
	{Name: "Carol White", Email: "carol.white@company.com", Position: "UX Designer", Salary: 75000, Status: domain.EmployeeActive},
	{Name: "David Brown", Email: "david.brown@company.com", Position: "DevOps Engineer", Salary: 90000, Status: domain.EmployeeInactive},
	{Name: "Emma Davis", Email: "emma.davis@company.com", Position: "Frontend Developer", Salary: 80000, Status: domain.EmployeeActive},
	{Name: "Frank Miller", Email: "frank.miller@company.com", Position: "Backend Developer", Salary: 88000, Status: domain.EmployeeActive},
	{Name: "Grace Lee", Email: "grace.lee@company.com", Position: "QA Engineer", Salary: 70000, Status: domain.EmployeeActive},
	{Name: "Henry Wilson", Email: "henry.wilson@company.com", Position: "Data Analyst", Salary: 78000, Status: domain.EmployeeActive},
	{Name: "Isabel Martinez", Email: "isabel.martinez@company.com", Position: "HR Manager", Salary: 82000, Status: domain.EmployeeActive},
	{Name: "Jack Taylor", Email: "jack.taylor@company.com", Position: "Sales Representative", Salary: 65000, Status: domain.EmployeeInactive},
	{Name: "Karen Anderson", Email: "karen.anderson@company.com", Position: "Marketing Specialist", Salary: 72000, Status: domain.EmployeeActive},
	{Name: "Liam Thomas", Email: "liam.thomas@company.com", Position: "System Administrator", Salary: 84000, Status: domain.EmployeeActive},
	{Name: "Mia Jackson", Email: "mia.jackson@company.com", Position: "Business Analyst", Salary: 79000, Status: domain.EmployeeActive},
	{Name: "Noah Harris", Email: "noah.harris@company.com", Position: "Mobile Developer", Salary: 87000, Status: domain.EmployeeActive},
	{Name: "Olivia Clark", Email: "olivia.clark@company.com", Position: "Scrum Master", Salary: 92000, Status: domain.EmployeeInactive},
}
