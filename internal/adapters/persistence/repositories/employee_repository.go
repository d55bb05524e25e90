package repositories

import (
	"context"

	"staffdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// employeeRepository implements EmployeeRepository interface
type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

// List returns every employee ordered by id
func (r *employeeRepository) List(ctx context.Context) ([]*models.Employee, error) {
	var employees []*models.Employee
	err := r.db.WithContext(ctx).Order("id ASC").Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

// GetByID gets an employee by ID
func (r *employeeRepository) GetByID(ctx context.Context, id uint) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&employee).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &employee, nil
}

// Create inserts a new employee
func (r *employeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	return translateError(r.db.WithContext(ctx).Create(employee).Error)
}

// Update replaces the editable columns of an existing employee.
// MySQL reports zero affected rows for an unchanged row, so zero rows
// is only ErrNotFound when the row is really gone.
func (r *employeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	result := r.db.WithContext(ctx).
		Model(&models.Employee{ID: employee.ID}).
		Select("name", "email", "position", "salary", "status", "updated_at").
		Updates(employee)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Employee{}).Where("id = ?", employee.ID).Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete hard-deletes an employee
func (r *employeeRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Employee{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ExistsByEmail checks if another employee already uses the email
func (r *employeeRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Employee{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// Count returns the number of employees
func (r *employeeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Employee{}).Count(&count).Error
	return count, err
}
