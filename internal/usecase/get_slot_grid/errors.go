package get_slot_grid

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("get_slot_grid: salon not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден или не принадлежит салону
	ErrEmployeeNotFound = errors.New("get_slot_grid: employee not found in salon")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_slot_grid: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_slot_grid: internal error")
)
