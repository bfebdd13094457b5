package get_available_slots

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("get_available_slots: salon not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден или не принадлежит салону
	ErrEmployeeNotFound = errors.New("get_available_slots: employee not found in salon")

	// ErrServiceNotFound возвращается, когда хотя бы одна услуга не найдена или не принадлежит салону
	ErrServiceNotFound = errors.New("get_available_slots: one or more services not found in salon")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
