package create_booking

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("create_booking: salon not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден или не принадлежит салону
	ErrEmployeeNotFound = errors.New("create_booking: employee not found in salon")

	// ErrServiceNotFound возвращается, когда хотя бы одна услуга не найдена или не принадлежит салону
	ErrServiceNotFound = errors.New("create_booking: one or more services not found in salon")

	// ErrInvalidTime возвращается при некорректной строке времени
	ErrInvalidTime = errors.New("create_booking: invalid time format")

	// ErrPastBooking возвращается при попытке бронирования в прошлом
	ErrPastBooking = errors.New("create_booking: booking is in the past")

	// ErrDateTooFarAhead возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarAhead = errors.New("create_booking: date exceeds booking horizon")

	// ErrOutsideOperatingHours возвращается, когда время начала вне рабочих часов салона
	ErrOutsideOperatingHours = errors.New("create_booking: start time outside operating hours")

	// ErrExceedsClosingTime возвращается, когда услуги не умещаются до закрытия салона
	ErrExceedsClosingTime = errors.New("create_booking: booking would exceed closing time")

	// ErrSlotTaken возвращается при пересечении с существующим бронированием сотрудника.
	// Возникает и при предварительной проверке, и при проигрыше гонки в транзакции -
	// вызывающая сторона намеренно не может их различить.
	ErrSlotTaken = errors.New("create_booking: time slot already booked for employee")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
