package service

import "errors"

// Sentinel errors for the accounting rules. Handlers map them to HTTP status
// codes with errors.Is; messages are safe to show to the caller.
var (
	ErrNoEncontrado      = errors.New("registro no encontrado")
	ErrValidacion        = errors.New("datos invalidos")
	ErrCajaCerrada       = errors.New("la caja de ese dia está cerrada")
	ErrSaldoInsuficiente = errors.New("el pago supera el saldo pendiente de la receta")
	ErrSinStock          = errors.New("el armazón no tiene stock disponible")
)
