package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// Errores del punto de venta.
var (
	ErrEmptyOrder         = errors.New("el pedido no tiene ítems")
	ErrItemUnavailable    = errors.New("ítem del menú no disponible")
	ErrOrderClosed        = errors.New("el pedido ya fue pagado")
	ErrOrderNotReady      = errors.New("cocina o barra aún no marcan el pedido como listo")
	ErrInsufficientTender = errors.New("el monto entregado es menor que el total")
	ErrOwnerImmutable     = errors.New("el propietario no puede modificarse ni eliminarse")
	ErrTableOccupied      = errors.New("la mesa tiene un pedido activo")
	ErrPaymentGateway     = errors.New("la pasarela de pago rechazó la solicitud")
	ErrGatewayDisabled    = errors.New("pagos móviles no configurados")
)
