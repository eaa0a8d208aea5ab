package pet

import "errors"

var (
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientResource = errors.New("insufficient resource")
	ErrInventoryFull        = errors.New("inventory full")
	ErrUnknownItem          = errors.New("unknown item")
	ErrUnknownSpecies       = errors.New("unknown pet type")
	ErrInvalidName          = errors.New("invalid pet name")
)

// ErrOutOfStock is returned when an item is known but none are held. It
// matches ErrInsufficientResource under errors.Is.
var ErrOutOfStock = &outOfStockError{}

type outOfStockError struct{}

func (*outOfStockError) Error() string { return "out of stock" }
func (*outOfStockError) Is(target error) bool { return target == ErrInsufficientResource }
